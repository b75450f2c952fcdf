package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/handler"
	"github.com/restohub-rw/api/internal/seed"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
)

func newStaffRouter(t *testing.T) chi.Router {
	t.Helper()
	container := state.New(store.NewMemoryFromSeed(), seed.OwnerID, nil)
	h := handler.NewStaffHandler(container)
	r := chi.NewRouter()
	r.Route("/businesses/{bid}/staff", h.RegisterRoutes)
	return r
}

func staffPath(businessID uuid.UUID, suffix string) string {
	return "/businesses/" + businessID.String() + "/staff" + suffix
}

func TestListStaff(t *testing.T) {
	r := newStaffRouter(t)

	rr := doRequest(t, r, "GET", staffPath(seed.KigaliRestaurantID, ""), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	members := decodeList(t, rr)
	if len(members) != 3 {
		t.Fatalf("staff: got %d, want 3", len(members))
	}
}

func TestListStaff_Filters(t *testing.T) {
	r := newStaffRouter(t)

	rr := doRequest(t, r, "GET", staffPath(seed.KigaliRestaurantID, "?role="+enum.StaffRoleChef), nil)
	members := decodeList(t, rr)
	if len(members) != 1 || members[0]["full_name"] != "Aline Mukamana" {
		t.Errorf("chef filter: got %v", members)
	}

	rr = doRequest(t, r, "GET", staffPath(seed.KigaliRestaurantID, "?status="+enum.StaffStatusOnBreak), nil)
	members = decodeList(t, rr)
	if len(members) != 1 || members[0]["full_name"] != "Patrick Habimana" {
		t.Errorf("on-break filter: got %v", members)
	}

	rr = doRequest(t, r, "GET", staffPath(seed.CoffeeHouseID, "?q=samuel"), nil)
	members = decodeList(t, rr)
	if len(members) != 1 || members[0]["full_name"] != "Samuel Bizimana" {
		t.Errorf("search filter: got %v", members)
	}
}

func TestListStaff_ScopedToBusiness(t *testing.T) {
	r := newStaffRouter(t)

	rr := doRequest(t, r, "GET", staffPath(seed.NyarugengeBarID, ""), nil)
	members := decodeList(t, rr)
	if len(members) != 1 {
		t.Fatalf("bar staff: got %d, want 1", len(members))
	}
	if members[0]["business_id"] != seed.NyarugengeBarID.String() {
		t.Errorf("business_id: got %v", members[0]["business_id"])
	}
}

func TestCreateStaff(t *testing.T) {
	r := newStaffRouter(t)

	rr := doRequest(t, r, "POST", staffPath(seed.CoffeeHouseID, ""), map[string]string{
		"full_name": "Chantal Mukeshimana",
		"role":      enum.StaffRoleWaiter,
		"email":     "chantal.m@restohub.rw",
		"salary":    "230000",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["status"] != enum.StaffStatusActive {
		t.Errorf("new staff status: got %v, want ACTIVE", resp["status"])
	}
	if resp["salary"] != "230000.00" {
		t.Errorf("salary: got %v", resp["salary"])
	}

	rr = doRequest(t, r, "GET", staffPath(seed.CoffeeHouseID, ""), nil)
	if members := decodeList(t, rr); len(members) != 3 {
		t.Errorf("staff after create: got %d, want 3", len(members))
	}
}

func TestCreateStaff_Validation(t *testing.T) {
	r := newStaffRouter(t)

	cases := []map[string]string{
		// missing full_name
		{"role": enum.StaffRoleWaiter},
		// unknown role
		{"full_name": "X", "role": "SOMMELIER"},
		// malformed email
		{"full_name": "X", "role": enum.StaffRoleWaiter, "email": "not-an-email"},
	}
	for i, body := range cases {
		if rr := doRequest(t, r, "POST", staffPath(seed.KigaliRestaurantID, ""), body); rr.Code != http.StatusBadRequest {
			t.Errorf("case %d: got %d, want 400", i, rr.Code)
		}
	}
}

func TestUpdateStaff(t *testing.T) {
	r := newStaffRouter(t)

	id := "9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430003"
	rr := doRequest(t, r, "PUT", staffPath(seed.KigaliRestaurantID, "/"+id), map[string]string{
		"full_name": "Patrick Habimana",
		"role":      enum.StaffRoleCashier,
		"email":     "patrick.h@restohub.rw",
		"salary":    "250000",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["role"] != enum.StaffRoleCashier {
		t.Errorf("role: got %v", resp["role"])
	}

	rr = doRequest(t, r, "PUT", staffPath(seed.KigaliRestaurantID, "/"+uuid.New().String()), map[string]string{
		"full_name": "Ghost",
		"role":      enum.StaffRoleWaiter,
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rr.Code)
	}
}

func TestUpdateStaffStatusEndpoint(t *testing.T) {
	r := newStaffRouter(t)

	id := "9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430002"
	rr := doRequest(t, r, "PATCH", staffPath(seed.KigaliRestaurantID, "/"+id+"/status"),
		map[string]string{"status": enum.StaffStatusOnBreak})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, r, "GET", staffPath(seed.KigaliRestaurantID, "?status="+enum.StaffStatusOnBreak), nil)
	if members := decodeList(t, rr); len(members) != 2 {
		t.Errorf("on break after update: got %d, want 2", len(members))
	}
}

func TestUpdateStaffStatus_UnknownID(t *testing.T) {
	r := newStaffRouter(t)

	rr := doRequest(t, r, "PATCH", staffPath(seed.KigaliRestaurantID, "/"+uuid.New().String()+"/status"),
		map[string]string{"status": enum.StaffStatusActive})
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rr.Code)
	}
}

func TestUpdateStaffStatus_InvalidStatus(t *testing.T) {
	r := newStaffRouter(t)

	id := "9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430001"
	rr := doRequest(t, r, "PATCH", staffPath(seed.KigaliRestaurantID, "/"+id+"/status"),
		map[string]string{"status": "SLEEPING"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid status: got %d, want 400", rr.Code)
	}
}

func TestDeleteStaff(t *testing.T) {
	r := newStaffRouter(t)

	id := "9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430006"
	rr := doRequest(t, r, "DELETE", staffPath(seed.NyarugengeBarID, "/"+id), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d", rr.Code)
	}

	rr = doRequest(t, r, "GET", staffPath(seed.NyarugengeBarID, ""), nil)
	if members := decodeList(t, rr); len(members) != 0 {
		t.Errorf("staff after delete: got %d, want 0", len(members))
	}
}
