package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/handler"
	"github.com/restohub-rw/api/internal/seed"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
)

// newBusinessRouter wires the handler over a freshly seeded container, the
// same way the real router mounts it.
func newBusinessRouter(t *testing.T) (chi.Router, *state.Container) {
	t.Helper()
	container := state.New(store.NewMemoryFromSeed(), seed.OwnerID, nil)
	h := handler.NewBusinessHandler(container)
	r := chi.NewRouter()
	r.Route("/businesses", func(r chi.Router) {
		h.RegisterRoutes(r)
		r.Route("/{bid}", h.RegisterUnitRoutes)
	})
	return r, container
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestListBusinesses(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "GET", "/businesses", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	units := decodeList(t, rr)
	if len(units) != 3 {
		t.Fatalf("units: got %d, want 3", len(units))
	}
}

func TestListBusinesses_SearchFilter(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "GET", "/businesses?q=coffee", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	units := decodeList(t, rr)
	if len(units) != 1 {
		t.Fatalf("matches: got %d, want 1", len(units))
	}
	if units[0]["name"] != "Rwanda Coffee House" {
		t.Errorf("match: got %v", units[0]["name"])
	}
}

func TestListBusinesses_StatusFilter(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "GET", "/businesses?status=MAINTENANCE", nil)
	units := decodeList(t, rr)
	if len(units) != 1 || units[0]["name"] != "Nyarugenge Lounge Bar" {
		t.Errorf("maintenance units: got %v", units)
	}
}

func TestBusinessSummary(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "GET", "/businesses/summary", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	resp := decodeResponse(t, rr)
	if resp["total_revenue"] != "4750000.00" {
		t.Errorf("total revenue: got %v", resp["total_revenue"])
	}
	if resp["total_staff"] != float64(26) {
		t.Errorf("total staff: got %v", resp["total_staff"])
	}
	if resp["active_units"] != float64(2) {
		t.Errorf("active units: got %v", resp["active_units"])
	}
}

func TestGetBusiness(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "GET", "/businesses/"+seed.KigaliRestaurantID.String(), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	resp := decodeResponse(t, rr)
	if resp["name"] != "Kigali City Restaurant" {
		t.Errorf("name: got %v", resp["name"])
	}

	rr = doRequest(t, r, "GET", "/businesses/"+uuid.New().String(), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing id status: got %d, want 404", rr.Code)
	}
}

func TestCreateBusiness(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "POST", "/businesses", map[string]string{
		"name":     "Huye Bakery",
		"location": "Huye, Southern Province",
		"category": enum.BusinessCategoryBakery,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["status"] != enum.BusinessStatusActive {
		t.Errorf("new unit status: got %v, want ACTIVE", resp["status"])
	}

	rr = doRequest(t, r, "GET", "/businesses", nil)
	if units := decodeList(t, rr); len(units) != 4 {
		t.Errorf("units after create: got %d, want 4", len(units))
	}
}

func TestCreateBusiness_Validation(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "POST", "/businesses", map[string]string{"name": "No Location"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing fields: got %d, want 400", rr.Code)
	}

	rr = doRequest(t, r, "POST", "/businesses", map[string]string{
		"name":     "Bad Category",
		"location": "Kigali",
		"category": "FOOD_TRUCK",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad category: got %d, want 400", rr.Code)
	}
}

func TestUpdateBusinessStatus(t *testing.T) {
	r, container := newBusinessRouter(t)

	rr := doRequest(t, r, "PATCH", "/businesses/"+seed.CoffeeHouseID.String()+"/status",
		map[string]string{"status": enum.BusinessStatusInactive})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}

	snap, err := container.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for _, b := range snap.Businesses {
		if b.ID == seed.CoffeeHouseID && b.Status != enum.BusinessStatusInactive {
			t.Errorf("status not applied: got %s", b.Status)
		}
	}
}

func TestUpdateBusinessStatus_UnknownID(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "PATCH", "/businesses/"+uuid.New().String()+"/status",
		map[string]string{"status": enum.BusinessStatusInactive})
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rr.Code)
	}
}

func TestUpdateBusinessStatus_InvalidStatus(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "PATCH", "/businesses/"+seed.CoffeeHouseID.String()+"/status",
		map[string]string{"status": "CLOSED_FOREVER"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid status: got %d, want 400", rr.Code)
	}
}

func TestDeleteBusiness(t *testing.T) {
	r, _ := newBusinessRouter(t)

	rr := doRequest(t, r, "DELETE", "/businesses/"+seed.NyarugengeBarID.String(), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d", rr.Code)
	}

	rr = doRequest(t, r, "GET", "/businesses", nil)
	if units := decodeList(t, rr); len(units) != 2 {
		t.Errorf("units after delete: got %d, want 2", len(units))
	}
}
