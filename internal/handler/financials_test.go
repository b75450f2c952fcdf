package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/restohub-rw/api/internal/handler"
	"github.com/restohub-rw/api/internal/seed"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
)

func newFinancialRouter(t *testing.T) chi.Router {
	t.Helper()
	container := state.New(store.NewMemoryFromSeed(), seed.OwnerID, nil)
	h := handler.NewFinancialHandler(container)
	r := chi.NewRouter()
	r.Route("/financials", h.RegisterRoutes)
	return r
}

func TestListFinancials(t *testing.T) {
	r := newFinancialRouter(t)

	rr := doRequest(t, r, "GET", "/financials", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	records := decodeList(t, rr)
	// 6 months for each of the 3 seed businesses.
	if len(records) != 18 {
		t.Fatalf("records: got %d, want 18", len(records))
	}
}

func TestListFinancials_BusinessFilter(t *testing.T) {
	r := newFinancialRouter(t)

	rr := doRequest(t, r, "GET", "/financials?business_id="+seed.CoffeeHouseID.String(), nil)
	records := decodeList(t, rr)
	if len(records) != 6 {
		t.Fatalf("coffee house records: got %d, want 6", len(records))
	}
	for _, rec := range records {
		if rec["business_id"] != seed.CoffeeHouseID.String() {
			t.Errorf("stray business: %v", rec["business_id"])
		}
	}

	rr = doRequest(t, r, "GET", "/financials?business_id=nope", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad business_id: got %d, want 400", rr.Code)
	}
}

func TestListFinancials_PeriodFilter(t *testing.T) {
	r := newFinancialRouter(t)

	rr := doRequest(t, r, "GET", "/financials?period=2026-07", nil)
	records := decodeList(t, rr)
	if len(records) != 3 {
		t.Fatalf("july records: got %d, want 3", len(records))
	}
	for _, rec := range records {
		if rec["period"] != "2026-07" {
			t.Errorf("stray period: %v", rec["period"])
		}
	}

	rr = doRequest(t, r, "GET", "/financials?period=July", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad period: got %d, want 400", rr.Code)
	}
}

func TestFinancialSummary(t *testing.T) {
	r := newFinancialRouter(t)

	rr := doRequest(t, r, "GET", "/financials/summary", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	summaries := decodeList(t, rr)
	if len(summaries) != 6 {
		t.Fatalf("periods: got %d, want 6", len(summaries))
	}

	first := summaries[0]
	if first["period"] != "2026-02" {
		t.Errorf("first period: got %v, want 2026-02", first["period"])
	}
	// 1850000 + 720000 + 1410000 across the three units.
	if first["revenue"] != "3980000.00" {
		t.Errorf("february revenue: got %v", first["revenue"])
	}
	// No previous period to grow from.
	if first["growth_rate"] != "0.00" {
		t.Errorf("february growth: got %v", first["growth_rate"])
	}
	if last := summaries[5]; last["period"] != "2026-07" {
		t.Errorf("last period: got %v, want 2026-07", last["period"])
	}
}
