package handler_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/restohub-rw/api/internal/handler"
	"github.com/restohub-rw/api/internal/seed"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
)

func newReportRouter(t *testing.T) chi.Router {
	t.Helper()
	container := state.New(store.NewMemoryFromSeed(), seed.OwnerID, nil)
	h := handler.NewReportHandler(container)
	r := chi.NewRouter()
	r.Route("/reports", h.RegisterRoutes)
	return r
}

func TestFinancialsCSV(t *testing.T) {
	r := newReportRouter(t)

	rr := doRequest(t, r, "GET", "/reports/financials.csv", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type: got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment; filename=financials-") {
		t.Errorf("content disposition: got %q", cd)
	}

	rows, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header plus 18 seed records.
	if len(rows) != 19 {
		t.Fatalf("rows: got %d, want 19", len(rows))
	}

	wantHeader := []string{"period", "business", "revenue", "expenses", "profit", "orders", "customers"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d]: got %q, want %q", i, rows[0][i], col)
		}
	}

	// Data rows carry resolved business names, not raw ids.
	names := map[string]bool{}
	for _, row := range rows[1:] {
		names[row[1]] = true
	}
	for _, want := range []string{"Kigali City Restaurant", "Rwanda Coffee House", "Nyarugenge Lounge Bar"} {
		if !names[want] {
			t.Errorf("missing business in export: %s", want)
		}
	}
}
