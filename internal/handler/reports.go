package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/state"
)

// ReportContainer defines the state-container methods needed by report
// handlers. Satisfied by *state.Container.
type ReportContainer interface {
	Snapshot(ctx context.Context) (state.Snapshot, error)
}

// ReportHandler produces downloadable exports for the accountant views.
type ReportHandler struct {
	container ReportContainer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(container ReportContainer) *ReportHandler {
	return &ReportHandler{container: container}
}

// RegisterRoutes registers report endpoints. Mounted at /reports.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/financials.csv", h.FinancialsCSV)
}

// FinancialsCSV streams the monthly records as a CSV download, one row per
// business per period.
func (h *ReportHandler) FinancialsCSV(w http.ResponseWriter, r *http.Request) {
	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: financials csv: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	names := make(map[uuid.UUID]string, len(snap.Businesses))
	for _, b := range snap.Businesses {
		names[b.ID] = b.Name
	}

	filename := fmt.Sprintf("financials-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"period", "business", "revenue", "expenses", "profit", "orders", "customers"})
	for _, rec := range snap.Financials {
		name := names[rec.BusinessID]
		if name == "" {
			name = rec.BusinessID.String()
		}
		_ = cw.Write([]string{
			rec.Period,
			name,
			rec.Revenue.StringFixed(2),
			rec.Expenses.StringFixed(2),
			rec.Profit.StringFixed(2),
			fmt.Sprintf("%d", rec.OrderCount),
			fmt.Sprintf("%d", rec.CustomerCount),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("ERROR: financials csv: %v", err)
	}
}
