package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/service"
	"github.com/restohub-rw/api/internal/state"
)

// FinancialContainer defines the state-container methods needed by financial
// handlers. Satisfied by *state.Container.
type FinancialContainer interface {
	Snapshot(ctx context.Context) (state.Snapshot, error)
}

// FinancialHandler handles the read-only financial endpoints.
type FinancialHandler struct {
	container FinancialContainer
}

// NewFinancialHandler creates a new FinancialHandler.
func NewFinancialHandler(container FinancialContainer) *FinancialHandler {
	return &FinancialHandler{container: container}
}

// RegisterRoutes registers financial endpoints. Mounted at /financials.
func (h *FinancialHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/summary", h.Summary)
}

// --- Response types ---

type financialRecordResponse struct {
	ID            uuid.UUID `json:"id"`
	BusinessID    uuid.UUID `json:"business_id"`
	Period        string    `json:"period"`
	Revenue       string    `json:"revenue"`
	Expenses      string    `json:"expenses"`
	Profit        string    `json:"profit"`
	OrderCount    int       `json:"order_count"`
	CustomerCount int       `json:"customer_count"`
}

type periodSummaryResponse struct {
	Period        string `json:"period"`
	Revenue       string `json:"revenue"`
	Expenses      string `json:"expenses"`
	Profit        string `json:"profit"`
	Margin        string `json:"margin"`
	GrowthRate    string `json:"growth_rate"`
	OrderCount    int    `json:"order_count"`
	CustomerCount int    `json:"customer_count"`
}

func toFinancialRecordResponse(r domain.FinancialRecord) financialRecordResponse {
	return financialRecordResponse{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		Period:        r.Period,
		Revenue:       r.Revenue.StringFixed(2),
		Expenses:      r.Expenses.StringFixed(2),
		Profit:        r.Profit.StringFixed(2),
		OrderCount:    r.OrderCount,
		CustomerCount: r.CustomerCount,
	}
}

// --- Handlers ---

// List returns the raw monthly records, filtered by the business_id and
// period query params.
func (h *FinancialHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: list financials: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	records := snap.Financials
	if raw := r.URL.Query().Get("business_id"); raw != "" {
		businessID, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
			return
		}
		records = filterFinancialsByBusiness(records, businessID)
	}
	if period := r.URL.Query().Get("period"); period != "" {
		if _, err := time.Parse("2006-01", period); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid period, expected YYYY-MM"})
			return
		}
		records = filterFinancialsByPeriod(records, period)
	}

	resp := make([]financialRecordResponse, len(records))
	for i, rec := range records {
		resp[i] = toFinancialRecordResponse(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Summary returns the per-period aggregates with margin and growth, always
// recomputed from the current snapshot.
func (h *FinancialHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: financial summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	summaries := service.SummarizeFinancials(snap.Financials)
	resp := make([]periodSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = periodSummaryResponse{
			Period:        s.Period,
			Revenue:       s.Revenue.StringFixed(2),
			Expenses:      s.Expenses.StringFixed(2),
			Profit:        s.Profit.StringFixed(2),
			Margin:        s.Margin.StringFixed(2),
			GrowthRate:    s.GrowthRate.StringFixed(2),
			OrderCount:    s.OrderCount,
			CustomerCount: s.CustomerCount,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func filterFinancialsByBusiness(records []domain.FinancialRecord, businessID uuid.UUID) []domain.FinancialRecord {
	var out []domain.FinancialRecord
	for _, r := range records {
		if r.BusinessID == businessID {
			out = append(out, r)
		}
	}
	return out
}

func filterFinancialsByPeriod(records []domain.FinancialRecord, period string) []domain.FinancialRecord {
	var out []domain.FinancialRecord
	for _, r := range records {
		if r.Period == period {
			out = append(out, r)
		}
	}
	return out
}
