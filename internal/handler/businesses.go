package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/service"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
)

// BusinessContainer defines the state-container methods needed by business
// handlers. Satisfied by *state.Container.
type BusinessContainer interface {
	Snapshot(ctx context.Context) (state.Snapshot, error)
	CreateBusiness(ctx context.Context, in state.BusinessInput) (domain.BusinessUnit, error)
	UpdateBusiness(ctx context.Context, id uuid.UUID, in state.BusinessInput) (domain.BusinessUnit, error)
	DeleteBusiness(ctx context.Context, id uuid.UUID) error
	UpdateBusinessStatus(ctx context.Context, id uuid.UUID, status string) error
}

// BusinessHandler handles business-unit endpoints.
type BusinessHandler struct {
	container BusinessContainer
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(container BusinessContainer) *BusinessHandler {
	return &BusinessHandler{container: container}
}

// RegisterRoutes registers the portfolio-level endpoints. Mounted at
// /businesses.
func (h *BusinessHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/summary", h.Summary)
	r.Post("/", h.Create)
}

// RegisterUnitRoutes registers the single-unit endpoints. Mounted at
// /businesses/{bid}.
func (h *BusinessHandler) RegisterUnitRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)
	r.Patch("/status", h.UpdateStatus)
}

// --- Request / Response types ---

type businessRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Category string `json:"category"`
}

type updateBusinessStatusRequest struct {
	Status string `json:"status"`
}

type businessResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Revenue    string    `json:"revenue"`
	StaffCount int       `json:"staff_count"`
	Rating     string    `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type businessSummaryResponse struct {
	TotalRevenue string `json:"total_revenue"`
	TotalStaff   int    `json:"total_staff"`
	ActiveUnits  int    `json:"active_units"`
	TotalUnits   int    `json:"total_units"`
}

func toBusinessResponse(b domain.BusinessUnit) businessResponse {
	return businessResponse{
		ID:         b.ID,
		Name:       b.Name,
		Location:   b.Location,
		Category:   b.Category,
		Status:     b.Status,
		Revenue:    b.Revenue.StringFixed(2),
		StaffCount: b.StaffCount,
		Rating:     b.Rating.StringFixed(1),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// --- Handlers ---

// List returns the owner's business units, filtered by the q, status and
// category query params.
func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: list businesses: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	filter := service.BusinessFilter{
		Search:   r.URL.Query().Get("q"),
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	}
	units := service.FilterBusinesses(snap.Businesses, filter)

	resp := make([]businessResponse, len(units))
	for i, u := range units {
		resp[i] = toBusinessResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Summary returns the headline dashboard numbers.
func (h *BusinessHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: business summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	totals := service.SummarizeBusinesses(snap.Businesses)
	writeJSON(w, http.StatusOK, businessSummaryResponse{
		TotalRevenue: totals.TotalRevenue.StringFixed(2),
		TotalStaff:   totals.TotalStaff,
		ActiveUnits:  totals.ActiveUnits,
		TotalUnits:   totals.TotalUnits,
	})
}

// Get returns a single business unit.
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: get business: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	for _, u := range snap.Businesses {
		if u.ID == id {
			writeJSON(w, http.StatusOK, toBusinessResponse(u))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "business not found"})
}

// Create adds a new business unit.
func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req businessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := validateBusinessRequest(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	created, err := h.container.CreateBusiness(r.Context(), state.BusinessInput{
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
		Category: req.Category,
	})
	if err != nil {
		log.Printf("ERROR: create business: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toBusinessResponse(created))
}

// Update modifies the display fields of an existing business unit.
func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	var req businessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := validateBusinessRequest(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	updated, err := h.container.UpdateBusiness(r.Context(), id, state.BusinessInput{
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
		Category: req.Category,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "business not found"})
			return
		}
		log.Printf("ERROR: update business: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toBusinessResponse(updated))
}

// Delete removes a business unit.
func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	if err := h.container.DeleteBusiness(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "business not found"})
			return
		}
		log.Printf("ERROR: delete business: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus replaces a business unit's operational status.
func (h *BusinessHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	var req updateBusinessStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !isValidBusinessStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	// The container treats unknown ids as a no-op; the HTTP surface reports
	// them as 404 instead.
	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: update business status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !containsBusiness(snap.Businesses, id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "business not found"})
		return
	}

	if err := h.container.UpdateBusinessStatus(r.Context(), id, req.Status); err != nil {
		log.Printf("ERROR: update business status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id.String(), "status": req.Status})
}

// --- Helpers ---

func validateBusinessRequest(req businessRequest) string {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" || req.Category == "" {
		return "name, location, and category are required"
	}
	if !isValidBusinessCategory(req.Category) {
		return "invalid category"
	}
	return ""
}

func isValidBusinessCategory(c string) bool {
	switch c {
	case enum.BusinessCategoryRestaurant, enum.BusinessCategoryBar,
		enum.BusinessCategoryCafe, enum.BusinessCategoryLounge,
		enum.BusinessCategoryBakery:
		return true
	}
	return false
}

func isValidBusinessStatus(s string) bool {
	switch s {
	case enum.BusinessStatusActive, enum.BusinessStatusInactive,
		enum.BusinessStatusMaintenance:
		return true
	}
	return false
}

func containsBusiness(units []domain.BusinessUnit, id uuid.UUID) bool {
	for _, u := range units {
		if u.ID == id {
			return true
		}
	}
	return false
}
