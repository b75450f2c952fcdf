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
	"github.com/shopspring/decimal"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/store"
	"github.com/restohub-rw/api/internal/ws"
)

// MenuStore defines the repository methods needed by menu handlers.
// Satisfied by store.Store; narrow interface for testability.
type MenuStore interface {
	ListMenuByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, m domain.MenuItem) (domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, m domain.MenuItem) (domain.MenuItem, error)
	SetMenuItemAvailability(ctx context.Context, id uuid.UUID, available bool) (domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

// MenuHandler handles menu-item endpoints.
type MenuHandler struct {
	store MenuStore
	hub   *ws.Hub // may be nil in tests
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore, hub *ws.Hub) *MenuHandler {
	return &MenuHandler{store: store, hub: hub}
}

// RegisterRoutes registers menu endpoints. Expected to be mounted inside a
// business-scoped subrouter: /businesses/{bid}/menu
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/availability", h.SetAvailability)
}

// --- Request / Response types ---

type menuItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

type setAvailabilityRequest struct {
	Available bool `json:"available"`
}

type menuItemResponse struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Price      string    `json:"price"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toMenuItemResponse(m domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Category:   m.Category,
		Price:      m.Price.StringFixed(2),
		Available:  m.Available,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// --- Handlers ---

// List returns the menu of the given business.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	items, err := h.store.ListMenuByBusiness(r.Context(), businessID)
	if err != nil {
		log.Printf("ERROR: list menu: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, m := range items {
		resp[i] = toMenuItemResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a menu item to the given business.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	price, msg := validateMenuItemRequest(req)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	now := time.Now()
	created, err := h.store.CreateMenuItem(r.Context(), domain.MenuItem{
		ID:         uuid.New(),
		BusinessID: businessID,
		Name:       strings.TrimSpace(req.Name),
		Category:   strings.TrimSpace(req.Category),
		Price:      price,
		Available:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		log.Printf("ERROR: create menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toMenuItemResponse(created))
}

// Update modifies an existing menu item.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	price, msg := validateMenuItemRequest(req)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	cur, err := h.store.GetMenuItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: update menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	cur.Name = strings.TrimSpace(req.Name)
	cur.Category = strings.TrimSpace(req.Category)
	cur.Price = price
	updated, err := h.store.UpdateMenuItem(r.Context(), cur)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: update menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toMenuItemResponse(updated))
}

// Delete removes a menu item.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	if err := h.store.DeleteMenuItem(r.Context(), itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: delete menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetAvailability toggles a menu item's availability and pushes the change
// to connected dashboards.
func (h *MenuHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	var req setAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := h.store.SetMenuItemAvailability(r.Context(), itemID, req.Available)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: set menu availability: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if h.hub != nil {
		payload, err := json.Marshal(map[string]interface{}{
			"id":        updated.ID.String(),
			"available": updated.Available,
		})
		if err == nil {
			h.hub.BroadcastToBusiness(updated.BusinessID, ws.Event{Type: "menu.availability_updated", Payload: payload})
		}
	}

	writeJSON(w, http.StatusOK, toMenuItemResponse(updated))
}

// --- Helpers ---

func validateMenuItemRequest(req menuItemRequest) (decimal.Decimal, string) {
	if strings.TrimSpace(req.Name) == "" || req.Price == "" {
		return decimal.Zero, "name and price are required"
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return decimal.Zero, "invalid price"
	}
	return price, ""
}
