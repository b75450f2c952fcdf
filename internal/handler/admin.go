package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/seed"
	"github.com/restohub-rw/api/internal/store"
)

// AdminStore defines the repository methods needed by the admin views.
// Satisfied by store.Store; narrow interface for testability.
type AdminStore interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status string) (domain.Subscription, error)
}

// AdminHandler handles the platform-administration endpoints.
type AdminHandler struct {
	store AdminStore
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(store AdminStore) *AdminHandler {
	return &AdminHandler{store: store}
}

// RegisterRoutes registers admin endpoints. Mounted at /admin behind the
// ADMIN role check.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.ListUsers)
	r.Get("/subscriptions", h.ListSubscriptions)
	r.Patch("/subscriptions/{id}/status", h.UpdateSubscriptionStatus)
	r.Get("/system", h.SystemStatus)
}

// --- Request / Response types ---

type updateSubscriptionStatusRequest struct {
	Status string `json:"status"`
}

type subscriptionResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Plan         string    `json:"plan"`
	Status       string    `json:"status"`
	MonthlyPrice string    `json:"monthly_price"`
	RenewsAt     time.Time `json:"renews_at"`
}

type componentStatusResponse struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMS int    `json:"latency_ms"`
	Uptime    string `json:"uptime"`
}

func toSubscriptionResponse(s domain.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		Plan:         s.Plan,
		Status:       s.Status,
		MonthlyPrice: s.MonthlyPrice.StringFixed(2),
		RenewsAt:     s.RenewsAt,
	}
}

// --- Handlers ---

// ListUsers returns every platform account.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("ERROR: admin list users: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListSubscriptions returns every owner subscription.
func (h *AdminHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubscriptions(r.Context())
	if err != nil {
		log.Printf("ERROR: admin list subscriptions: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]subscriptionResponse, len(subs))
	for i, s := range subs {
		resp[i] = toSubscriptionResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateSubscriptionStatus changes a subscription's billing status.
func (h *AdminHandler) UpdateSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid subscription ID"})
		return
	}

	var req updateSubscriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !isValidSubscriptionStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	updated, err := h.store.UpdateSubscriptionStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "subscription not found"})
			return
		}
		log.Printf("ERROR: update subscription status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toSubscriptionResponse(updated))
}

// SystemStatus returns the infrastructure-monitoring rows. The figures are
// static; real probes are out of scope for the dashboard backend.
func (h *AdminHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	components := seed.Components()
	resp := make([]componentStatusResponse, len(components))
	for i, c := range components {
		resp[i] = componentStatusResponse{
			Name:      c.Name,
			Status:    c.Status,
			LatencyMS: c.LatencyMS,
			Uptime:    c.Uptime.StringFixed(2),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func isValidSubscriptionStatus(s string) bool {
	switch s {
	case enum.SubscriptionStatusActive, enum.SubscriptionStatusPastDue,
		enum.SubscriptionStatusCancelled:
		return true
	}
	return false
}
