package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/state"
)

// NotificationContainer defines the state-container methods needed by
// notification handlers. Satisfied by *state.Container.
type NotificationContainer interface {
	Snapshot(ctx context.Context) (state.Snapshot, error)
	AddNotification(ctx context.Context, in state.NotificationInput) (domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	container NotificationContainer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(container NotificationContainer) *NotificationHandler {
	return &NotificationHandler{container: container}
}

// RegisterRoutes registers notification endpoints. Mounted at /notifications.
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/unread-count", h.UnreadCount)
	r.Patch("/{id}/read", h.MarkRead)
}

// --- Request / Response types ---

type createNotificationRequest struct {
	Category       string `json:"category"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Priority       string `json:"priority"`
	ActionRequired bool   `json:"action_required"`
}

type notificationResponse struct {
	ID             uuid.UUID `json:"id"`
	Category       string    `json:"category"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Priority       string    `json:"priority"`
	Read           bool      `json:"read"`
	ActionRequired bool      `json:"action_required"`
	CreatedAt      time.Time `json:"created_at"`
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:             n.ID,
		Category:       n.Category,
		Title:          n.Title,
		Message:        n.Message,
		Priority:       n.Priority,
		Read:           n.Read,
		ActionRequired: n.ActionRequired,
		CreatedAt:      n.CreatedAt,
	}
}

// --- Handlers ---

// List returns all notifications, most recent first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: list notifications: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]notificationResponse, len(snap.Notifications))
	for i, n := range snap.Notifications {
		resp[i] = toNotificationResponse(n)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a notification. Id, timestamp and the read flag are
// synthesized by the container.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and message are required"})
		return
	}
	if !isValidNotificationCategory(req.Category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category"})
		return
	}
	if !isValidPriority(req.Priority) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid priority"})
		return
	}

	created, err := h.container.AddNotification(r.Context(), state.NotificationInput{
		Category:       req.Category,
		Title:          req.Title,
		Message:        req.Message,
		Priority:       req.Priority,
		ActionRequired: req.ActionRequired,
	})
	if err != nil {
		log.Printf("ERROR: create notification: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toNotificationResponse(created))
}

// UnreadCount returns the number of unread notifications.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: unread count: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	count := 0
	for _, n := range snap.Notifications {
		if !n.Read {
			count++
		}
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkRead sets the read flag of one notification. Idempotent.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid notification ID"})
		return
	}

	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: mark notification read: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	found := false
	for _, n := range snap.Notifications {
		if n.ID == id {
			found = true
			break
		}
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "notification not found"})
		return
	}

	if err := h.container.MarkNotificationRead(r.Context(), id); err != nil {
		log.Printf("ERROR: mark notification read: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

func isValidNotificationCategory(c string) bool {
	switch c {
	case enum.NotificationSystem, enum.NotificationOrder, enum.NotificationStaff,
		enum.NotificationFinance, enum.NotificationAlert:
		return true
	}
	return false
}

func isValidPriority(p string) bool {
	switch p {
	case enum.PriorityLow, enum.PriorityMedium, enum.PriorityHigh:
		return true
	}
	return false
}
