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

// StaffContainer defines the state-container methods needed by staff
// handlers. Satisfied by *state.Container.
type StaffContainer interface {
	Snapshot(ctx context.Context) (state.Snapshot, error)
	CreateStaff(ctx context.Context, in state.StaffInput) (domain.StaffMember, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, in state.StaffInput) (domain.StaffMember, error)
	DeleteStaff(ctx context.Context, id uuid.UUID) error
	UpdateStaffStatus(ctx context.Context, id uuid.UUID, status string) error
}

// StaffHandler handles staff endpoints.
type StaffHandler struct {
	container StaffContainer
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(container StaffContainer) *StaffHandler {
	return &StaffHandler{container: container}
}

// RegisterRoutes registers staff endpoints. Expected to be mounted inside a
// business-scoped subrouter: /businesses/{bid}/staff
func (h *StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type staffRequest struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Salary   string `json:"salary"`
}

type updateStaffStatusRequest struct {
	Status string `json:"status"`
}

type staffResponse struct {
	ID          uuid.UUID    `json:"id"`
	BusinessID  uuid.UUID    `json:"business_id"`
	FullName    string       `json:"full_name"`
	Role        string       `json:"role"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone,omitempty"`
	Status      string       `json:"status"`
	Salary      string       `json:"salary"`
	Performance perfResponse `json:"performance"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type perfResponse struct {
	OrdersCompleted int    `json:"orders_completed"`
	AverageRating   string `json:"average_rating"`
	TotalHours      int    `json:"total_hours"`
}

func toStaffResponse(s domain.StaffMember) staffResponse {
	return staffResponse{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		FullName:   s.FullName,
		Role:       s.Role,
		Email:      s.Email,
		Phone:      s.Phone,
		Status:     s.Status,
		Salary:     s.Salary.StringFixed(2),
		Performance: perfResponse{
			OrdersCompleted: s.Performance.OrdersCompleted,
			AverageRating:   s.Performance.AverageRating.StringFixed(1),
			TotalHours:      s.Performance.TotalHours,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// --- Handlers ---

// List returns the staff of the given business, filtered by the q, role and
// status query params.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: list staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	var members []domain.StaffMember
	for _, s := range snap.Staff {
		if s.BusinessID == businessID {
			members = append(members, s)
		}
	}
	members = service.FilterStaff(members, service.StaffFilter{
		Search: r.URL.Query().Get("q"),
		Role:   r.URL.Query().Get("role"),
		Status: r.URL.Query().Get("status"),
	})

	resp := make([]staffResponse, len(members))
	for i, s := range members {
		resp[i] = toStaffResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a staff member to the given business.
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := validateStaffRequest(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	created, err := h.container.CreateStaff(r.Context(), state.StaffInput{
		BusinessID: businessID,
		FullName:   strings.TrimSpace(req.FullName),
		Role:       req.Role,
		Email:      req.Email,
		Phone:      req.Phone,
		Salary:     req.Salary,
	})
	if err != nil {
		log.Printf("ERROR: create staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toStaffResponse(created))
}

// Update modifies an existing staff member.
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	staffID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid staff ID"})
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := validateStaffRequest(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	updated, err := h.container.UpdateStaff(r.Context(), staffID, state.StaffInput{
		BusinessID: businessID,
		FullName:   strings.TrimSpace(req.FullName),
		Role:       req.Role,
		Email:      req.Email,
		Phone:      req.Phone,
		Salary:     req.Salary,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "staff member not found"})
			return
		}
		log.Printf("ERROR: update staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toStaffResponse(updated))
}

// Delete removes a staff member.
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid staff ID"})
		return
	}

	if err := h.container.DeleteStaff(r.Context(), staffID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "staff member not found"})
			return
		}
		log.Printf("ERROR: delete staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus replaces a staff member's status.
func (h *StaffHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid staff ID"})
		return
	}

	var req updateStaffStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !isValidStaffStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: update staff status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	found := false
	for _, s := range snap.Staff {
		if s.ID == staffID {
			found = true
			break
		}
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "staff member not found"})
		return
	}

	if err := h.container.UpdateStaffStatus(r.Context(), staffID, req.Status); err != nil {
		log.Printf("ERROR: update staff status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": staffID.String(), "status": req.Status})
}

// --- Helpers ---

func validateStaffRequest(req staffRequest) string {
	if strings.TrimSpace(req.FullName) == "" || req.Role == "" {
		return "full_name and role are required"
	}
	if !isValidStaffRole(req.Role) {
		return "invalid role"
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return "invalid email format"
	}
	return ""
}

func isValidStaffRole(role string) bool {
	switch role {
	case enum.StaffRoleManager, enum.StaffRoleChef, enum.StaffRoleWaiter,
		enum.StaffRoleBartender, enum.StaffRoleCashier:
		return true
	}
	return false
}

func isValidStaffStatus(s string) bool {
	switch s {
	case enum.StaffStatusActive, enum.StaffStatusInactive, enum.StaffStatusOnBreak:
		return true
	}
	return false
}
