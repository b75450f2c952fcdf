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
	"github.com/restohub-rw/api/internal/service"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
)

// OrderContainer defines the state-container methods needed by order
// handlers. Satisfied by *state.Container.
type OrderContainer interface {
	Snapshot(ctx context.Context) (state.Snapshot, error)
	AdvanceOrderStatus(ctx context.Context, id uuid.UUID, to string) (domain.Order, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	container OrderContainer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(container OrderContainer) *OrderHandler {
	return &OrderHandler{container: container}
}

// RegisterRoutes registers order endpoints. Expected to be mounted inside a
// business-scoped subrouter: /businesses/{bid}/orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type orderItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unit_price"`
	LineTotal string    `json:"line_total"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	BusinessID    uuid.UUID           `json:"business_id"`
	OrderNumber   string              `json:"order_number"`
	CustomerName  string              `json:"customer_name"`
	TableNumber   string              `json:"table_number,omitempty"`
	Items         []orderItemResponse `json:"items"`
	Total         string              `json:"total"`
	Status        string              `json:"status"`
	Priority      string              `json:"priority"`
	Fulfillment   string              `json:"fulfillment"`
	PaymentStatus string              `json:"payment_status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			LineTotal: it.LineTotal.StringFixed(2),
		}
	}
	return orderResponse{
		ID:            o.ID,
		BusinessID:    o.BusinessID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		TableNumber:   o.TableNumber,
		Items:         items,
		Total:         o.Total.StringFixed(2),
		Status:        o.Status,
		Priority:      o.Priority,
		Fulfillment:   o.Fulfillment,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// --- Handlers ---

// List returns the orders of the given business, optionally filtered by the
// status query param, most recent first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid business ID"})
		return
	}

	if s := r.URL.Query().Get("status"); s != "" && !service.IsValidOrderStatus(s) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	var orders []domain.Order
	for _, o := range snap.Orders {
		if o.BusinessID == businessID {
			orders = append(orders, o)
		}
	}
	orders = service.FilterOrdersByStatus(orders, r.URL.Query().Get("status"))

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single order with its items.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	snap, err := h.container.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	for _, o := range snap.Orders {
		if o.ID == orderID {
			writeJSON(w, http.StatusOK, toOrderResponse(o))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
}

// UpdateStatus advances an order along its lifecycle.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := h.container.AdvanceOrderStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, service.ErrUnknownOrderStatus):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		case errors.Is(err, service.ErrInvalidTransition):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: update order status: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}
