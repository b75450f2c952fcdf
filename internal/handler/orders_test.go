package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/handler"
	"github.com/restohub-rw/api/internal/seed"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
)

const pendingOrderID = "b4e6f9a0-2d1c-4e8b-a5f3-6c7d8e990003" // KCR-102

func newOrderRouter(t *testing.T) chi.Router {
	t.Helper()
	container := state.New(store.NewMemoryFromSeed(), seed.OwnerID, nil)
	h := handler.NewOrderHandler(container)
	r := chi.NewRouter()
	r.Route("/businesses/{bid}/orders", h.RegisterRoutes)
	return r
}

func orderPath(businessID uuid.UUID, suffix string) string {
	return "/businesses/" + businessID.String() + "/orders" + suffix
}

func TestListOrders(t *testing.T) {
	r := newOrderRouter(t)

	rr := doRequest(t, r, "GET", orderPath(seed.KigaliRestaurantID, ""), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	orders := decodeList(t, rr)
	if len(orders) != 2 {
		t.Fatalf("orders: got %d, want 2", len(orders))
	}
	// Most recent first.
	if orders[0]["order_number"] != "KCR-102" {
		t.Errorf("head: got %v, want KCR-102", orders[0]["order_number"])
	}
}

func TestListOrders_StatusFilter(t *testing.T) {
	r := newOrderRouter(t)

	rr := doRequest(t, r, "GET", orderPath(seed.KigaliRestaurantID, "?status="+enum.OrderStatusPending), nil)
	orders := decodeList(t, rr)
	if len(orders) != 1 || orders[0]["order_number"] != "KCR-102" {
		t.Errorf("pending orders: got %v", orders)
	}

	rr = doRequest(t, r, "GET", orderPath(seed.KigaliRestaurantID, "?status=SHIPPED"), nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown status filter: got %d, want 400", rr.Code)
	}
}

func TestGetOrder(t *testing.T) {
	r := newOrderRouter(t)

	rr := doRequest(t, r, "GET", orderPath(seed.KigaliRestaurantID, "/"+pendingOrderID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	resp := decodeResponse(t, rr)
	if resp["customer_name"] != "Thierry Mutabazi" {
		t.Errorf("customer: got %v", resp["customer_name"])
	}
	if resp["total"] != "9500.00" {
		t.Errorf("total: got %v", resp["total"])
	}
	items, _ := resp["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("items: got %d, want 1", len(items))
	}

	rr = doRequest(t, r, "GET", orderPath(seed.KigaliRestaurantID, "/"+uuid.New().String()), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rr.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	r := newOrderRouter(t)

	rr := doRequest(t, r, "PATCH", orderPath(seed.KigaliRestaurantID, "/"+pendingOrderID+"/status"),
		map[string]string{"status": enum.OrderStatusConfirmed})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["status"] != enum.OrderStatusConfirmed {
		t.Errorf("order status: got %v", resp["status"])
	}
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	r := newOrderRouter(t)

	// PENDING cannot jump straight to SERVED.
	rr := doRequest(t, r, "PATCH", orderPath(seed.KigaliRestaurantID, "/"+pendingOrderID+"/status"),
		map[string]string{"status": enum.OrderStatusServed})
	if rr.Code != http.StatusConflict {
		t.Errorf("skip transition: got %d, want 409", rr.Code)
	}
}

func TestUpdateOrderStatus_Cancel(t *testing.T) {
	r := newOrderRouter(t)

	rr := doRequest(t, r, "PATCH", orderPath(seed.KigaliRestaurantID, "/"+pendingOrderID+"/status"),
		map[string]string{"status": enum.OrderStatusCancelled})
	if rr.Code != http.StatusOK {
		t.Fatalf("cancel: got %d; body: %s", rr.Code, rr.Body.String())
	}

	// Terminal orders reject further transitions.
	rr = doRequest(t, r, "PATCH", orderPath(seed.KigaliRestaurantID, "/"+pendingOrderID+"/status"),
		map[string]string{"status": enum.OrderStatusConfirmed})
	if rr.Code != http.StatusConflict {
		t.Errorf("transition from CANCELLED: got %d, want 409", rr.Code)
	}
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	r := newOrderRouter(t)

	rr := doRequest(t, r, "PATCH", orderPath(seed.KigaliRestaurantID, "/"+pendingOrderID+"/status"),
		map[string]string{"status": "SHIPPED"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown status: got %d, want 400", rr.Code)
	}

	rr = doRequest(t, r, "PATCH", orderPath(seed.KigaliRestaurantID, "/"+uuid.New().String()+"/status"),
		map[string]string{"status": enum.OrderStatusConfirmed})
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown order: got %d, want 404", rr.Code)
	}
}
