package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, businessID uuid.UUID) *Client {
	return &Client{
		hub:        hub,
		businessID: businessID,
		send:       make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	businessID := uuid.New()
	client := mockClient(hub, businessID)

	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms[businessID] == nil {
		t.Fatal("business room not created")
	}
	if !hub.rooms[businessID][client] {
		t.Fatal("client not registered in business room")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	businessID := uuid.New()
	client := mockClient(hub, businessID)

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	// Room should be cleaned up when empty
	if hub.rooms[businessID] != nil {
		t.Fatal("business room not cleaned up after last client unregistered")
	}
}

func TestBroadcastToSingleBusiness(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	business1 := uuid.New()
	business2 := uuid.New()

	client1 := mockClient(hub, business1)
	client2 := mockClient(hub, business2)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"id":"test-123","status":"MAINTENANCE"}`)
	event := Event{
		Type:    "business.status_updated",
		Payload: testPayload,
	}
	hub.BroadcastToBusiness(business1, event)

	// Check client1 receives the message
	select {
	case msg := <-client1.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "business.status_updated" {
			t.Errorf("expected type 'business.status_updated', got '%s'", received.Type)
		}
		if string(received.Payload) != string(testPayload) {
			t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client1 did not receive message")
	}

	// Check client2 does NOT receive the message
	select {
	case <-client2.send:
		t.Fatal("client2 should not have received message for different business")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message received
	}
}

func TestBroadcastToMultipleClientsInSameBusiness(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	businessID := uuid.New()
	client1 := mockClient(hub, businessID)
	client2 := mockClient(hub, businessID)
	client3 := mockClient(hub, businessID)

	hub.register <- client1
	hub.register <- client2
	hub.register <- client3
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"status":"READY"}`)
	event := Event{
		Type:    "order.status_updated",
		Payload: testPayload,
	}
	hub.BroadcastToBusiness(businessID, event)

	clients := []*Client{client1, client2, client3}
	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "order.status_updated" {
				t.Errorf("client%d: expected type 'order.status_updated', got '%s'", i+1, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No clients registered; must not block or panic.
	hub.BroadcastToBusiness(uuid.New(), Event{
		Type:    "staff.status_updated",
		Payload: json.RawMessage(`{}`),
	})
	time.Sleep(10 * time.Millisecond)
}
