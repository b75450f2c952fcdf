package service

import (
	"errors"
	"fmt"

	"github.com/restohub-rw/api/internal/enum"
)

// Errors returned by order lifecycle validation.
var (
	ErrUnknownOrderStatus = errors.New("unknown order status")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// nextOrderStatus maps each status to its single forward successor.
// CANCELLED is reachable from any non-terminal status instead.
var nextOrderStatus = map[string]string{
	enum.OrderStatusPending:   enum.OrderStatusConfirmed,
	enum.OrderStatusConfirmed: enum.OrderStatusPreparing,
	enum.OrderStatusPreparing: enum.OrderStatusReady,
	enum.OrderStatusReady:     enum.OrderStatusServed,
	enum.OrderStatusServed:    enum.OrderStatusPaid,
}

// IsValidOrderStatus reports whether s is a known lifecycle status.
func IsValidOrderStatus(s string) bool {
	switch s {
	case enum.OrderStatusPending, enum.OrderStatusConfirmed,
		enum.OrderStatusPreparing, enum.OrderStatusReady,
		enum.OrderStatusServed, enum.OrderStatusPaid,
		enum.OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminalOrderStatus reports whether no further transition is allowed.
func IsTerminalOrderStatus(s string) bool {
	return s == enum.OrderStatusPaid || s == enum.OrderStatusCancelled
}

// ValidateOrderTransition checks that from→to is a legal lifecycle step:
// one step forward along PENDING→CONFIRMED→PREPARING→READY→SERVED→PAID, or
// CANCELLED from any non-terminal status.
func ValidateOrderTransition(from, to string) error {
	if !IsValidOrderStatus(from) {
		return fmt.Errorf("%w: %q", ErrUnknownOrderStatus, from)
	}
	if !IsValidOrderStatus(to) {
		return fmt.Errorf("%w: %q", ErrUnknownOrderStatus, to)
	}
	if IsTerminalOrderStatus(from) {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, from)
	}
	if to == enum.OrderStatusCancelled {
		return nil
	}
	if nextOrderStatus[from] != to {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
