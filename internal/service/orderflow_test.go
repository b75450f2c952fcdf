package service_test

import (
	"errors"
	"testing"

	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/service"
)

func TestValidateOrderTransition_ForwardSteps(t *testing.T) {
	steps := [][2]string{
		{enum.OrderStatusPending, enum.OrderStatusConfirmed},
		{enum.OrderStatusConfirmed, enum.OrderStatusPreparing},
		{enum.OrderStatusPreparing, enum.OrderStatusReady},
		{enum.OrderStatusReady, enum.OrderStatusServed},
		{enum.OrderStatusServed, enum.OrderStatusPaid},
	}
	for _, s := range steps {
		if err := service.ValidateOrderTransition(s[0], s[1]); err != nil {
			t.Errorf("%s to %s: unexpected error %v", s[0], s[1], err)
		}
	}
}

func TestValidateOrderTransition_RejectsSkips(t *testing.T) {
	cases := [][2]string{
		{enum.OrderStatusPending, enum.OrderStatusPreparing},
		{enum.OrderStatusPending, enum.OrderStatusPaid},
		{enum.OrderStatusConfirmed, enum.OrderStatusServed},
		{enum.OrderStatusServed, enum.OrderStatusPending}, // no going back
	}
	for _, c := range cases {
		err := service.ValidateOrderTransition(c[0], c[1])
		if !errors.Is(err, service.ErrInvalidTransition) {
			t.Errorf("%s to %s: got %v, want ErrInvalidTransition", c[0], c[1], err)
		}
	}
}

func TestValidateOrderTransition_CancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []string{
		enum.OrderStatusPending, enum.OrderStatusConfirmed,
		enum.OrderStatusPreparing, enum.OrderStatusReady, enum.OrderStatusServed,
	} {
		if err := service.ValidateOrderTransition(from, enum.OrderStatusCancelled); err != nil {
			t.Errorf("%s to CANCELLED: unexpected error %v", from, err)
		}
	}
}

func TestValidateOrderTransition_TerminalStates(t *testing.T) {
	for _, from := range []string{enum.OrderStatusPaid, enum.OrderStatusCancelled} {
		err := service.ValidateOrderTransition(from, enum.OrderStatusPending)
		if !errors.Is(err, service.ErrInvalidTransition) {
			t.Errorf("%s is terminal: got %v, want ErrInvalidTransition", from, err)
		}
	}
}

func TestValidateOrderTransition_UnknownStatus(t *testing.T) {
	if err := service.ValidateOrderTransition("SHIPPED", enum.OrderStatusPaid); !errors.Is(err, service.ErrUnknownOrderStatus) {
		t.Errorf("unknown from: got %v, want ErrUnknownOrderStatus", err)
	}
	if err := service.ValidateOrderTransition(enum.OrderStatusPending, "shipped"); !errors.Is(err, service.ErrUnknownOrderStatus) {
		t.Errorf("unknown to: got %v, want ErrUnknownOrderStatus", err)
	}
}

func TestIsTerminalOrderStatus(t *testing.T) {
	if !service.IsTerminalOrderStatus(enum.OrderStatusPaid) {
		t.Error("PAID must be terminal")
	}
	if !service.IsTerminalOrderStatus(enum.OrderStatusCancelled) {
		t.Error("CANCELLED must be terminal")
	}
	if service.IsTerminalOrderStatus(enum.OrderStatusServed) {
		t.Error("SERVED must not be terminal")
	}
}
