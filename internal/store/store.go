// Package store defines the repository contract the state container and the
// HTTP handlers are built against. Memory is the default backing; Postgres
// satisfies the same interface when a real database is configured.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the full repository surface.
type Store interface {
	UserStore
	BusinessStore
	StaffStore
	MenuStore
	FinancialStore
	OrderStore
	NotificationStore
	SubscriptionStore
}

// UserStore covers platform accounts.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, fullName, phone string) (domain.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
}

// BusinessStore covers business units.
type BusinessStore interface {
	ListBusinesses(ctx context.Context) ([]domain.BusinessUnit, error)
	ListBusinessesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.BusinessUnit, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (domain.BusinessUnit, error)
	CreateBusiness(ctx context.Context, b domain.BusinessUnit) (domain.BusinessUnit, error)
	UpdateBusiness(ctx context.Context, b domain.BusinessUnit) (domain.BusinessUnit, error)
	UpdateBusinessStatus(ctx context.Context, id uuid.UUID, status string) (domain.BusinessUnit, error)
	DeleteBusiness(ctx context.Context, id uuid.UUID) error
}

// StaffStore covers staff members.
type StaffStore interface {
	ListStaff(ctx context.Context) ([]domain.StaffMember, error)
	ListStaffByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.StaffMember, error)
	GetStaff(ctx context.Context, id uuid.UUID) (domain.StaffMember, error)
	CreateStaff(ctx context.Context, s domain.StaffMember) (domain.StaffMember, error)
	UpdateStaff(ctx context.Context, s domain.StaffMember) (domain.StaffMember, error)
	UpdateStaffStatus(ctx context.Context, id uuid.UUID, status string) (domain.StaffMember, error)
	DeleteStaff(ctx context.Context, id uuid.UUID) error
}

// MenuStore covers menu items.
type MenuStore interface {
	ListMenuByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, m domain.MenuItem) (domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, m domain.MenuItem) (domain.MenuItem, error)
	SetMenuItemAvailability(ctx context.Context, id uuid.UUID, available bool) (domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

// FinancialStore covers the read-only monthly snapshots.
type FinancialStore interface {
	ListFinancials(ctx context.Context) ([]domain.FinancialRecord, error)
	ListFinancialsByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.FinancialRecord, error)
}

// OrderStore covers orders.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (domain.Order, error)
}

// NotificationStore covers notifications. Lists are most-recent-first.
type NotificationStore interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	InsertNotification(ctx context.Context, n domain.Notification) (domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) (domain.Notification, error)
	CountUnreadNotifications(ctx context.Context) (int, error)
}

// SubscriptionStore covers owner subscriptions.
type SubscriptionStore interface {
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	GetSubscriptionByOwner(ctx context.Context, ownerID uuid.UUID) (domain.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status string) (domain.Subscription, error)
}
