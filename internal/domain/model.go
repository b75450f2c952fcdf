package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a platform account. One of the six dashboard personas.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	FullName       string
	Phone          string
	Role           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BusinessUnit is a single restaurant, bar or cafe belonging to an owner.
type BusinessUnit struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Location   string
	Category   string
	Status     string
	Revenue    decimal.Decimal
	StaffCount int
	Rating     decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FinancialRecord is a per-month snapshot for one business unit. Read-only;
// derived figures (growth, margin) are computed from it, never written back.
type FinancialRecord struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	Period        string // YYYY-MM
	Revenue       decimal.Decimal
	Expenses      decimal.Decimal
	Profit        decimal.Decimal
	OrderCount    int
	CustomerCount int
}

// Performance holds a staff member's running metrics.
type Performance struct {
	OrdersCompleted int
	AverageRating   decimal.Decimal
	TotalHours      int
}

// StaffMember is an employee of a business unit.
type StaffMember struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	FullName    string
	Role        string
	Email       string
	Phone       string
	Status      string
	Salary      decimal.Decimal
	Performance Performance
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuItem is a sellable item on a business unit's menu.
type MenuItem struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Category   string
	Price      decimal.Decimal
	Available  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Order is a customer order in one business unit.
type Order struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	OrderNumber   string
	CustomerName  string
	TableNumber   string
	Items         []OrderItem
	Total         decimal.Decimal
	Status        string
	Priority      string
	Fulfillment   string
	PaymentStatus string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Notification is a dashboard notification. The only entity consumers can
// both create and mark read; the list is kept most-recent-first.
type Notification struct {
	ID             uuid.UUID
	Category       string
	Title          string
	Message        string
	Priority       string
	Read           bool
	ActionRequired bool
	CreatedAt      time.Time
}

// Subscription is an owner's platform subscription.
type Subscription struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Plan         string
	Status       string
	MonthlyPrice decimal.Decimal
	RenewsAt     time.Time
}

// ComponentStatus is one row of the admin infrastructure-monitoring view.
type ComponentStatus struct {
	Name      string
	Status    string
	LatencyMS int
	Uptime    decimal.Decimal // percent
}
