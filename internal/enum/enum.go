package enum

// ── State machines ──

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusServed    = "SERVED"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
)

const (
	PaymentStatusUnpaid   = "UNPAID"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
)

const (
	BusinessStatusActive      = "ACTIVE"
	BusinessStatusInactive    = "INACTIVE"
	BusinessStatusMaintenance = "MAINTENANCE"
)

const (
	StaffStatusActive   = "ACTIVE"
	StaffStatusInactive = "INACTIVE"
	StaffStatusOnBreak  = "ON_BREAK"
)

const (
	SubscriptionStatusActive    = "ACTIVE"
	SubscriptionStatusPastDue   = "PAST_DUE"
	SubscriptionStatusCancelled = "CANCELLED"
)

// ── Personas ──

const (
	RoleAdmin      = "ADMIN"
	RoleOwner      = "OWNER"
	RoleManager    = "MANAGER"
	RoleAccountant = "ACCOUNTANT"
	RoleWaiter     = "WAITER"
	RoleCustomer   = "CUSTOMER"
)

const (
	StaffRoleManager   = "MANAGER"
	StaffRoleChef      = "CHEF"
	StaffRoleWaiter    = "WAITER"
	StaffRoleBartender = "BARTENDER"
	StaffRoleCashier   = "CASHIER"
)

// ── Configurable labels (no state machine) ──

const (
	BusinessCategoryRestaurant = "RESTAURANT"
	BusinessCategoryBar        = "BAR"
	BusinessCategoryCafe       = "CAFE"
	BusinessCategoryLounge     = "LOUNGE"
	BusinessCategoryBakery     = "BAKERY"
)

const (
	FulfillmentDineIn   = "DINE_IN"
	FulfillmentTakeaway = "TAKEAWAY"
	FulfillmentDelivery = "DELIVERY"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

const (
	NotificationSystem  = "SYSTEM"
	NotificationOrder   = "ORDER"
	NotificationStaff   = "STAFF"
	NotificationFinance = "FINANCE"
	NotificationAlert   = "ALERT"
)

const (
	PlanStarter    = "STARTER"
	PlanGrowth     = "GROWTH"
	PlanEnterprise = "ENTERPRISE"
)

const (
	ComponentOperational = "OPERATIONAL"
	ComponentDegraded    = "DEGRADED"
	ComponentDown        = "DOWN"
)
