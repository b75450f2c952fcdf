// Package seed holds the demo dataset the in-memory store starts from.
// Every call returns fresh copies so callers can mutate freely.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/enum"
)

// Fixed identifiers so the demo dataset is stable across restarts and the
// seeded Postgres database matches the in-memory store.
var (
	OwnerID      = uuid.MustParse("7b0c9f52-1f9e-4e07-9d3a-5a2f6f3d0001")
	AdminID      = uuid.MustParse("7b0c9f52-1f9e-4e07-9d3a-5a2f6f3d0002")
	AccountantID = uuid.MustParse("7b0c9f52-1f9e-4e07-9d3a-5a2f6f3d0003")

	KigaliRestaurantID = uuid.MustParse("3f7a1c2e-8b4d-4d6a-9c1e-0d5b7e210001")
	CoffeeHouseID      = uuid.MustParse("3f7a1c2e-8b4d-4d6a-9c1e-0d5b7e210002")
	NyarugengeBarID    = uuid.MustParse("3f7a1c2e-8b4d-4d6a-9c1e-0d5b7e210003")
)

// DefaultPassword is the password shared by every demo account.
const DefaultPassword = "password123"

var defaultPasswordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

var seedTime = time.Date(2026, time.August, 1, 8, 0, 0, 0, time.UTC)

func rwf(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Users returns the seed platform accounts.
func Users() []domain.User {
	return []domain.User{
		{
			ID:             OwnerID,
			Email:          "jean.mugisha@restohub.rw",
			HashedPassword: defaultPasswordHash,
			FullName:       "Jean Mugisha",
			Phone:          "+250 788 123 456",
			Role:           enum.RoleOwner,
			IsActive:       true,
			CreatedAt:      seedTime,
			UpdatedAt:      seedTime,
		},
		{
			ID:             AdminID,
			Email:          "admin@restohub.rw",
			HashedPassword: defaultPasswordHash,
			FullName:       "Platform Admin",
			Phone:          "+250 788 000 001",
			Role:           enum.RoleAdmin,
			IsActive:       true,
			CreatedAt:      seedTime,
			UpdatedAt:      seedTime,
		},
		{
			ID:             AccountantID,
			Email:          "claudine.uwase@restohub.rw",
			HashedPassword: defaultPasswordHash,
			FullName:       "Claudine Uwase",
			Phone:          "+250 788 222 333",
			Role:           enum.RoleAccountant,
			IsActive:       true,
			CreatedAt:      seedTime,
			UpdatedAt:      seedTime,
		},
	}
}

// Businesses returns the owner's seed business units.
func Businesses() []domain.BusinessUnit {
	return []domain.BusinessUnit{
		{
			ID:         KigaliRestaurantID,
			OwnerID:    OwnerID,
			Name:       "Kigali City Restaurant",
			Location:   "KN 4 Ave, Nyarugenge, Kigali",
			Category:   enum.BusinessCategoryRestaurant,
			Status:     enum.BusinessStatusActive,
			Revenue:    rwf(2450000),
			StaffCount: 12,
			Rating:     decimal.RequireFromString("4.5"),
			CreatedAt:  seedTime,
			UpdatedAt:  seedTime,
		},
		{
			ID:         CoffeeHouseID,
			OwnerID:    OwnerID,
			Name:       "Rwanda Coffee House",
			Location:   "KG 7 Ave, Kimihurura, Kigali",
			Category:   enum.BusinessCategoryCafe,
			Status:     enum.BusinessStatusActive,
			Revenue:    rwf(980000),
			StaffCount: 6,
			Rating:     decimal.RequireFromString("4.8"),
			CreatedAt:  seedTime,
			UpdatedAt:  seedTime,
		},
		{
			ID:         NyarugengeBarID,
			OwnerID:    OwnerID,
			Name:       "Nyarugenge Lounge Bar",
			Location:   "KN 2 St, Nyarugenge, Kigali",
			Category:   enum.BusinessCategoryBar,
			Status:     enum.BusinessStatusMaintenance,
			Revenue:    rwf(1320000),
			StaffCount: 8,
			Rating:     decimal.RequireFromString("4.1"),
			CreatedAt:  seedTime,
			UpdatedAt:  seedTime,
		},
	}
}

// Financials returns six months of per-business snapshots.
func Financials() []domain.FinancialRecord {
	type row struct {
		period   string
		revenue  int64
		expenses int64
		orders   int
		custs    int
	}
	mkRecords := func(businessID uuid.UUID, rows []row) []domain.FinancialRecord {
		out := make([]domain.FinancialRecord, len(rows))
		for i, r := range rows {
			out[i] = domain.FinancialRecord{
				ID:            uuid.NewSHA1(businessID, []byte(r.period)),
				BusinessID:    businessID,
				Period:        r.period,
				Revenue:       rwf(r.revenue),
				Expenses:      rwf(r.expenses),
				Profit:        rwf(r.revenue - r.expenses),
				OrderCount:    r.orders,
				CustomerCount: r.custs,
			}
		}
		return out
	}

	var records []domain.FinancialRecord
	records = append(records, mkRecords(KigaliRestaurantID, []row{
		{"2026-02", 1850000, 1240000, 920, 610},
		{"2026-03", 1990000, 1310000, 1004, 655},
		{"2026-04", 2120000, 1365000, 1081, 702},
		{"2026-05", 2230000, 1420000, 1126, 731},
		{"2026-06", 2310000, 1455000, 1163, 760},
		{"2026-07", 2450000, 1510000, 1228, 804},
	})...)
	records = append(records, mkRecords(CoffeeHouseID, []row{
		{"2026-02", 720000, 455000, 1540, 980},
		{"2026-03", 765000, 470000, 1612, 1011},
		{"2026-04", 810000, 492000, 1688, 1047},
		{"2026-05", 872000, 521000, 1779, 1102},
		{"2026-06", 931000, 544000, 1861, 1150},
		{"2026-07", 980000, 566000, 1932, 1189},
	})...)
	records = append(records, mkRecords(NyarugengeBarID, []row{
		{"2026-02", 1410000, 1015000, 612, 488},
		{"2026-03", 1385000, 1002000, 598, 471},
		{"2026-04", 1440000, 1030000, 621, 495},
		{"2026-05", 1395000, 1018000, 604, 480},
		{"2026-06", 1360000, 1006000, 590, 468},
		{"2026-07", 1320000, 990000, 571, 452},
	})...)
	return records
}

// Staff returns the seed staff roster.
func Staff() []domain.StaffMember {
	mk := func(id string, businessID uuid.UUID, name, role, email, phone, status string, salary int64, done int, rating string, hours int) domain.StaffMember {
		return domain.StaffMember{
			ID:         uuid.MustParse(id),
			BusinessID: businessID,
			FullName:   name,
			Role:       role,
			Email:      email,
			Phone:      phone,
			Status:     status,
			Salary:     rwf(salary),
			Performance: domain.Performance{
				OrdersCompleted: done,
				AverageRating:   decimal.RequireFromString(rating),
				TotalHours:      hours,
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		}
	}
	return []domain.StaffMember{
		mk("9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430001", KigaliRestaurantID,
			"Eric Niyonzima", enum.StaffRoleManager, "eric.n@restohub.rw",
			"+250 788 111 001", enum.StaffStatusActive, 450000, 0, "4.6", 1840),
		mk("9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430002", KigaliRestaurantID,
			"Aline Mukamana", enum.StaffRoleChef, "aline.m@restohub.rw",
			"+250 788 111 002", enum.StaffStatusActive, 380000, 2140, "4.7", 1910),
		mk("9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430003", KigaliRestaurantID,
			"Patrick Habimana", enum.StaffRoleWaiter, "patrick.h@restohub.rw",
			"+250 788 111 003", enum.StaffStatusOnBreak, 210000, 3320, "4.4", 1765),
		mk("9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430004", CoffeeHouseID,
			"Diane Ingabire", enum.StaffRoleManager, "diane.i@restohub.rw",
			"+250 788 111 004", enum.StaffStatusActive, 420000, 0, "4.8", 1800),
		mk("9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430005", CoffeeHouseID,
			"Samuel Bizimana", enum.StaffRoleCashier, "samuel.b@restohub.rw",
			"+250 788 111 005", enum.StaffStatusActive, 240000, 5120, "4.5", 1820),
		mk("9d2e4b10-6c3a-4f5e-8a7b-1e0f2d430006", NyarugengeBarID,
			"Grace Uwera", enum.StaffRoleBartender, "grace.u@restohub.rw",
			"+250 788 111 006", enum.StaffStatusInactive, 260000, 1875, "4.2", 1540),
	}
}

// Menu returns the seed menu items.
func Menu() []domain.MenuItem {
	mk := func(id string, businessID uuid.UUID, name, category string, price int64, available bool) domain.MenuItem {
		return domain.MenuItem{
			ID:         uuid.MustParse(id),
			BusinessID: businessID,
			Name:       name,
			Category:   category,
			Price:      rwf(price),
			Available:  available,
			CreatedAt:  seedTime,
			UpdatedAt:  seedTime,
		}
	}
	return []domain.MenuItem{
		mk("5c1d8e22-4a9b-4c3d-b6e7-2f0a1b560001", KigaliRestaurantID, "Brochette Platter", "Grill", 8500, true),
		mk("5c1d8e22-4a9b-4c3d-b6e7-2f0a1b560002", KigaliRestaurantID, "Isombe with Rice", "Mains", 6000, true),
		mk("5c1d8e22-4a9b-4c3d-b6e7-2f0a1b560003", KigaliRestaurantID, "Tilapia Fillet", "Mains", 9500, false),
		mk("5c1d8e22-4a9b-4c3d-b6e7-2f0a1b560004", CoffeeHouseID, "Single Origin Pour Over", "Coffee", 3500, true),
		mk("5c1d8e22-4a9b-4c3d-b6e7-2f0a1b560005", CoffeeHouseID, "Iced Latte", "Coffee", 4000, true),
		mk("5c1d8e22-4a9b-4c3d-b6e7-2f0a1b560006", NyarugengeBarID, "Virunga Draft", "Beer", 2500, true),
	}
}

// Orders returns the seed orders with line items.
func Orders() []domain.Order {
	item := func(orderID uuid.UUID, n int, name string, qty int, price int64) domain.OrderItem {
		p := rwf(price)
		return domain.OrderItem{
			ID:        uuid.NewSHA1(orderID, []byte{byte(n)}),
			OrderID:   orderID,
			Name:      name,
			Quantity:  qty,
			UnitPrice: p,
			LineTotal: p.Mul(decimal.NewFromInt(int64(qty))),
		}
	}

	o1 := uuid.MustParse("b4e6f9a0-2d1c-4e8b-a5f3-6c7d8e990001")
	o2 := uuid.MustParse("b4e6f9a0-2d1c-4e8b-a5f3-6c7d8e990002")
	o3 := uuid.MustParse("b4e6f9a0-2d1c-4e8b-a5f3-6c7d8e990003")

	orders := []domain.Order{
		{
			ID:           o1,
			BusinessID:   KigaliRestaurantID,
			OrderNumber:  "KCR-101",
			CustomerName: "Olivier Nshimiyimana",
			TableNumber:  "7",
			Items: []domain.OrderItem{
				item(o1, 1, "Brochette Platter", 2, 8500),
				item(o1, 2, "Isombe with Rice", 1, 6000),
			},
			Status:        enum.OrderStatusPreparing,
			Priority:      enum.PriorityHigh,
			Fulfillment:   enum.FulfillmentDineIn,
			PaymentStatus: enum.PaymentStatusUnpaid,
			CreatedAt:     seedTime.Add(10 * time.Minute),
			UpdatedAt:     seedTime.Add(25 * time.Minute),
		},
		{
			ID:           o2,
			BusinessID:   CoffeeHouseID,
			OrderNumber:  "RCH-214",
			CustomerName: "Sandrine Umutoni",
			Items: []domain.OrderItem{
				item(o2, 1, "Iced Latte", 2, 4000),
			},
			Status:        enum.OrderStatusPaid,
			Priority:      enum.PriorityLow,
			Fulfillment:   enum.FulfillmentTakeaway,
			PaymentStatus: enum.PaymentStatusPaid,
			CreatedAt:     seedTime.Add(35 * time.Minute),
			UpdatedAt:     seedTime.Add(50 * time.Minute),
		},
		{
			ID:           o3,
			BusinessID:   KigaliRestaurantID,
			OrderNumber:  "KCR-102",
			CustomerName: "Thierry Mutabazi",
			TableNumber:  "3",
			Items: []domain.OrderItem{
				item(o3, 1, "Tilapia Fillet", 1, 9500),
			},
			Status:        enum.OrderStatusPending,
			Priority:      enum.PriorityMedium,
			Fulfillment:   enum.FulfillmentDineIn,
			PaymentStatus: enum.PaymentStatusUnpaid,
			CreatedAt:     seedTime.Add(55 * time.Minute),
			UpdatedAt:     seedTime.Add(55 * time.Minute),
		},
	}
	for i := range orders {
		total := decimal.Zero
		for _, it := range orders[i].Items {
			total = total.Add(it.LineTotal)
		}
		orders[i].Total = total
	}
	return orders
}

// Notifications returns the three seed notifications, most recent first.
func Notifications() []domain.Notification {
	return []domain.Notification{
		{
			ID:             uuid.MustParse("e8a0b1c2-7f3d-4a6e-9b5c-4d2e1f770003"),
			Category:       enum.NotificationFinance,
			Title:          "July financials ready",
			Message:        "The July statement for all business units has been generated.",
			Priority:       enum.PriorityMedium,
			Read:           false,
			ActionRequired: false,
			CreatedAt:      seedTime.Add(2 * time.Hour),
		},
		{
			ID:             uuid.MustParse("e8a0b1c2-7f3d-4a6e-9b5c-4d2e1f770002"),
			Category:       enum.NotificationStaff,
			Title:          "Staff status change",
			Message:        "Grace Uwera was marked inactive at Nyarugenge Lounge Bar.",
			Priority:       enum.PriorityLow,
			Read:           false,
			ActionRequired: false,
			CreatedAt:      seedTime.Add(1 * time.Hour),
		},
		{
			ID:             uuid.MustParse("e8a0b1c2-7f3d-4a6e-9b5c-4d2e1f770001"),
			Category:       enum.NotificationAlert,
			Title:          "Unit under maintenance",
			Message:        "Nyarugenge Lounge Bar entered maintenance mode.",
			Priority:       enum.PriorityHigh,
			Read:           true,
			ActionRequired: true,
			CreatedAt:      seedTime.Add(30 * time.Minute),
		},
	}
}

// Subscriptions returns the seed subscriptions.
func Subscriptions() []domain.Subscription {
	return []domain.Subscription{
		{
			ID:           uuid.MustParse("c6d8e0f2-9a1b-4c3d-8e5f-7a9b0c880001"),
			OwnerID:      OwnerID,
			Plan:         enum.PlanGrowth,
			Status:       enum.SubscriptionStatusActive,
			MonthlyPrice: rwf(45000),
			RenewsAt:     seedTime.AddDate(0, 1, 0),
		},
	}
}

// Components returns the mock infrastructure-monitoring rows.
func Components() []domain.ComponentStatus {
	return []domain.ComponentStatus{
		{Name: "api", Status: enum.ComponentOperational, LatencyMS: 42, Uptime: decimal.RequireFromString("99.98")},
		{Name: "database", Status: enum.ComponentOperational, LatencyMS: 8, Uptime: decimal.RequireFromString("99.95")},
		{Name: "cache", Status: enum.ComponentDegraded, LatencyMS: 120, Uptime: decimal.RequireFromString("98.40")},
		{Name: "payments-gateway", Status: enum.ComponentOperational, LatencyMS: 310, Uptime: decimal.RequireFromString("99.90")},
	}
}
