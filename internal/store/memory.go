package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/seed"
)

// Memory is the in-process repository. All state lives in maps keyed by id;
// a restart resets everything to the seed dataset, which is the intended
// behavior for the demo deployment.
type Memory struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]domain.User
	businesses    map[uuid.UUID]domain.BusinessUnit
	staff         map[uuid.UUID]domain.StaffMember
	menu          map[uuid.UUID]domain.MenuItem
	financials    []domain.FinancialRecord
	orders        map[uuid.UUID]domain.Order
	notifications []domain.Notification // most recent first
	subscriptions map[uuid.UUID]domain.Subscription
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:         make(map[uuid.UUID]domain.User),
		businesses:    make(map[uuid.UUID]domain.BusinessUnit),
		staff:         make(map[uuid.UUID]domain.StaffMember),
		menu:          make(map[uuid.UUID]domain.MenuItem),
		orders:        make(map[uuid.UUID]domain.Order),
		subscriptions: make(map[uuid.UUID]domain.Subscription),
	}
}

// NewMemoryFromSeed returns an in-memory store loaded with the demo dataset.
func NewMemoryFromSeed() *Memory {
	m := NewMemory()
	for _, u := range seed.Users() {
		m.users[u.ID] = u
	}
	for _, b := range seed.Businesses() {
		m.businesses[b.ID] = b
	}
	for _, s := range seed.Staff() {
		m.staff[s.ID] = s
	}
	for _, mi := range seed.Menu() {
		m.menu[mi.ID] = mi
	}
	m.financials = seed.Financials()
	for _, o := range seed.Orders() {
		m.orders[o.ID] = o
	}
	m.notifications = seed.Notifications()
	for _, s := range seed.Subscriptions() {
		m.subscriptions[s.ID] = s
	}
	return m
}

// --- Users ---

func (m *Memory) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email && u.IsActive {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (m *Memory) GetUserByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *Memory) UpdateUserProfile(_ context.Context, id uuid.UUID, fullName, phone string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	u.FullName = fullName
	u.Phone = phone
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return u, nil
}

func (m *Memory) UpdateUserPassword(_ context.Context, id uuid.UUID, hashedPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.HashedPassword = hashedPassword
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return nil
}

// --- Businesses ---

func (m *Memory) ListBusinesses(_ context.Context) ([]domain.BusinessUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.BusinessUnit, 0, len(m.businesses))
	for _, b := range m.businesses {
		out = append(out, b)
	}
	sortBusinesses(out)
	return out, nil
}

func (m *Memory) ListBusinessesByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.BusinessUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.BusinessUnit
	for _, b := range m.businesses {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	sortBusinesses(out)
	return out, nil
}

func (m *Memory) GetBusiness(_ context.Context, id uuid.UUID) (domain.BusinessUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.businesses[id]
	if !ok {
		return domain.BusinessUnit{}, ErrNotFound
	}
	return b, nil
}

func (m *Memory) CreateBusiness(_ context.Context, b domain.BusinessUnit) (domain.BusinessUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.businesses[b.ID] = b
	return b, nil
}

func (m *Memory) UpdateBusiness(_ context.Context, b domain.BusinessUnit) (domain.BusinessUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.businesses[b.ID]
	if !ok {
		return domain.BusinessUnit{}, ErrNotFound
	}
	b.CreatedAt = cur.CreatedAt
	b.UpdatedAt = time.Now()
	m.businesses[b.ID] = b
	return b, nil
}

func (m *Memory) UpdateBusinessStatus(_ context.Context, id uuid.UUID, status string) (domain.BusinessUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.businesses[id]
	if !ok {
		return domain.BusinessUnit{}, ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	m.businesses[id] = b
	return b, nil
}

func (m *Memory) DeleteBusiness(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.businesses[id]; !ok {
		return ErrNotFound
	}
	delete(m.businesses, id)
	return nil
}

// --- Staff ---

func (m *Memory) ListStaff(_ context.Context) ([]domain.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.StaffMember, 0, len(m.staff))
	for _, s := range m.staff {
		out = append(out, s)
	}
	sortStaff(out)
	return out, nil
}

func (m *Memory) ListStaffByBusiness(_ context.Context, businessID uuid.UUID) ([]domain.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.StaffMember
	for _, s := range m.staff {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	sortStaff(out)
	return out, nil
}

func (m *Memory) GetStaff(_ context.Context, id uuid.UUID) (domain.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.staff[id]
	if !ok {
		return domain.StaffMember{}, ErrNotFound
	}
	return s, nil
}

func (m *Memory) CreateStaff(_ context.Context, s domain.StaffMember) (domain.StaffMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff[s.ID] = s
	return s, nil
}

func (m *Memory) UpdateStaff(_ context.Context, s domain.StaffMember) (domain.StaffMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.staff[s.ID]
	if !ok {
		return domain.StaffMember{}, ErrNotFound
	}
	s.CreatedAt = cur.CreatedAt
	s.UpdatedAt = time.Now()
	m.staff[s.ID] = s
	return s, nil
}

func (m *Memory) UpdateStaffStatus(_ context.Context, id uuid.UUID, status string) (domain.StaffMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return domain.StaffMember{}, ErrNotFound
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	m.staff[id] = s
	return s, nil
}

func (m *Memory) DeleteStaff(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.staff[id]; !ok {
		return ErrNotFound
	}
	delete(m.staff, id)
	return nil
}

// --- Menu ---

func (m *Memory) ListMenuByBusiness(_ context.Context, businessID uuid.UUID) ([]domain.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.MenuItem
	for _, mi := range m.menu {
		if mi.BusinessID == businessID {
			out = append(out, mi)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetMenuItem(_ context.Context, id uuid.UUID) (domain.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mi, ok := m.menu[id]
	if !ok {
		return domain.MenuItem{}, ErrNotFound
	}
	return mi, nil
}

func (m *Memory) CreateMenuItem(_ context.Context, mi domain.MenuItem) (domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu[mi.ID] = mi
	return mi, nil
}

func (m *Memory) UpdateMenuItem(_ context.Context, mi domain.MenuItem) (domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.menu[mi.ID]
	if !ok {
		return domain.MenuItem{}, ErrNotFound
	}
	mi.CreatedAt = cur.CreatedAt
	mi.UpdatedAt = time.Now()
	m.menu[mi.ID] = mi
	return mi, nil
}

func (m *Memory) SetMenuItemAvailability(_ context.Context, id uuid.UUID, available bool) (domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mi, ok := m.menu[id]
	if !ok {
		return domain.MenuItem{}, ErrNotFound
	}
	mi.Available = available
	mi.UpdatedAt = time.Now()
	m.menu[id] = mi
	return mi, nil
}

func (m *Memory) DeleteMenuItem(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menu[id]; !ok {
		return ErrNotFound
	}
	delete(m.menu, id)
	return nil
}

// --- Financials ---

func (m *Memory) ListFinancials(_ context.Context) ([]domain.FinancialRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.FinancialRecord, len(m.financials))
	copy(out, m.financials)
	sortFinancials(out)
	return out, nil
}

func (m *Memory) ListFinancialsByBusiness(_ context.Context, businessID uuid.UUID) ([]domain.FinancialRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.FinancialRecord
	for _, f := range m.financials {
		if f.BusinessID == businessID {
			out = append(out, f)
		}
	}
	sortFinancials(out)
	return out, nil
}

// --- Orders ---

func (m *Memory) ListOrders(_ context.Context) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, copyOrder(o))
	}
	sortOrders(out)
	return out, nil
}

func (m *Memory) ListOrdersByBusiness(_ context.Context, businessID uuid.UUID) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.BusinessID == businessID {
			out = append(out, copyOrder(o))
		}
	}
	sortOrders(out)
	return out, nil
}

func (m *Memory) GetOrder(_ context.Context, id uuid.UUID) (domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return copyOrder(o), nil
}

func (m *Memory) UpdateOrderStatus(_ context.Context, id uuid.UUID, status string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return copyOrder(o), nil
}

// --- Notifications ---

func (m *Memory) ListNotifications(_ context.Context) ([]domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out, nil
}

func (m *Memory) InsertNotification(_ context.Context, n domain.Notification) (domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Prepend: consumers rely on most-recent-first ordering.
	m.notifications = append([]domain.Notification{n}, m.notifications...)
	return n, nil
}

func (m *Memory) MarkNotificationRead(_ context.Context, id uuid.UUID) (domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications[i].Read = true
			return m.notifications[i], nil
		}
	}
	return domain.Notification{}, ErrNotFound
}

func (m *Memory) CountUnreadNotifications(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, n := range m.notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// --- Subscriptions ---

func (m *Memory) ListSubscriptions(_ context.Context) ([]domain.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Subscription, 0, len(m.subscriptions))
	for _, s := range m.subscriptions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RenewsAt.Before(out[j].RenewsAt) })
	return out, nil
}

func (m *Memory) GetSubscriptionByOwner(_ context.Context, ownerID uuid.UUID) (domain.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.subscriptions {
		if s.OwnerID == ownerID {
			return s, nil
		}
	}
	return domain.Subscription{}, ErrNotFound
}

func (m *Memory) UpdateSubscriptionStatus(_ context.Context, id uuid.UUID, status string) (domain.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subscriptions[id]
	if !ok {
		return domain.Subscription{}, ErrNotFound
	}
	s.Status = status
	m.subscriptions[id] = s
	return s, nil
}

// --- Helpers ---

func copyOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func sortBusinesses(bs []domain.BusinessUnit) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].Name < bs[j].Name })
}

func sortStaff(ss []domain.StaffMember) {
	sort.Slice(ss, func(i, j int) bool { return ss[i].FullName < ss[j].FullName })
}

func sortFinancials(fs []domain.FinancialRecord) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].BusinessID != fs[j].BusinessID {
			return fs[i].BusinessID.String() < fs[j].BusinessID.String()
		}
		return fs[i].Period < fs[j].Period
	})
}

func sortOrders(os []domain.Order) {
	sort.Slice(os, func(i, j int) bool { return os[i].CreatedAt.After(os[j].CreatedAt) })
}
