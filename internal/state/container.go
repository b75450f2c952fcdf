// Package state implements the dashboard state container: one owner
// workspace's view of the dataset, a memoized snapshot, the mutator API, and
// an observer contract that pushes fresh snapshots to subscribers after every
// mutation.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/restohub-rw/api/internal/domain"
	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/service"
	"github.com/restohub-rw/api/internal/store"
	"github.com/restohub-rw/api/internal/ws"
)

// Publisher pushes events to remote dashboard clients. Satisfied by *ws.Hub.
type Publisher interface {
	BroadcastToBusiness(businessID uuid.UUID, event ws.Event)
}

// Snapshot is the read-only view of container state exposed to consumers.
// It is referentially stable between mutations: two Snapshot calls with no
// mutator in between return the same value.
type Snapshot struct {
	Profile       domain.User
	Businesses    []domain.BusinessUnit
	Financials    []domain.FinancialRecord
	Staff         []domain.StaffMember
	Orders        []domain.Order
	Notifications []domain.Notification
}

// NotificationInput is a notification missing the fields the container
// synthesizes: id, timestamp and the read flag.
type NotificationInput struct {
	Category       string
	Title          string
	Message        string
	Priority       string
	ActionRequired bool
}

// BusinessInput is the caller-supplied part of a business unit.
type BusinessInput struct {
	Name     string
	Location string
	Category string
}

// StaffInput is the caller-supplied part of a staff member.
type StaffInput struct {
	BusinessID uuid.UUID
	FullName   string
	Role       string
	Email      string
	Phone      string
	Salary     string // decimal string, optional
}

// Container holds one owner workspace's mutable state behind a repository.
type Container struct {
	store   store.Store
	ownerID uuid.UUID
	pub     Publisher // may be nil

	mu        sync.Mutex
	cached    *Snapshot
	listeners map[int]func(Snapshot)
	nextID    int
}

// New creates a container over the given repository for one owner.
// pub may be nil when no push transport is wired (tests, CLI tools).
func New(st store.Store, ownerID uuid.UUID, pub Publisher) *Container {
	return &Container{
		store:     st,
		ownerID:   ownerID,
		pub:       pub,
		listeners: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state, rebuilding it from the repository only
// if a mutation happened since the last call.
func (c *Container) Snapshot(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil {
		return *c.cached, nil
	}
	snap, err := c.build(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	c.cached = &snap
	return snap, nil
}

// Subscribe registers a listener invoked with the fresh snapshot after every
// mutation. The returned function removes the listener.
func (c *Container) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// --- Mutators: status and notification operations ---

// UpdateBusinessStatus replaces the status of the matching business unit.
// Unknown ids are a silent no-op; subscribers are not notified for them.
func (c *Container) UpdateBusinessStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := c.store.UpdateBusinessStatus(ctx, id, status)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	c.publish(id, "business.status_updated", map[string]string{"id": id.String(), "status": status})
	return c.refresh(ctx)
}

// UpdateStaffStatus replaces the status of the matching staff member.
// Same contract as UpdateBusinessStatus.
func (c *Container) UpdateStaffStatus(ctx context.Context, id uuid.UUID, status string) error {
	s, err := c.store.UpdateStaffStatus(ctx, id, status)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	c.publish(s.BusinessID, "staff.status_updated", map[string]string{"id": id.String(), "status": status})
	return c.refresh(ctx)
}

// AddNotification synthesizes id and timestamp, sets read=false and prepends
// the record. The returned notification is the stored one.
func (c *Container) AddNotification(ctx context.Context, in NotificationInput) (domain.Notification, error) {
	n := domain.Notification{
		ID:             uuid.New(),
		Category:       in.Category,
		Title:          in.Title,
		Message:        in.Message,
		Priority:       in.Priority,
		Read:           false,
		ActionRequired: in.ActionRequired,
		CreatedAt:      time.Now(),
	}
	created, err := c.store.InsertNotification(ctx, n)
	if err != nil {
		return domain.Notification{}, err
	}
	c.publishWorkspace(ctx, "notification.created", map[string]string{
		"id":       created.ID.String(),
		"category": created.Category,
		"title":    created.Title,
		"priority": created.Priority,
	})
	if err := c.refresh(ctx); err != nil {
		return domain.Notification{}, err
	}
	return created, nil
}

// MarkNotificationRead sets the read flag of the matching notification.
// Idempotent; unknown ids are a silent no-op.
func (c *Container) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	_, err := c.store.MarkNotificationRead(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	c.publishWorkspace(ctx, "notification.read", map[string]string{"id": id.String()})
	return c.refresh(ctx)
}

// --- Mutators: collection CRUD ---

// CreateBusiness adds a new business unit for the workspace owner.
func (c *Container) CreateBusiness(ctx context.Context, in BusinessInput) (domain.BusinessUnit, error) {
	now := time.Now()
	b := domain.BusinessUnit{
		ID:        uuid.New(),
		OwnerID:   c.ownerID,
		Name:      in.Name,
		Location:  in.Location,
		Category:  in.Category,
		Status:    enum.BusinessStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := c.store.CreateBusiness(ctx, b)
	if err != nil {
		return domain.BusinessUnit{}, err
	}
	c.publish(created.ID, "business.created", map[string]string{"id": created.ID.String(), "name": created.Name})
	if err := c.refresh(ctx); err != nil {
		return domain.BusinessUnit{}, err
	}
	return created, nil
}

// UpdateBusiness replaces the display fields of an existing business unit.
func (c *Container) UpdateBusiness(ctx context.Context, id uuid.UUID, in BusinessInput) (domain.BusinessUnit, error) {
	cur, err := c.store.GetBusiness(ctx, id)
	if err != nil {
		return domain.BusinessUnit{}, err
	}
	cur.Name = in.Name
	cur.Location = in.Location
	cur.Category = in.Category
	updated, err := c.store.UpdateBusiness(ctx, cur)
	if err != nil {
		return domain.BusinessUnit{}, err
	}
	c.publish(updated.ID, "business.updated", map[string]string{"id": updated.ID.String(), "name": updated.Name})
	if err := c.refresh(ctx); err != nil {
		return domain.BusinessUnit{}, err
	}
	return updated, nil
}

// DeleteBusiness removes a business unit.
func (c *Container) DeleteBusiness(ctx context.Context, id uuid.UUID) error {
	if err := c.store.DeleteBusiness(ctx, id); err != nil {
		return err
	}
	c.publish(id, "business.deleted", map[string]string{"id": id.String()})
	return c.refresh(ctx)
}

// CreateStaff adds a staff member to one of the owner's business units.
func (c *Container) CreateStaff(ctx context.Context, in StaffInput) (domain.StaffMember, error) {
	s, err := staffFromInput(in)
	if err != nil {
		return domain.StaffMember{}, err
	}
	created, err := c.store.CreateStaff(ctx, s)
	if err != nil {
		return domain.StaffMember{}, err
	}
	c.publish(created.BusinessID, "staff.created", map[string]string{"id": created.ID.String(), "full_name": created.FullName})
	if err := c.refresh(ctx); err != nil {
		return domain.StaffMember{}, err
	}
	return created, nil
}

// UpdateStaff replaces the editable fields of a staff member.
func (c *Container) UpdateStaff(ctx context.Context, id uuid.UUID, in StaffInput) (domain.StaffMember, error) {
	cur, err := c.store.GetStaff(ctx, id)
	if err != nil {
		return domain.StaffMember{}, err
	}
	next, err := staffFromInput(in)
	if err != nil {
		return domain.StaffMember{}, err
	}
	cur.FullName = next.FullName
	cur.Role = next.Role
	cur.Email = next.Email
	cur.Phone = next.Phone
	cur.Salary = next.Salary
	updated, err := c.store.UpdateStaff(ctx, cur)
	if err != nil {
		return domain.StaffMember{}, err
	}
	c.publish(updated.BusinessID, "staff.updated", map[string]string{"id": updated.ID.String()})
	if err := c.refresh(ctx); err != nil {
		return domain.StaffMember{}, err
	}
	return updated, nil
}

// DeleteStaff removes a staff member.
func (c *Container) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	cur, err := c.store.GetStaff(ctx, id)
	if err != nil {
		return err
	}
	if err := c.store.DeleteStaff(ctx, id); err != nil {
		return err
	}
	c.publish(cur.BusinessID, "staff.deleted", map[string]string{"id": id.String()})
	return c.refresh(ctx)
}

// GetUserByID looks up a platform account. Read-only pass-through so the
// container can back the profile handler.
func (c *Container) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return c.store.GetUserByID(ctx, id)
}

// UpdateUserProfile saves the editable profile fields. Routed through the
// container so the memoized snapshot picks up the change and subscribers are
// notified.
func (c *Container) UpdateUserProfile(ctx context.Context, id uuid.UUID, fullName, phone string) (domain.User, error) {
	updated, err := c.store.UpdateUserProfile(ctx, id, fullName, phone)
	if err != nil {
		return domain.User{}, err
	}
	c.publishWorkspace(ctx, "profile.updated", map[string]string{"id": id.String()})
	if err := c.refresh(ctx); err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

// UpdateUserPassword stores a new password hash and refreshes the snapshot.
// No event is published for credential changes.
func (c *Container) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	if err := c.store.UpdateUserPassword(ctx, id, hashedPassword); err != nil {
		return err
	}
	return c.refresh(ctx)
}

// AdvanceOrderStatus moves an order along its lifecycle after validating the
// transition.
func (c *Container) AdvanceOrderStatus(ctx context.Context, id uuid.UUID, to string) (domain.Order, error) {
	cur, err := c.store.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if err := service.ValidateOrderTransition(cur.Status, to); err != nil {
		return domain.Order{}, err
	}
	updated, err := c.store.UpdateOrderStatus(ctx, id, to)
	if err != nil {
		return domain.Order{}, err
	}
	c.publish(updated.BusinessID, "order.status_updated", map[string]string{"id": id.String(), "status": to})
	if err := c.refresh(ctx); err != nil {
		return domain.Order{}, err
	}
	return updated, nil
}

// --- Internals ---

// build assembles a fresh snapshot from the repository. Caller holds c.mu.
func (c *Container) build(ctx context.Context) (Snapshot, error) {
	profile, err := c.store.GetUserByID(ctx, c.ownerID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load profile: %w", err)
	}
	businesses, err := c.store.ListBusinessesByOwner(ctx, c.ownerID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load businesses: %w", err)
	}

	owned := make(map[uuid.UUID]bool, len(businesses))
	for _, b := range businesses {
		owned[b.ID] = true
	}

	allStaff, err := c.store.ListStaff(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load staff: %w", err)
	}
	var staff []domain.StaffMember
	for _, s := range allStaff {
		if owned[s.BusinessID] {
			staff = append(staff, s)
		}
	}

	allOrders, err := c.store.ListOrders(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load orders: %w", err)
	}
	var orders []domain.Order
	for _, o := range allOrders {
		if owned[o.BusinessID] {
			orders = append(orders, o)
		}
	}

	allFinancials, err := c.store.ListFinancials(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load financials: %w", err)
	}
	var financials []domain.FinancialRecord
	for _, f := range allFinancials {
		if owned[f.BusinessID] {
			financials = append(financials, f)
		}
	}

	notifications, err := c.store.ListNotifications(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load notifications: %w", err)
	}

	return Snapshot{
		Profile:       profile,
		Businesses:    businesses,
		Financials:    financials,
		Staff:         staff,
		Orders:        orders,
		Notifications: notifications,
	}, nil
}

// refresh rebuilds the cached snapshot and notifies subscribers. Listeners
// run outside the lock so they can call Snapshot themselves.
func (c *Container) refresh(ctx context.Context) error {
	c.mu.Lock()
	snap, err := c.build(ctx)
	if err != nil {
		c.cached = nil
		c.mu.Unlock()
		return err
	}
	c.cached = &snap
	fns := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	return nil
}

// publishWorkspace fans a workspace-wide event out to every business room the
// owner has. Notifications and profile changes are not scoped to one unit.
func (c *Container) publishWorkspace(ctx context.Context, eventType string, payload interface{}) {
	if c.pub == nil {
		return
	}
	businesses, err := c.store.ListBusinessesByOwner(ctx, c.ownerID)
	if err != nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, b := range businesses {
		c.pub.BroadcastToBusiness(b.ID, ws.Event{Type: eventType, Payload: raw})
	}
}

// publish sends a ws event if a push transport is wired.
func (c *Container) publish(businessID uuid.UUID, eventType string, payload interface{}) {
	if c.pub == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.pub.BroadcastToBusiness(businessID, ws.Event{Type: eventType, Payload: raw})
}

func staffFromInput(in StaffInput) (domain.StaffMember, error) {
	now := time.Now()
	s := domain.StaffMember{
		ID:         uuid.New(),
		BusinessID: in.BusinessID,
		FullName:   in.FullName,
		Role:       in.Role,
		Email:      in.Email,
		Phone:      in.Phone,
		Status:     enum.StaffStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Salary != "" {
		salary, err := decimal.NewFromString(in.Salary)
		if err != nil {
			return domain.StaffMember{}, fmt.Errorf("invalid salary: %w", err)
		}
		s.Salary = salary
	}
	return s, nil
}
