package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/restohub-rw/api/internal/domain"
)

// Postgres is the database-backed repository. Numeric columns are selected
// as text and parsed into decimals, which keeps money exact end to end.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPostgres creates a Postgres store over the given connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// --- Users ---

const userColumns = `id, email, hashed_password, full_name, phone, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active`, email)
	return scanUser(row)
}

func (p *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (p *Postgres) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (p *Postgres) UpdateUserProfile(ctx context.Context, id uuid.UUID, fullName, phone string) (domain.User, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE users SET full_name = $2, phone = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns, id, fullName, phone)
	return scanUser(row)
}

func (p *Postgres) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET hashed_password = $2, updated_at = now() WHERE id = $1`, id, hashedPassword)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Businesses ---

const businessColumns = `id, owner_id, name, location, category, status, revenue::text, staff_count, rating::text, created_at, updated_at`

func scanBusiness(row pgx.Row) (domain.BusinessUnit, error) {
	var (
		b               domain.BusinessUnit
		revenue, rating string
	)
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Location, &b.Category, &b.Status,
		&revenue, &b.StaffCount, &rating, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return domain.BusinessUnit{}, mapErr(err)
	}
	if b.Revenue, err = decimal.NewFromString(revenue); err != nil {
		return domain.BusinessUnit{}, fmt.Errorf("parse revenue: %w", err)
	}
	if b.Rating, err = decimal.NewFromString(rating); err != nil {
		return domain.BusinessUnit{}, fmt.Errorf("parse rating: %w", err)
	}
	return b, nil
}

func (p *Postgres) collectBusinesses(rows pgx.Rows) ([]domain.BusinessUnit, error) {
	defer rows.Close()
	var out []domain.BusinessUnit
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (p *Postgres) ListBusinesses(ctx context.Context) ([]domain.BusinessUnit, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+businessColumns+` FROM business_units ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return p.collectBusinesses(rows)
}

func (p *Postgres) ListBusinessesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.BusinessUnit, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+businessColumns+` FROM business_units WHERE owner_id = $1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	return p.collectBusinesses(rows)
}

func (p *Postgres) GetBusiness(ctx context.Context, id uuid.UUID) (domain.BusinessUnit, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+businessColumns+` FROM business_units WHERE id = $1`, id)
	return scanBusiness(row)
}

func (p *Postgres) CreateBusiness(ctx context.Context, b domain.BusinessUnit) (domain.BusinessUnit, error) {
	row := p.pool.QueryRow(ctx,
		`INSERT INTO business_units (id, owner_id, name, location, category, status, revenue, staff_count, rating, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9::numeric, $10, $11)
		 RETURNING `+businessColumns,
		b.ID, b.OwnerID, b.Name, b.Location, b.Category, b.Status,
		b.Revenue.String(), b.StaffCount, b.Rating.String(), b.CreatedAt, b.UpdatedAt)
	return scanBusiness(row)
}

func (p *Postgres) UpdateBusiness(ctx context.Context, b domain.BusinessUnit) (domain.BusinessUnit, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE business_units SET name = $2, location = $3, category = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+businessColumns,
		b.ID, b.Name, b.Location, b.Category)
	return scanBusiness(row)
}

func (p *Postgres) UpdateBusinessStatus(ctx context.Context, id uuid.UUID, status string) (domain.BusinessUnit, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE business_units SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+businessColumns, id, status)
	return scanBusiness(row)
}

func (p *Postgres) DeleteBusiness(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM business_units WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Staff ---

const staffColumns = `id, business_id, full_name, role, email, phone, status, salary::text,
	orders_completed, average_rating::text, total_hours, created_at, updated_at`

func scanStaff(row pgx.Row) (domain.StaffMember, error) {
	var (
		s              domain.StaffMember
		salary, rating string
	)
	err := row.Scan(&s.ID, &s.BusinessID, &s.FullName, &s.Role, &s.Email, &s.Phone, &s.Status,
		&salary, &s.Performance.OrdersCompleted, &rating, &s.Performance.TotalHours,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.StaffMember{}, mapErr(err)
	}
	if s.Salary, err = decimal.NewFromString(salary); err != nil {
		return domain.StaffMember{}, fmt.Errorf("parse salary: %w", err)
	}
	if s.Performance.AverageRating, err = decimal.NewFromString(rating); err != nil {
		return domain.StaffMember{}, fmt.Errorf("parse rating: %w", err)
	}
	return s, nil
}

func (p *Postgres) collectStaff(rows pgx.Rows) ([]domain.StaffMember, error) {
	defer rows.Close()
	var out []domain.StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *Postgres) ListStaff(ctx context.Context) ([]domain.StaffMember, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+staffColumns+` FROM staff_members ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	return p.collectStaff(rows)
}

func (p *Postgres) ListStaffByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.StaffMember, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+staffColumns+` FROM staff_members WHERE business_id = $1 ORDER BY full_name`, businessID)
	if err != nil {
		return nil, err
	}
	return p.collectStaff(rows)
}

func (p *Postgres) GetStaff(ctx context.Context, id uuid.UUID) (domain.StaffMember, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff_members WHERE id = $1`, id)
	return scanStaff(row)
}

func (p *Postgres) CreateStaff(ctx context.Context, s domain.StaffMember) (domain.StaffMember, error) {
	row := p.pool.QueryRow(ctx,
		`INSERT INTO staff_members (id, business_id, full_name, role, email, phone, status, salary,
			orders_completed, average_rating, total_hours, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10::numeric, $11, $12, $13)
		 RETURNING `+staffColumns,
		s.ID, s.BusinessID, s.FullName, s.Role, s.Email, s.Phone, s.Status, s.Salary.String(),
		s.Performance.OrdersCompleted, s.Performance.AverageRating.String(), s.Performance.TotalHours,
		s.CreatedAt, s.UpdatedAt)
	return scanStaff(row)
}

func (p *Postgres) UpdateStaff(ctx context.Context, s domain.StaffMember) (domain.StaffMember, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE staff_members SET full_name = $2, role = $3, email = $4, phone = $5, salary = $6::numeric, updated_at = now()
		 WHERE id = $1
		 RETURNING `+staffColumns,
		s.ID, s.FullName, s.Role, s.Email, s.Phone, s.Salary.String())
	return scanStaff(row)
}

func (p *Postgres) UpdateStaffStatus(ctx context.Context, id uuid.UUID, status string) (domain.StaffMember, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE staff_members SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+staffColumns, id, status)
	return scanStaff(row)
}

func (p *Postgres) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Menu ---

const menuColumns = `id, business_id, name, category, price::text, available, created_at, updated_at`

func scanMenuItem(row pgx.Row) (domain.MenuItem, error) {
	var (
		m     domain.MenuItem
		price string
	)
	err := row.Scan(&m.ID, &m.BusinessID, &m.Name, &m.Category, &price, &m.Available, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.MenuItem{}, mapErr(err)
	}
	if m.Price, err = decimal.NewFromString(price); err != nil {
		return domain.MenuItem{}, fmt.Errorf("parse price: %w", err)
	}
	return m, nil
}

func (p *Postgres) ListMenuByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.MenuItem, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE business_id = $1 ORDER BY name`, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *Postgres) GetMenuItem(ctx context.Context, id uuid.UUID) (domain.MenuItem, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id)
	return scanMenuItem(row)
}

func (p *Postgres) CreateMenuItem(ctx context.Context, m domain.MenuItem) (domain.MenuItem, error) {
	row := p.pool.QueryRow(ctx,
		`INSERT INTO menu_items (id, business_id, name, category, price, available, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)
		 RETURNING `+menuColumns,
		m.ID, m.BusinessID, m.Name, m.Category, m.Price.String(), m.Available, m.CreatedAt, m.UpdatedAt)
	return scanMenuItem(row)
}

func (p *Postgres) UpdateMenuItem(ctx context.Context, m domain.MenuItem) (domain.MenuItem, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE menu_items SET name = $2, category = $3, price = $4::numeric, updated_at = now()
		 WHERE id = $1
		 RETURNING `+menuColumns,
		m.ID, m.Name, m.Category, m.Price.String())
	return scanMenuItem(row)
}

func (p *Postgres) SetMenuItemAvailability(ctx context.Context, id uuid.UUID, available bool) (domain.MenuItem, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE menu_items SET available = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+menuColumns, id, available)
	return scanMenuItem(row)
}

func (p *Postgres) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Financials ---

const financialColumns = `id, business_id, period, revenue::text, expenses::text, profit::text, order_count, customer_count`

func scanFinancial(row pgx.Row) (domain.FinancialRecord, error) {
	var (
		f                         domain.FinancialRecord
		revenue, expenses, profit string
	)
	err := row.Scan(&f.ID, &f.BusinessID, &f.Period, &revenue, &expenses, &profit, &f.OrderCount, &f.CustomerCount)
	if err != nil {
		return domain.FinancialRecord{}, mapErr(err)
	}
	if f.Revenue, err = decimal.NewFromString(revenue); err != nil {
		return domain.FinancialRecord{}, fmt.Errorf("parse revenue: %w", err)
	}
	if f.Expenses, err = decimal.NewFromString(expenses); err != nil {
		return domain.FinancialRecord{}, fmt.Errorf("parse expenses: %w", err)
	}
	if f.Profit, err = decimal.NewFromString(profit); err != nil {
		return domain.FinancialRecord{}, fmt.Errorf("parse profit: %w", err)
	}
	return f, nil
}

func (p *Postgres) collectFinancials(rows pgx.Rows) ([]domain.FinancialRecord, error) {
	defer rows.Close()
	var out []domain.FinancialRecord
	for rows.Next() {
		f, err := scanFinancial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (p *Postgres) ListFinancials(ctx context.Context) ([]domain.FinancialRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+financialColumns+` FROM financial_records ORDER BY business_id, period`)
	if err != nil {
		return nil, err
	}
	return p.collectFinancials(rows)
}

func (p *Postgres) ListFinancialsByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.FinancialRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+financialColumns+` FROM financial_records WHERE business_id = $1 ORDER BY period`, businessID)
	if err != nil {
		return nil, err
	}
	return p.collectFinancials(rows)
}

// --- Orders ---

const orderColumns = `id, business_id, order_number, customer_name, table_number, total::text,
	status, priority, fulfillment, payment_status, created_at, updated_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o     domain.Order
		total string
	)
	err := row.Scan(&o.ID, &o.BusinessID, &o.OrderNumber, &o.CustomerName, &o.TableNumber, &total,
		&o.Status, &o.Priority, &o.Fulfillment, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, mapErr(err)
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return domain.Order{}, fmt.Errorf("parse total: %w", err)
	}
	return o, nil
}

func (p *Postgres) loadOrderItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	rows, err := p.pool.Query(ctx,
		`SELECT id, order_id, name, quantity, unit_price::text, line_total::text
		 FROM order_items WHERE order_id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it                   domain.OrderItem
			unitPrice, lineTotal string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Name, &it.Quantity, &unitPrice, &lineTotal); err != nil {
			return err
		}
		if it.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return fmt.Errorf("parse unit price: %w", err)
		}
		if it.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return fmt.Errorf("parse line total: %w", err)
		}
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return rows.Err()
}

func (p *Postgres) collectOrders(ctx context.Context, rows pgx.Rows) ([]domain.Order, error) {
	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := p.loadOrderItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Postgres) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return p.collectOrders(ctx, rows)
}

func (p *Postgres) ListOrdersByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Order, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE business_id = $1 ORDER BY created_at DESC`, businessID)
	if err != nil {
		return nil, err
	}
	return p.collectOrders(ctx, rows)
}

func (p *Postgres) GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, err
	}
	orders := []domain.Order{o}
	if err := p.loadOrderItems(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

func (p *Postgres) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (domain.Order, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+orderColumns, id, status)
	o, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, err
	}
	orders := []domain.Order{o}
	if err := p.loadOrderItems(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

// --- Notifications ---

const notificationColumns = `id, category, title, message, priority, read, action_required, created_at`

func scanNotification(row pgx.Row) (domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(&n.ID, &n.Category, &n.Title, &n.Message, &n.Priority, &n.Read, &n.ActionRequired, &n.CreatedAt)
	if err != nil {
		return domain.Notification{}, mapErr(err)
	}
	return n, nil
}

func (p *Postgres) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (p *Postgres) InsertNotification(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	row := p.pool.QueryRow(ctx,
		`INSERT INTO notifications (id, category, title, message, priority, read, action_required, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+notificationColumns,
		n.ID, n.Category, n.Title, n.Message, n.Priority, n.Read, n.ActionRequired, n.CreatedAt)
	return scanNotification(row)
}

func (p *Postgres) MarkNotificationRead(ctx context.Context, id uuid.UUID) (domain.Notification, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 RETURNING `+notificationColumns, id)
	return scanNotification(row)
}

func (p *Postgres) CountUnreadNotifications(ctx context.Context) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE NOT read`).Scan(&count)
	return count, err
}

// --- Subscriptions ---

const subscriptionColumns = `id, owner_id, plan, status, monthly_price::text, renews_at`

func scanSubscription(row pgx.Row) (domain.Subscription, error) {
	var (
		s     domain.Subscription
		price string
	)
	err := row.Scan(&s.ID, &s.OwnerID, &s.Plan, &s.Status, &price, &s.RenewsAt)
	if err != nil {
		return domain.Subscription{}, mapErr(err)
	}
	if s.MonthlyPrice, err = decimal.NewFromString(price); err != nil {
		return domain.Subscription{}, fmt.Errorf("parse monthly price: %w", err)
	}
	return s, nil
}

func (p *Postgres) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY renews_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *Postgres) GetSubscriptionByOwner(ctx context.Context, ownerID uuid.UUID) (domain.Subscription, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE owner_id = $1`, ownerID)
	return scanSubscription(row)
}

func (p *Postgres) UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status string) (domain.Subscription, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE subscriptions SET status = $2 WHERE id = $1 RETURNING `+subscriptionColumns, id, status)
	return scanSubscription(row)
}
