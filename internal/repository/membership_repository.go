package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mandaladignite/enlivesalon/internal/model"
)

var (
	// ErrPlanNotFound is returned when a membership plan does not exist.
	ErrPlanNotFound = errors.New("membership plan not found")
	// ErrMembershipNotFound is returned when a membership does not exist.
	ErrMembershipNotFound = errors.New("membership not found")
)

const planCols = `id, name, description, price_paise, duration_days, discount_percentage, benefits, is_active, created_at, updated_at`

const membershipCols = `id, user_id, plan_id, status, order_id, payment_id, receipt, starts_at, expires_at, created_at, updated_at`

// MembershipRepo encapsulates database queries for membership plans and
// purchased memberships.
type MembershipRepo struct {
	db *sql.DB
}

func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{db: db} }

func scanPlan(row interface{ Scan(...any) error }) (*model.MembershipPlan, error) {
	var p model.MembershipPlan
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PricePaise, &p.DurationDays,
		&p.DiscountPercentage, &p.Benefits, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanMembership(row interface{ Scan(...any) error }) (*model.Membership, error) {
	var m model.Membership
	err := row.Scan(&m.ID, &m.UserID, &m.PlanID, &m.Status, &m.OrderID, &m.PaymentID,
		&m.Receipt, &m.StartsAt, &m.ExpiresAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreatePlan inserts a membership plan.
func (r *MembershipRepo) CreatePlan(ctx context.Context, p *model.MembershipPlan) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO membership_plans (name, description, price_paise, duration_days, discount_percentage, benefits, is_active)
		 VALUES (?,?,?,?,?,?,?)`,
		p.Name, p.Description, p.PricePaise, p.DurationDays, p.DiscountPercentage, p.Benefits, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetPlan fetches one plan by id.
func (r *MembershipRepo) GetPlan(ctx context.Context, id uint64) (*model.MembershipPlan, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+planCols+" FROM membership_plans WHERE id=?", id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	return p, err
}

// ListPlans returns plans, optionally only active ones.
func (r *MembershipRepo) ListPlans(ctx context.Context, activeOnly bool) ([]*model.MembershipPlan, error) {
	q := "SELECT " + planCols + " FROM membership_plans"
	if activeOnly {
		q += " WHERE is_active = TRUE"
	}
	q += " ORDER BY price_paise ASC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.MembershipPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdatePlan overwrites a plan's editable fields.
func (r *MembershipRepo) UpdatePlan(ctx context.Context, p *model.MembershipPlan) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE membership_plans
		 SET name=?, description=?, price_paise=?, duration_days=?, discount_percentage=?, benefits=?, is_active=?
		 WHERE id=?`,
		p.Name, p.Description, p.PricePaise, p.DurationDays, p.DiscountPercentage, p.Benefits, p.IsActive, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// DeletePlan removes a plan. Plans referenced by memberships are only
// deactivated to keep purchase history intact.
func (r *MembershipRepo) DeletePlan(ctx context.Context, id uint64) error {
	var refs int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM memberships WHERE plan_id=?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		res, err := r.db.ExecContext(ctx, "UPDATE membership_plans SET is_active=FALSE WHERE id=?", id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrPlanNotFound
		}
		return nil
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM membership_plans WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// CreatePending records a membership awaiting payment verification.
func (r *MembershipRepo) CreatePending(ctx context.Context, m *model.Membership) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO memberships (user_id, plan_id, status, order_id, receipt)
		 VALUES (?,?,?,?,?)`,
		m.UserID, m.PlanID, model.MembershipPending, m.OrderID, m.Receipt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByOrderID fetches the membership tied to a payment gateway order.
func (r *MembershipRepo) GetByOrderID(ctx context.Context, orderID string) (*model.Membership, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+membershipCols+" FROM memberships WHERE order_id=?", orderID)
	m, err := scanMembership(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMembershipNotFound
	}
	return m, err
}

// Activate flips a pending membership to ACTIVE and stamps its validity
// window from the plan's duration. Activating anything not PENDING is a
// conflict so a replayed verification cannot extend the window.
func (r *MembershipRepo) Activate(ctx context.Context, id uint64, paymentID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var status string
	var planID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT status, plan_id FROM memberships WHERE id=? FOR UPDATE", id).Scan(&status, &planID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMembershipNotFound
	}
	if err != nil {
		return err
	}
	if status != model.MembershipPending {
		return ErrConflict
	}

	var days int
	if err := tx.QueryRowContext(ctx,
		"SELECT duration_days FROM membership_plans WHERE id=?", planID).Scan(&days); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE memberships
		 SET status=?, payment_id=?, starts_at=NOW(), expires_at=DATE_ADD(NOW(), INTERVAL ? DAY)
		 WHERE id=?`,
		model.MembershipActive, paymentID, days, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByUser returns a user's memberships, newest first.
func (r *MembershipRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+membershipCols+" FROM memberships WHERE user_id=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ActiveForUser reports whether the user currently holds an active,
// unexpired membership and returns its plan discount.
func (r *MembershipRepo) ActiveForUser(ctx context.Context, userID uint64) (*model.Membership, float64, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM memberships
		 WHERE user_id=? AND status=? AND expires_at > NOW()
		 ORDER BY expires_at DESC LIMIT 1`,
		userID, model.MembershipActive)
	m, err := scanMembership(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var discount float64
	if err := r.db.QueryRowContext(ctx,
		"SELECT discount_percentage FROM membership_plans WHERE id=?", m.PlanID).Scan(&discount); err != nil {
		return nil, 0, err
	}
	return m, discount, nil
}
