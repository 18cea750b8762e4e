// This file defines repository methods for salon services.  Services carry
// optional discount columns; ToCatalog converts a row into the pure
// catalog.Service value the derivation pipeline works on, so discount math
// lives in exactly one place.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mandaladignite/enlivesalon/internal/catalog"
	"github.com/mandaladignite/enlivesalon/internal/model"
)

// ErrServiceNotFound is returned when a service cannot be found.
var ErrServiceNotFound = errors.New("service not found")

const serviceCols = `id, name, description, category, price, duration_minutes,
	is_active, available_at_home, available_at_salon,
	discount_percentage, discount_active, discount_valid_from, discount_valid_until,
	created_at, updated_at`

// ServiceRepo encapsulates database queries for services.
type ServiceRepo struct {
	db *sql.DB
}

// NewServiceRepo constructs a ServiceRepo with the provided DB handle.
func NewServiceRepo(db *sql.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func scanService(row interface{ Scan(...any) error }) (*model.Service, error) {
	var (
		s   model.Service
		pct sql.NullFloat64
		vf  sql.NullTime
		vu  sql.NullTime
	)
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.Price, &s.DurationMinutes,
		&s.IsActive, &s.AvailableAtHome, &s.AvailableAtSalon,
		&pct, &s.DiscountActive, &vf, &vu,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if pct.Valid {
		s.DiscountPercentage = &pct.Float64
	}
	if vf.Valid {
		s.DiscountValidFrom = &vf.Time
	}
	if vu.Valid {
		s.DiscountValidUntil = &vu.Time
	}
	return &s, nil
}

// Create inserts a new service; the ID field is populated on success.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	const q = `INSERT INTO services
		(name, description, category, price, duration_minutes, is_active,
		 available_at_home, available_at_salon,
		 discount_percentage, discount_active, discount_valid_from, discount_valid_until)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Description, s.Category, s.Price, s.DurationMinutes, s.IsActive,
		s.AvailableAtHome, s.AvailableAtSalon,
		s.DiscountPercentage, s.DiscountActive, s.DiscountValidFrom, s.DiscountValidUntil)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a service; ErrServiceNotFound when no row exists.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (*model.Service, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+serviceCols+" FROM services WHERE id = ?", id)
	s, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	return s, err
}

// ListActive returns every active service ordered by id.  The public
// catalog handler applies search/filter/sort/pagination in memory over this
// list.
func (r *ServiceRepo) ListActive(ctx context.Context) ([]*model.Service, error) {
	return r.list(ctx, "SELECT "+serviceCols+" FROM services WHERE is_active = TRUE ORDER BY id")
}

// ListAll returns every service, including inactive ones, for the admin
// back office.
func (r *ServiceRepo) ListAll(ctx context.Context) ([]*model.Service, error) {
	return r.list(ctx, "SELECT "+serviceCols+" FROM services ORDER BY id")
}

func (r *ServiceRepo) list(ctx context.Context, q string, args ...any) ([]*model.Service, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update rewrites all mutable columns.  Returns ErrServiceNotFound when no
// row was affected.
func (r *ServiceRepo) Update(ctx context.Context, s *model.Service) error {
	const q = `UPDATE services SET
		name=?, description=?, category=?, price=?, duration_minutes=?, is_active=?,
		available_at_home=?, available_at_salon=?,
		discount_percentage=?, discount_active=?, discount_valid_from=?, discount_valid_until=?
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Description, s.Category, s.Price, s.DurationMinutes, s.IsActive,
		s.AvailableAtHome, s.AvailableAtSalon,
		s.DiscountPercentage, s.DiscountActive, s.DiscountValidFrom, s.DiscountValidUntil,
		s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// Delete removes a service unless live appointments reference it, in which
// case ErrConflict is returned.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM appointments WHERE service_id=? AND status IN ('PENDING','CONFIRMED')",
		id).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM services WHERE id=?", id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// ToCatalog converts a stored service into its catalog view.
func ToCatalog(s *model.Service) catalog.Service {
	out := catalog.Service{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		Category:         s.Category,
		Price:            s.Price,
		DurationMinutes:  s.DurationMinutes,
		IsActive:         s.IsActive,
		AvailableAtHome:  s.AvailableAtHome,
		AvailableAtSalon: s.AvailableAtSalon,
	}
	if s.DiscountPercentage != nil {
		out.Discount = &catalog.Discount{
			Percentage: *s.DiscountPercentage,
			IsActive:   s.DiscountActive,
			ValidFrom:  s.DiscountValidFrom,
			ValidUntil: s.DiscountValidUntil,
		}
	}
	return out
}
