package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mandaladignite/enlivesalon/internal/catalog"
	"github.com/mandaladignite/enlivesalon/internal/model"
)

// ErrStylistNotFound is returned when a stylist cannot be found.
var ErrStylistNotFound = errors.New("stylist not found")

const stylistCols = `id, name, specialties, experience_years, rating,
	available_for_home, available_for_salon, is_active, created_at, updated_at`

// StylistRepo encapsulates database queries for stylist profiles.
type StylistRepo struct {
	db *sql.DB
}

func NewStylistRepo(db *sql.DB) *StylistRepo { return &StylistRepo{db: db} }

func scanStylist(row interface{ Scan(...any) error }) (*model.Stylist, error) {
	var s model.Stylist
	err := row.Scan(&s.ID, &s.Name, &s.Specialties, &s.ExperienceYears, &s.Rating,
		&s.AvailableForHome, &s.AvailableForSalon, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a stylist; the ID field is populated on success.
func (r *StylistRepo) Create(ctx context.Context, s *model.Stylist) error {
	const q = `INSERT INTO stylists
		(name, specialties, experience_years, rating, available_for_home, available_for_salon, is_active)
		VALUES (?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Specialties, s.ExperienceYears, s.Rating,
		s.AvailableForHome, s.AvailableForSalon, s.IsActive)
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

// GetByID fetches a stylist; ErrStylistNotFound when no row exists.
func (r *StylistRepo) GetByID(ctx context.Context, id uint64) (*model.Stylist, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+stylistCols+" FROM stylists WHERE id = ?", id)
	s, err := scanStylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStylistNotFound
	}
	return s, err
}

// ListActive returns active stylists ordered by id.
func (r *StylistRepo) ListActive(ctx context.Context) ([]*model.Stylist, error) {
	return r.list(ctx, "SELECT "+stylistCols+" FROM stylists WHERE is_active = TRUE ORDER BY id")
}

// ListAll returns every stylist for the admin back office.
func (r *StylistRepo) ListAll(ctx context.Context) ([]*model.Stylist, error) {
	return r.list(ctx, "SELECT "+stylistCols+" FROM stylists ORDER BY id")
}

func (r *StylistRepo) list(ctx context.Context, q string, args ...any) ([]*model.Stylist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Stylist
	for rows.Next() {
		s, err := scanStylist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update rewrites all mutable columns; ErrStylistNotFound when no row was
// affected.
func (r *StylistRepo) Update(ctx context.Context, s *model.Stylist) error {
	const q = `UPDATE stylists SET
		name=?, specialties=?, experience_years=?, rating=?,
		available_for_home=?, available_for_salon=?, is_active=?
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Specialties, s.ExperienceYears, s.Rating,
		s.AvailableForHome, s.AvailableForSalon, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStylistNotFound
	}
	return nil
}

// Delete removes a stylist unless live appointments reference them.
func (r *StylistRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM appointments WHERE stylist_id=? AND status IN ('PENDING','CONFIRMED')",
		id).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM stylists WHERE id=?", id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrStylistNotFound
	}
	return nil
}

// StylistToCatalog converts a stored stylist into its catalog view; the
// comma-separated specialties column becomes an ordered slice.
func StylistToCatalog(s *model.Stylist) catalog.Stylist {
	var specs []string
	for _, part := range strings.Split(s.Specialties, ",") {
		if p := strings.TrimSpace(part); p != "" {
			specs = append(specs, p)
		}
	}
	return catalog.Stylist{
		ID:                s.ID,
		Name:              s.Name,
		Specialties:       specs,
		ExperienceYears:   s.ExperienceYears,
		Rating:            s.Rating,
		AvailableForHome:  s.AvailableForHome,
		AvailableForSalon: s.AvailableForSalon,
	}
}
