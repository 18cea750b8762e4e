package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mandaladignite/enlivesalon/internal/model"
)

// ErrEnquiryNotFound is returned when an enquiry does not exist.
var ErrEnquiryNotFound = errors.New("enquiry not found")

const enquiryCols = `id, reference, name, email, phone, subject, message, status, created_at, updated_at`

// EnquiryRepo encapsulates database queries for contact-form enquiries.
type EnquiryRepo struct {
	db *sql.DB
}

func NewEnquiryRepo(db *sql.DB) *EnquiryRepo { return &EnquiryRepo{db: db} }

func scanEnquiry(row interface{ Scan(...any) error }) (*model.Enquiry, error) {
	var e model.Enquiry
	err := row.Scan(&e.ID, &e.Reference, &e.Name, &e.Email, &e.Phone, &e.Subject,
		&e.Message, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts an enquiry in the NEW state.
func (r *EnquiryRepo) Create(ctx context.Context, e *model.Enquiry) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO enquiries (reference, name, email, phone, subject, message, status)
		 VALUES (?,?,?,?,?,?,?)`,
		e.Reference, e.Name, e.Email, e.Phone, e.Subject, e.Message, model.EnquiryNew)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	e.Status = model.EnquiryNew
	return nil
}

// GetByID fetches one enquiry.
func (r *EnquiryRepo) GetByID(ctx context.Context, id uint64) (*model.Enquiry, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+enquiryCols+" FROM enquiries WHERE id=?", id)
	e, err := scanEnquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnquiryNotFound
	}
	return e, err
}

// GetByReference fetches an enquiry by its public reference.
func (r *EnquiryRepo) GetByReference(ctx context.Context, ref string) (*model.Enquiry, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+enquiryCols+" FROM enquiries WHERE reference=?", ref)
	e, err := scanEnquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnquiryNotFound
	}
	return e, err
}

// List returns enquiries, optionally filtered by status, newest first.
func (r *EnquiryRepo) List(ctx context.Context, status string) ([]*model.Enquiry, error) {
	q := "SELECT " + enquiryCols + " FROM enquiries"
	args := []any{}
	if status != "" {
		q += " WHERE status = ?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateStatus moves an enquiry to a new state.
func (r *EnquiryRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE enquiries SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEnquiryNotFound
	}
	return nil
}
