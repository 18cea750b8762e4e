package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mandaladignite/enlivesalon/internal/model"
)

// ErrAddressNotFound is returned when an address does not exist.
var ErrAddressNotFound = errors.New("address not found")

const addressCols = `id, user_id, label, line1, line2, city, state, pincode, is_default, created_at, updated_at`

// AddressRepo encapsulates database queries for saved customer addresses.
type AddressRepo struct {
	db *sql.DB
}

func NewAddressRepo(db *sql.DB) *AddressRepo { return &AddressRepo{db: db} }

func scanAddress(row interface{ Scan(...any) error }) (*model.Address, error) {
	var a model.Address
	err := row.Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2, &a.City, &a.State,
		&a.Pincode, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an address.  Marking it default clears the user's previous
// default inside the same transaction.
func (r *AddressRepo) Create(ctx context.Context, a *model.Address) error {
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

	if a.IsDefault {
		if _, err := tx.ExecContext(ctx,
			"UPDATE addresses SET is_default=FALSE WHERE user_id=?", a.UserID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO addresses (user_id, label, line1, line2, city, state, pincode, is_default)
		 VALUES (?,?,?,?,?,?,?,?)`,
		a.UserID, a.Label, a.Line1, a.Line2, a.City, a.State, a.Pincode, a.IsDefault)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches one address owned by the user.  ErrForbidden when the
// address belongs to someone else.
func (r *AddressRepo) GetByID(ctx context.Context, id, userID uint64) (*model.Address, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+addressCols+" FROM addresses WHERE id=?", id)
	a, err := scanAddress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrForbidden
	}
	return a, nil
}

// ListByUser returns a user's addresses, default first.
func (r *AddressRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+addressCols+" FROM addresses WHERE user_id=? ORDER BY is_default DESC, id ASC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update overwrites an address owned by the user.
func (r *AddressRepo) Update(ctx context.Context, a *model.Address) error {
	if _, err := r.GetByID(ctx, a.ID, a.UserID); err != nil {
		return err
	}
	if a.IsDefault {
		if _, err := r.db.ExecContext(ctx,
			"UPDATE addresses SET is_default=FALSE WHERE user_id=? AND id<>?", a.UserID, a.ID); err != nil {
			return err
		}
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE addresses SET label=?, line1=?, line2=?, city=?, state=?, pincode=?, is_default=? WHERE id=?`,
		a.Label, a.Line1, a.Line2, a.City, a.State, a.Pincode, a.IsDefault, a.ID)
	return err
}

// Delete removes an address owned by the user.
func (r *AddressRepo) Delete(ctx context.Context, id, userID uint64) error {
	if _, err := r.GetByID(ctx, id, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM addresses WHERE id=?", id)
	return err
}
