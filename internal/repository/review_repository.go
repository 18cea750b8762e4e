package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mandaladignite/enlivesalon/internal/model"
)

// ErrReviewNotFound is returned when a review does not exist.
var ErrReviewNotFound = errors.New("review not found")

const reviewCols = `id, user_id, service_id, stylist_id, rating, comment, is_approved, is_featured, created_at, updated_at`

// ReviewRepo encapsulates database queries for customer reviews.
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var (
		rv        model.Review
		serviceID sql.NullInt64
		stylistID sql.NullInt64
	)
	err := row.Scan(&rv.ID, &rv.UserID, &serviceID, &stylistID, &rv.Rating, &rv.Comment,
		&rv.IsApproved, &rv.IsFeatured, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if serviceID.Valid {
		v := uint64(serviceID.Int64)
		rv.ServiceID = &v
	}
	if stylistID.Valid {
		v := uint64(stylistID.Int64)
		rv.StylistID = &v
	}
	return &rv, nil
}

// Create inserts a review.  New reviews start unapproved.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (user_id, service_id, stylist_id, rating, comment, is_approved, is_featured)
		 VALUES (?,?,?,?,?,FALSE,FALSE)`,
		rv.UserID, rv.ServiceID, rv.StylistID, rv.Rating, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// GetByID fetches one review.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+reviewCols+" FROM reviews WHERE id=?", id)
	rv, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	return rv, err
}

// ListApproved returns approved reviews for the public site, featured first.
func (r *ReviewRepo) ListApproved(ctx context.Context) ([]*model.Review, error) {
	return r.list(ctx,
		"SELECT "+reviewCols+" FROM reviews WHERE is_approved = TRUE ORDER BY is_featured DESC, created_at DESC")
}

// ListAll returns every review for the admin back office, newest first.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]*model.Review, error) {
	return r.list(ctx, "SELECT "+reviewCols+" FROM reviews ORDER BY created_at DESC")
}

// ListByUser returns a user's own reviews, newest first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Review, error) {
	return r.list(ctx,
		"SELECT "+reviewCols+" FROM reviews WHERE user_id=? ORDER BY created_at DESC", userID)
}

func (r *ReviewRepo) list(ctx context.Context, query string, args ...any) ([]*model.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Moderate sets a review's approved and featured flags.
func (r *ReviewRepo) Moderate(ctx context.Context, id uint64, approved, featured bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET is_approved=?, is_featured=? WHERE id=?", approved, featured, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// Delete removes a review.  ErrForbidden when userID is non-zero and the
// review belongs to someone else; admins pass zero to skip the check.
func (r *ReviewRepo) Delete(ctx context.Context, id, userID uint64) error {
	if userID != 0 {
		rv, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rv.UserID != userID {
			return ErrForbidden
		}
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
