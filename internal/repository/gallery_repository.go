package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mandaladignite/enlivesalon/internal/model"
)

// ErrGalleryItemNotFound is returned when a gallery item does not exist.
var ErrGalleryItemNotFound = errors.New("gallery item not found")

const galleryCols = `id, title, category, image_url, sort_order, is_active, created_at, updated_at`

// GalleryRepo encapsulates database queries for gallery items.
type GalleryRepo struct {
	db *sql.DB
}

func NewGalleryRepo(db *sql.DB) *GalleryRepo { return &GalleryRepo{db: db} }

func scanGalleryItem(row interface{ Scan(...any) error }) (*model.GalleryItem, error) {
	var g model.GalleryItem
	err := row.Scan(&g.ID, &g.Title, &g.Category, &g.ImageURL, &g.SortOrder,
		&g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a gallery item.
func (r *GalleryRepo) Create(ctx context.Context, g *model.GalleryItem) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO gallery_items (title, category, image_url, sort_order, is_active)
		 VALUES (?,?,?,?,?)`,
		g.Title, g.Category, g.ImageURL, g.SortOrder, g.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID fetches one gallery item.
func (r *GalleryRepo) GetByID(ctx context.Context, id uint64) (*model.GalleryItem, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+galleryCols+" FROM gallery_items WHERE id=?", id)
	g, err := scanGalleryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGalleryItemNotFound
	}
	return g, err
}

// List returns gallery items ordered for display.  Category "" means all;
// activeOnly hides unpublished items on the public site.
func (r *GalleryRepo) List(ctx context.Context, category string, activeOnly bool) ([]*model.GalleryItem, error) {
	q := "SELECT " + galleryCols + " FROM gallery_items WHERE 1=1"
	args := []any{}
	if activeOnly {
		q += " AND is_active = TRUE"
	}
	if category != "" {
		q += " AND category = ?"
		args = append(args, category)
	}
	q += " ORDER BY sort_order ASC, id DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.GalleryItem
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Update overwrites a gallery item's editable fields.
func (r *GalleryRepo) Update(ctx context.Context, g *model.GalleryItem) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE gallery_items SET title=?, category=?, image_url=?, sort_order=?, is_active=? WHERE id=?`,
		g.Title, g.Category, g.ImageURL, g.SortOrder, g.IsActive, g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGalleryItemNotFound
	}
	return nil
}

// Delete removes a gallery item.
func (r *GalleryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM gallery_items WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGalleryItemNotFound
	}
	return nil
}
