package model

import "time"

// GalleryItem is one photo in the salon's public gallery.  The image itself
// lives at ImageURL; uploads arrive as multipart form data and are stored by
// the gallery handler.
type GalleryItem struct {
	ID        uint64    // gallery_items.id
	Title     string    // gallery_items.title
	Category  string    // gallery_items.category
	ImageURL  string    // gallery_items.image_url
	SortOrder int       // gallery_items.sort_order
	IsActive  bool      // gallery_items.is_active
	CreatedAt time.Time // gallery_items.created_at
	UpdatedAt time.Time // gallery_items.updated_at
}
