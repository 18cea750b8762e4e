package handler

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/model"
	"github.com/mandaladignite/enlivesalon/internal/repository"
)

// allowed gallery upload extensions, lowercased.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

const maxUploadBytes = 5 << 20 // 5 MiB

// UploadGalleryItem handles POST /v1/admin/gallery as multipart form data
// with an "image" file plus title/category/sort_order fields.  The file is
// stored under the configured upload directory with a random name; only the
// URL path lands in the database.
func (h *AdminHandler) UploadGalleryItem(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return fail(c, http.StatusBadRequest, "title is required")
	}
	category := strings.TrimSpace(c.FormValue("category"))
	sortOrder := 0
	if v := c.FormValue("sort_order"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			sortOrder = n
		}
	}

	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "image file is required")
	}
	if file.Size > maxUploadBytes {
		return fail(c, http.StatusRequestEntityTooLarge, "image too large")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return fail(c, http.StatusBadRequest, "unsupported image type")
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not read upload")
	}
	defer src.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return fail(c, http.StatusInternalServerError, "could not store upload")
	}
	name := uuid.New().String() + ext
	dstPath := filepath.Join(h.Cfg.UploadDir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not store upload")
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return fail(c, http.StatusInternalServerError, "could not store upload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := &model.GalleryItem{
		Title:     title,
		Category:  category,
		ImageURL:  "/uploads/" + name,
		SortOrder: sortOrder,
		IsActive:  true,
	}
	if err := h.Gallery.Create(ctx, g); err != nil {
		_ = os.Remove(dstPath)
		return fail(c, http.StatusInternalServerError, "could not save gallery item")
	}
	return ok(c, http.StatusCreated, "gallery item uploaded", g)
}

// ListGalleryAdmin handles GET /v1/admin/gallery (unpublished included).
func (h *AdminHandler) ListGalleryAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Gallery.List(ctx, c.QueryParam("category"), false)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load gallery")
	}
	return ok(c, http.StatusOK, "gallery", items)
}

// UpdateGalleryItem handles PUT /v1/admin/gallery/:id for the metadata
// fields; the image itself is immutable once uploaded.
func (h *AdminHandler) UpdateGalleryItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid gallery item id")
	}
	var body struct {
		Title     string `json:"title"`
		Category  string `json:"category"`
		SortOrder int    `json:"sort_order"`
		IsActive  bool   `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(body.Title) == "" {
		return fail(c, http.StatusBadRequest, "title is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Gallery.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGalleryItemNotFound {
			return fail(c, http.StatusNotFound, "gallery item not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load gallery item")
	}
	g.Title = strings.TrimSpace(body.Title)
	g.Category = strings.TrimSpace(body.Category)
	g.SortOrder = body.SortOrder
	g.IsActive = body.IsActive

	if err := h.Gallery.Update(ctx, g); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return ok(c, http.StatusOK, "gallery item updated", g)
}

// DeleteGalleryItem handles DELETE /v1/admin/gallery/:id and removes the
// stored file alongside the row.
func (h *AdminHandler) DeleteGalleryItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid gallery item id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Gallery.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGalleryItemNotFound {
			return fail(c, http.StatusNotFound, "gallery item not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load gallery item")
	}
	if err := h.Gallery.Delete(ctx, id); err != nil {
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	if name := filepath.Base(g.ImageURL); name != "" && name != "." {
		_ = os.Remove(filepath.Join(h.Cfg.UploadDir, name))
	}
	return ok(c, http.StatusOK, "gallery item deleted", nil)
}
