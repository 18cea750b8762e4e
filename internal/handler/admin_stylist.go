package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/model"
	"github.com/mandaladignite/enlivesalon/internal/repository"
)

type stylistReq struct {
	Name              string   `json:"name"`
	Specialties       []string `json:"specialties"`
	ExperienceYears   int      `json:"experience_years"`
	Rating            float64  `json:"rating"`
	AvailableForHome  bool     `json:"available_for_home"`
	AvailableForSalon bool     `json:"available_for_salon"`
	IsActive          bool     `json:"is_active"`
}

func (r stylistReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.ExperienceYears < 0 {
		return "experience_years cannot be negative"
	}
	if r.Rating < 0 || r.Rating > 5 {
		return "rating must be between 0 and 5"
	}
	return ""
}

func (r stylistReq) toModel(id uint64) *model.Stylist {
	specs := make([]string, 0, len(r.Specialties))
	for _, s := range r.Specialties {
		if s = strings.TrimSpace(s); s != "" {
			specs = append(specs, s)
		}
	}
	return &model.Stylist{
		ID:                id,
		Name:              strings.TrimSpace(r.Name),
		Specialties:       strings.Join(specs, ","),
		ExperienceYears:   r.ExperienceYears,
		Rating:            r.Rating,
		AvailableForHome:  r.AvailableForHome,
		AvailableForSalon: r.AvailableForSalon,
		IsActive:          r.IsActive,
	}
}

// CreateStylist handles POST /v1/admin/stylists.
func (h *AdminHandler) CreateStylist(c echo.Context) error {
	var req stylistReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := req.toModel(0)
	if err := h.Stylists.Create(ctx, s); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create stylist")
	}
	return ok(c, http.StatusCreated, "stylist created", s)
}

// ListStylistsAdmin handles GET /v1/admin/stylists (inactive included).
func (h *AdminHandler) ListStylistsAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Stylists.ListAll(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load stylists")
	}
	return ok(c, http.StatusOK, "stylists", items)
}

// UpdateStylist handles PUT /v1/admin/stylists/:id.
func (h *AdminHandler) UpdateStylist(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid stylist id")
	}
	var req stylistReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := req.toModel(id)
	switch err := h.Stylists.Update(ctx, s); err {
	case nil:
		return ok(c, http.StatusOK, "stylist updated", s)
	case repository.ErrStylistNotFound:
		return fail(c, http.StatusNotFound, "stylist not found")
	default:
		return fail(c, http.StatusInternalServerError, "update failed")
	}
}

// DeleteStylist handles DELETE /v1/admin/stylists/:id.  Stylists with live
// appointments cannot be removed.
func (h *AdminHandler) DeleteStylist(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid stylist id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Stylists.Delete(ctx, id); err {
	case nil:
		return ok(c, http.StatusOK, "stylist deleted", nil)
	case repository.ErrStylistNotFound:
		return fail(c, http.StatusNotFound, "stylist not found")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "stylist has upcoming appointments")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}
