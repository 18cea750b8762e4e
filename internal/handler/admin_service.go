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

// serviceReq is the admin create/update payload for a service.  Discount
// fields move as one group; leaving discount_percentage null removes the
// discount entirely.
type serviceReq struct {
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	Price              float64    `json:"price"`
	DurationMinutes    int        `json:"duration_minutes"`
	IsActive           bool       `json:"is_active"`
	AvailableAtHome    bool       `json:"available_at_home"`
	AvailableAtSalon   bool       `json:"available_at_salon"`
	DiscountPercentage *float64   `json:"discount_percentage"`
	DiscountActive     bool       `json:"discount_active"`
	DiscountValidFrom  *time.Time `json:"discount_valid_from"`
	DiscountValidUntil *time.Time `json:"discount_valid_until"`
}

func (r serviceReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.Price < 0 {
		return "price cannot be negative"
	}
	if r.DurationMinutes <= 0 {
		return "duration_minutes must be positive"
	}
	if r.DiscountPercentage != nil && (*r.DiscountPercentage < 0 || *r.DiscountPercentage > 100) {
		return "discount_percentage must be between 0 and 100"
	}
	if !r.AvailableAtHome && !r.AvailableAtSalon {
		return "service must be available at home or at the salon"
	}
	return ""
}

func (r serviceReq) toModel(id uint64) *model.Service {
	return &model.Service{
		ID:                 id,
		Name:               strings.TrimSpace(r.Name),
		Description:        strings.TrimSpace(r.Description),
		Category:           strings.ToLower(strings.TrimSpace(r.Category)),
		Price:              r.Price,
		DurationMinutes:    r.DurationMinutes,
		IsActive:           r.IsActive,
		AvailableAtHome:    r.AvailableAtHome,
		AvailableAtSalon:   r.AvailableAtSalon,
		DiscountPercentage: r.DiscountPercentage,
		DiscountActive:     r.DiscountActive,
		DiscountValidFrom:  r.DiscountValidFrom,
		DiscountValidUntil: r.DiscountValidUntil,
	}
}

// CreateService handles POST /v1/admin/services.
func (h *AdminHandler) CreateService(c echo.Context) error {
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := req.toModel(0)
	if err := h.Services.Create(ctx, s); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create service")
	}
	return ok(c, http.StatusCreated, "service created", s)
}

// ListServicesAdmin handles GET /v1/admin/services (inactive included).
func (h *AdminHandler) ListServicesAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Services.ListAll(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load services")
	}
	return ok(c, http.StatusOK, "services", items)
}

// UpdateService handles PUT /v1/admin/services/:id.
func (h *AdminHandler) UpdateService(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid service id")
	}
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := req.toModel(id)
	switch err := h.Services.Update(ctx, s); err {
	case nil:
		return ok(c, http.StatusOK, "service updated", s)
	case repository.ErrServiceNotFound:
		return fail(c, http.StatusNotFound, "service not found")
	default:
		return fail(c, http.StatusInternalServerError, "update failed")
	}
}

// DeleteService handles DELETE /v1/admin/services/:id.  Services with live
// appointments cannot be removed.
func (h *AdminHandler) DeleteService(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid service id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Services.Delete(ctx, id); err {
	case nil:
		return ok(c, http.StatusOK, "service deleted", nil)
	case repository.ErrServiceNotFound:
		return fail(c, http.StatusNotFound, "service not found")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "service has upcoming appointments")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}
