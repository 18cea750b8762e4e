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

type planReq struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	PricePaise         int64   `json:"price_paise"`
	DurationDays       int     `json:"duration_days"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Benefits           string  `json:"benefits"`
	IsActive           bool    `json:"is_active"`
}

func (r planReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.PricePaise <= 0 {
		return "price_paise must be positive"
	}
	if r.DurationDays <= 0 {
		return "duration_days must be positive"
	}
	if r.DiscountPercentage < 0 || r.DiscountPercentage > 100 {
		return "discount_percentage must be between 0 and 100"
	}
	return ""
}

func (r planReq) toModel(id uint64) *model.MembershipPlan {
	return &model.MembershipPlan{
		ID:                 id,
		Name:               strings.TrimSpace(r.Name),
		Description:        strings.TrimSpace(r.Description),
		PricePaise:         r.PricePaise,
		DurationDays:       r.DurationDays,
		DiscountPercentage: r.DiscountPercentage,
		Benefits:           strings.TrimSpace(r.Benefits),
		IsActive:           r.IsActive,
	}
}

// CreatePlan handles POST /v1/admin/membership-plans.
func (h *AdminHandler) CreatePlan(c echo.Context) error {
	var req planReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := req.toModel(0)
	if err := h.Memberships.CreatePlan(ctx, p); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create plan")
	}
	return ok(c, http.StatusCreated, "plan created", p)
}

// ListPlansAdmin handles GET /v1/admin/membership-plans (inactive included).
func (h *AdminHandler) ListPlansAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plans, err := h.Memberships.ListPlans(ctx, false)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load plans")
	}
	return ok(c, http.StatusOK, "membership plans", plans)
}

// UpdatePlan handles PUT /v1/admin/membership-plans/:id.
func (h *AdminHandler) UpdatePlan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid plan id")
	}
	var req planReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := req.toModel(id)
	switch err := h.Memberships.UpdatePlan(ctx, p); err {
	case nil:
		return ok(c, http.StatusOK, "plan updated", p)
	case repository.ErrPlanNotFound:
		return fail(c, http.StatusNotFound, "plan not found")
	default:
		return fail(c, http.StatusInternalServerError, "update failed")
	}
}

// DeletePlan handles DELETE /v1/admin/membership-plans/:id.  Plans already
// purchased are deactivated instead of removed.
func (h *AdminHandler) DeletePlan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid plan id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Memberships.DeletePlan(ctx, id); err {
	case nil:
		return ok(c, http.StatusOK, "plan removed", nil)
	case repository.ErrPlanNotFound:
		return fail(c, http.StatusNotFound, "plan not found")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}
