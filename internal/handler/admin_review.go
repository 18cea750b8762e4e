package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/repository"
)

// ListReviewsAdmin handles GET /v1/admin/reviews (unapproved included).
func (h *AdminHandler) ListReviewsAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Reviews.ListAll(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load reviews")
	}
	return ok(c, http.StatusOK, "reviews", items)
}

// ModerateReview handles PUT /v1/admin/reviews/:id with approved/featured
// flags.  Featuring implies approval.
func (h *AdminHandler) ModerateReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid review id")
	}
	var body struct {
		Approved bool `json:"approved"`
		Featured bool `json:"featured"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if body.Featured {
		body.Approved = true
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Reviews.Moderate(ctx, id, body.Approved, body.Featured); err {
	case nil:
	case repository.ErrReviewNotFound:
		return fail(c, http.StatusNotFound, "review not found")
	default:
		return fail(c, http.StatusInternalServerError, "moderation failed")
	}

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load review")
	}
	return ok(c, http.StatusOK, "review moderated", rv)
}

// DeleteReviewAdmin handles DELETE /v1/admin/reviews/:id.
func (h *AdminHandler) DeleteReviewAdmin(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid review id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// userID 0 skips the ownership check.
	switch err := h.Reviews.Delete(ctx, id, 0); err {
	case nil:
		return ok(c, http.StatusOK, "review deleted", nil)
	case repository.ErrReviewNotFound:
		return fail(c, http.StatusNotFound, "review not found")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}
