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

// AccountHandler covers the signed-in customer's saved addresses and their
// own reviews.
type AccountHandler struct {
	Addresses *repository.AddressRepo
	Reviews   *repository.ReviewRepo
	Services  *repository.ServiceRepo
	Stylists  *repository.StylistRepo
}

func NewAccountHandler(ad *repository.AddressRepo, rv *repository.ReviewRepo, sv *repository.ServiceRepo, st *repository.StylistRepo) *AccountHandler {
	if ad == nil || rv == nil || sv == nil || st == nil {
		panic("nil repository passed to NewAccountHandler")
	}
	return &AccountHandler{Addresses: ad, Reviews: rv, Services: sv, Stylists: st}
}

type addressReq struct {
	Label     string `json:"label"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `json:"is_default"`
}

// CreateAddress handles POST /v1/addresses.
func (h *AccountHandler) CreateAddress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req addressReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Line1) == "" || strings.TrimSpace(req.City) == "" {
		return fail(c, http.StatusBadRequest, "line1 and city are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a := &model.Address{
		UserID:    userID,
		Label:     strings.TrimSpace(req.Label),
		Line1:     strings.TrimSpace(req.Line1),
		Line2:     strings.TrimSpace(req.Line2),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		Pincode:   strings.TrimSpace(req.Pincode),
		IsDefault: req.IsDefault,
	}
	if err := h.Addresses.Create(ctx, a); err != nil {
		return fail(c, http.StatusInternalServerError, "could not save address")
	}
	return ok(c, http.StatusCreated, "address saved", a)
}

// ListAddresses handles GET /v1/addresses.
func (h *AccountHandler) ListAddresses(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Addresses.ListByUser(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load addresses")
	}
	return ok(c, http.StatusOK, "addresses", items)
}

// UpdateAddress handles PUT /v1/addresses/:id.
func (h *AccountHandler) UpdateAddress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid address id")
	}
	var req addressReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Line1) == "" || strings.TrimSpace(req.City) == "" {
		return fail(c, http.StatusBadRequest, "line1 and city are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a := &model.Address{
		ID:        id,
		UserID:    userID,
		Label:     strings.TrimSpace(req.Label),
		Line1:     strings.TrimSpace(req.Line1),
		Line2:     strings.TrimSpace(req.Line2),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		Pincode:   strings.TrimSpace(req.Pincode),
		IsDefault: req.IsDefault,
	}
	switch err := h.Addresses.Update(ctx, a); err {
	case nil:
		return ok(c, http.StatusOK, "address updated", a)
	case repository.ErrAddressNotFound:
		return fail(c, http.StatusNotFound, "address not found")
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not your address")
	default:
		return fail(c, http.StatusInternalServerError, "update failed")
	}
}

// DeleteAddress handles DELETE /v1/addresses/:id.
func (h *AccountHandler) DeleteAddress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid address id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Addresses.Delete(ctx, id, userID); err {
	case nil:
		return ok(c, http.StatusOK, "address deleted", nil)
	case repository.ErrAddressNotFound:
		return fail(c, http.StatusNotFound, "address not found")
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not your address")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}

// CreateReview handles POST /v1/reviews.  The review targets a service, a
// stylist, or both; it stays hidden until an admin approves it.
func (h *AccountHandler) CreateReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var body struct {
		ServiceID *uint64 `json:"service_id"`
		StylistID *uint64 `json:"stylist_id"`
		Rating    int     `json:"rating"`
		Comment   string  `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if body.Rating < 1 || body.Rating > 5 {
		return fail(c, http.StatusBadRequest, "rating must be between 1 and 5")
	}
	if body.ServiceID == nil && body.StylistID == nil {
		return fail(c, http.StatusBadRequest, "service_id or stylist_id required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if body.ServiceID != nil {
		if _, err := h.Services.GetByID(ctx, *body.ServiceID); err != nil {
			return fail(c, http.StatusNotFound, "service not found")
		}
	}
	if body.StylistID != nil {
		if _, err := h.Stylists.GetByID(ctx, *body.StylistID); err != nil {
			return fail(c, http.StatusNotFound, "stylist not found")
		}
	}

	rv := &model.Review{
		UserID:    userID,
		ServiceID: body.ServiceID,
		StylistID: body.StylistID,
		Rating:    body.Rating,
		Comment:   strings.TrimSpace(body.Comment),
	}
	if err := h.Reviews.Create(ctx, rv); err != nil {
		return fail(c, http.StatusInternalServerError, "could not save review")
	}
	return ok(c, http.StatusCreated, "review submitted for moderation", rv)
}

// ListMyReviews handles GET /v1/reviews/mine.
func (h *AccountHandler) ListMyReviews(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Reviews.ListByUser(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load reviews")
	}
	return ok(c, http.StatusOK, "reviews", items)
}

// DeleteMyReview handles DELETE /v1/reviews/:id for the review's author.
func (h *AccountHandler) DeleteMyReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid review id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Reviews.Delete(ctx, id, userID); err {
	case nil:
		return ok(c, http.StatusOK, "review deleted", nil)
	case repository.ErrReviewNotFound:
		return fail(c, http.StatusNotFound, "review not found")
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not your review")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}
