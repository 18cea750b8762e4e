package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/config"
	"github.com/mandaladignite/enlivesalon/internal/model"
	"github.com/mandaladignite/enlivesalon/internal/payment"
	"github.com/mandaladignite/enlivesalon/internal/repository"
)

// MembershipHandler runs the membership purchase flow: create a gateway
// order against a plan, then verify the checkout callback and activate the
// membership.  The in-process guard throttles repeated purchase attempts
// per user before any gateway call is made.
type MembershipHandler struct {
	Cfg         config.Config
	Memberships *repository.MembershipRepo
	Gateway     *payment.Gateway
	Guard       *payment.Guard
}

func NewMembershipHandler(cfg config.Config, m *repository.MembershipRepo, g *payment.Gateway, guard *payment.Guard) *MembershipHandler {
	if m == nil || g == nil || guard == nil {
		panic("nil dependency passed to NewMembershipHandler")
	}
	return &MembershipHandler{Cfg: cfg, Memberships: m, Gateway: g, Guard: guard}
}

// newReceipt builds a unique receipt string for the gateway order.
func newReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}

// Purchase handles POST /v1/memberships/purchase.
func (h *MembershipHandler) Purchase(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if allowed, remaining := h.Guard.CheckRateLimit(userID); !allowed {
		c.Response().Header().Set("Retry-After", remaining.Round(time.Second).String())
		return fail(c, http.StatusTooManyRequests, "too many payment attempts, try again later")
	}

	var body struct {
		PlanID uint64 `json:"plan_id"`
	}
	if err := c.Bind(&body); err != nil || body.PlanID == 0 {
		return fail(c, http.StatusBadRequest, "plan_id required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	plan, err := h.Memberships.GetPlan(ctx, body.PlanID)
	if err != nil {
		if err == repository.ErrPlanNotFound {
			return fail(c, http.StatusNotFound, "membership plan not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load plan")
	}
	if !plan.IsActive {
		return fail(c, http.StatusConflict, "membership plan is no longer available")
	}

	h.Guard.RecordAttempt(userID)

	risk := payment.RiskInput{
		AmountPaise:    plan.PricePaise,
		RecentAttempts: h.Guard.Attempts(userID),
	}
	requiresVerification := payment.RequiresAdditionalVerification(risk)

	receipt := newReceipt()
	order, err := h.Gateway.CreateOrder(ctx, plan.PricePaise, "INR", receipt)
	if err != nil {
		return fail(c, http.StatusBadGateway, "payment gateway unavailable")
	}

	m := &model.Membership{
		UserID:  userID,
		PlanID:  plan.ID,
		OrderID: order.ID,
		Receipt: receipt,
	}
	if err := h.Memberships.CreatePending(ctx, m); err != nil {
		return fail(c, http.StatusInternalServerError, "could not record purchase")
	}

	return ok(c, http.StatusCreated, "order created", echo.Map{
		"order_id":              order.ID,
		"amount":                order.Amount,
		"currency":              order.Currency,
		"receipt":               receipt,
		"key_id":                h.Cfg.RazorpayKeyID,
		"requires_verification": requiresVerification,
	})
}

// VerifyPayment handles POST /v1/memberships/verify-payment with the checkout
// callback payload.  The sanity check runs first so obviously broken
// callbacks are rejected before any crypto; only a valid signature
// activates the membership.
func (h *MembershipHandler) VerifyPayment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var res payment.Result
	if err := c.Bind(&res); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	m, err := h.Memberships.GetByOrderID(ctx, res.OrderID)
	if err != nil {
		if err == repository.ErrMembershipNotFound {
			return fail(c, http.StatusNotFound, "order not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load purchase")
	}
	if m.UserID != userID {
		return fail(c, http.StatusForbidden, "not your order")
	}

	plan, err := h.Memberships.GetPlan(ctx, m.PlanID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load plan")
	}

	if err := payment.SanityCheck(res, plan.PricePaise, time.Now().UTC()); err != nil {
		return fail(c, http.StatusBadRequest, "payment verification failed", err.Error())
	}
	if !payment.VerifySignature(res.OrderID, res.PaymentID, res.Signature, h.Cfg.RazorpaySecret) {
		return fail(c, http.StatusBadRequest, "payment signature mismatch")
	}

	switch err := h.Memberships.Activate(ctx, m.ID, res.PaymentID); err {
	case nil:
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "payment already verified")
	default:
		return fail(c, http.StatusInternalServerError, "could not activate membership")
	}

	h.Guard.ClearAttempts(userID)

	activated, err := h.Memberships.GetByOrderID(ctx, res.OrderID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load membership")
	}
	return ok(c, http.StatusOK, "membership activated", activated)
}

// ListMine handles GET /v1/memberships.
func (h *MembershipHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load memberships")
	}
	return ok(c, http.StatusOK, "memberships", items)
}
