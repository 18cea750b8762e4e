package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/model"
	"github.com/mandaladignite/enlivesalon/internal/queue"
	"github.com/mandaladignite/enlivesalon/internal/repository"
	queue_publisher "github.com/mandaladignite/enlivesalon/internal/service"
)

// EnquiryHandler serves the public contact form.  Submissions get a short
// reference the customer can quote later, and a broker event so staff can
// be notified off the request path.
type EnquiryHandler struct {
	Enquiries *repository.EnquiryRepo
}

func NewEnquiryHandler(e *repository.EnquiryRepo) *EnquiryHandler {
	if e == nil {
		panic("nil repository passed to NewEnquiryHandler")
	}
	return &EnquiryHandler{Enquiries: e}
}

// newEnquiryReference builds a short public reference like ENQ-1A2B3C4D.
func newEnquiryReference() string {
	id := uuid.New().String()
	return "ENQ-" + strings.ToUpper(id[:8])
}

// Create handles POST /v1/enquiries.
func (h *EnquiryHandler) Create(c echo.Context) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	body.Message = strings.TrimSpace(body.Message)
	if body.Name == "" || body.Email == "" || body.Message == "" {
		return fail(c, http.StatusBadRequest, "name, email and message are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := &model.Enquiry{
		Reference: newEnquiryReference(),
		Name:      body.Name,
		Email:     body.Email,
		Phone:     strings.TrimSpace(body.Phone),
		Subject:   strings.TrimSpace(body.Subject),
		Message:   body.Message,
	}
	if err := h.Enquiries.Create(ctx, e); err != nil {
		return fail(c, http.StatusInternalServerError, "could not save enquiry")
	}

	ev := queue.EnquiryReceivedEvent{
		EnquiryID:  e.ID,
		Reference:  e.Reference,
		Name:       e.Name,
		Email:      e.Email,
		Subject:    e.Subject,
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishEnquiryReceived(pubCtx, ev)
	}()

	return ok(c, http.StatusCreated, "enquiry received", echo.Map{
		"reference": e.Reference,
	})
}

// GetByReference handles GET /v1/enquiries/:reference so a customer can
// check the status of a submitted enquiry.
func (h *EnquiryHandler) GetByReference(c echo.Context) error {
	ref := strings.TrimSpace(c.Param("reference"))
	if ref == "" {
		return fail(c, http.StatusBadRequest, "invalid reference")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Enquiries.GetByReference(ctx, ref)
	if err != nil {
		if err == repository.ErrEnquiryNotFound {
			return fail(c, http.StatusNotFound, "enquiry not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load enquiry")
	}
	return ok(c, http.StatusOK, "enquiry", echo.Map{
		"reference": e.Reference,
		"subject":   e.Subject,
		"status":    e.Status,
		"created":   e.CreatedAt,
	})
}
