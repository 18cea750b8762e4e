package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/model"
	"github.com/mandaladignite/enlivesalon/internal/repository"
)

// ListEnquiries handles GET /v1/admin/enquiries with an optional ?status=
// filter.
func (h *AdminHandler) ListEnquiries(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.EnquiryNew, model.EnquiryOpen, model.EnquiryResolved:
	default:
		return fail(c, http.StatusBadRequest, "invalid status")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Enquiries.List(ctx, status)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load enquiries")
	}
	return ok(c, http.StatusOK, "enquiries", items)
}

// UpdateEnquiryStatus handles PUT /v1/admin/enquiries/:id/status.
func (h *AdminHandler) UpdateEnquiryStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid enquiry id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	switch status {
	case model.EnquiryNew, model.EnquiryOpen, model.EnquiryResolved:
	default:
		return fail(c, http.StatusBadRequest, "invalid status")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Enquiries.UpdateStatus(ctx, id, status); err {
	case nil:
	case repository.ErrEnquiryNotFound:
		return fail(c, http.StatusNotFound, "enquiry not found")
	default:
		return fail(c, http.StatusInternalServerError, "update failed")
	}

	e, err := h.Enquiries.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load enquiry")
	}
	return ok(c, http.StatusOK, "enquiry updated", e)
}

// ExportEnquiriesCSV handles GET /v1/admin/enquiries/export.  The optional
// ?status= filter applies just like the listing.
func (h *AdminHandler) ExportEnquiriesCSV(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.EnquiryNew, model.EnquiryOpen, model.EnquiryResolved:
	default:
		return fail(c, http.StatusBadRequest, "invalid status")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	items, err := h.Enquiries.List(ctx, status)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load enquiries")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=enquiries-%s.csv", time.Now().UTC().Format("2006-01-02")))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"id", "reference", "name", "email", "phone", "subject", "status", "created_at"}); err != nil {
		return err
	}
	for _, e := range items {
		rec := []string{
			strconv.FormatUint(e.ID, 10),
			e.Reference,
			e.Name,
			e.Email,
			e.Phone,
			e.Subject,
			e.Status,
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
