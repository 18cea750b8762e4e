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

func adminSearchFromQuery(c echo.Context) repository.AdminSearchQuery {
	q := repository.AdminSearchQuery{
		Status:   c.QueryParam("status"),
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
		Page:     queryIntDefault(c, "page", 1),
		PageSize: queryIntDefault(c, "page_size", 20),
	}
	if v := c.QueryParam("stylist_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			q.StylistID = id
		}
	}
	return q
}

// ListAppointmentsAdmin handles GET /v1/admin/appointments with status,
// stylist and date-range filters plus pagination.
func (h *AdminHandler) ListAppointmentsAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	q := adminSearchFromQuery(c)
	rows, total, err := h.Appointments.AdminSearch(ctx, q)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load appointments")
	}
	return ok(c, http.StatusOK, "appointments", echo.Map{
		"items":       rows,
		"page":        q.Page,
		"page_size":   q.PageSize,
		"total_items": total,
	})
}

// UpdateAppointmentStatus handles PUT /v1/admin/appointments/:id/status.
func (h *AdminHandler) UpdateAppointmentStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid appointment id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	switch status {
	case model.AppointmentPending, model.AppointmentConfirmed, model.AppointmentCompleted, model.AppointmentCancelled:
	default:
		return fail(c, http.StatusBadRequest, "invalid status")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Appointments.UpdateStatus(ctx, id, status); err {
	case nil:
	case repository.ErrAppointmentNotFound:
		return fail(c, http.StatusNotFound, "appointment not found")
	default:
		return fail(c, http.StatusInternalServerError, "update failed")
	}

	a, err := h.Appointments.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load appointment")
	}
	return ok(c, http.StatusOK, "appointment updated", a)
}

// ExportAppointmentsCSV handles GET /v1/admin/appointments/export.  The
// same filters as the listing apply; pagination does not, the export is
// always the full filtered set.
func (h *AdminHandler) ExportAppointmentsCSV(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	q := adminSearchFromQuery(c)
	q.Page = 1
	q.PageSize = 1 << 20

	rows, _, err := h.Appointments.AdminSearch(ctx, q)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load appointments")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=appointments-%s.csv", time.Now().UTC().Format("2006-01-02")))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"id", "customer", "service", "stylist", "location", "date", "time_slot", "status", "price"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatUint(r.ID, 10),
			r.Customer,
			r.ServiceName,
			r.StylistName,
			r.Location,
			r.Date,
			r.TimeSlot,
			r.Status,
			strconv.FormatFloat(r.Price, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
