package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/catalog"
	"github.com/mandaladignite/enlivesalon/internal/model"
	"github.com/mandaladignite/enlivesalon/internal/queue"
	"github.com/mandaladignite/enlivesalon/internal/repository"
	queue_publisher "github.com/mandaladignite/enlivesalon/internal/service"
)

// appointmentStore is the slice of AppointmentRepo the booking flow uses.
type appointmentStore interface {
	Create(ctx context.Context, a *model.Appointment) error
	GetByID(ctx context.Context, id uint64) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Appointment, error)
	Reschedule(ctx context.Context, id, userID uint64, date, timeSlot string) error
	Cancel(ctx context.Context, id, userID uint64) error
}

type serviceReader interface {
	GetByID(ctx context.Context, id uint64) (*model.Service, error)
}

type stylistReader interface {
	GetByID(ctx context.Context, id uint64) (*model.Stylist, error)
}

type membershipReader interface {
	ActiveForUser(ctx context.Context, userID uint64) (*model.Membership, float64, error)
}

// BookingHandler owns the customer booking flow: the wizard submission,
// listing, rescheduling and cancellation of appointments.
//
// A multi-service booking writes one appointment row per service and the
// rows are inserted sequentially without a wrapping transaction.  A failure
// partway through leaves the earlier rows in place; the response reports
// per-service outcomes so the client can retry just the failed ones.
type BookingHandler struct {
	Appointments appointmentStore
	Services     serviceReader
	Stylists     stylistReader
	Memberships  membershipReader
}

func NewBookingHandler(a appointmentStore, sv serviceReader, st stylistReader, m membershipReader) *BookingHandler {
	if a == nil || sv == nil || st == nil || m == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Appointments: a, Services: sv, Stylists: st, Memberships: m}
}

// bookingEntry is the per-service outcome of a booking submission.
type bookingEntry struct {
	ServiceID     uint64  `json:"service_id"`
	ServiceName   string  `json:"service_name"`
	AppointmentID uint64  `json:"appointment_id,omitempty"`
	Price         float64 `json:"price,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// Create handles POST /v1/appointments with the wizard's Selection payload.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var sel catalog.Selection
	if err := c.Bind(&sel); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := catalog.ValidateSelection(sel); len(errs) > 0 {
		return failValidation(c, "booking validation failed", errs)
	}
	if sel.Location == catalog.LocationHome && sel.Address == "" {
		return failValidation(c, "booking validation failed",
			map[string]string{"address": "address is required for home appointments"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	stylist, err := h.Stylists.GetByID(ctx, sel.StylistID)
	if err != nil {
		if err == repository.ErrStylistNotFound {
			return fail(c, http.StatusNotFound, "stylist not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load stylist")
	}
	if !stylist.IsActive {
		return fail(c, http.StatusConflict, "stylist is unavailable")
	}
	if (sel.Location == catalog.LocationHome && !stylist.AvailableForHome) ||
		(sel.Location == catalog.LocationSalon && !stylist.AvailableForSalon) {
		return fail(c, http.StatusConflict, "stylist is unavailable at the chosen location")
	}

	now := time.Now().UTC()

	// Resolve member pricing up front so every row carries its final price.
	_, planDiscount, err := h.Memberships.ActiveForUser(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load membership")
	}

	type pricedService struct {
		row   *catalog.Service
		price float64
	}
	selected := make([]pricedService, 0, len(sel.ServiceIDs))
	for _, id := range sel.ServiceIDs {
		svc, err := h.Services.GetByID(ctx, id)
		if err != nil {
			if err == repository.ErrServiceNotFound {
				return fail(c, http.StatusNotFound, "service not found")
			}
			return fail(c, http.StatusInternalServerError, "could not load service")
		}
		if !svc.IsActive {
			return fail(c, http.StatusConflict, "service is unavailable")
		}
		cs := repository.ToCatalog(svc)
		if (sel.Location == catalog.LocationHome && !cs.AvailableAtHome) ||
			(sel.Location == catalog.LocationSalon && !cs.AvailableAtSalon) {
			return fail(c, http.StatusConflict, "service is unavailable at the chosen location")
		}
		price := catalog.EffectivePrice(cs, now)
		if planDiscount > 0 {
			price = price * (100 - planDiscount) / 100
			if price < 0 {
				price = 0
			}
		}
		selected = append(selected, pricedService{row: &cs, price: price})
	}

	// Fan out one insert per service.  Each insert runs its own slot check
	// and transaction, so a mid-sequence failure keeps the rows already
	// written.
	entries := make([]bookingEntry, 0, len(selected))
	eventEntries := make([]queue.AppointmentEventEntry, 0, len(selected))
	var total float64
	booked := 0
	slotConflict := false
	for _, ps := range selected {
		a := &model.Appointment{
			UserID:    userID,
			ServiceID: ps.row.ID,
			StylistID: sel.StylistID,
			Location:  string(sel.Location),
			Date:      sel.Date,
			TimeSlot:  sel.TimeSlot,
			Status:    model.AppointmentConfirmed,
			Price:     ps.price,
			Notes:     sel.Notes,
			Address:   sel.Address,
		}
		entry := bookingEntry{ServiceID: ps.row.ID, ServiceName: ps.row.Name}
		if err := h.Appointments.Create(ctx, a); err != nil {
			if err == repository.ErrSlotTaken {
				slotConflict = true
				entry.Error = repository.ErrSlotTaken.Error()
			} else {
				entry.Error = "could not create appointment"
			}
			entries = append(entries, entry)
			continue
		}
		entry.AppointmentID = a.ID
		entry.Price = ps.price
		entries = append(entries, entry)
		eventEntries = append(eventEntries, queue.AppointmentEventEntry{
			AppointmentID: a.ID,
			ServiceID:     ps.row.ID,
			ServiceName:   ps.row.Name,
			Price:         ps.price,
		})
		total += ps.price
		booked++
	}

	if booked == 0 {
		if slotConflict {
			return fail(c, http.StatusConflict, "time slot already booked")
		}
		return fail(c, http.StatusInternalServerError, "could not create appointment")
	}

	// Notify off the request path; failures only log.
	ev := queue.AppointmentConfirmedEvent{
		UserID:      userID,
		StylistID:   stylist.ID,
		StylistName: stylist.Name,
		Location:    string(sel.Location),
		Date:        sel.Date,
		TimeSlot:    sel.TimeSlot,
		Services:    eventEntries,
		Total:       total,
		ConfirmedAt: now.Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishAppointmentConfirmed(pubCtx, ev)
	}()

	msg := "appointment booked"
	if booked < len(selected) {
		msg = "appointment partially booked"
	}
	return ok(c, http.StatusCreated, msg, echo.Map{
		"entries":  entries,
		"booked":   booked,
		"failed":   len(selected) - booked,
		"total":    total,
		"date":     sel.Date,
		"timeSlot": sel.TimeSlot,
	})
}

// ListMine handles GET /v1/appointments.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Appointments.ListByUser(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load appointments")
	}
	return ok(c, http.StatusOK, "appointments", items)
}

// Reschedule handles PUT /v1/appointments/:id/reschedule.
func (h *BookingHandler) Reschedule(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid appointment id")
	}
	var body struct {
		Date     string `json:"date"`
		TimeSlot string `json:"time_slot"`
	}
	if err := c.Bind(&body); err != nil || body.Date == "" || body.TimeSlot == "" {
		return fail(c, http.StatusBadRequest, "date and time_slot required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Appointments.Reschedule(ctx, id, userID, body.Date, body.TimeSlot); err {
	case nil:
	case repository.ErrAppointmentNotFound:
		return fail(c, http.StatusNotFound, "appointment not found")
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not your appointment")
	case repository.ErrSlotTaken:
		return fail(c, http.StatusConflict, "time slot already booked")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "appointment can no longer be rescheduled")
	default:
		return fail(c, http.StatusInternalServerError, "reschedule failed")
	}

	a, err := h.Appointments.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load appointment")
	}
	return ok(c, http.StatusOK, "appointment rescheduled", a)
}

// Cancel handles DELETE /v1/appointments/:id.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid appointment id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Appointments.Cancel(ctx, id, userID); err {
	case nil:
		return ok(c, http.StatusOK, "appointment cancelled", nil)
	case repository.ErrAppointmentNotFound:
		return fail(c, http.StatusNotFound, "appointment not found")
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not your appointment")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "appointment can no longer be cancelled")
	default:
		return fail(c, http.StatusInternalServerError, "cancel failed")
	}
}
