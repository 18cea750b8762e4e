package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandaladignite/enlivesalon/internal/model"
	"github.com/mandaladignite/enlivesalon/internal/repository"
)

// fakeAppointments counts Create calls and can fail the nth one with a slot
// conflict.  Rows that make it through stay recorded, like real inserts.
type fakeAppointments struct {
	calls   int
	failAt  int // 1-indexed call to reject with ErrSlotTaken, 0 = never
	created []*model.Appointment
}

func (f *fakeAppointments) Create(_ context.Context, a *model.Appointment) error {
	f.calls++
	if f.failAt != 0 && f.calls >= f.failAt {
		return repository.ErrSlotTaken
	}
	a.ID = uint64(100 + f.calls)
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAppointments) GetByID(context.Context, uint64) (*model.Appointment, error) {
	return nil, repository.ErrAppointmentNotFound
}
func (f *fakeAppointments) ListByUser(context.Context, uint64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) Reschedule(context.Context, uint64, uint64, string, string) error {
	return nil
}
func (f *fakeAppointments) Cancel(context.Context, uint64, uint64) error { return nil }

type fakeServices map[uint64]*model.Service

func (f fakeServices) GetByID(_ context.Context, id uint64) (*model.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, repository.ErrServiceNotFound
}

type fakeStylists map[uint64]*model.Stylist

func (f fakeStylists) GetByID(_ context.Context, id uint64) (*model.Stylist, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, repository.ErrStylistNotFound
}

type fakeMemberships struct{ discount float64 }

func (f fakeMemberships) ActiveForUser(context.Context, uint64) (*model.Membership, float64, error) {
	return nil, f.discount, nil
}

func bookingFixture(failAt int) (*BookingHandler, *fakeAppointments) {
	fa := &fakeAppointments{failAt: failAt}
	h := NewBookingHandler(fa,
		fakeServices{
			1: {ID: 1, Name: "Hair Spa", Price: 1000, DurationMinutes: 45, IsActive: true, AvailableAtSalon: true},
			2: {ID: 2, Name: "Manicure", Price: 500, DurationMinutes: 30, IsActive: true, AvailableAtSalon: true},
		},
		fakeStylists{
			4: {ID: 4, Name: "Priya", IsActive: true, AvailableForSalon: true},
		},
		fakeMemberships{})
	return h, fa
}

func postBooking(t *testing.T, h *BookingHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(7))
	require.NoError(t, h.Create(c))
	return rec
}

const twoServiceBooking = `{"service_ids":[1,2],"location":"salon","stylist_id":4,"date":"2026-09-01","time_slot":"10:00"}`

type bookingResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Booked  int     `json:"booked"`
		Failed  int     `json:"failed"`
		Total   float64 `json:"total"`
		Entries []struct {
			ServiceID     uint64  `json:"service_id"`
			AppointmentID uint64  `json:"appointment_id"`
			Price         float64 `json:"price"`
			Error         string  `json:"error"`
		} `json:"entries"`
	} `json:"data"`
}

func TestBookingCreateAllServicesSucceed(t *testing.T) {
	h, fa := bookingFixture(0)
	rec := postBooking(t, h, twoServiceBooking)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "appointment booked", resp.Message)
	assert.Equal(t, 2, resp.Data.Booked)
	assert.Zero(t, resp.Data.Failed)
	assert.Equal(t, 1500.0, resp.Data.Total)
	assert.Len(t, fa.created, 2)
}

// A mid-sequence slot conflict must not roll back the row already written:
// the response is still a 201, with the surviving row and the failure both
// reported per service.
func TestBookingCreateSecondInsertFailsKeepsFirstRow(t *testing.T) {
	h, fa := bookingFixture(2)
	rec := postBooking(t, h, twoServiceBooking)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "appointment partially booked", resp.Message)
	assert.Equal(t, 1, resp.Data.Booked)
	assert.Equal(t, 1, resp.Data.Failed)
	assert.Equal(t, 1000.0, resp.Data.Total)

	require.Len(t, resp.Data.Entries, 2)
	assert.Equal(t, uint64(1), resp.Data.Entries[0].ServiceID)
	assert.NotZero(t, resp.Data.Entries[0].AppointmentID)
	assert.Empty(t, resp.Data.Entries[0].Error)
	assert.Equal(t, uint64(2), resp.Data.Entries[1].ServiceID)
	assert.Zero(t, resp.Data.Entries[1].AppointmentID)
	assert.Equal(t, "time slot already booked", resp.Data.Entries[1].Error)

	// no compensation: the first row is still there
	require.Len(t, fa.created, 1)
	assert.Equal(t, uint64(1), fa.created[0].ServiceID)
	assert.Equal(t, uint64(7), fa.created[0].UserID)
}

func TestBookingCreateEveryInsertConflictsIs409(t *testing.T) {
	h, fa := bookingFixture(1)
	rec := postBooking(t, h, twoServiceBooking)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "time slot already booked", resp.Message)
	assert.Empty(t, fa.created)
}

func TestBookingCreateRejectsIncompleteSelection(t *testing.T) {
	h, _ := bookingFixture(0)
	rec := postBooking(t, h, `{"service_ids":[1],"location":"salon","stylist_id":4,"date":"2026-09-01"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Errors []fieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "timeSlot", body.Errors[0].Field)
}
