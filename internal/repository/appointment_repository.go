package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mandaladignite/enlivesalon/internal/model"
)

// ErrAppointmentNotFound is returned when an appointment cannot be found.
var ErrAppointmentNotFound = errors.New("appointment not found")

const appointmentCols = `id, user_id, service_id, stylist_id, location, date, time_slot,
	status, price, notes, address, created_at, updated_at`

// AppointmentRepo encapsulates database queries for appointments.  Each row
// is one service in one slot; the conflict rule is that a stylist can hold
// at most one customer's live appointments per date/slot.
type AppointmentRepo struct {
	db *sql.DB
}

func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span repositories.
func (r *AppointmentRepo) DB() *sql.DB { return r.db }

func scanAppointment(row interface{ Scan(...any) error }) (*model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.ServiceID, &a.StylistID, &a.Location, &a.Date, &a.TimeSlot,
		&a.Status, &a.Price, &a.Notes, &a.Address, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateTx inserts one appointment inside the given transaction after
// checking the slot.  A live (PENDING or CONFIRMED) appointment for the
// same stylist/date/slot belonging to a different user yields ErrSlotTaken;
// rows for the same user pass, because a multi-service booking occupies one
// slot with several rows.  The SELECT ... FOR UPDATE serializes concurrent
// bookings of the same slot.
func (r *AppointmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Appointment) error {
	var owner uint64
	err := tx.QueryRowContext(ctx,
		`SELECT user_id FROM appointments
		 WHERE stylist_id=? AND date=? AND time_slot=? AND status IN ('PENDING','CONFIRMED')
		 LIMIT 1 FOR UPDATE`,
		a.StylistID, a.Date, a.TimeSlot).Scan(&owner)
	switch {
	case err == nil:
		if owner != a.UserID {
			return ErrSlotTaken
		}
	case errors.Is(err, sql.ErrNoRows):
		// Slot is free.
	default:
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO appointments
		 (user_id, service_id, stylist_id, location, date, time_slot, status, price, notes, address)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		a.UserID, a.ServiceID, a.StylistID, a.Location, a.Date, a.TimeSlot,
		a.Status, a.Price, a.Notes, a.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// Create opens a short transaction around CreateTx for single-row inserts.
func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := r.CreateTx(ctx, tx, a); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// GetByID fetches one appointment.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uint64) (*model.Appointment, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+appointmentCols+" FROM appointments WHERE id=?", id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	return a, err
}

// ListByUser returns a user's appointments, newest first.
func (r *AppointmentRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Appointment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+appointmentCols+" FROM appointments WHERE user_id=? ORDER BY date DESC, time_slot DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AdminSearchQuery defines filters & pagination for the admin appointment
// listing.
type AdminSearchQuery struct {
	Status    string
	StylistID uint64
	DateFrom  string
	DateTo    string
	Page      int
	PageSize  int
}

// AdminRow joins an appointment with the names the back office displays.
type AdminRow struct {
	ID          uint64  `json:"id"`
	CustomerID  uint64  `json:"customer_id"`
	Customer    string  `json:"customer"`
	ServiceID   uint64  `json:"service_id"`
	ServiceName string  `json:"service"`
	StylistID   uint64  `json:"stylist_id"`
	StylistName string  `json:"stylist"`
	Location    string  `json:"location"`
	Date        string  `json:"date"`
	TimeSlot    string  `json:"time_slot"`
	Status      string  `json:"status"`
	Price       float64 `json:"price"`
}

// AdminSearch lists appointments with optional filters and pagination and
// returns the total row count for the filter set.
func (r *AppointmentRepo) AdminSearch(ctx context.Context, q AdminSearchQuery) ([]AdminRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.Status != "" {
		where = append(where, "a.status = ?")
		args = append(args, strings.ToUpper(q.Status))
	}
	if q.StylistID != 0 {
		where = append(where, "a.stylist_id = ?")
		args = append(args, q.StylistID)
	}
	if q.DateFrom != "" {
		where = append(where, "a.date >= ?")
		args = append(args, q.DateFrom)
	}
	if q.DateTo != "" {
		where = append(where, "a.date <= ?")
		args = append(args, q.DateTo)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM appointments a WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.Page < 1 {
		q.Page = 1
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			a.id, a.user_id, u.name, a.service_id, s.name, a.stylist_id, st.name,
			a.location, a.date, a.time_slot, a.status, a.price
		FROM appointments a
		JOIN users u     ON u.id  = a.user_id
		JOIN services s  ON s.id  = a.service_id
		JOIN stylists st ON st.id = a.stylist_id
		WHERE ` + cond + `
		ORDER BY a.date DESC, a.time_slot DESC, a.id DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]AdminRow, 0, limit)
	for rows.Next() {
		var d AdminRow
		if err := rows.Scan(&d.ID, &d.CustomerID, &d.Customer, &d.ServiceID, &d.ServiceName,
			&d.StylistID, &d.StylistName, &d.Location, &d.Date, &d.TimeSlot, &d.Status, &d.Price); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// UpdateStatus moves an appointment to a new lifecycle state.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE appointments SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// Reschedule moves a user's live appointment to a new date/slot after the
// same conflict check as CreateTx.  ErrForbidden when the appointment
// belongs to someone else.
func (r *AppointmentRepo) Reschedule(ctx context.Context, id, userID uint64, date, timeSlot string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx, "SELECT "+appointmentCols+" FROM appointments WHERE id=? FOR UPDATE", id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return ErrForbidden
	}
	if a.Status != model.AppointmentPending && a.Status != model.AppointmentConfirmed {
		return ErrConflict
	}

	var owner uint64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM appointments
		 WHERE stylist_id=? AND date=? AND time_slot=? AND status IN ('PENDING','CONFIRMED') AND id<>?
		 LIMIT 1 FOR UPDATE`,
		a.StylistID, date, timeSlot, id).Scan(&owner)
	switch {
	case err == nil:
		if owner != userID {
			return ErrSlotTaken
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE appointments SET date=?, time_slot=? WHERE id=?", date, timeSlot, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Cancel marks a user's own live appointment CANCELLED.
func (r *AppointmentRepo) Cancel(ctx context.Context, id, userID uint64) error {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return ErrForbidden
	}
	if a.Status == model.AppointmentCancelled || a.Status == model.AppointmentCompleted {
		return ErrConflict
	}
	return r.UpdateStatus(ctx, id, model.AppointmentCancelled)
}
