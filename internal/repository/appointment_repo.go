package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"personalsite/internal/db"
)

// AppointmentRow is an appointment joined with its owner's contact details.
type AppointmentRow struct {
	db.Appointment
	UserName  string
	UserEmail string
	UserPhone string
}

// AppointmentFilter narrows admin listings. Zero values mean "no filter".
type AppointmentFilter struct {
	Status    string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Limit     int
	Offset    int
}

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(database *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: database}
}

func (r *AppointmentRepository) Create(a *db.Appointment) error {
	query := `
		INSERT INTO appointments
		(id, user_id, date, time_slot, topic, company, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query,
		a.ID, a.UserID, a.Date, a.TimeSlot, a.Topic, a.Company, a.Message, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(id string) (*AppointmentRow, error) {
	var row AppointmentRow
	query := `
		SELECT a.id, a.user_id, a.date, a.time_slot, a.topic, a.company, a.message,
		       a.status, a.created_at, a.updated_at, u.name, u.email, u.phone
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&row.ID, &row.UserID, &row.Date, &row.TimeSlot, &row.Topic, &row.Company, &row.Message,
		&row.Status, &row.CreatedAt, &row.UpdatedAt, &row.UserName, &row.UserEmail, &row.UserPhone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	return &row, nil
}

func (r *AppointmentRepository) ListByUser(userID string) ([]AppointmentRow, error) {
	query := `
		SELECT a.id, a.user_id, a.date, a.time_slot, a.topic, a.company, a.message,
		       a.status, a.created_at, a.updated_at, u.name, u.email, u.phone
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointmentRows(rows)
}

// List returns a filtered page of appointments plus the unpaged total.
func (r *AppointmentRepository) List(filter AppointmentFilter) ([]AppointmentRow, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if filter.Status != "" {
		where += " AND a.status = $" + strconv.Itoa(idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.StartDate != "" && filter.EndDate != "" {
		where += " AND a.date BETWEEN $" + strconv.Itoa(idx) + " AND $" + strconv.Itoa(idx+1)
		args = append(args, filter.StartDate, filter.EndDate)
		idx += 2
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM appointments a" + where
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting appointments: %w", err)
	}

	query := `
		SELECT a.id, a.user_id, a.date, a.time_slot, a.topic, a.company, a.message,
		       a.status, a.created_at, a.updated_at, u.name, u.email, u.phone
		FROM appointments a
		JOIN users u ON u.id = a.user_id` + where +
		" ORDER BY a.date DESC, a.time_slot DESC LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list, err := scanAppointmentRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListBookedTimes returns the time labels of every non-cancelled appointment
// on the given date.
func (r *AppointmentRepository) ListBookedTimes(date time.Time) ([]string, error) {
	query := `
		SELECT time_slot FROM appointments
		WHERE date = $1 AND status <> $2`
	rows, err := r.DB.Query(query, date, db.AppointmentCancelled)
	if err != nil {
		return nil, fmt.Errorf("error querying booked times: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// SlotTaken reports whether a non-cancelled appointment already holds the slot.
func (r *AppointmentRepository) SlotTaken(date time.Time, timeSlot string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE date = $1 AND time_slot = $2 AND status <> $3
		)`, date, timeSlot, db.AppointmentCancelled).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking slot: %w", err)
	}
	return exists, nil
}

func (r *AppointmentRepository) Update(a *db.Appointment) error {
	query := `
		UPDATE appointments
		SET date = $2, time_slot = $3, topic = $4, company = $5, message = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.DB.QueryRow(query, a.ID, a.Date, a.TimeSlot, a.Topic, a.Company, a.Message).Scan(&a.UpdatedAt)
}

func (r *AppointmentRepository) UpdateStatus(id, status string) error {
	_, err := r.DB.Exec(`UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *AppointmentRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func scanAppointmentRows(rows *sql.Rows) ([]AppointmentRow, error) {
	var list []AppointmentRow
	for rows.Next() {
		var row AppointmentRow
		err := rows.Scan(
			&row.ID, &row.UserID, &row.Date, &row.TimeSlot, &row.Topic, &row.Company, &row.Message,
			&row.Status, &row.CreatedAt, &row.UpdatedAt, &row.UserName, &row.UserEmail, &row.UserPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
