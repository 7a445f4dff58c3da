package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"personalsite/internal/db"
)

// ReminderRow carries what the reminder job needs to notify a user.
type ReminderRow struct {
	AppointmentID string
	UserName      string
	UserEmail     string
	UserPhone     string
	Date          time.Time
	TimeSlot      string
	Topic         string
}

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetOpenAppointmentIDsPastDate finds pending or confirmed appointments whose
// date is already behind us.
func (r *JobRepository) GetOpenAppointmentIDsPastDate(today time.Time) ([]string, error) {
	query := `
		SELECT id FROM appointments
		WHERE status IN ($1, $2) AND date < $3`
	rows, err := r.DB.Query(query, db.AppointmentPending, db.AppointmentConfirmed, today)
	if err != nil {
		return nil, fmt.Errorf("error querying open appointments past date: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning appointment ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateAppointmentStatuses sets the status of a batch of appointments.
func (r *JobRepository) UpdateAppointmentStatuses(ids []string, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.Exec(
		`UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("error updating appointment statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d appointments to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// ListReminders returns confirmed appointments on the given date together with
// the owner's contact details.
func (r *JobRepository) ListReminders(date time.Time) ([]ReminderRow, error) {
	query := `
		SELECT a.id, u.name, u.email, u.phone, a.date, a.time_slot, a.topic
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = $1 AND a.status = $2
		ORDER BY a.time_slot`
	rows, err := r.DB.Query(query, date, db.AppointmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("error querying reminders: %w", err)
	}
	defer rows.Close()

	var reminders []ReminderRow
	for rows.Next() {
		var row ReminderRow
		err := rows.Scan(&row.AppointmentID, &row.UserName, &row.UserEmail, &row.UserPhone, &row.Date, &row.TimeSlot, &row.Topic)
		if err != nil {
			return nil, fmt.Errorf("error scanning reminder: %w", err)
		}
		reminders = append(reminders, row)
	}
	return reminders, rows.Err()
}

// DeletePendingPaymentsOlderThan removes payment records stuck in PENDING.
func (r *JobRepository) DeletePendingPaymentsOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(
		`DELETE FROM payments WHERE status = $1 AND created_at < $2`,
		db.PaymentPending, before,
	)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending payments: %w", err)
	}
	return result.RowsAffected()
}
