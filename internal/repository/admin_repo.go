package repository

import (
	"database/sql"
	"fmt"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(database *sql.DB) *AdminRepository {
	return &AdminRepository{DB: database}
}

// Counts returns the dashboard totals: users, appointments, payments.
func (r *AdminRepository) Counts() (users, appointments, payments int64, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM appointments),
			(SELECT COUNT(*) FROM payments)`
	if err = r.DB.QueryRow(query).Scan(&users, &appointments, &payments); err != nil {
		return 0, 0, 0, fmt.Errorf("error querying dashboard counts: %w", err)
	}
	return users, appointments, payments, nil
}

// RecentAppointments returns the newest appointments with owner details.
func (r *AdminRepository) RecentAppointments(limit int) ([]AppointmentRow, error) {
	query := `
		SELECT a.id, a.user_id, a.date, a.time_slot, a.topic, a.company, a.message,
		       a.status, a.created_at, a.updated_at, u.name, u.email, u.phone
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointmentRows(rows)
}
