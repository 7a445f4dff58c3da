package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"personalsite/internal/db"
)

// PaymentFilter narrows admin payment listings. Zero values mean "no filter".
type PaymentFilter struct {
	Status    string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

func (r *PaymentRepository) Create(p *db.Payment) error {
	query := `
		INSERT INTO payments
		(id, user_id, appointment_id, amount_cents, currency, status, stripe_payment_intent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query,
		p.ID, p.UserID, p.AppointmentID, p.AmountCents, p.Currency, p.Status, p.StripePaymentIntentID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(id string) (*db.Payment, error) {
	return r.getByField("id", id)
}

func (r *PaymentRepository) GetByAppointmentID(appointmentID string) (*db.Payment, error) {
	return r.getByField("appointment_id", appointmentID)
}

func (r *PaymentRepository) getByField(field, value string) (*db.Payment, error) {
	var p db.Payment
	query := `
		SELECT id, user_id, appointment_id, amount_cents, currency, status, stripe_payment_intent_id, created_at, updated_at
		FROM payments WHERE ` + field + ` = $1`
	err := r.DB.QueryRow(query, value).Scan(
		&p.ID, &p.UserID, &p.AppointmentID, &p.AmountCents, &p.Currency, &p.Status,
		&p.StripePaymentIntentID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(id, status string) error {
	_, err := r.DB.Exec(`UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *PaymentRepository) List(filter PaymentFilter) ([]db.Payment, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if filter.Status != "" {
		where += " AND status = $" + strconv.Itoa(idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.StartDate != "" && filter.EndDate != "" {
		where += " AND created_at::date BETWEEN $" + strconv.Itoa(idx) + " AND $" + strconv.Itoa(idx+1)
		args = append(args, filter.StartDate, filter.EndDate)
		idx += 2
	}

	var total int64
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM payments"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting payments: %w", err)
	}

	query := `
		SELECT id, user_id, appointment_id, amount_cents, currency, status, stripe_payment_intent_id, created_at, updated_at
		FROM payments` + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []db.Payment
	for rows.Next() {
		var p db.Payment
		err := rows.Scan(
			&p.ID, &p.UserID, &p.AppointmentID, &p.AmountCents, &p.Currency, &p.Status,
			&p.StripePaymentIntentID, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}
