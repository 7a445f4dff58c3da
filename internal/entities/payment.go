package entities

import "time"

type PaymentResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AppointmentID string    `json:"appointmentId"`
	AmountCents   int64     `json:"amountCents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	ClientSecret  string    `json:"clientSecret,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreatePaymentRequest struct {
	AppointmentID string  `json:"appointmentId"`
	Amount        float64 `json:"amount"` // major currency units
	Currency      string  `json:"currency"`
}

type PaymentList struct {
	Payments   []PaymentResponse `json:"payments"`
	Pagination Pagination        `json:"pagination"`
}
