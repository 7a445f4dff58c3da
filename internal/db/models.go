package db

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Appointment lifecycle. Only CANCELLED frees the slot.
const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCancelled = "CANCELLED"
	AppointmentCompleted = "COMPLETED"
)

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Appointment struct {
	ID        string
	UserID    string
	Date      time.Time
	TimeSlot  string // "HH:MM"
	Topic     string
	Company   string
	Message   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BlogPost struct {
	ID        string
	AuthorID  string
	Title     string
	Slug      string
	Content   string
	Excerpt   string
	Tags      []string
	ImageURL  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payment struct {
	ID                    string
	UserID                string
	AppointmentID         string
	AmountCents           int64
	Currency              string
	Status                string
	StripePaymentIntentID string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
