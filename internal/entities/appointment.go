package entities

import "time"

type AppointmentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	TimeSlot  string    `json:"time"` // HH:MM
	Topic     string    `json:"topic"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateAppointmentRequest struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // HH:MM
	Topic   string `json:"topic"`
	Company string `json:"company"`
	Message string `json:"message"`
}

type UpdateAppointmentRequest struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Topic   string `json:"topic"`
	Company string `json:"company"`
	Message string `json:"message"`
}

type AppointmentList struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Pagination   Pagination            `json:"pagination"`
}
