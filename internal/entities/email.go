package entities

// AppointmentEmailData feeds the appointment notification templates.
type AppointmentEmailData struct {
	UserName      string
	DateFormatted string
	TimeSlot      string
	Topic         string
	Status        string
	CurrentYear   int
}

// PaymentEmailData feeds the payment confirmation template.
type PaymentEmailData struct {
	UserName        string
	AmountFormatted string
	DateFormatted   string
	TimeSlot        string
	CurrentYear     int
}
