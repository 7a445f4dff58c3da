package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"personalsite/internal/entities"
	"personalsite/internal/repository"
)

const dateEmailLayout = "Monday, 02 Jan 2006"

// SenderService builds and dispatches user notifications. Sends run on
// goroutines so request handling never waits on SendGrid or Twilio.
type SenderService struct {
	loc *time.Location
}

func NewSenderService(loc *time.Location) *SenderService {
	if loc == nil {
		loc = time.UTC
	}
	return &SenderService{loc: loc}
}

func (s *SenderService) SendWelcomeEmail(email, name string) {
	subject := "Welcome!"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour account has been created. You can now book appointments and join the conversation on the blog.\n\n"+
			"See you soon.",
		name,
	)

	go func() {
		if err := SendEmailWithSendGrid(email, name, subject, body, ""); err != nil {
			log.Printf("ALERT (async): welcome email to %s failed: %v", email, err)
		}
	}()
}

func (s *SenderService) SendAppointmentEmail(row repository.AppointmentRow, status string) {
	data := entities.AppointmentEmailData{
		UserName:      row.UserName,
		DateFormatted: row.Date.In(s.loc).Format(dateEmailLayout),
		TimeSlot:      row.TimeSlot,
		Topic:         row.Topic,
		Status:        status,
		CurrentYear:   time.Now().In(s.loc).Year(),
	}

	subject := fmt.Sprintf("Your appointment on %s has been %s", data.DateFormatted, data.Status)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment has been %s.\n\n"+
			"Appointment details:\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Topic: %s\n\n"+
			"Thank you.",
		data.UserName, data.Status, data.DateFormatted, data.TimeSlot, data.Topic,
	)

	go func() {
		if err := SendEmailWithSendGrid(row.UserEmail, data.UserName, subject, body, ""); err != nil {
			log.Printf("ALERT (async): appointment email for %s failed: %v", row.ID, err)
		}
	}()
}

func (s *SenderService) SendPaymentEmail(row repository.AppointmentRow, amountCents int64, currency string) {
	data := entities.PaymentEmailData{
		UserName:        row.UserName,
		AmountFormatted: formatAmount(amountCents, currency),
		DateFormatted:   row.Date.In(s.loc).Format(dateEmailLayout),
		TimeSlot:        row.TimeSlot,
		CurrentYear:     time.Now().In(s.loc).Year(),
	}

	subject := "Payment received for your appointment"
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your payment of %s.\n\n"+
			"Your appointment on %s at %s is now confirmed.\n\n"+
			"Thank you.",
		data.UserName, data.AmountFormatted, data.DateFormatted, data.TimeSlot,
	)

	go func() {
		if err := SendEmailWithSendGrid(row.UserEmail, data.UserName, subject, body, ""); err != nil {
			log.Printf("ALERT (async): payment email for %s failed: %v", row.ID, err)
		}
	}()
}

// SendAppointmentReminder emails and, when a phone number is on file,
// texts the user about a confirmed appointment happening the next day.
func (s *SenderService) SendAppointmentReminder(rem repository.ReminderRow) {
	dateFormatted := rem.Date.In(s.loc).Format(dateEmailLayout)

	subject := fmt.Sprintf("Reminder: appointment on %s at %s", dateFormatted, rem.TimeSlot)
	body := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder of your upcoming appointment.\n\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Topic: %s\n\n"+
			"See you then.",
		rem.UserName, dateFormatted, rem.TimeSlot, rem.Topic,
	)

	if err := SendEmailWithSendGrid(rem.UserEmail, rem.UserName, subject, body, ""); err != nil {
		log.Printf("ALERT: reminder email for appointment %s failed: %v", rem.AppointmentID, err)
	}

	if rem.UserPhone == "" {
		return
	}
	sms := fmt.Sprintf("Reminder: your appointment is on %s at %s. Details in your email.",
		rem.Date.In(s.loc).Format("02/01"), rem.TimeSlot)
	if err := SendSMS(rem.UserPhone, sms); err != nil {
		log.Printf("ALERT: reminder SMS for appointment %s failed: %v", rem.AppointmentID, err)
	}
}

func formatAmount(amountCents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(amountCents)/100, strings.ToUpper(currency))
}
