package service

import (
	"log"
	"time"

	"github.com/google/uuid"

	"personalsite/internal/auth"
	"personalsite/internal/db"
	"personalsite/internal/entities"
	apperrors "personalsite/internal/errors"
	"personalsite/internal/repository"
	"personalsite/internal/schedule"
)

type AppointmentService struct {
	repo         *repository.AppointmentRepository
	payments     *repository.PaymentRepository
	stripe       *StripeService
	sender       *SenderService
	availability *AvailabilityService
	hours        schedule.BusinessHours
}

func NewAppointmentService(
	repo *repository.AppointmentRepository,
	payments *repository.PaymentRepository,
	stripe *StripeService,
	sender *SenderService,
	availability *AvailabilityService,
	hours schedule.BusinessHours,
) *AppointmentService {
	return &AppointmentService{
		repo:         repo,
		payments:     payments,
		stripe:       stripe,
		sender:       sender,
		availability: availability,
		hours:        hours,
	}
}

func (s *AppointmentService) CheckAvailability(dateStr string) (*entities.AvailabilityResult, error) {
	return s.availability.CheckAvailability(dateStr)
}

func (s *AppointmentService) Create(claims *auth.Claims, req entities.CreateAppointmentRequest) (*entities.AppointmentResponse, error) {
	if req.Topic == "" {
		return nil, apperrors.ErrInvalidInput("topic is required")
	}
	date, err := s.hours.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.ErrInvalidInput("invalid date, expected YYYY-MM-DD")
	}
	timeSlot := schedule.NormalizeTime(req.Time)
	if !s.slotExists(date, timeSlot) {
		return nil, apperrors.ErrInvalidInput("time is outside business hours")
	}

	taken, err := s.repo.SlotTaken(date, timeSlot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrConflict("Slot already booked")
	}

	appointment := &db.Appointment{
		ID:       uuid.NewString(),
		UserID:   claims.UserID,
		Date:     date,
		TimeSlot: timeSlot,
		Topic:    req.Topic,
		Company:  req.Company,
		Message:  req.Message,
		Status:   db.AppointmentPending,
	}
	if err := s.repo.Create(appointment); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(appointment.ID)
	if err != nil || row == nil {
		log.Printf("Error reloading appointment %s: %v", appointment.ID, err)
		return appointmentResponse(&repository.AppointmentRow{Appointment: *appointment}), nil
	}

	s.sender.SendAppointmentEmail(*row, "booked")
	return appointmentResponse(row), nil
}

func (s *AppointmentService) Get(claims *auth.Claims, id string) (*entities.AppointmentResponse, error) {
	row, err := s.fetchOwned(claims, id)
	if err != nil {
		return nil, err
	}
	return appointmentResponse(row), nil
}

func (s *AppointmentService) ListByUser(userID string) ([]entities.AppointmentResponse, error) {
	rows, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	responses := make([]entities.AppointmentResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, *appointmentResponse(&rows[i]))
	}
	return responses, nil
}

func (s *AppointmentService) Update(claims *auth.Claims, id string, req entities.UpdateAppointmentRequest) (*entities.AppointmentResponse, error) {
	row, err := s.fetchOwned(claims, id)
	if err != nil {
		return nil, err
	}
	if row.Status == db.AppointmentCancelled {
		return nil, apperrors.ErrInvalidInput("Cannot update a cancelled appointment")
	}

	updated := row.Appointment
	if req.Date != "" || req.Time != "" {
		dateStr := req.Date
		if dateStr == "" {
			dateStr = row.Date.Format(schedule.DateLayout)
		}
		timeSlot := row.TimeSlot
		if req.Time != "" {
			timeSlot = schedule.NormalizeTime(req.Time)
		}

		date, err := s.hours.ParseDate(dateStr)
		if err != nil {
			return nil, apperrors.ErrInvalidInput("invalid date, expected YYYY-MM-DD")
		}
		if !s.slotExists(date, timeSlot) {
			return nil, apperrors.ErrInvalidInput("time is outside business hours")
		}
		if !date.Equal(row.Date) || timeSlot != row.TimeSlot {
			taken, err := s.repo.SlotTaken(date, timeSlot)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.ErrConflict("Slot already booked")
			}
		}
		updated.Date = date
		updated.TimeSlot = timeSlot
	}
	if req.Topic != "" {
		updated.Topic = req.Topic
	}
	if req.Company != "" {
		updated.Company = req.Company
	}
	if req.Message != "" {
		updated.Message = req.Message
	}

	if err := s.repo.Update(&updated); err != nil {
		return nil, err
	}

	row.Appointment = updated
	return appointmentResponse(row), nil
}

// Cancel marks the appointment CANCELLED, freeing its slot, and refunds any
// completed payment tied to it.
func (s *AppointmentService) Cancel(claims *auth.Claims, id string) (*entities.AppointmentResponse, error) {
	row, err := s.fetchOwned(claims, id)
	if err != nil {
		return nil, err
	}
	if row.Status == db.AppointmentCancelled {
		return nil, apperrors.ErrInvalidInput("Appointment is already cancelled")
	}

	if err := s.repo.UpdateStatus(id, db.AppointmentCancelled); err != nil {
		return nil, err
	}
	row.Status = db.AppointmentCancelled

	payment, err := s.payments.GetByAppointmentID(id)
	if err != nil {
		log.Printf("Error looking up payment for appointment %s: %v", id, err)
	}
	if payment != nil && payment.Status == db.PaymentCompleted {
		if err := s.stripe.RefundPaymentIntent(payment.StripePaymentIntentID); err != nil {
			log.Printf("Error refunding payment %s: %v", payment.ID, err)
		} else if err := s.payments.UpdateStatus(payment.ID, db.PaymentRefunded); err != nil {
			log.Printf("Error marking payment %s refunded: %v", payment.ID, err)
		}
	}

	s.sender.SendAppointmentEmail(*row, "cancelled")
	return appointmentResponse(row), nil
}

func (s *AppointmentService) Delete(claims *auth.Claims, id string) error {
	if _, err := s.fetchOwned(claims, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *AppointmentService) AdminList(filter repository.AppointmentFilter, page, limit int) (*entities.AppointmentList, error) {
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	rows, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	list := &entities.AppointmentList{
		Appointments: make([]entities.AppointmentResponse, 0, len(rows)),
		Pagination:   entities.NewPagination(total, page, limit),
	}
	for i := range rows {
		list.Appointments = append(list.Appointments, *appointmentResponse(&rows[i]))
	}
	return list, nil
}

func (s *AppointmentService) fetchOwned(claims *auth.Claims, id string) (*repository.AppointmentRow, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperrors.ErrNotFound("Appointment not found")
	}
	if row.UserID != claims.UserID && claims.Role != db.RoleAdmin {
		return nil, apperrors.ErrForbidden("Forbidden")
	}
	return row, nil
}

func (s *AppointmentService) slotExists(date time.Time, timeSlot string) bool {
	for _, slot := range s.hours.SlotsForDay(date) {
		if slot == timeSlot {
			return true
		}
	}
	return false
}

func appointmentResponse(row *repository.AppointmentRow) *entities.AppointmentResponse {
	return &entities.AppointmentResponse{
		ID:        row.ID,
		UserID:    row.UserID,
		Date:      row.Date.Format(schedule.DateLayout),
		TimeSlot:  row.TimeSlot,
		Topic:     row.Topic,
		Company:   row.Company,
		Message:   row.Message,
		Status:    row.Status,
		UserName:  row.UserName,
		UserEmail: row.UserEmail,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
