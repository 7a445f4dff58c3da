package service

import (
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	stripego "github.com/stripe/stripe-go/v82"

	"personalsite/internal/auth"
	"personalsite/internal/db"
	"personalsite/internal/entities"
	apperrors "personalsite/internal/errors"
	"personalsite/internal/repository"
)

type PaymentService struct {
	repo         *repository.PaymentRepository
	appointments *repository.AppointmentRepository
	stripe       *StripeService
	sender       *SenderService
}

func NewPaymentService(
	repo *repository.PaymentRepository,
	appointments *repository.AppointmentRepository,
	stripe *StripeService,
	sender *SenderService,
) *PaymentService {
	return &PaymentService{repo: repo, appointments: appointments, stripe: stripe, sender: sender}
}

// Create opens a Stripe PaymentIntent for the caller's appointment and records
// a PENDING payment. The client secret goes back to the frontend.
func (s *PaymentService) Create(claims *auth.Claims, req entities.CreatePaymentRequest) (*entities.PaymentResponse, error) {
	if req.AppointmentID == "" {
		return nil, apperrors.ErrInvalidInput("appointmentId is required")
	}
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidInput("amount must be positive")
	}
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "usd"
	}

	appointment, err := s.appointments.GetByID(req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperrors.ErrNotFound("Appointment not found")
	}
	if appointment.UserID != claims.UserID {
		return nil, apperrors.ErrForbidden("Forbidden")
	}
	if appointment.Status == db.AppointmentCancelled {
		return nil, apperrors.ErrInvalidInput("Cannot process payment for cancelled appointment")
	}

	existing, err := s.repo.GetByAppointmentID(req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrConflict("Payment already exists for this appointment")
	}

	amountCents := int64(math.Round(req.Amount * 100))
	pi, err := s.stripe.CreatePaymentIntent(amountCents, currency, appointment.ID, appointment.UserEmail)
	if err != nil {
		log.Printf("Error creating payment intent for appointment %s: %v", appointment.ID, err)
		return nil, err
	}

	payment := &db.Payment{
		ID:                    uuid.NewString(),
		UserID:                claims.UserID,
		AppointmentID:         appointment.ID,
		AmountCents:           amountCents,
		Currency:              currency,
		Status:                db.PaymentPending,
		StripePaymentIntentID: pi.ID,
	}
	if err := s.repo.Create(payment); err != nil {
		return nil, err
	}

	resp := paymentResponse(payment)
	resp.ClientSecret = pi.ClientSecret
	return resp, nil
}

// Confirm re-reads the PaymentIntent from Stripe and settles the local record:
// a succeeded intent completes the payment and confirms the appointment, a
// canceled one fails it. Anything else leaves the payment pending.
func (s *PaymentService) Confirm(claims *auth.Claims, id string) (*entities.PaymentResponse, error) {
	payment, err := s.fetchOwned(claims, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != db.PaymentPending {
		return paymentResponse(payment), nil
	}

	pi, err := s.stripe.GetPaymentIntent(payment.StripePaymentIntentID)
	if err != nil {
		return nil, err
	}

	switch pi.Status {
	case stripego.PaymentIntentStatusSucceeded:
		if err := s.repo.UpdateStatus(payment.ID, db.PaymentCompleted); err != nil {
			return nil, err
		}
		payment.Status = db.PaymentCompleted

		if err := s.appointments.UpdateStatus(payment.AppointmentID, db.AppointmentConfirmed); err != nil {
			log.Printf("Error confirming appointment %s: %v", payment.AppointmentID, err)
		}
		if row, err := s.appointments.GetByID(payment.AppointmentID); err == nil && row != nil {
			s.sender.SendPaymentEmail(*row, payment.AmountCents, payment.Currency)
		}
	case stripego.PaymentIntentStatusCanceled:
		if err := s.repo.UpdateStatus(payment.ID, db.PaymentFailed); err != nil {
			return nil, err
		}
		payment.Status = db.PaymentFailed
	default:
		log.Printf("Payment intent %s still in status %s", pi.ID, pi.Status)
	}

	return paymentResponse(payment), nil
}

func (s *PaymentService) Get(claims *auth.Claims, id string) (*entities.PaymentResponse, error) {
	payment, err := s.fetchOwned(claims, id)
	if err != nil {
		return nil, err
	}
	return paymentResponse(payment), nil
}

func (s *PaymentService) AdminList(filter repository.PaymentFilter, page, limit int) (*entities.PaymentList, error) {
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	payments, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	list := &entities.PaymentList{
		Payments:   make([]entities.PaymentResponse, 0, len(payments)),
		Pagination: entities.NewPagination(total, page, limit),
	}
	for i := range payments {
		list.Payments = append(list.Payments, *paymentResponse(&payments[i]))
	}
	return list, nil
}

func (s *PaymentService) fetchOwned(claims *auth.Claims, id string) (*db.Payment, error) {
	payment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperrors.ErrNotFound("Payment not found")
	}
	if payment.UserID != claims.UserID && claims.Role != db.RoleAdmin {
		return nil, apperrors.ErrForbidden("Forbidden")
	}
	return payment, nil
}

func paymentResponse(p *db.Payment) *entities.PaymentResponse {
	return &entities.PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		AppointmentID: p.AppointmentID,
		AmountCents:   p.AmountCents,
		Currency:      p.Currency,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
