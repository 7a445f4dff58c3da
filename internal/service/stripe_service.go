package service

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
)

type StripeService struct{}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{}
}

// CreatePaymentIntent opens a PaymentIntent for an appointment. The amount is
// in the currency's smallest unit.
func (s *StripeService) CreatePaymentIntent(amountCents int64, currency, appointmentID, customerEmail string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(customerEmail),
	}
	params.AddMetadata("appointment_id", appointmentID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("error creating payment intent: %w", err)
	}
	return pi, nil
}

func (s *StripeService) GetPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("error retrieving payment intent %s: %w", paymentIntentID, err)
	}
	return pi, nil
}

func (s *StripeService) RefundPaymentIntent(paymentIntentID string) error {
	if paymentIntentID == "" {
		return fmt.Errorf("no payment intent to refund")
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	_, err := refund.New(params)
	return err
}
