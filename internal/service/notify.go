package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY is not set. Email will not be sent.")
		return fmt.Errorf("SENDGRID_API_KEY is not set")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("WARNING: SENDGRID_FROM_EMAIL is not set. Email will not be sent.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not set")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Personal Site"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid to %s: %v", toEmailAddress, err)
		return fmt.Errorf("failed to send email through SendGrid: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (Subject: %s). Status: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}

	log.Printf("Error sending email to %s via SendGrid. Status: %d, Body: %s",
		toEmailAddress, response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid returned non-success status %d: %s", response.StatusCode, response.Body)
}

func SendSMS(toNumber string, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("WARNING: Twilio credentials (SID, token or from number) are not set. SMS will not be sent.")
		return fmt.Errorf("twilio credentials not fully configured")
	}

	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARNING: destination number '%s' is not in E.164 format (must start with '+'). The SMS may fail.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Error sending SMS to %s via Twilio: %v", toNumber, err)
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to %s. Message SID: %s", toNumber, *resp.Sid)
	}
	return nil
}
