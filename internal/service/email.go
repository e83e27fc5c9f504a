package service

import (
	"context"
	"fmt"

	"aquascout-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService builds the SendGrid-backed mailer. With an empty API key
// the service logs sends instead of calling out, which keeps local
// development and tests offline.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   apiKey != "",
	}
}

func (s *sendGridEmailService) send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	if !s.enabled {
		logger.InfoContext(ctx, "Email sending disabled, skipping", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send email", "to", toEmail, "subject", subject, "error", err)
		return fmt.Errorf("send email: %w", err)
	}
	if response.StatusCode >= 400 {
		logger.ErrorContext(ctx, "SendGrid rejected email", "to", toEmail, "status", response.StatusCode)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	return nil
}

func rupees(paise int64) string {
	return fmt.Sprintf("Rs. %d.%02d", paise/100, paise%100)
}

func (s *sendGridEmailService) SendBookingAssigned(ctx context.Context, vendorEmail, vendorName, reference string) error {
	subject := fmt.Sprintf("New Survey Assignment: %s", reference)
	body := fmt.Sprintf("Hi %s,\n\nA groundwater survey booking (%s) has been assigned to you. "+
		"Please accept or decline it from your dashboard.\n", vendorName, reference)
	return s.send(ctx, vendorEmail, vendorName, subject, body)
}

func (s *sendGridEmailService) SendVisitUpdate(ctx context.Context, userEmail, userName, reference, update string) error {
	subject := fmt.Sprintf("Booking %s Update", reference)
	body := fmt.Sprintf("Hi %s,\n\nYour survey booking %s has been %s.\n", userName, reference, update)
	return s.send(ctx, userEmail, userName, subject, body)
}

func (s *sendGridEmailService) SendPaymentDue(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error {
	subject := fmt.Sprintf("Survey Report Ready: %s", reference)
	body := fmt.Sprintf("Hi %s,\n\nYour survey report for booking %s is ready. "+
		"Pay the remaining %s to unlock it.\n", userName, reference, rupees(amountPaise))
	return s.send(ctx, userEmail, userName, subject, body)
}

func (s *sendGridEmailService) SendPaymentReceipt(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error {
	subject := fmt.Sprintf("Payment Received: %s", reference)
	body := fmt.Sprintf("Hi %s,\n\nWe received your payment of %s for booking %s.\n",
		userName, rupees(amountPaise), reference)
	return s.send(ctx, userEmail, userName, subject, body)
}

func (s *sendGridEmailService) SendReportDecision(ctx context.Context, vendorEmail, vendorName, reference, decision, reason string) error {
	subject := fmt.Sprintf("Survey Report %s: %s", decision, reference)
	body := fmt.Sprintf("Hi %s,\n\nYour survey report for booking %s was %s.", vendorName, reference, decision)
	if reason != "" {
		body += fmt.Sprintf("\nReason: %s", reason)
	}
	body += "\n"
	return s.send(ctx, vendorEmail, vendorName, subject, body)
}

func (s *sendGridEmailService) SendSettlementNotice(ctx context.Context, email, name, reference string, amountPaise int64) error {
	subject := fmt.Sprintf("Settlement Processed: %s", reference)
	body := fmt.Sprintf("Hi %s,\n\nThe final settlement for booking %s has been processed. "+
		"Amount: %s.\n", name, reference, rupees(amountPaise))
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendCancellation(ctx context.Context, email, name, reference, reason string) error {
	subject := fmt.Sprintf("Booking Cancelled: %s", reference)
	body := fmt.Sprintf("Hi %s,\n\nBooking %s has been cancelled.", name, reference)
	if reason != "" {
		body += fmt.Sprintf("\nReason: %s", reason)
	}
	body += "\n"
	return s.send(ctx, email, name, subject, body)
}

func (s *sendGridEmailService) SendPaymentReminder(ctx context.Context, userEmail, userName, reference string, amountPaise int64) error {
	subject := fmt.Sprintf("Payment Reminder: %s", reference)
	body := fmt.Sprintf("Hi %s,\n\nA payment of %s is still pending for booking %s. "+
		"Your survey report stays locked until it is paid.\n", userName, rupees(amountPaise), reference)
	return s.send(ctx, userEmail, userName, subject, body)
}
