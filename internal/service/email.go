package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/templui/medtrack/internal/model"
)

// EmailService delivers reminder alerts by email through Resend.
// In development nothing is sent; the email is logged instead.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	toEmail   string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, toEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// Notify implements Notifier.
func (s *EmailService) Notify(ctx context.Context, alert model.Alert) error {
	subject, body := reminderEmailTemplate(alert, s.appURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "reminder", "to", s.toEmail, "subject", subject, "medicine", alert.MedicineName)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{s.toEmail},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	slog.Info("email sent", "type", "reminder", "to", s.toEmail)
	return nil
}
