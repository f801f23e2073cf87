// Package email provides outbound email delivery for the application.
package email

import (
	"context"
	"time"

	"outfitter_backend/platform/config"
	"outfitter_backend/platform/logger"
)

// Sender delivers the application's transactional emails.
type Sender interface {
	// SendStaffInviteEmail invites a guide to join an outfitter.
	SendStaffInviteEmail(ctx context.Context, toEmail, outfitterName, inviteURL string) error
	// SendBookingConfirmationEmail confirms a booking to the customer.
	SendBookingConfirmationEmail(ctx context.Context, toEmail, customerName, outfitterName string, startsAt time.Time) error
	// SendBookingReminderEmail reminds the customer of an upcoming trip.
	SendBookingReminderEmail(ctx context.Context, toEmail, customerName, outfitterName string, startsAt time.Time) error
}

// NewSender creates the configured Sender. When email is disabled the
// returned sender logs instead of delivering, so development environments
// need no SMTP server.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() {
		return &logSender{log: log}
	}
	return NewSMTPSender(cfg)
}

// logSender is the no-op Sender used when delivery is disabled.
type logSender struct {
	log *logger.Logger
}

func (s *logSender) SendStaffInviteEmail(_ context.Context, toEmail, outfitterName, _ string) error {
	s.log.Info("email suppressed", "type", "staff_invite", "to", toEmail, "outfitter", outfitterName)
	return nil
}

func (s *logSender) SendBookingConfirmationEmail(_ context.Context, toEmail, _, _ string, _ time.Time) error {
	s.log.Info("email suppressed", "type", "booking_confirmation", "to", toEmail)
	return nil
}

func (s *logSender) SendBookingReminderEmail(_ context.Context, toEmail, _, _ string, _ time.Time) error {
	s.log.Info("email suppressed", "type", "booking_reminder", "to", toEmail)
	return nil
}
