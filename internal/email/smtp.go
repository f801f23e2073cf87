package email

import (
	"context"
	"fmt"
	"time"

	"outfitter_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates an SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendStaffInviteEmail invites a guide to join an outfitter.
func (s *SMTPSender) SendStaffInviteEmail(ctx context.Context, toEmail, outfitterName, inviteURL string) error {
	body, err := renderStaffInvite(outfitterName, inviteURL)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectStaffInvite(outfitterName), body)
}

// SendBookingConfirmationEmail confirms a booking to the customer.
func (s *SMTPSender) SendBookingConfirmationEmail(ctx context.Context, toEmail, customerName, outfitterName string, startsAt time.Time) error {
	body, err := renderBookingConfirmation(customerName, outfitterName, startsAt)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingConfirmation(outfitterName), body)
}

// SendBookingReminderEmail reminds the customer of an upcoming trip.
func (s *SMTPSender) SendBookingReminderEmail(ctx context.Context, toEmail, customerName, outfitterName string, startsAt time.Time) error {
	body, err := renderBookingReminder(customerName, outfitterName, startsAt)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingReminder(outfitterName), body)
}

var _ Sender = (*SMTPSender)(nil)
