package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const dateLayout = "Monday, January 2, 2006 at 3:04 PM"

func subjectStaffInvite(outfitterName string) string {
	return fmt.Sprintf("You've been invited to join %s", outfitterName)
}

func subjectBookingConfirmation(outfitterName string) string {
	return fmt.Sprintf("Your trip with %s is confirmed", outfitterName)
}

func subjectBookingReminder(outfitterName string) string {
	return fmt.Sprintf("Reminder: your trip with %s is coming up", outfitterName)
}

var staffInviteTmpl = template.Must(template.New("staff_invite").Parse(`
<p>Hello,</p>
<p>{{.OutfitterName}} has invited you to join their team as a guide.</p>
<p><a href="{{.InviteURL}}">Accept the invitation</a> to set up your account.
This link expires in 7 days.</p>
<p>If you weren't expecting this invitation you can ignore this email.</p>
`))

var bookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(`
<p>Hi {{.CustomerName}},</p>
<p>Your trip with {{.OutfitterName}} is confirmed for
<strong>{{.StartsAt}}</strong>.</p>
<p>We look forward to seeing you out there.</p>
`))

var bookingReminderTmpl = template.Must(template.New("booking_reminder").Parse(`
<p>Hi {{.CustomerName}},</p>
<p>A quick reminder that your trip with {{.OutfitterName}} starts
<strong>{{.StartsAt}}</strong>.</p>
`))

func renderStaffInvite(outfitterName, inviteURL string) (string, error) {
	return render(staffInviteTmpl, map[string]string{
		"OutfitterName": outfitterName,
		"InviteURL":     inviteURL,
	})
}

func renderBookingConfirmation(customerName, outfitterName string, startsAt time.Time) (string, error) {
	return render(bookingConfirmationTmpl, map[string]string{
		"CustomerName":  customerName,
		"OutfitterName": outfitterName,
		"StartsAt":      startsAt.Format(dateLayout),
	})
}

func renderBookingReminder(customerName, outfitterName string, startsAt time.Time) (string, error) {
	return render(bookingReminderTmpl, map[string]string{
		"CustomerName":  customerName,
		"OutfitterName": outfitterName,
		"StartsAt":      startsAt.Format(dateLayout),
	})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
