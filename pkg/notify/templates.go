package notify

import (
	"fmt"
	"html"
	"strings"
	"time"
)

const footer = `<div style="margin-top: 20px; padding: 10px; background-color: #f5f5f5;">
<p style="margin: 0;">Best regards,</p>
<p style="margin: 5px 0;">The Skill-Bridge Team</p>
</div>`

func wrap(body string) string {
	return `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">` + body + footer + `</div>`
}

func statusUpdateTemplate(jobTitle, newStatus string) string {
	var b strings.Builder
	b.WriteString("<h2>Application Status Update</h2>")
	fmt.Fprintf(&b, "<p>The status of your application for %s has been updated to: <strong>%s</strong></p>",
		html.EscapeString(jobTitle), html.EscapeString(newStatus))
	b.WriteString("<p>Login to your account to view more details about your application.</p>")
	return wrap(b.String())
}

func interviewScheduledTemplate(at time.Time, duration int, meetingType, location, joinURL, notes string) string {
	var b strings.Builder
	b.WriteString("<h2>Interview Scheduled</h2>")
	fmt.Fprintf(&b, "<p>Your interview has been scheduled for %s</p>", at.Format("Monday, 2 January 2006 15:04 MST"))
	fmt.Fprintf(&b, "<p><strong>Duration:</strong> %d minutes</p>", duration)
	fmt.Fprintf(&b, "<p><strong>Type:</strong> %s</p>", html.EscapeString(meetingType))
	if location != "" {
		fmt.Fprintf(&b, "<p><strong>Location:</strong> %s</p>", html.EscapeString(location))
	}
	if joinURL != "" {
		u := html.EscapeString(joinURL)
		fmt.Fprintf(&b, `<p><strong>Meeting Link:</strong> <a href="%s">%s</a></p>`, u, u)
	}
	if notes != "" {
		fmt.Fprintf(&b, "<p><strong>Notes:</strong> %s</p>", html.EscapeString(notes))
	}
	return wrap(b.String())
}

func newMessageTemplate(senderName, jobTitle string) string {
	var b strings.Builder
	b.WriteString("<h2>New Message Received</h2>")
	fmt.Fprintf(&b, "<p>You have received a new message from %s regarding the application for %s.</p>",
		html.EscapeString(senderName), html.EscapeString(jobTitle))
	b.WriteString("<p>Login to your account to view and respond to the message.</p>")
	return wrap(b.String())
}

// PasswordResetTemplate renders the OTP email. Exported because the reset
// flow sends it directly through a Notifier: unlike workflow notifications,
// a delivery failure there must fail the request.
func PasswordResetTemplate(code string) string {
	var b strings.Builder
	b.WriteString("<h1>Password Reset Request</h1>")
	fmt.Fprintf(&b, "<p>Your OTP for password reset is: <strong>%s</strong></p>", html.EscapeString(code))
	b.WriteString("<p>This OTP will expire in 10 minutes.</p>")
	b.WriteString("<p>If you didn't request this, please ignore this email.</p>")
	return b.String()
}
