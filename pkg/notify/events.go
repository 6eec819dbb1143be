package notify

import "time"

// Event is a domain occurrence that warrants an email. Use cases emit events
// after their mutation is persisted; rendering stays here so the business
// packages never touch HTML.
type Event interface {
	Recipient() string
	Subject() string
	HTML() string
}

// ApplicationStatusChanged is emitted when a recruiter moves an application
// to a new status.
type ApplicationStatusChanged struct {
	Email     string
	JobTitle  string
	NewStatus string
}

func (e ApplicationStatusChanged) Recipient() string { return e.Email }
func (e ApplicationStatusChanged) Subject() string {
	return "Application Status Update - Skill-Bridge"
}
func (e ApplicationStatusChanged) HTML() string {
	return statusUpdateTemplate(e.JobTitle, e.NewStatus)
}

// InterviewScheduled is emitted when a company books an interview slot for a
// candidate's application.
type InterviewScheduled struct {
	Email       string
	ScheduledAt time.Time
	Duration    int
	MeetingType string
	Location    string
	JoinURL     string
	Notes       string
}

func (e InterviewScheduled) Recipient() string { return e.Email }
func (e InterviewScheduled) Subject() string   { return "Interview Scheduled - Skill-Bridge" }
func (e InterviewScheduled) HTML() string {
	return interviewScheduledTemplate(e.ScheduledAt, e.Duration, e.MeetingType, e.Location, e.JoinURL, e.Notes)
}

// MessageReceived is emitted to the receiving side of an application
// conversation.
type MessageReceived struct {
	Email      string
	SenderName string
	JobTitle   string
}

func (e MessageReceived) Recipient() string { return e.Email }
func (e MessageReceived) Subject() string   { return "New Message Received - Skill-Bridge" }
func (e MessageReceived) HTML() string      { return newMessageTemplate(e.SenderName, e.JobTitle) }
