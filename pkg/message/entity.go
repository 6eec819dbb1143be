package message

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Participant types on either end of a message.
const (
	TypeRecruiter = "recruiter"
	TypeCandidate = "candidate"
)

var (
	ErrNotFound        = errors.New("message not found")
	ErrForbidden       = errors.New("not authorized to send messages for this application")
	ErrEmptyContent    = errors.New("message content cannot be empty")
	ErrInvalidReceiver = errors.New("invalid receiverType, must be either recruiter or candidate")
	ErrMissingFields   = errors.New("missing required fields: applicationId, content, receiverId and receiverType are required")
)

// Message is one entry of an application's conversation. Sender and receiver
// ids mix company UUIDs and candidate subjects, so both are strings.
type Message struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	SenderID      string
	SenderType    string
	ReceiverID    string
	ReceiverType  string
	Content       string
	IsRead        bool
	Attachments   []string
	CreatedAt     time.Time
}

type Repository interface {
	Create(ctx context.Context, m Message) error
	// ListByApplication returns the conversation oldest first.
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Message, error)
	// MarkRead flags every unread message addressed to the receiver within
	// the application.
	MarkRead(ctx context.Context, applicationID uuid.UUID, receiverID string) error
	CountUnread(ctx context.Context, receiverID string) (int, error)
}
