package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skill-bridge/server/pkg/message"
)

// MessageRepository stores application conversations.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) (*MessageRepository, error) {
	r := &MessageRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MessageRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS messages (
	id UUID PRIMARY KEY,
	application_id UUID NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
	sender_id TEXT NOT NULL,
	sender_type TEXT NOT NULL,
	receiver_id TEXT NOT NULL,
	receiver_type TEXT NOT NULL,
	content TEXT NOT NULL,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	attachments TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_application_created ON messages(application_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_messages_receiver_unread ON messages(receiver_id) WHERE NOT is_read;
`)
	return err
}

func (r *MessageRepository) Create(ctx context.Context, m message.Message) error {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO messages (id, application_id, sender_id, sender_type, receiver_id, receiver_type, content, is_read, attachments, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, m.ID, m.ApplicationID, m.SenderID, m.SenderType, m.ReceiverID, m.ReceiverType,
		m.Content, m.IsRead, attachments, m.CreatedAt)
	return err
}

func (r *MessageRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]message.Message, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, application_id, sender_id, sender_type, receiver_id, receiver_type, content, is_read, attachments, created_at
FROM messages WHERE application_id = $1 ORDER BY created_at ASC
`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []message.Message
	for rows.Next() {
		var m message.Message
		var created time.Time
		if err := rows.Scan(&m.ID, &m.ApplicationID, &m.SenderID, &m.SenderType, &m.ReceiverID,
			&m.ReceiverType, &m.Content, &m.IsRead, &m.Attachments, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = created.UTC()
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MessageRepository) MarkRead(ctx context.Context, applicationID uuid.UUID, receiverID string) error {
	_, err := r.pool.Exec(ctx, `
UPDATE messages SET is_read = TRUE
WHERE application_id = $1 AND receiver_id = $2 AND NOT is_read
`, applicationID, receiverID)
	return err
}

func (r *MessageRepository) CountUnread(ctx context.Context, receiverID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND NOT is_read
`, receiverID).Scan(&count)
	return count, err
}
