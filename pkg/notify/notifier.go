package notify

import "context"

// Notifier delivers a single email. Implementations are at-most-once: no
// queueing, no retries. Callers decide whether a failure matters.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
