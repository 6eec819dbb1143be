package notify

import (
	"context"
	"log"
)

// LogNotifier stands in when SMTP is not configured: it prints the outgoing
// email instead of delivering it. Useful in dev and tests.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("notify: would send %q to %s (SMTP not configured)", subject, to)
	return nil
}
