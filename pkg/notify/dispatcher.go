package notify

import (
	"context"
	"log"
	"time"
)

// Dispatcher is the post-persist hook for workflow notifications. It renders
// the event and hands it to the Notifier under a short timeout. Every failure
// is logged and swallowed: a missed email must never fail or roll back the
// mutation that triggered it.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
}

func NewDispatcher(n Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{notifier: n, timeout: timeout}
}

// Dispatch delivers the event best-effort. It intentionally has no error
// return.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) {
	if d == nil || d.notifier == nil {
		return
	}
	if e.Recipient() == "" {
		log.Printf("notify: dropping %T event with empty recipient", e)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	if err := d.notifier.Send(ctx, e.Recipient(), e.Subject(), e.HTML()); err != nil {
		log.Printf("notify: send %T to %s failed: %v", e, e.Recipient(), err)
	}
}
