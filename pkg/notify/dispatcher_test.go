package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	sent []string
	err  error
}

func (n *stubNotifier) Send(_ context.Context, to, _, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, to)
	return nil
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	event := ApplicationStatusChanged{Email: "ada@example.com", JobTitle: "SRE", NewStatus: "hired"}

	t.Run("delivers", func(t *testing.T) {
		n := &stubNotifier{}
		NewDispatcher(n, time.Second).Dispatch(ctx, event)
		assert.Equal(t, []string{"ada@example.com"}, n.sent)
	})

	t.Run("swallows delivery errors", func(t *testing.T) {
		n := &stubNotifier{err: errors.New("smtp down")}
		// Must not panic or propagate anything.
		NewDispatcher(n, time.Second).Dispatch(ctx, event)
	})

	t.Run("drops empty recipients", func(t *testing.T) {
		n := &stubNotifier{}
		NewDispatcher(n, time.Second).Dispatch(ctx, ApplicationStatusChanged{JobTitle: "SRE"})
		assert.Empty(t, n.sent)
	})

	t.Run("nil dispatcher and nil notifier are safe", func(t *testing.T) {
		var d *Dispatcher
		d.Dispatch(ctx, event)
		NewDispatcher(nil, 0).Dispatch(ctx, event)
	})
}

func TestTemplatesEscapeUserContent(t *testing.T) {
	e := ApplicationStatusChanged{
		Email:     "ada@example.com",
		JobTitle:  `<script>alert("x")</script>`,
		NewStatus: "reviewed",
	}
	body := e.HTML()
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "reviewed")

	m := MessageReceived{Email: "a@b.c", SenderName: "Eve & Co", JobTitle: "Dev"}
	assert.Contains(t, m.HTML(), "Eve &amp; Co")
}

func TestInterviewScheduledTemplate(t *testing.T) {
	at := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	e := InterviewScheduled{
		Email:       "ada@example.com",
		ScheduledAt: at,
		Duration:    45,
		MeetingType: "online",
		JoinURL:     "https://meet.example.com/slot",
		Notes:       "bring questions",
	}
	body := e.HTML()
	require.Contains(t, body, "45 minutes")
	assert.Contains(t, body, "https://meet.example.com/slot")
	assert.Contains(t, body, "bring questions")
	assert.Contains(t, body, "Monday, 2 March 2026")

	// Optional sections disappear when empty.
	e.JoinURL, e.Notes = "", ""
	body = e.HTML()
	assert.NotContains(t, body, "Meeting Link")
	assert.NotContains(t, body, "Notes")
}
