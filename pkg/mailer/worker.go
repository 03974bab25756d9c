package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadMessage marks a payload that will never deliver; it should be dropped, not requeued
var ErrBadMessage = errors.New("bad listing event")

// Notifier turns queued listing events into emails
type Notifier struct {
	Sender    Sender
	Recipient string
	AppName   string
}

// Handle decodes one queue message and delivers it. Errors wrapping
// ErrBadMessage are permanent; any other error is worth a retry.
func (n *Notifier) Handle(ctx context.Context, body []byte) error {
	var ev ListingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if ev.Type == "" || ev.ListingID == "" {
		return fmt.Errorf("%w: missing type or listing id", ErrBadMessage)
	}
	job, err := ListingEventEmail(ev, n.Recipient, n.AppName)
	if err != nil {
		return fmt.Errorf("%w: render: %v", ErrBadMessage, err)
	}
	return n.Sender.Send(ctx, job)
}
