// Package delivery provides the outbound notification capability.
// Delivery is fire-and-forget: callers persist their own state first and
// treat a send failure as a logged, non-fatal event.
package delivery

import "context"

// Sender forwards a notification message to an external channel.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// Nop is a Sender that discards messages. Used when no delivery channel
// is configured and in tests.
type Nop struct{}

func (Nop) Send(context.Context, string, string) error { return nil }
