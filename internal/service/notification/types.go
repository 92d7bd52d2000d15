package notification

import "context"

// Notifier sends a plain text message to one fixed chat destination.
// Delivery is fire-and-forget; callers log transport errors and move on.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
