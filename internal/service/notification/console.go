package notification

import (
	"context"
	"fmt"
)

type consoleNotifier struct {
}

// NewConsoleNotifier prints messages to stdout, for local runs and as the
// default before a real channel is wired in.
func NewConsoleNotifier() Notifier {
	return consoleNotifier{}
}

func (c consoleNotifier) Send(ctx context.Context, text string) error {
	fmt.Println(text)
	return nil
}
