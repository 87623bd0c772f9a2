package notify

import "context"

// Notifier delivers a run summary to one destination. Send is best effort;
// the caller only logs its error.
type Notifier interface {
	Name() string
	Send(ctx context.Context, event Event) error
}
