package browser

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Response is the main-document response of a navigation.
type Response struct {
	URL    string
	Status int
}

// Session is one browser page reused by every check of a run.
// Implementations do not support concurrent navigation.
type Session interface {
	// Navigate loads url and waits for the document, bounded by timeout.
	// A nil Response with a nil error means the browser got no response.
	Navigate(ctx context.Context, url string, timeout time.Duration) (*Response, error)
	Title(ctx context.Context) (string, error)
	// Exists reports whether selector (a CSS selector list) matches anything.
	Exists(ctx context.Context, selector string) (bool, error)
	// Hrefs returns the raw href attribute of every anchor on the page;
	// relative ones resolve against the URL of the loaded document.
	Hrefs(ctx context.Context) ([]string, error)
	// ConsoleErrors returns every console error seen since launch.
	ConsoleErrors() []string
	Close() error
}

type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// timeoutMarkers match Go and Chrome wording, e.g. net::ERR_CONNECTION_TIMED_OUT.
var timeoutMarkers = []string{"timeout", "timed out", "timed_out"}

// IsTimeout reports whether a navigation error was caused by its deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range timeoutMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Settle pauses for d or until ctx is done.
func Settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
