package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

// Summarize folds a run into one event carrying the worst status and every
// non-PASS result as "test: details" joined by "; ".
func Summarize(service, date string, results []check.Result, at time.Time) Event {
	counts := map[check.Status]int{}
	var lines []string
	for _, r := range results {
		counts[r.Status]++
		if r.Status == check.StatusPass {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", r.Status, r.Test, r.Details))
	}

	details := strings.Join(lines, "; ")
	if details == "" {
		details = "all checks passed"
	}
	status := check.Highest(results)
	return Event{
		Service: service,
		Status:  string(status),
		Summary: fmt.Sprintf("%s %s: %d pass, %d warn, %d fail", service, date,
			counts[check.StatusPass], counts[check.StatusWarn], counts[check.StatusFail]),
		Details: details,
		Labels: map[string]string{
			"date":   date,
			"status": string(status),
		},
		OccurredAt: at,
	}
}
