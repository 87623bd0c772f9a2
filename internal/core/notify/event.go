package notify

import "time"

type Event struct {
	Service    string            `json:"service"`
	Status     string            `json:"status"`
	Summary    string            `json:"summary"`
	Details    string            `json:"details"`
	Labels     map[string]string `json:"labels,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
