package check

import "time"

type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// DateLayout is the calendar date format shared by every result of a run.
const DateLayout = "2006-01-02"

type Result struct {
	Date      string    `json:"date"`
	Test      string    `json:"test"`
	Status    Status    `json:"status"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// Severity orders statuses so the worst one of a run can be picked.
func (s Status) Severity() int {
	switch s {
	case StatusFail:
		return 2
	case StatusWarn:
		return 1
	default:
		return 0
	}
}

func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPass, StatusWarn, StatusFail:
		return Status(raw), true
	}
	return "", false
}
