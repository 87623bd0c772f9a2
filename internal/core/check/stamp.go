package check

import "time"

// Stamp creates results for one run. Date is fixed at run start, Now is
// called for every result.
type Stamp struct {
	Date string
	Now  func() time.Time
}

func NewStamp(start time.Time, now func() time.Time) Stamp {
	if now == nil {
		now = time.Now
	}
	return Stamp{Date: start.Format(DateLayout), Now: now}
}

func (s Stamp) New(test string, status Status, details string) Result {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Result{
		Date:      s.Date,
		Test:      test,
		Status:    status,
		Details:   details,
		Timestamp: now().UTC().Truncate(time.Millisecond),
	}
}

func (s Stamp) Pass(test, details string) Result {
	return s.New(test, StatusPass, details)
}

func (s Stamp) Warn(test, details string) Result {
	return s.New(test, StatusWarn, details)
}

func (s Stamp) Fail(test, details string) Result {
	return s.New(test, StatusFail, details)
}
