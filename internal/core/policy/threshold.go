package policy

import (
	"context"

	"github.com/adamdince/ShopifyAuditor/internal/core/check"
	"github.com/adamdince/ShopifyAuditor/internal/core/notify"
)

// ThresholdPolicy lets a run summary through when its status is at least
// MinStatus. There is no cooldown: every run is a separate process.
type ThresholdPolicy struct {
	MinStatus check.Status
}

func NewThresholdPolicy(min check.Status) *ThresholdPolicy {
	if _, ok := check.ParseStatus(string(min)); !ok {
		min = check.StatusFail
	}
	return &ThresholdPolicy{MinStatus: min}
}

func (p *ThresholdPolicy) Evaluate(ctx context.Context, event notify.Event) (*notify.Event, error) {
	_ = ctx
	status, ok := check.ParseStatus(event.Status)
	if !ok {
		return nil, nil
	}
	if status.Severity() < p.MinStatus.Severity() {
		return nil, nil
	}
	return &event, nil
}
