package jserrors

import (
	"context"
	"fmt"
	"strings"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

const (
	TestName    = "JavaScript Errors"
	sampleCount = 2
)

// Checker summarizes console errors collected over the whole run, so it
// must run after every navigating check.
type Checker struct{}

func (Checker) Name() string {
	return TestName
}

func (Checker) Check(_ context.Context, sess browser.Session, stamp check.Stamp) ([]check.Result, error) {
	errs := sess.ConsoleErrors()
	if len(errs) == 0 {
		return []check.Result{stamp.Pass(TestName, "No JavaScript errors detected")}, nil
	}
	sample := errs
	if len(sample) > sampleCount {
		sample = sample[:sampleCount]
	}
	details := fmt.Sprintf("%d JavaScript errors found: %s", len(errs), strings.Join(sample, ", "))
	return []check.Result{stamp.Warn(TestName, details)}, nil
}
