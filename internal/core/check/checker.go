package check

import (
	"context"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
)

// Checker runs one step of the pipeline against the shared session.
// Partial results are kept even when an error is returned.
type Checker interface {
	Name() string
	Check(ctx context.Context, sess browser.Session, stamp Stamp) ([]Result, error)
}
