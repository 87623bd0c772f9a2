package store

import (
	"context"

	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

// Store persists the results of one run.
type Store interface {
	Name() string
	Save(ctx context.Context, date string, results []check.Result) error
}
