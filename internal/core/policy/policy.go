package policy

import (
	"context"

	"github.com/adamdince/ShopifyAuditor/internal/core/notify"
)

type Policy interface {
	Evaluate(ctx context.Context, event notify.Event) (*notify.Event, error)
}
