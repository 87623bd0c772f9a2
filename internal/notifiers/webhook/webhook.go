package webhook

import (
	"context"
	"time"

	"github.com/adamdince/ShopifyAuditor/internal/core/notify"
	"github.com/adamdince/ShopifyAuditor/internal/notifiers/format"
	"github.com/adamdince/ShopifyAuditor/internal/notifiers/post"
)

type Notifier struct {
	NameValue string
	URL       string
	Timeout   time.Duration
}

func (n *Notifier) Name() string {
	return n.NameValue
}

func (n *Notifier) Send(ctx context.Context, event notify.Event) error {
	event.Details = format.DetailsList(event.Details)
	return post.JSON(ctx, "webhook", n.URL, n.Timeout, event)
}
