package slack

import (
	"context"
	"fmt"
	"strings"
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

type payload struct {
	Text        string       `json:"text,omitempty"`
	Attachments []attachment `json:"attachments,omitempty"`
}

type attachment struct {
	Color  string  `json:"color"`
	Blocks []block `json:"blocks"`
}

type block struct {
	Type   string      `json:"type"`
	Text   *blockText  `json:"text,omitempty"`
	Fields []blockText `json:"fields,omitempty"`
}

type blockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (n *Notifier) Name() string {
	return n.NameValue
}

func (n *Notifier) Send(ctx context.Context, event notify.Event) error {
	body := payload{
		Text: fmt.Sprintf("[%s] %s", event.Status, event.Summary),
		Attachments: []attachment{{
			Color: statusColor(event.Status),
			Blocks: []block{
				{
					Type: "header",
					Text: &blockText{Type: "plain_text", Text: fmt.Sprintf("[%s] %s", event.Status, event.Service)},
				},
				{
					Type: "section",
					Text: &blockText{Type: "mrkdwn", Text: event.Summary},
				},
				{
					Type: "section",
					Text: &blockText{Type: "mrkdwn", Text: formatDetails(event.Details)},
				},
				{
					Type: "context",
					Fields: []blockText{
						{Type: "mrkdwn", Text: fmt.Sprintf("*Status*: %s", event.Status)},
						{Type: "mrkdwn", Text: fmt.Sprintf("*Time*: %s", event.OccurredAt.Format(time.RFC3339))},
					},
				},
			},
		}},
	}
	return post.JSON(ctx, "slack", n.URL, n.Timeout, body)
}

func statusColor(status string) string {
	switch strings.ToUpper(status) {
	case "PASS":
		return "#2ECC71"
	case "WARN":
		return "#F1C40F"
	case "FAIL":
		return "#E74C3C"
	default:
		return "#95A5A6"
	}
}

func formatDetails(details string) string {
	list := format.DetailsList(details)
	if strings.TrimSpace(list) == "" {
		return "*Details*: n/a"
	}
	return "*Details*\n" + list
}
