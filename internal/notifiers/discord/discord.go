package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adamdince/ShopifyAuditor/internal/core/notify"
	"github.com/adamdince/ShopifyAuditor/internal/notifiers/format"
	"github.com/adamdince/ShopifyAuditor/internal/notifiers/post"
)

// Discord rejects embed field values over 1024 characters.
const maxFieldLen = 900

type Notifier struct {
	NameValue string
	URL       string
	Username  string
	Timeout   time.Duration
}

type payload struct {
	Username string  `json:"username,omitempty"`
	Embeds   []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

func (n *Notifier) Name() string {
	return n.NameValue
}

func (n *Notifier) Send(ctx context.Context, event notify.Event) error {
	body := payload{
		Username: n.Username,
		Embeds: []embed{{
			Title:       fmt.Sprintf("[%s] %s", event.Status, event.Service),
			Description: event.Summary,
			Color:       statusColor(event.Status),
			Fields: []embedField{
				{Name: "Details", Value: formatDetails(event.Details)},
			},
			Timestamp: event.OccurredAt.Format(time.RFC3339),
		}},
	}
	return post.JSON(ctx, "discord", n.URL, n.Timeout, body)
}

func statusColor(status string) int {
	switch strings.ToUpper(status) {
	case "PASS":
		return 0x2ECC71
	case "WARN":
		return 0xF1C40F
	case "FAIL":
		return 0xE74C3C
	default:
		return 0x95A5A6
	}
}

func formatDetails(details string) string {
	list := format.DetailsList(details)
	if len(list) > maxFieldLen {
		list = list[:maxFieldLen] + "\n- ... (truncated)"
	}
	return "```\n" + list + "\n```"
}
