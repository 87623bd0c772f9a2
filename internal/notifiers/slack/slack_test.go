package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamdince/ShopifyAuditor/internal/core/notify"
)

type slackPayload struct {
	Text        string `json:"text"`
	Attachments []struct {
		Color  string `json:"color"`
		Blocks []struct {
			Type string `json:"type"`
		} `json:"blocks"`
	} `json:"attachments"`
}

func TestSlackPayload(t *testing.T) {
	var got slackPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := &Notifier{NameValue: "slack", URL: server.URL, Timeout: 2 * time.Second}
	event := notify.Event{Service: "storefront", Status: "WARN", Summary: "sum", Details: "a; b", OccurredAt: time.Now()}
	require.NoError(t, n.Send(context.Background(), event))

	assert.Equal(t, "[WARN] sum", got.Text)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "#F1C40F", got.Attachments[0].Color)
	assert.Len(t, got.Attachments[0].Blocks, 4)
}

func TestFormatDetails(t *testing.T) {
	assert.Equal(t, "*Details*\n- x", formatDetails("x"))
	assert.Equal(t, "*Details*\nn/a", formatDetails(""))
}
