package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamdince/ShopifyAuditor/internal/core/notify"
)

func TestDiscordPayload(t *testing.T) {
	var got payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := &Notifier{NameValue: "discord", URL: server.URL, Username: "shopmon", Timeout: 2 * time.Second}
	event := notify.Event{Service: "storefront", Status: "FAIL", Summary: "sum", Details: "a; b", OccurredAt: time.Now()}
	require.NoError(t, n.Send(context.Background(), event))

	assert.Equal(t, "shopmon", got.Username)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "[FAIL] storefront", got.Embeds[0].Title)
	assert.Equal(t, 0xE74C3C, got.Embeds[0].Color)
	assert.Equal(t, "```\n- a\n- b\n```", got.Embeds[0].Fields[0].Value)
}

func TestDiscordDetailsTruncated(t *testing.T) {
	out := formatDetails(strings.Repeat("x", 2000))
	assert.Contains(t, out, "(truncated)")
	assert.Less(t, len(out), 1024)
}
