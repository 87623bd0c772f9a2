package post

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSendsBody(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := JSON(context.Background(), "webhook", srv.URL, time.Second, map[string]string{"status": "FAIL"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "FAIL"}, got)
}

func TestJSONErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := JSON(context.Background(), "slack", srv.URL, time.Second, struct{}{})
	require.Error(t, err)
	assert.Equal(t, "slack status 400: invalid_payload", err.Error())
}

func TestJSONEmptyURL(t *testing.T) {
	err := JSON(context.Background(), "discord", "  ", time.Second, nil)
	assert.EqualError(t, err, "discord url is empty")
}
