package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

func sample() []check.Result {
	at := time.Date(2026, 10, 14, 6, 30, 0, 125_000_000, time.UTC)
	return []check.Result{
		{Date: "2026-10-14", Test: "Homepage Load", Status: check.StatusPass, Details: "Status: 200, Title: Home – Store", Timestamp: at},
		{Date: "2026-10-14", Test: "Cart Page", Status: check.StatusWarn, Details: "Page loading slowly (timeout)", Timestamp: at.Add(time.Second)},
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := &Store{Dir: filepath.Join(t.TempDir(), "results")}
	require.NoError(t, s.Save(context.Background(), "2026-10-14", sample()))

	path := s.Path("2026-10-14")
	assert.Equal(t, "monitoring-results-2026-10-14.json", filepath.Base(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n"), "pretty printed array")
	assert.Contains(t, text, `"timestamp": "2026-10-14T06:30:00.125Z"`)
	assert.Contains(t, text, `"status": "WARN"`)
}

func TestSaveOverwritesSameDay(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	require.NoError(t, s.Save(context.Background(), "2026-10-14", sample()))
	require.NoError(t, s.Save(context.Background(), "2026-10-14", sample()[:1]))

	got, err := Load(s.Path("2026-10-14"))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveEmptyWritesArray(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	require.NoError(t, s.Save(context.Background(), "2026-10-14", nil))
	raw, err := os.ReadFile(s.Path("2026-10-14"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestDefaultDir(t *testing.T) {
	s := &Store{}
	assert.Equal(t, "monitoring-results-2026-10-14.json", s.Path("2026-10-14"))
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
