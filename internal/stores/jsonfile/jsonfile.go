package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

const filePrefix = "monitoring-results-"

// Store writes one pretty-printed JSON array per calendar date. Saving the
// same date twice replaces the earlier file.
type Store struct {
	Dir string
}

func (s *Store) Name() string {
	return "local-file"
}

func (s *Store) Path(date string) string {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filePrefix+date+".json")
}

func (s *Store) Save(ctx context.Context, date string, results []check.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if results == nil {
		results = []check.Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	data = append(data, '\n')

	path := s.Path(date)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads back a file written by Save.
func Load(path string) ([]check.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results []check.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return results, nil
}
