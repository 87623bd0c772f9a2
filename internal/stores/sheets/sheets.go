package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

const (
	DefaultRange    = "Sheet1!A:E"
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	ErrMissingSheetID     = errors.New("sheet id is not configured")
	ErrMissingCredentials = errors.New("service account credentials are not configured")
)

// Store appends every result as a row. It never reads the sheet first, so
// re-running on the same day adds the rows again.
type Store struct {
	SheetID         string
	Range           string
	CredentialsJSON string
	Timeout         time.Duration

	// Endpoint and HTTPClient override the Google API target.
	Endpoint   string
	HTTPClient *http.Client
}

func (s *Store) Name() string {
	return "google-sheets"
}

func (s *Store) Save(ctx context.Context, date string, results []check.Result) error {
	if strings.TrimSpace(s.SheetID) == "" {
		return ErrMissingSheetID
	}
	if strings.TrimSpace(s.CredentialsJSON) == "" {
		return ErrMissingCredentials
	}
	creds, err := google.CredentialsFromJSON(ctx, []byte(s.CredentialsJSON), sheets.SpreadsheetsScope)
	if err != nil {
		return fmt.Errorf("parse credentials: %w", err)
	}
	if len(results) == 0 {
		return nil
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	opts := []option.ClientOption{option.WithCredentials(creds)}
	if s.HTTPClient != nil {
		opts = []option.ClientOption{option.WithHTTPClient(s.HTTPClient)}
	}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	rng := s.Range
	if rng == "" {
		rng = DefaultRange
	}
	_, err = svc.Spreadsheets.Values.Append(s.SheetID, rng, &sheets.ValueRange{Values: Rows(results)}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %d rows: %w", len(results), err)
	}
	return nil
}

// Rows lays results out in sheet column order: date, test, status, details, timestamp.
func Rows(results []check.Result) [][]interface{} {
	rows := make([][]interface{}, 0, len(results))
	for _, r := range results {
		rows = append(rows, []interface{}{
			r.Date,
			r.Test,
			string(r.Status),
			r.Details,
			r.Timestamp.UTC().Format(timestampLayout),
		})
	}
	return rows
}
