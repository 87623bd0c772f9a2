// Package browsertest provides a scripted browser.Session for tests.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
)

// Page scripts what the fake browser sees at one URL.
type Page struct {
	Status int
	// FinalURL is the document URL after redirects; empty means the
	// requested URL.
	FinalURL   string
	NoResponse bool
	Err        error
	Title      string
	// Selectors lists the selector strings that match on this page.
	Selectors map[string]bool
	// SelectorErrs makes Exists fail for a selector.
	SelectorErrs map[string]error
	Hrefs        []string
	// ConsoleErrors are emitted when the page is loaded.
	ConsoleErrors []string
}

type Session struct {
	Pages      map[string]Page
	TitleErr   error
	HrefsErr   error
	PanicOnNav string

	mu       sync.Mutex
	current  string
	visited  []string
	timeouts []time.Duration
	console  []string
	closed   bool
}

func New(pages map[string]Page) *Session {
	return &Session{Pages: pages}
}

func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) (*browser.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.PanicOnNav != "" && url == s.PanicOnNav {
		panic("scripted panic at " + url)
	}
	s.visited = append(s.visited, url)
	s.timeouts = append(s.timeouts, timeout)
	page, ok := s.Pages[url]
	if !ok {
		return nil, fmt.Errorf("navigate %s: net::ERR_NAME_NOT_RESOLVED", url)
	}
	s.current = url
	s.console = append(s.console, page.ConsoleErrors...)
	if page.Err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, page.Err)
	}
	if page.NoResponse {
		return nil, nil
	}
	final := url
	if page.FinalURL != "" {
		final = page.FinalURL
	}
	return &browser.Response{URL: final, Status: page.Status}, nil
}

func (s *Session) Title(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.TitleErr != nil {
		return "", s.TitleErr
	}
	return s.Pages[s.current].Title, nil
}

func (s *Session) Exists(ctx context.Context, selector string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page := s.Pages[s.current]
	if err := page.SelectorErrs[selector]; err != nil {
		return false, err
	}
	return page.Selectors[selector], nil
}

func (s *Session) Hrefs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.HrefsErr != nil {
		return nil, s.HrefsErr
	}
	return append([]string(nil), s.Pages[s.current].Hrefs...), nil
}

func (s *Session) ConsoleErrors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.console...)
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Session) Visited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visited...)
}

func (s *Session) Timeouts() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.timeouts...)
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Launcher hands out a prepared Session or fails.
type Launcher struct {
	Session *Session
	Err     error
	Calls   int
}

func (l *Launcher) Launch(ctx context.Context) (browser.Session, error) {
	l.Calls++
	if l.Err != nil {
		return nil, l.Err
	}
	if l.Session == nil {
		return nil, errors.New("no session scripted")
	}
	return l.Session, nil
}

// Timeout is what a navigation past its deadline returns.
var Timeout = fmt.Errorf("waiting for page: %w", context.DeadlineExceeded)
