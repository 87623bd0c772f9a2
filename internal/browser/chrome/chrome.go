package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
)

// DefaultUserAgent mimics a current desktop Chrome so storefront bot
// protection serves the normal page.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

// DefaultQueryTimeout bounds title, selector and link reads on a loaded page.
const DefaultQueryTimeout = 10 * time.Second

type Launcher struct {
	UserAgent    string
	Headless     bool
	NoSandbox    bool
	ExecPath     string
	QueryTimeout time.Duration
	Logf         func(format string, args ...any)
}

func (l *Launcher) Launch(ctx context.Context) (browser.Session, error) {
	ua := l.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.UserAgent(ua), chromedp.WindowSize(1366, 768))
	if !l.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if l.NoSandbox {
		opts = append(opts,
			chromedp.NoSandbox,
			chromedp.Flag("disable-setuid-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
	}
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	var ctxOpts []chromedp.ContextOption
	if l.Logf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithErrorf(l.Logf))
	}
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, ctxOpts...)

	s := &Session{ctx: tabCtx, cancelTab: cancelTab, cancelAlloc: cancelAlloc, queryTimeout: l.QueryTimeout}
	chromedp.ListenTarget(tabCtx, s.onEvent)

	// The first Run starts the browser process and opens the page.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	if c := chromedp.FromContext(tabCtx); c != nil && c.Target != nil {
		s.mu.Lock()
		s.mainFrame = string(c.Target.TargetID)
		s.mu.Unlock()
	}
	return s, nil
}

type Session struct {
	ctx          context.Context
	cancelTab    context.CancelFunc
	cancelAlloc  context.CancelFunc
	queryTimeout time.Duration

	mu sync.Mutex
	// mainFrame is the top frame id, which Chrome makes equal to the target id.
	mainFrame     string
	consoleErrors []string
	lastDocument  *browser.Response
	closeOnce     sync.Once
}

func (s *Session) onEvent(ev any) {
	switch e := ev.(type) {
	case *runtime.EventConsoleAPICalled:
		if e.Type == runtime.APITypeError {
			s.recordConsole(e)
		}
	case *network.EventResponseReceived:
		s.recordDocument(e)
	}
}

// recordDocument keeps the latest top-level document response so a
// navigation that Chrome reports as failed can still yield its status.
func (s *Session) recordDocument(e *network.EventResponseReceived) {
	if e.Type != network.ResourceTypeDocument || e.Response == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mainFrame != "" && string(e.FrameID) != s.mainFrame {
		return
	}
	s.lastDocument = &browser.Response{URL: e.Response.URL, Status: int(e.Response.Status)}
}

func (s *Session) takeDocument() *browser.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.lastDocument
	s.lastDocument = nil
	return r
}

func (s *Session) recordConsole(e *runtime.EventConsoleAPICalled) {
	parts := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		if text := remoteObjectText(arg); text != "" {
			parts = append(parts, text)
		}
	}
	s.mu.Lock()
	s.consoleErrors = append(s.consoleErrors, strings.Join(parts, " "))
	s.mu.Unlock()
}

func remoteObjectText(obj *runtime.RemoteObject) string {
	if obj == nil {
		return ""
	}
	if len(obj.Value) > 0 {
		raw := string(obj.Value)
		if unquoted, err := strconv.Unquote(raw); err == nil {
			return unquoted
		}
		return raw
	}
	if obj.Description != "" {
		return obj.Description
	}
	return string(obj.UnserializableValue)
}

// scoped derives from the tab context so actions run on this page, and
// stops when either the tab or the caller's context ends.
func (s *Session) scoped(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	var (
		c      context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		c, cancel = context.WithTimeout(s.ctx, timeout)
	} else {
		c, cancel = context.WithCancel(s.ctx)
	}
	stop := context.AfterFunc(ctx, cancel)
	return c, func() {
		stop()
		cancel()
	}
}

func (s *Session) query(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.queryTimeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return s.scoped(ctx, timeout)
}

func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) (*browser.Response, error) {
	navCtx, cancel := s.scoped(ctx, timeout)
	defer cancel()

	s.takeDocument()
	resp, err := chromedp.RunResponse(navCtx, chromedp.Navigate(url))
	var got *browser.Response
	if resp != nil {
		got = &browser.Response{URL: resp.URL, Status: int(resp.Status)}
	}
	return navigationResult(url, got, s.takeDocument(), err, navCtx.Err(), ctx.Err())
}

// navigationResult settles what a navigation produced. Chrome fails the
// load of an empty error page (net::ERR_HTTP_RESPONSE_CODE_FAILURE) even
// though a response arrived; that response wins over the load error.
func navigationResult(url string, resp, document *browser.Response, err, navErr, callerErr error) (*browser.Response, error) {
	if err == nil {
		if resp == nil {
			return document, nil
		}
		return resp, nil
	}
	if navErr != nil && callerErr == nil {
		return nil, fmt.Errorf("navigate %s: %w", url, navErr)
	}
	if navErr == nil && callerErr == nil {
		if resp != nil {
			return resp, nil
		}
		if document != nil {
			return document, nil
		}
	}
	return nil, fmt.Errorf("navigate %s: %w", url, err)
}

func (s *Session) Title(ctx context.Context) (string, error) {
	c, cancel := s.query(ctx)
	defer cancel()

	var title string
	if err := chromedp.Run(c, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	return title, nil
}

func (s *Session) Exists(ctx context.Context, selector string) (bool, error) {
	c, cancel := s.query(ctx)
	defer cancel()

	quoted, err := json.Marshal(selector)
	if err != nil {
		return false, err
	}
	var found bool
	expr := fmt.Sprintf("document.querySelector(%s) !== null", quoted)
	if err := chromedp.Run(c, chromedp.Evaluate(expr, &found)); err != nil {
		return false, fmt.Errorf("query %q: %w", selector, err)
	}
	return found, nil
}

const hrefsScript = `Array.from(document.querySelectorAll('a[href]')).map(a => a.getAttribute('href') || '')`

func (s *Session) Hrefs(ctx context.Context) ([]string, error) {
	c, cancel := s.query(ctx)
	defer cancel()

	var hrefs []string
	if err := chromedp.Run(c, chromedp.Evaluate(hrefsScript, &hrefs)); err != nil {
		return nil, fmt.Errorf("collect links: %w", err)
	}
	return hrefs, nil
}

func (s *Session) ConsoleErrors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.consoleErrors))
	copy(out, s.consoleErrors)
	return out
}

func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = chromedp.Cancel(s.ctx)
		s.cancelTab()
		s.cancelAlloc()
	})
	return err
}
