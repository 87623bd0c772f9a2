package pages

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

// Page is a relative path checked on every run.
type Page struct {
	Name string `yaml:"name" mapstructure:"name"`
	Path string `yaml:"path" mapstructure:"path"`
}

var DefaultPages = []Page{
	{Name: "Collections Page", Path: "/collections"},
	{Name: "About Page", Path: "/pages/about"},
	{Name: "Contact Page", Path: "/pages/contact"},
	{Name: "Cart Page", Path: "/cart"},
	{Name: "Login Page", Path: "/account/login"},
}

const titleLimit = 50

type Checker struct {
	BaseURL string
	Timeout time.Duration
	Pages   []Page
	Titles  check.TitleMatcher
}

func (c *Checker) Name() string {
	return "Key Pages"
}

func (c *Checker) Check(ctx context.Context, sess browser.Session, stamp check.Stamp) ([]check.Result, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	pages := c.Pages
	if pages == nil {
		pages = DefaultPages
	}
	results := make([]check.Result, 0, len(pages))
	for _, p := range pages {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		target := base.ResolveReference(&url.URL{Path: p.Path}).String()
		results = append(results, c.checkPage(ctx, sess, stamp, p.Name, target))
	}
	return results, nil
}

func (c *Checker) checkPage(ctx context.Context, sess browser.Session, stamp check.Stamp, name, target string) check.Result {
	resp, err := sess.Navigate(ctx, target, c.Timeout)
	if err != nil {
		if browser.IsTimeout(err) {
			return stamp.Warn(name, "Page loading slowly (timeout)")
		}
		return stamp.Fail(name, "Navigation failed: "+err.Error())
	}
	if resp == nil {
		return stamp.Fail(name, "No response received")
	}

	switch resp.Status {
	case 200:
		title, err := sess.Title(ctx)
		if err != nil {
			return stamp.Warn(name, fmt.Sprintf("Status: 200, title unavailable: %v", err))
		}
		if c.Titles.IsError(title) {
			return stamp.Fail(name, "Page shows error: "+title)
		}
		return stamp.Pass(name, fmt.Sprintf("Status: 200, Title: %s", check.Truncate(strings.TrimSpace(title), titleLimit)))
	case 404:
		return stamp.Warn(name, "Page not found (404) - may not exist yet")
	default:
		return stamp.Fail(name, fmt.Sprintf("HTTP status %d", resp.Status))
	}
}
