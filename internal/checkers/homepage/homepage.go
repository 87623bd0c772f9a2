package homepage

import (
	"context"
	"fmt"
	"time"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

const TestName = "Homepage Load"

// Element is one DOM feature probed on the homepage. Selectors are
// alternatives; the first one that matches wins.
type Element struct {
	Name      string   `yaml:"name" mapstructure:"name"`
	Selectors []string `yaml:"selectors" mapstructure:"selectors"`
}

var DefaultElements = []Element{
	{Name: "Navigation Menu", Selectors: []string{"nav", "header nav", "[role='navigation']", ".site-nav", ".main-menu"}},
	{Name: "Shop/Collections Link", Selectors: []string{"a[href*='/collections']", "a[href*='/shop']", "a[href*='/products']"}},
	{Name: "Cart Link", Selectors: []string{"a[href*='/cart']", ".cart-link", "[data-cart]", ".site-header__cart"}},
	{Name: "Search Functionality", Selectors: []string{"input[type='search']", "input[name='q']", ".search-input", "[data-search]"}},
}

type Checker struct {
	URL         string
	Timeout     time.Duration
	SettleDelay time.Duration
	Elements    []Element
	Titles      check.TitleMatcher
}

func (c *Checker) Name() string {
	return "Homepage"
}

func (c *Checker) Check(ctx context.Context, sess browser.Session, stamp check.Stamp) ([]check.Result, error) {
	results := []check.Result{c.load(ctx, sess, stamp)}

	if err := browser.Settle(ctx, c.SettleDelay); err != nil {
		return results, err
	}

	elements := c.Elements
	if elements == nil {
		elements = DefaultElements
	}
	for _, el := range elements {
		results = append(results, probe(ctx, sess, stamp, el))
	}
	return results, nil
}

func (c *Checker) load(ctx context.Context, sess browser.Session, stamp check.Stamp) check.Result {
	resp, err := sess.Navigate(ctx, c.URL, c.Timeout)
	if err != nil {
		return stamp.Fail(TestName, "Navigation failed: "+err.Error())
	}
	if resp == nil {
		return stamp.Fail(TestName, "No response received")
	}
	if resp.Status != 200 {
		return stamp.Fail(TestName, fmt.Sprintf("HTTP status %d", resp.Status))
	}

	title, err := sess.Title(ctx)
	if err != nil {
		return stamp.Warn(TestName, fmt.Sprintf("Status: %d, title unavailable: %v", resp.Status, err))
	}
	if c.Titles.IsError(title) {
		return stamp.Fail(TestName, "Error page detected: "+title)
	}
	return stamp.Pass(TestName, fmt.Sprintf("Status: %d, Title: %s", resp.Status, title))
}

// probe never fails the run: a missing element or a broken query is a WARN.
func probe(ctx context.Context, sess browser.Session, stamp check.Stamp, el Element) check.Result {
	var firstErr error
	for _, sel := range el.Selectors {
		found, err := sess.Exists(ctx, sel)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if found {
			return stamp.Pass(el.Name, el.Name+" found")
		}
	}
	if firstErr != nil {
		return stamp.Warn(el.Name, fmt.Sprintf("Error checking %s: %v", el.Name, firstErr))
	}
	return stamp.Warn(el.Name, el.Name+" not found")
}
