package links

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

const (
	TestName          = "Link Check"
	DefaultSampleSize = 5
)

type Checker struct {
	BaseURL     string
	PageTimeout time.Duration
	LinkTimeout time.Duration
	SettleDelay time.Duration
	SampleSize  int
}

func (c *Checker) Name() string {
	return TestName
}

func (c *Checker) Check(ctx context.Context, sess browser.Session, stamp check.Stamp) ([]check.Result, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	resp, err := sess.Navigate(ctx, c.BaseURL, c.PageTimeout)
	if err != nil {
		return []check.Result{stamp.Fail(TestName, "Could not load homepage: "+err.Error())}, nil
	}
	// Relative hrefs belong to the document the root redirected to.
	if resp != nil && resp.URL != "" {
		if doc, err := url.Parse(resp.URL); err == nil && doc.IsAbs() {
			base = doc
		}
	}
	if err := browser.Settle(ctx, c.SettleDelay); err != nil {
		return nil, err
	}

	hrefs, err := sess.Hrefs(ctx)
	if err != nil {
		return []check.Result{stamp.Warn(TestName, "Could not collect links: "+err.Error())}, nil
	}

	size := c.SampleSize
	if size <= 0 {
		size = DefaultSampleSize
	}
	sample := Internal(base, hrefs, size)
	if len(sample) == 0 {
		return []check.Result{stamp.Warn(TestName, "No internal links found")}, nil
	}

	broken := 0
	for _, link := range sample {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := sess.Navigate(ctx, link, c.LinkTimeout)
		if err != nil || resp == nil || resp.Status >= 400 {
			broken++
		}
	}

	if broken > 0 {
		return []check.Result{stamp.Warn(TestName, fmt.Sprintf("%d of %d tested links are broken", broken, len(sample)))}, nil
	}
	return []check.Result{stamp.Pass(TestName, fmt.Sprintf("All %d tested links working properly", len(sample)))}, nil
}

var skippedSchemes = []string{"mailto:", "tel:", "javascript:"}

// Internal resolves hrefs against base and returns, in page order, at most
// limit links on base's registered domain.
func Internal(base *url.URL, hrefs []string, limit int) []string {
	baseDomain := registeredDomain(base.Hostname())
	var out []string
	for _, raw := range hrefs {
		if limit > 0 && len(out) >= limit {
			break
		}
		href := strings.TrimSpace(raw)
		if href == "" || strings.HasPrefix(href, "#") || hasSkippedScheme(href) {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			continue
		}
		if !ref.IsAbs() && ref.Host == "" {
			out = append(out, abs.String())
			continue
		}
		if baseDomain != "" && registeredDomain(abs.Hostname()) == baseDomain {
			out = append(out, abs.String())
		}
	}
	return out
}

func hasSkippedScheme(href string) bool {
	lower := strings.ToLower(href)
	for _, s := range skippedSchemes {
		if strings.HasPrefix(lower, s) {
			return true
		}
	}
	return false
}

func registeredDomain(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// IPs and bare hosts like localhost have no public suffix.
		return host
	}
	return domain
}
