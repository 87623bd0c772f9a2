package pages

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamdince/ShopifyAuditor/internal/core/browser/browsertest"
	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

const root = "https://shop.example.com"

var stamp = check.NewStamp(time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC), nil)

func newChecker() *Checker {
	return &Checker{BaseURL: root, Timeout: 10 * time.Second, Titles: check.NewTitleMatcher(nil)}
}

func healthy() map[string]browsertest.Page {
	return map[string]browsertest.Page{
		root + "/collections":   {Status: 200, Title: "Collections – Store"},
		root + "/pages/about":   {Status: 200, Title: "About us – Store"},
		root + "/pages/contact": {Status: 200, Title: "Contact – Store"},
		root + "/cart":          {Status: 200, Title: "Your Shopping Cart – Store"},
		root + "/account/login": {Status: 200, Title: "Account – Store"},
	}
}

func TestAllKeyPagesPass(t *testing.T) {
	sess := browsertest.New(healthy())
	results, err := newChecker().Check(context.Background(), sess, stamp)
	require.NoError(t, err)
	require.Len(t, results, 5)

	names := []string{"Collections Page", "About Page", "Contact Page", "Cart Page", "Login Page"}
	for i, r := range results {
		assert.Equal(t, names[i], r.Test)
		assert.Equal(t, check.StatusPass, r.Status)
	}
	assert.Equal(t, "Status: 200, Title: Collections – Store", results[0].Details)
	assert.Equal(t, []string{
		root + "/collections", root + "/pages/about", root + "/pages/contact", root + "/cart", root + "/account/login",
	}, sess.Visited())
}

func TestNotFoundIsWarn(t *testing.T) {
	pages := healthy()
	pages[root+"/pages/about"] = browsertest.Page{Status: 404, Title: "404 Not Found"}
	results, err := newChecker().Check(context.Background(), browsertest.New(pages), stamp)
	require.NoError(t, err)

	assert.Equal(t, check.StatusWarn, results[1].Status)
	assert.Equal(t, "Page not found (404) - may not exist yet", results[1].Details)
}

func TestSoftNotFoundTitleOverridesStatus(t *testing.T) {
	pages := healthy()
	pages[root+"/pages/contact"] = browsertest.Page{Status: 200, Title: "404 – Page missing"}
	results, err := newChecker().Check(context.Background(), browsertest.New(pages), stamp)
	require.NoError(t, err)

	assert.Equal(t, check.StatusFail, results[2].Status)
	assert.Equal(t, "Page shows error: 404 – Page missing", results[2].Details)
}

func TestCartTimeoutWarnsAndContinues(t *testing.T) {
	pages := healthy()
	pages[root+"/cart"] = browsertest.Page{Err: browsertest.Timeout}
	sess := browsertest.New(pages)

	results, err := newChecker().Check(context.Background(), sess, stamp)
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Equal(t, "Cart Page", results[3].Test)
	assert.Equal(t, check.StatusWarn, results[3].Status)
	assert.Contains(t, results[3].Details, "loading slowly")
	assert.Equal(t, check.StatusPass, results[4].Status, "login page is still checked")
	assert.Len(t, sess.Visited(), 5)
}

func TestOtherOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		page    browsertest.Page
		status  check.Status
		details string
	}{
		{name: "no response", page: browsertest.Page{NoResponse: true}, status: check.StatusFail, details: "No response received"},
		{name: "server error", page: browsertest.Page{Status: 500}, status: check.StatusFail, details: "HTTP status 500"},
		{name: "forbidden", page: browsertest.Page{Status: 403}, status: check.StatusFail, details: "HTTP status 403"},
		{name: "navigation error", page: browsertest.Page{Err: errors.New("net::ERR_CONNECTION_RESET")}, status: check.StatusFail, details: "Navigation failed: navigate " + root + "/collections: net::ERR_CONNECTION_RESET"},
		{name: "connection timed out", page: browsertest.Page{Err: errors.New("page load error net::ERR_CONNECTION_TIMED_OUT")}, status: check.StatusWarn, details: "Page loading slowly (timeout)"},
		{name: "timeout message", page: browsertest.Page{Err: errors.New("Navigation timeout of 10000 ms exceeded")}, status: check.StatusWarn, details: "Page loading slowly (timeout)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := healthy()
			pages[root+"/collections"] = tt.page
			results, err := newChecker().Check(context.Background(), browsertest.New(pages), stamp)
			require.NoError(t, err)
			assert.Equal(t, tt.status, results[0].Status)
			assert.Equal(t, tt.details, results[0].Details)
		})
	}
}

func TestLongTitleIsTruncated(t *testing.T) {
	pages := healthy()
	pages[root+"/collections"] = browsertest.Page{Status: 200, Title: strings.Repeat("x", 80)}
	results, err := newChecker().Check(context.Background(), browsertest.New(pages), stamp)
	require.NoError(t, err)
	assert.Equal(t, "Status: 200, Title: "+strings.Repeat("x", 50)+"...", results[0].Details)
}

func TestCustomErrorPatterns(t *testing.T) {
	c := newChecker()
	c.Titles = check.NewTitleMatcher([]string{"Oops"})
	pages := healthy()
	pages[root+"/collections"] = browsertest.Page{Status: 200, Title: "Oops, something broke"}
	pages[root+"/pages/about"] = browsertest.Page{Status: 200, Title: "Error 404 fan club"}

	results, err := c.Check(context.Background(), browsertest.New(pages), stamp)
	require.NoError(t, err)
	assert.Equal(t, check.StatusFail, results[0].Status)
	assert.Equal(t, check.StatusPass, results[1].Status)
}
