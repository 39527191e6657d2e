// Package browser abstracts the page-fetching engine behind a small
// interface so the extraction logic can run against headless Chrome in
// production and a fake in tests.
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Page and Row lookups when no element matches
// the selector.
var ErrNotFound = errors.New("browser: no element matches selector")

// Fetcher navigates to a URL and hands back a live page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// Page is a handle on a loaded model detail page.
type Page interface {
	// ClickTab activates the tab with the given accessible name.
	// Returns an error if no such tab exists.
	ClickTab(ctx context.Context, name string) error

	// WaitVisible blocks until an element matching selector is visible,
	// or the timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// Rows returns a handle per element matching selector, in document order.
	Rows(ctx context.Context, selector string) ([]Row, error)

	// Close releases the page and its tab.
	Close() error
}

// Row scopes element lookups to a single row of the provider table.
type Row interface {
	// Text returns the inner text of the first descendant matching selector.
	Text(ctx context.Context, selector string) (string, error)

	// Texts returns the inner text of every descendant matching selector,
	// in document order.
	Texts(ctx context.Context, selector string) ([]string, error)
}
