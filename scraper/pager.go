// Package scraper drives headless-browser sessions through a listing site's
// state-based pagination and accumulates the extracted transaction records.
package scraper

import (
	"context"

	"github.com/proplens/proplens/models"
)

// NextState describes the pagination affordance found on the current page.
type NextState int

const (
	// NextMissing means no next control exists on the page.
	NextMissing NextState = iota
	// NextDisabled means the control exists but its holder carries the
	// disabled marker: the last page has been reached.
	NextDisabled
	// NextEnabled means another page can be requested.
	NextEnabled
)

// Pager is the page adapter the pagination state machine drives. The rod
// implementation carries the site's selectors; tests substitute fakes. All
// waits a Pager performs are bounded: a method that blocks forever would
// stall its URL's controller.
type Pager interface {
	// Navigate loads the target URL and waits for the page to settle.
	// Navigation failure is fatal for the URL.
	Navigate(ctx context.Context, url string) error

	// WaitTable reports whether the transaction table root appeared within
	// its bound. An absent table is a valid empty-result page.
	WaitTable() bool

	// ClearFilters dismisses any active table filters. Best-effort.
	ClearFilters()

	// WaitRows reports whether row elements rendered within their bound.
	WaitRows() bool

	// ExpandRows opens every collapsed row's detail panel so the lease and
	// address fields become readable. Best-effort.
	ExpandRows()

	// Rows extracts the records currently visible in the table. An error
	// here is an uncaught page-evaluation failure and is fatal for the URL.
	Rows() ([]models.Transaction, error)

	// NextState inspects the pagination affordance.
	NextState() NextState

	// Advance clicks the next control and waits for the table to settle.
	Advance() error

	// Close releases the session's tab.
	Close()
}
