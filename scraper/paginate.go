package scraper

import (
	"context"
	"fmt"

	"github.com/proplens/proplens/models"
	"github.com/proplens/proplens/pagehash"
)

// PageResult is the accumulated outcome of paginating one URL's table.
type PageResult struct {
	Transactions []models.Transaction
	TotalPages   int
}

// EmitFunc receives the controller's progress updates.
type EmitFunc func(status models.ProgressStatus, message string)

// Paginator drives one Pager through load → extract → detect-next → advance
// cycles until the pagination is exhausted.
//
// Every expected-absence condition — no table, no rows, missing or disabled
// next control, a failed advance — is a normal termination path, because the
// site's pagination state is never proven by URL changes and the affordances
// legitimately vanish on the last page. Only navigation failure and an
// uncaught page-evaluation failure abort the URL.
type Paginator struct {
	pager Pager
	emit  EmitFunc
}

// NewPaginator wires a controller to a page adapter. A nil emit is allowed.
func NewPaginator(pager Pager, emit EmitFunc) *Paginator {
	if emit == nil {
		emit = func(models.ProgressStatus, string) {}
	}
	return &Paginator{pager: pager, emit: emit}
}

// Run crawls the URL's table to exhaustion and returns everything extracted.
//
// TotalPages is the page counter at loop exit: a final advance whose page
// then renders no rows still counts. Downstream consumers rely on this
// counting rule; do not change it silently.
func (pg *Paginator) Run(ctx context.Context, url string) (*PageResult, error) {
	pg.emit(models.StatusLoading, "navigating")
	if err := pg.pager.Navigate(ctx, url); err != nil {
		return nil, err
	}

	res := &PageResult{Transactions: []models.Transaction{}, TotalPages: 1}

	if !pg.pager.WaitTable() {
		pg.emit(models.StatusCompleted, "no transaction table on page")
		return res, nil
	}

	pg.pager.ClearFilters()

	var lastFP uint64
	for hasNext := true; hasNext; {
		if !pg.pager.WaitRows() {
			break
		}

		pg.pager.ExpandRows()

		rows, err := pg.pager.Rows()
		if err != nil {
			return nil, err
		}

		// A page identical to the previous one means the click never
		// advanced the table; bail before accumulating it twice.
		fp := pagehash.Fingerprint(rows)
		if pagehash.Same(fp, lastFP) {
			break
		}
		lastFP = fp

		res.Transactions = append(res.Transactions, rows...)
		pg.emit(models.StatusScraping, fmt.Sprintf("page %d: %d rows", res.TotalPages, len(rows)))

		switch pg.pager.NextState() {
		case NextEnabled:
			if err := pg.pager.Advance(); err != nil {
				hasNext = false
			} else {
				res.TotalPages++
			}
		default:
			hasNext = false
		}
	}

	pg.emit(models.StatusCompleted,
		fmt.Sprintf("scraped %d transactions across %d pages", len(res.Transactions), res.TotalPages))
	return res, nil
}
