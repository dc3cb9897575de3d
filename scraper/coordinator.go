package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/proplens/proplens/config"
	"github.com/proplens/proplens/engine"
	"github.com/proplens/proplens/extractor"
	"github.com/proplens/proplens/models"
	"github.com/proplens/proplens/session"
)

// Coordinator fans a batch of URLs out over a bounded browser fleet and
// aggregates per-URL outcomes. One URL's failure never disturbs another's:
// every outcome is captured independently and the fleet is torn down no
// matter how the batch ends.
type Coordinator struct {
	registry   *session.Registry
	crawlerCfg config.CrawlerConfig
	browserCfg config.BrowserConfig
	profile    extractor.Profile
}

// NewCoordinator creates a coordinator bound to a session registry.
func NewCoordinator(reg *session.Registry, crawlerCfg config.CrawlerConfig, browserCfg config.BrowserConfig, profile extractor.Profile) *Coordinator {
	return &Coordinator{
		registry:   reg,
		crawlerCfg: crawlerCfg,
		browserCfg: browserCfg,
		profile:    profile,
	}
}

// pagerFactory opens a page session on the given fleet slot. Split out so
// the fan-out can run under test without browsers.
type pagerFactory func(slot int) (Pager, error)

// Crawl provisions a fleet sized by the options' concurrency, assigns URL i
// to browser i mod C, runs every URL's controller concurrently and returns
// the outcomes in input order. A provisioning failure is batch-fatal; any
// browsers launched before it are closed by the fleet.
func (c *Coordinator) Crawl(ctx context.Context, sessionID string, urls []string, opts models.CrawlOptions) (*models.BatchResult, error) {
	opts.Defaults()

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = c.crawlerCfg.Concurrency
	}
	if concurrency > len(urls) {
		concurrency = len(urls)
	}

	browserCfg := c.browserCfg
	browserCfg.Headless = *opts.Headless

	crawlerCfg := c.crawlerCfg
	if opts.TimeoutMs > 0 {
		crawlerCfg.NavTimeout = time.Duration(opts.TimeoutMs) * time.Millisecond
	}

	fleet, err := engine.Launch(concurrency, browserCfg)
	if err != nil {
		return nil, err
	}
	defer fleet.Close()

	results := c.runAll(ctx, sessionID, urls, concurrency, func(slot int) (Pager, error) {
		return NewSession(fleet.Browser(slot), crawlerCfg, c.profile)
	})
	return aggregate(results), nil
}

// runAll executes every URL's controller concurrently, round-robin over the
// concurrency slots, and joins them. The slice is index-addressed so input
// order is preserved without locking.
func (c *Coordinator) runAll(ctx context.Context, sessionID string, urls []string, concurrency int, open pagerFactory) []models.CrawlResult {
	results := make([]models.CrawlResult, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()
			results[idx] = c.crawlOne(ctx, sessionID, idx, len(urls), target, idx%concurrency, open)
		}(i, u)
	}
	wg.Wait()

	return results
}

// crawlOne runs one URL's pagination controller and converts any failure —
// returned error or panic out of the CDP layer — into that URL's error
// result.
func (c *Coordinator) crawlOne(ctx context.Context, sessionID string, idx, total int, target string, slot int, open pagerFactory) (res models.CrawlResult) {
	emit := func(status models.ProgressStatus, message, errMsg string) {
		c.registry.Emit(sessionID, models.ProgressEvent{
			URLIndex:  idx,
			TotalURLs: total,
			Status:    status,
			URL:       target,
			Message:   message,
			Error:     errMsg,
		})
	}

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("crawl panicked: %v", r)
			slog.Error("crawl worker panicked", "url", target, "panic", r)
			emit(models.StatusError, "", msg)
			res = errorResult(target, msg)
		}
	}()

	emit(models.StatusStarting, fmt.Sprintf("url %d of %d", idx+1, total), "")

	pager, err := open(slot)
	if err != nil {
		emit(models.StatusError, "", err.Error())
		return errorResult(target, err.Error())
	}
	defer pager.Close()

	controller := NewPaginator(pager, func(status models.ProgressStatus, message string) {
		emit(status, message, "")
	})

	pr, err := controller.Run(ctx, target)
	if err != nil {
		emit(models.StatusError, "", err.Error())
		return errorResult(target, err.Error())
	}

	return models.CrawlResult{
		URL:               target,
		Success:           true,
		ScrapedAt:         time.Now().UTC(),
		TotalTransactions: len(pr.Transactions),
		TotalPages:        pr.TotalPages,
		Transactions:      pr.Transactions,
	}
}

func errorResult(url, msg string) models.CrawlResult {
	return models.CrawlResult{
		URL:          url,
		Transactions: []models.Transaction{},
		Error:        msg,
	}
}

func aggregate(results []models.CrawlResult) *models.BatchResult {
	br := &models.BatchResult{Results: results}
	for _, r := range results {
		if r.Success {
			br.Succeeded++
		} else {
			br.Failed++
		}
	}
	return br
}
