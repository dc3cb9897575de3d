package models

import "time"

// CrawlRequest is the payload for POST /api/v1/crawl.
type CrawlRequest struct {
	// URLs is the ordered list of target listing pages to crawl. Required.
	URLs []string `json:"urls" binding:"required,min=1,max=50,dive,url"`

	// Options contains shared crawl options applied to all URLs.
	Options CrawlOptions `json:"options"`
}

// CrawlOptions are the shared settings applied to every URL in a batch.
type CrawlOptions struct {
	// Concurrency is the number of browser instances to provision.
	// URLs are assigned round-robin across them. Default: 3.
	Concurrency int `json:"concurrency,omitempty" binding:"omitempty,min=1,max=10"`

	// Headless controls whether the browsers run headless. Default: true.
	Headless *bool `json:"headless,omitempty"`

	// TimeoutMs is the navigation timeout per URL in milliseconds.
	// Default: 30000. Max: 120000.
	TimeoutMs int `json:"timeout,omitempty" binding:"omitempty,min=1000,max=120000"`
}

// Defaults applies default values to unset fields.
func (o *CrawlOptions) Defaults() {
	if o.Concurrency == 0 {
		o.Concurrency = 3
	}
	if o.Headless == nil {
		t := true
		o.Headless = &t
	}
	if o.TimeoutMs == 0 {
		o.TimeoutMs = 30000
	}
}

// CrawlResult is the outcome of scraping one URL's transaction table.
// Exactly one of the success fields or Error is meaningful: the error
// variant carries an empty Transactions slice.
type CrawlResult struct {
	URL               string        `json:"url"`
	Success           bool          `json:"success"`
	ScrapedAt         time.Time     `json:"scrapedAt,omitzero"`
	TotalTransactions int           `json:"totalTransactions"`
	TotalPages        int           `json:"totalPages,omitempty"`
	Transactions      []Transaction `json:"transactions"`
	Error             string        `json:"error,omitempty"`
}

// BatchResult aggregates per-URL outcomes in input order.
type BatchResult struct {
	Results   []CrawlResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// ProgressStatus enumerates the lifecycle states reported for one URL.
type ProgressStatus string

const (
	StatusStarting  ProgressStatus = "starting"
	StatusLoading   ProgressStatus = "loading"
	StatusScraping  ProgressStatus = "scraping"
	StatusCompleted ProgressStatus = "completed"
	StatusError     ProgressStatus = "error"
)

// ProgressEvent is one progress update for a crawl session. Events are
// append-only and ordered by emission time within a session.
type ProgressEvent struct {
	SessionID string         `json:"sessionId"`
	URLIndex  int            `json:"urlIndex"`
	TotalURLs int            `json:"totalUrls"`
	Status    ProgressStatus `json:"status"`
	URL       string         `json:"url"`
	Message   string         `json:"message,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// CrawlComplete is the terminal SSE payload for a finished batch.
type CrawlComplete struct {
	SessionID string       `json:"sessionId"`
	ElapsedMs int64        `json:"elapsed_ms"`
	URLCount  int          `json:"url_count"`
	Result    *BatchResult `json:"result"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	Concurrency int    `json:"default_concurrency"`
	Version     string `json:"version"`
}
