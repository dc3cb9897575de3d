package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/proplens/proplens/config"
	"github.com/proplens/proplens/extractor"
	"github.com/proplens/proplens/models"
)

// Session is the rod-backed Pager: one browser tab exclusively bound to one
// target URL for the duration of its crawl.
type Session struct {
	page    *rod.Page
	router  *rod.HijackRouter
	cfg     config.CrawlerConfig
	profile extractor.Profile
}

// NewSession opens a fresh tab on the given browser and prepares it for
// scraping. Stealth JS and resource blocking are installed here because they
// only take effect for navigations that happen after they are mounted.
func NewSession(browser *rod.Browser, cfg config.CrawlerConfig, profile extractor.Profile) (*Session, error) {
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeBrowserCrash,
			"failed to open page on browser",
			err,
		)
	}

	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
	}

	s := &Session{
		page:    page,
		cfg:     cfg,
		profile: profile,
	}
	s.router = blockHeavyResources(page)
	return s, nil
}

// blockHeavyResources mounts a request interceptor dropping images, fonts
// and media. The transaction table is text-only, so these bytes are waste.
func blockHeavyResources(page *rod.Page) *rod.HijackRouter {
	blocked := map[proto.NetworkResourceType]struct{}{
		proto.NetworkResourceTypeImage: {},
		proto.NetworkResourceTypeFont:  {},
		proto.NetworkResourceTypeMedia: {},
	}

	router := page.HijackRequests()
	_ = router.Add("*", "", func(ctx *rod.Hijack) {
		if _, drop := blocked[ctx.Request.Type()]; drop {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		ctx.ContinueRequest(&proto.FetchContinueRequest{})
	})

	// router.Run() blocks; it exits when router.Stop() is called.
	go router.Run()
	return router
}

// Navigate loads the target URL and performs the initial bounded
// network-idle wait. A Referer pointing at a search for the site's hostname
// is set first; direct hits on deep listing pages look synthetic without it.
func (s *Session) Navigate(ctx context.Context, target string) error {
	if u, err := url.Parse(target); err == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(s.page)
	}

	p := s.page.Context(ctx)
	if err := p.Navigate(target); err != nil {
		return categorizeError(err, "navigation to target URL failed")
	}

	// The idle signal is a heuristic "page finished updating"; its expiry
	// within the navigation bound is not an error.
	waitIdle := p.Timeout(s.cfg.NavTimeout).WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	_ = rod.Try(waitIdle)
	return nil
}

// WaitTable waits up to the table bound for the table root marker.
func (s *Session) WaitTable() bool {
	_, err := s.page.Timeout(s.cfg.TableWait).Element(s.profile.TableRoot)
	return err == nil
}

// ClearFilters clicks every filter-dismiss control present, then pauses for
// the table to re-render. Never blocks progress.
func (s *Session) ClearFilters() {
	els, err := s.page.Elements(s.profile.FilterRemove)
	if err != nil || len(els) == 0 {
		return
	}
	for _, el := range els {
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			slog.Debug("filter removal click failed", "error", err)
		}
	}
	time.Sleep(s.cfg.FilterPause)
}

// WaitRows waits up to the row bound for at least one row element.
func (s *Session) WaitRows() bool {
	err := s.page.Timeout(s.cfg.RowWait).WaitElementsMoreThan(s.profile.Row, 0)
	return err == nil
}

// ExpandRows clicks the expand toggle of every row whose detail panel is not
// already shown, then pauses for the expansion render.
func (s *Session) ExpandRows() {
	js := fmt.Sprintf(`() => {
		const rows = document.querySelectorAll(%q);
		let clicked = 0;
		for (const row of rows) {
			if (row.querySelector(%q)) continue;
			const toggle = row.querySelector(%q);
			if (toggle) { toggle.click(); clicked++; }
		}
		return clicked;
	}`, s.profile.Row, s.profile.FieldSel(s.profile.AddressKey), s.profile.ExpandToggle)

	res, err := s.page.Eval(js)
	if err != nil {
		slog.Debug("row expansion failed", "error", err)
		return
	}
	if res.Value.Int() > 0 {
		time.Sleep(s.cfg.ExpandPause)
	}
}

// Rows snapshots the table's HTML and runs the extractor over it.
func (s *Session) Rows() ([]models.Transaction, error) {
	el, err := s.page.Timeout(s.cfg.RowWait).Element(s.profile.TableRoot)
	if err != nil {
		return nil, models.NewCrawlError(models.ErrCodeEvaluation, "transaction table vanished mid-crawl", err)
	}
	snapshot, err := el.HTML()
	if err != nil {
		return nil, models.NewCrawlError(models.ErrCodeEvaluation, "failed to snapshot transaction table", err)
	}
	return extractor.Rows(snapshot, s.profile)
}

// HTML snapshots the full rendered document for selector-based extraction.
func (s *Session) HTML() (string, error) {
	html, err := s.page.HTML()
	if err != nil {
		return "", models.NewCrawlError(models.ErrCodeEvaluation, "failed to snapshot page HTML", err)
	}
	return html, nil
}

// NextState inspects the next control and its holder in page context. An
// evaluation failure here means the affordance is gone, which is a normal
// end-of-pagination signal, not an error.
func (s *Session) NextState() NextState {
	js := fmt.Sprintf(`() => {
		const btn = document.querySelector(%q);
		if (!btn) return "missing";
		const holder = btn.closest(%q) || btn.parentElement;
		if (btn.disabled || (holder && holder.classList.contains(%q))) return "disabled";
		return "enabled";
	}`, s.profile.NextButton, s.profile.NextHolder, s.profile.DisabledMark)

	res, err := s.page.Eval(js)
	if err != nil {
		return NextMissing
	}
	switch res.Value.Str() {
	case "enabled":
		return NextEnabled
	case "disabled":
		return NextDisabled
	default:
		return NextMissing
	}
}

// Advance clicks the next control, pauses for the fixed settle interval and
// then waits briefly for network idle. The idle wait is allowed to fail: the
// site's idle signal is unreliable after client-side page changes.
func (s *Session) Advance() error {
	has, el, err := s.page.Has(s.profile.NextButton)
	if err != nil || !has {
		return fmt.Errorf("next control vanished before click")
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("next control click failed: %w", err)
	}

	time.Sleep(s.cfg.SettleAfterClick)

	waitIdle := s.page.Timeout(s.cfg.IdleWait).WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	_ = rod.Try(waitIdle)
	return nil
}

// Close stops the interceptor and releases the tab. Navigating to
// about:blank first drops the page's DOM before the tab is reused or closed.
func (s *Session) Close() {
	if s.router != nil {
		_ = s.router.Stop()
	}
	if err := s.page.Navigate("about:blank"); err != nil {
		slog.Debug("cleanup navigation failed", "error", err)
	}
	_ = s.page.Close()
}

// categorizeError wraps raw errors into typed CrawlErrors so callers can map
// them to error codes.
func categorizeError(err error, msg string) *models.CrawlError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCrawlError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCrawlError(models.ErrCodeTimeout, "crawl canceled", err)
	default:
		return models.NewCrawlError(models.ErrCodeNavigation, msg, err)
	}
}
