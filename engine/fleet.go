// Package engine owns the pool of heavyweight browser instances a batch
// crawl runs on. The fleet is provisioned up front, handed out by slot
// index, and torn down wholesale when the batch ends.
package engine

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"

	"github.com/proplens/proplens/config"
	"github.com/proplens/proplens/models"
)

// Fleet is a fixed set of launched browsers. URL i of a batch is served by
// browser i mod Size(): round-robin task affinity, not load balancing. Each
// crawl still opens its own tab, so URLs sharing a browser never share
// mutable page state.
type Fleet struct {
	browsers []*rod.Browser
}

// Launch starts n browsers with the given configuration. On partial failure
// every already-launched instance is closed before the error is returned, so
// a Fleet is always either complete or absent.
func Launch(n int, cfg config.BrowserConfig) (*Fleet, error) {
	if n < 1 {
		n = 1
	}

	f := &Fleet{browsers: make([]*rod.Browser, 0, n)}
	for i := 0; i < n; i++ {
		browser, err := launchOne(cfg)
		if err != nil {
			f.Close()
			return nil, models.NewCrawlError(
				models.ErrCodeBrowserCrash,
				"failed to provision browser fleet",
				err,
			)
		}
		f.browsers = append(f.browsers, browser)
	}

	slog.Info("browser fleet provisioned", "size", n, "headless", cfg.Headless)
	return f, nil
}

// launchOne starts and connects a single browser instance.
func launchOne(cfg config.BrowserConfig) (*rod.Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.DefaultProxy != "" {
		l = l.Proxy(cfg.DefaultProxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	return browser, nil
}

// Size returns the number of provisioned browsers.
func (f *Fleet) Size() int {
	return len(f.browsers)
}

// Browser returns the instance serving the given slot, wrapping modulo the
// fleet size.
func (f *Fleet) Browser(slot int) *rod.Browser {
	return f.browsers[slot%len(f.browsers)]
}

// Close kills every browser in the fleet. It is safe to call on a partially
// provisioned fleet and must run regardless of the batch outcome.
func (f *Fleet) Close() {
	for i, b := range f.browsers {
		if err := b.Close(); err != nil {
			slog.Warn("failed to close fleet browser", "slot", i, "error", err)
		}
	}
	f.browsers = nil
}
