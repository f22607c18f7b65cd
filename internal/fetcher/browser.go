package fetcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// BrowserFetcher fetches pages with a headless Chromium via rod. It renders
// the page before handing the markup over, so metadata injected by scripts
// is visible to the extraction passes.
type BrowserFetcher struct {
	browser     *rod.Browser
	launchURL   string
	userAgent   string
	pageTimeout time.Duration
}

// BrowserFetcherConfig holds the knobs for the browser fetcher.
type BrowserFetcherConfig struct {
	UserAgent      string
	BrowserTimeout time.Duration
	PageTimeout    time.Duration
}

// NewBrowserFetcher launches a headless browser. The launch can fail when no
// Chromium is available on the host; callers are expected to fall back to
// the HTTP fetcher in that case.
func NewBrowserFetcher(cfg BrowserFetcherConfig) (*BrowserFetcher, error) {
	l := launcher.New().
		Headless(true).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if cfg.BrowserTimeout > 0 {
		browser = browser.Timeout(cfg.BrowserTimeout)
	}
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("could not connect to browser: %w", err)
	}

	return &BrowserFetcher{
		browser:     browser,
		launchURL:   launchURL,
		userAgent:   cfg.UserAgent,
		pageTimeout: cfg.PageTimeout,
	}, nil
}

// Name implements plugin.Fetcher.
func (f *BrowserFetcher) Name() string { return "browser" }

// Fetch navigates to targetURL in a fresh tab and returns the rendered
// markup once the page stops mutating.
func (f *BrowserFetcher) Fetch(targetURL string) (*plugin.PageData, error) {
	page := &plugin.PageData{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	tab, err := f.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return page, fmt.Errorf("could not open tab: %w", err)
	}
	defer tab.Close()

	if f.pageTimeout > 0 {
		tab = tab.Timeout(f.pageTimeout)
	}
	if f.userAgent != "" {
		if err := tab.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return page, fmt.Errorf("could not set user agent: %w", err)
		}
	}

	start := time.Now()
	if err := tab.Navigate(targetURL); err != nil {
		page.Error = err.Error()
		return page, fmt.Errorf("navigation failed: %w", err)
	}

	// Heavy pages may never fully stabilize; a timeout here is fine as long
	// as navigation itself went through.
	if err := tab.WaitStable(time.Second); err != nil {
		if strings.Contains(err.Error(), "context canceled") {
			page.Error = err.Error()
			return page, fmt.Errorf("page load timed out: %w", err)
		}
	}

	info, err := tab.Info()
	if err == nil {
		page.FinalURL = info.URL
	}
	// Navigation succeeded; rod does not expose the status code directly.
	page.StatusCode = 200

	html, err := tab.HTML()
	if err != nil {
		page.Error = err.Error()
		return page, fmt.Errorf("could not read page markup: %w", err)
	}

	page.RawHTML = html
	page.ResponseSize = len(html)
	page.ContentType = "text/html"
	page.FetchDuration = time.Since(start)
	page.FetcherUsed = f.Name()

	return page, nil
}

// Close shuts the browser down.
func (f *BrowserFetcher) Close() error {
	if f.browser != nil {
		return f.browser.Close()
	}
	return nil
}
