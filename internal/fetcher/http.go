// Package fetcher provides the page fetchers. The HTTP fetcher is the
// default; the browser fetcher exists for pages that only materialize their
// metadata after script execution.
package fetcher

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// HTTPFetcher fetches pages over plain HTTP using colly.
type HTTPFetcher struct {
	collector *colly.Collector
	headers   []string
}

// HTTPFetcherConfig holds the knobs for the HTTP fetcher.
type HTTPFetcherConfig struct {
	UserAgent        string
	Timeout          time.Duration
	MaxResponseSize  int
	Proxy            string
	CustomHeaders    []string // "Name: Value" pairs
	DisableRedirects bool
}

// NewHTTPFetcher builds an HTTP fetcher from the given config.
func NewHTTPFetcher(cfg HTTPFetcherConfig) (*HTTPFetcher, error) {
	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
	)

	if cfg.Timeout > 0 {
		c.SetRequestTimeout(cfg.Timeout)
	}
	if cfg.MaxResponseSize > 0 {
		c.MaxBodySize = cfg.MaxResponseSize
	}
	if cfg.Proxy != "" {
		if err := c.SetProxy(cfg.Proxy); err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", cfg.Proxy, err)
		}
	}
	if cfg.DisableRedirects {
		c.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		})
	}

	return &HTTPFetcher{
		collector: c,
		headers:   cfg.CustomHeaders,
	}, nil
}

// Name implements plugin.Fetcher.
func (f *HTTPFetcher) Name() string { return "http" }

// Fetch retrieves a single page. Callbacks live on a per-fetch clone of the
// base collector; colly's Clone does not carry callbacks over, so the header
// hook is registered here rather than at construction time.
func (f *HTTPFetcher) Fetch(targetURL string) (*plugin.PageData, error) {
	page := &plugin.PageData{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	c := f.collector.Clone()

	if len(f.headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for _, h := range f.headers {
				name, value, ok := strings.Cut(h, ":")
				if !ok {
					continue
				}
				r.Headers.Set(strings.TrimSpace(name), strings.TrimSpace(value))
			}
		})
	}

	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
		page.RawHTML = string(r.Body)
		page.ResponseSize = len(r.Body)
		page.FinalURL = r.Request.URL.String()
		page.ContentType = r.Headers.Get("Content-Type")
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			page.StatusCode = r.StatusCode
		}
		fetchErr = err
	})

	start := time.Now()
	if err := c.Visit(targetURL); err != nil {
		return page, err
	}
	c.Wait()
	page.FetchDuration = time.Since(start)
	page.FetcherUsed = f.Name()

	if fetchErr != nil {
		page.Error = fetchErr.Error()
		return page, fetchErr
	}
	return page, nil
}

// Close implements plugin.Fetcher. The HTTP fetcher holds no resources.
func (f *HTTPFetcher) Close() error { return nil }
