// Package client wires fetching, extraction and output together. It owns the
// fatal error surface: fetch failures, empty pages and unparseable documents
// are the only conditions that abort a page; everything below that degrades
// to partial results.
package client

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ramkansal/pagemeta/internal/extractor"
	"github.com/ramkansal/pagemeta/internal/fetcher"
	"github.com/ramkansal/pagemeta/internal/output"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

var (
	ErrFetch        = errors.New("fetch failed")
	ErrEmptyContent = errors.New("no content to parse")
	ErrParse        = errors.New("could not parse document")
)

// Client orchestrates metadata extraction for one or many pages.
type Client struct {
	config *Config

	fetch  plugin.Fetcher
	writer plugin.OutputWriter

	events chan plugin.Event

	stats   plugin.Stats
	statsMu sync.Mutex

	startTime time.Time

	stopped bool
	stopMu  sync.Mutex
}

// New creates a client around the given config. Call Init before fetching.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{
		config: cfg,
		events: make(chan plugin.Event, 256),
	}
}

// Events exposes the client's event stream. The channel is closed when a
// batch Run finishes.
func (c *Client) Events() <-chan plugin.Event {
	return c.events
}

// Init builds the fetcher and, for batch runs, the output writer. A browser
// fetcher that fails to launch falls back to the HTTP fetcher with an event
// rather than aborting the run.
func (c *Client) Init() error {
	cfg := c.config

	if cfg.FetcherMode == FetcherBrowser {
		bf, err := fetcher.NewBrowserFetcher(fetcher.BrowserFetcherConfig{
			UserAgent:      cfg.UserAgent,
			BrowserTimeout: cfg.BrowserTimeout,
			PageTimeout:    cfg.PageTimeout,
		})
		if err != nil {
			c.emit(plugin.Event{
				Type:    plugin.EventPageError,
				Error:   err,
				Message: "browser fetcher unavailable, falling back to http",
			})
		} else {
			c.fetch = bf
		}
	}

	if c.fetch == nil {
		hf, err := fetcher.NewHTTPFetcher(fetcher.HTTPFetcherConfig{
			UserAgent:        cfg.UserAgent,
			Timeout:          cfg.Timeout,
			MaxResponseSize:  cfg.MaxResponseSize,
			Proxy:            cfg.Proxy,
			CustomHeaders:    cfg.CustomHeaders,
			DisableRedirects: cfg.DisableRedirects,
		})
		if err != nil {
			return err
		}
		c.fetch = hf
	}

	if cfg.SaveOutput {
		switch cfg.OutputFormat {
		case "json":
			c.writer = output.NewJSONWriter(cfg.OutputPath)
		case "text":
			c.writer = output.NewTextWriter(cfg.OutputPath)
		default:
			return fmt.Errorf("unknown output format %q", cfg.OutputFormat)
		}
	}

	return nil
}

// SetFetcher swaps the fetcher in. Mostly useful in tests.
func (c *Client) SetFetcher(f plugin.Fetcher) {
	c.fetch = f
}

// Fetch extracts metadata for a single page. opts overrides the instance
// defaults field by field; pass the zero Options to use the defaults as-is.
func (c *Client) Fetch(targetURL string, opts plugin.Options) (*plugin.Result, error) {
	merged := opts.Merge(c.config.Extract)

	page, err := c.fetchWithRetry(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, targetURL, err)
	}

	if strings.TrimSpace(page.RawHTML) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyContent, targetURL)
	}

	doc, err := extractor.Parse(page.RawHTML)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, targetURL, err)
	}

	return extractor.Extract(doc, targetURL, merged), nil
}

func (c *Client) fetchWithRetry(targetURL string) (*plugin.PageData, error) {
	var page *plugin.PageData
	var err error
	for attempt := 0; attempt <= c.config.Retry; attempt++ {
		page, err = c.fetch.Fetch(targetURL)
		if err == nil {
			return page, nil
		}
	}
	return page, err
}

// Run fetches every configured URL with bounded parallelism, streaming
// events along the way. The events channel is closed when Run returns.
func (c *Client) Run() error {
	cfg := c.config
	c.startTime = time.Now()

	c.emit(plugin.Event{
		Type:    plugin.EventRunStarted,
		Message: fmt.Sprintf("fetching %d pages", len(cfg.URLs)),
	})

	sem := make(chan struct{}, cfg.Parallelism)
	var wg sync.WaitGroup

	for _, u := range cfg.URLs {
		if c.isStopped() {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(target string) {
			defer wg.Done()
			defer func() { <-sem }()
			c.processURL(target)
		}(u)
	}
	wg.Wait()

	var finalizeErr error
	if c.writer != nil {
		finalizeErr = c.writer.Finalize(c.buildSummary())
	}

	c.emit(plugin.Event{
		Type:  plugin.EventRunFinished,
		Stats: c.getStats(),
	})
	close(c.events)

	return finalizeErr
}

func (c *Client) processURL(targetURL string) {
	c.emit(plugin.Event{Type: plugin.EventPageStarted, URL: targetURL})

	start := time.Now()
	res, err := c.Fetch(targetURL, plugin.Options{})
	elapsed := time.Since(start)

	if err != nil {
		c.statsMu.Lock()
		c.stats.PagesErrored++
		c.statsMu.Unlock()

		fr := &plugin.FetchResult{URL: targetURL, Error: err.Error(), Duration: elapsed}
		if c.writer != nil {
			c.writer.WriteResult(fr)
		}
		c.emit(plugin.Event{Type: plugin.EventPageError, URL: targetURL, Result: fr, Error: err})
		return
	}

	fr := &plugin.FetchResult{URL: targetURL, Meta: res, Duration: elapsed}
	if c.writer != nil {
		if werr := c.writer.WriteResult(fr); werr != nil {
			c.emit(plugin.Event{Type: plugin.EventPageError, URL: targetURL, Error: werr})
		}
	}

	c.statsMu.Lock()
	c.stats.PagesFetched++
	c.stats.ImagesFound += len(res.Images)
	c.stats.VideosFound += len(res.Videos)
	c.stats.Elapsed = time.Since(c.startTime)
	if secs := c.stats.Elapsed.Seconds(); secs > 0 {
		c.stats.PagesPerSec = float64(c.stats.PagesFetched) / secs
	}
	c.statsMu.Unlock()

	c.emit(plugin.Event{Type: plugin.EventPageDone, URL: targetURL, Result: fr})
}

// Stop asks a running batch to wind down. In-flight pages complete.
func (c *Client) Stop() {
	c.stopMu.Lock()
	c.stopped = true
	c.stopMu.Unlock()
}

func (c *Client) isStopped() bool {
	c.stopMu.Lock()
	defer c.stopMu.Unlock()
	return c.stopped
}

// emit never blocks; slow consumers lose events rather than stalling fetches.
func (c *Client) emit(ev plugin.Event) {
	select {
	case c.events <- ev:
	default:
	}
}

func (c *Client) getStats() *plugin.Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	s := c.stats
	return &s
}

func (c *Client) buildSummary() *plugin.RunSummary {
	stats := c.getStats()
	now := time.Now()
	return &plugin.RunSummary{
		StartedAt:   c.startTime,
		FinishedAt:  now,
		Duration:    now.Sub(c.startTime),
		TotalPages:  stats.PagesFetched,
		TotalErrors: stats.PagesErrored,
	}
}

// Close releases the fetcher's resources.
func (c *Client) Close() error {
	if c.fetch != nil {
		return c.fetch.Close()
	}
	return nil
}
