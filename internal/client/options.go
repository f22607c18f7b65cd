package client

import (
	"time"

	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// FetcherMode selects which fetcher the client uses.
type FetcherMode string

const (
	FetcherHTTP    FetcherMode = "http"
	FetcherBrowser FetcherMode = "browser"
)

// Config holds every knob for a client run. Start from DefaultConfig and
// overwrite what you need.
type Config struct {
	// Targets.
	URLs []string

	// Fetching.
	UserAgent        string
	Timeout          time.Duration
	Retry            int
	MaxResponseSize  int
	Proxy            string
	CustomHeaders    []string
	DisableRedirects bool
	FetcherMode      FetcherMode

	// Browser fetcher only.
	BrowserTimeout time.Duration
	PageTimeout    time.Duration

	// Extraction defaults, overridable per Fetch call.
	Extract plugin.Options

	// Batch mode.
	Parallelism int

	// Output.
	OutputPath   string
	OutputFormat string
	SaveOutput   bool
	Silent       bool
	Verbose      bool
	NoColor      bool
}

// DefaultConfig returns a ready-to-use configuration.
func DefaultConfig() *Config {
	return &Config{
		UserAgent:       "pagemeta/1.0",
		Timeout:         10 * time.Second,
		Retry:           1,
		MaxResponseSize: 4 * 1024 * 1024,
		FetcherMode:     FetcherHTTP,
		BrowserTimeout:  30 * time.Second,
		PageTimeout:     15 * time.Second,
		Parallelism:     5,
		OutputFormat:    "json",
		OutputPath:      "pagemeta_results.json",
	}
}
