// Package plugin defines the public data types and interfaces for pagemeta.
// External tools can import this package to provide custom fetchers or
// output writers without forking the project.
package plugin

import "time"

// ---------- Core Data Types ----------

// Result is the normalized metadata record produced for one page.
// Images and Videos are always non-nil, possibly empty. Scalar fields a
// source never supplied stay at their zero value; mapped fields without a
// dedicated struct member land in Fields.
type Result struct {
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Locale      string            `json:"locale,omitempty"`
	Keywords    []string          `json:"keywords,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Images      []Image           `json:"images"`
	Videos      []Video           `json:"videos"`
}

// NewResult returns an empty Result with the image and video lists ready
// to append to.
func NewResult() *Result {
	return &Result{
		Fields: make(map[string]string),
		Images: []Image{},
		Videos: []Video{},
	}
}

// Image is a single image reference found on a page. Type records which
// source produced it: og, twitter, touch_icon, favicon or body_image.
// Width and Height are zero when the markup carried no usable values;
// Alt is only populated for body images.
type Image struct {
	Src    string `json:"src"`
	Type   string `json:"type"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Alt    string `json:"alt,omitempty"`
}

// Video is a video/player reference collected from one meta tag group.
// Unlike images no source tag is injected; Type carries whatever the markup
// declared (typically a MIME type).
type Video struct {
	Src    string `json:"src,omitempty"`
	Type   string `json:"type,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// PageData represents one fetched page.
type PageData struct {
	URL           string        `json:"url"`
	FinalURL      string        `json:"final_url"`
	StatusCode    int           `json:"status_code"`
	RawHTML       string        `json:"-"`
	ContentType   string        `json:"content_type,omitempty"`
	FetchedAt     time.Time     `json:"fetched_at"`
	FetchDuration time.Duration `json:"fetch_duration"`
	FetcherUsed   string        `json:"fetcher_used"`
	ResponseSize  int           `json:"response_size"`
	Error         string        `json:"error,omitempty"`
}

// FetchResult pairs one URL with its extracted metadata (or error).
type FetchResult struct {
	URL      string        `json:"url"`
	Meta     *Result       `json:"meta,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunSummary is the final aggregated output of a batch run.
type RunSummary struct {
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
	Duration    time.Duration `json:"duration"`
	TotalPages  int           `json:"total_pages"`
	TotalErrors int           `json:"total_errors"`
	Results     []FetchResult `json:"results,omitempty"`
}

// ---------- Options ----------

// Options selects which metadata sources an extraction consults. Nil fields
// inherit the client's defaults, so a zero Options changes nothing.
type Options struct {
	OpenGraph   *bool
	TwitterCard *bool
	TouchIcon   *bool
	Favicon     *bool
	AllImages   *bool
}

// Bool is a convenience for building Options literals.
func Bool(v bool) *bool { return &v }

// Merge overlays o on top of base: fields set in o win, nil fields fall
// back to base.
func (o Options) Merge(base Options) Options {
	if o.OpenGraph == nil {
		o.OpenGraph = base.OpenGraph
	}
	if o.TwitterCard == nil {
		o.TwitterCard = base.TwitterCard
	}
	if o.TouchIcon == nil {
		o.TouchIcon = base.TouchIcon
	}
	if o.Favicon == nil {
		o.Favicon = base.Favicon
	}
	if o.AllImages == nil {
		o.AllImages = base.AllImages
	}
	return o
}

// OpenGraphEnabled reports whether the Open Graph pass runs (default true).
func (o Options) OpenGraphEnabled() bool { return boolOr(o.OpenGraph, true) }

// TwitterCardEnabled reports whether the Twitter Card pass runs (default true).
func (o Options) TwitterCardEnabled() bool { return boolOr(o.TwitterCard, true) }

// TouchIconEnabled reports whether touch icons are collected (default true).
func (o Options) TouchIconEnabled() bool { return boolOr(o.TouchIcon, true) }

// FaviconEnabled reports whether favicons are collected (default true).
func (o Options) FaviconEnabled() bool { return boolOr(o.Favicon, true) }

// AllImagesEnabled reports whether body images are collected (default false).
func (o Options) AllImagesEnabled() bool { return boolOr(o.AllImages, false) }

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ---------- Event Types ----------

// Event represents a real-time event emitted during a run.
type Event struct {
	Type    EventType
	URL     string
	Result  *FetchResult
	Error   error
	Stats   *Stats
	Message string
}

// EventType identifies the kind of event.
type EventType int

const (
	EventPageStarted EventType = iota
	EventPageDone
	EventPageError
	EventRunStarted
	EventRunFinished
)

// Stats holds real-time run statistics.
type Stats struct {
	PagesFetched int           `json:"pages_fetched"`
	PagesErrored int           `json:"pages_errored"`
	ImagesFound  int           `json:"images_found"`
	VideosFound  int           `json:"videos_found"`
	Elapsed      time.Duration `json:"elapsed"`
	PagesPerSec  float64       `json:"pages_per_sec"`
}

// ---------- Plugin Interfaces ----------

// Fetcher defines how pages are retrieved.
type Fetcher interface {
	// Name returns a human-readable identifier for this fetcher.
	Name() string

	// Fetch retrieves the page at the given URL.
	Fetch(url string) (*PageData, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// OutputWriter defines how run results are persisted.
type OutputWriter interface {
	// Name returns a human-readable identifier for this writer.
	Name() string

	// WriteResult writes a single page's result (called incrementally).
	WriteResult(result *FetchResult) error

	// Finalize writes the final summary and closes resources.
	Finalize(summary *RunSummary) error
}
