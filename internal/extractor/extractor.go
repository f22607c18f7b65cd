// Package extractor implements the priority-resolving metadata extraction
// engine: declarative per-source filter tables, the meta/link/body-image
// passes, and the assembler that merges pass fragments into one Result.
package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// Parse builds the queryable document for one page. The raw markup is run
// through cleanText first.
func Parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(cleanText(html)))
}

// Extract runs all enabled source passes against doc in fixed priority order
// and assembles the final Result. pageURL is used both for resolving
// relative references and as the fallback url field. Missing or malformed
// data in individual tags is dropped silently; Extract itself never fails.
func Extract(doc *goquery.Document, pageURL string, opts plugin.Options) *plugin.Result {
	res := plugin.NewResult()

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	if opts.OpenGraphEnabled() {
		extractMeta(doc, "open_graph", base, res)
	}
	if opts.TwitterCardEnabled() {
		extractMeta(doc, "twitter_card", base, res)
	}
	// The generic pass always runs. It is the floor of the priority tree
	// and only fills fields the social sources left empty.
	extractMeta(doc, "generic", base, res)

	if opts.TouchIconEnabled() {
		extractLinks(doc, "touch_icon", base, res)
	}
	if opts.FaviconEnabled() {
		extractLinks(doc, "favicon", base, res)
	}
	if opts.AllImagesEnabled() {
		extractBodyImages(doc, base, res)
	}

	if res.URL == "" {
		res.URL = pageURL
	}
	if res.Title == "" {
		res.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return res
}
