package extractor

import "regexp"

// filterMap is one declarative per-source rule table. The passes are generic
// over these tables: adding a metadata source means adding an entry here,
// never touching the pass logic.
type filterMap struct {
	// Key is the tag attribute the pattern is matched against
	// (property, name or rel).
	Key     string
	Pattern *regexp.Regexp

	// Map relabels matched attribute values to output field names.
	Map map[string]string

	// ImageKey and VideoKey are attribute-value prefixes that route a
	// matched property into the pending image or video record instead of
	// the top-level result. Empty for sources without the concept.
	ImageKey string
	VideoKey string

	// TypeTag is stamped on every image this source contributes.
	TypeTag string
}

// metaFilters describes the meta-tag sources. Priority between them is owned
// by the assembler's pass order, not by these tables.
var metaFilters = map[string]filterMap{
	"open_graph": { // http://ogp.me/
		Key:     "property",
		Pattern: regexp.MustCompile(`(?i)^og:`),
		Map: map[string]string{
			"og:url":         "url",
			"og:title":       "title",
			"og:description": "description",
			"og:locale":      "locale",

			"og:image":        "src",
			"og:image:width":  "width",
			"og:image:height": "height",

			"og:video":        "src",
			"og:video:width":  "width",
			"og:video:height": "height",
			"og:video:type":   "type",
		},
		ImageKey: "og:image",
		VideoKey: "og:video",
		TypeTag:  "og",
	},
	"twitter_card": { // https://developer.twitter.com/en/docs/twitter-for-websites/cards
		Key:     "name",
		Pattern: regexp.MustCompile(`(?i)^twitter:`),
		Map: map[string]string{
			"twitter:url":         "url",
			"twitter:title":       "title",
			"twitter:description": "description",
			"twitter:locale":      "locale",

			"twitter:image":        "src",
			"twitter:image:width":  "width",
			"twitter:image:height": "height",

			"twitter:player":              "src",
			"twitter:player:width":        "width",
			"twitter:player:height":       "height",
			"twitter:player:content_type": "type",
		},
		ImageKey: "twitter:image",
		VideoKey: "twitter:player",
		TypeTag:  "twitter",
	},
	"generic": {
		Key:     "name",
		Pattern: regexp.MustCompile(`(?i)^(description|keywords)$`),
		Map: map[string]string{
			"description": "description",
			"keywords":    "keywords",
		},
	},
}

// linkFilters describes the link-tag icon sources.
var linkFilters = map[string]filterMap{
	"touch_icon": {
		Key:     "rel",
		Pattern: regexp.MustCompile(`(?i)^apple-touch-icon(-precomposed)?$`),
		TypeTag: "touch_icon",
	},
	"favicon": {
		Key:     "rel",
		Pattern: regexp.MustCompile(`(?i)^(shortcut )?icon$`),
		TypeTag: "favicon",
	},
}
