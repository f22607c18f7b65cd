package extractor

import (
	"net/url"
	"strconv"
	"strings"
)

// toInt leniently parses a tag attribute into a positive integer. Malformed,
// empty or non-positive values report ok=false and are simply dropped by the
// caller; a bad width never fails an extraction.
func toInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// resolveURL makes raw absolute against base. Only a real scheme prefix
// counts as already-absolute; a value like "www.example.com/x.png" is a
// relative reference and gets resolved like any other.
func resolveURL(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// splitKeywords turns a comma-delimited keyword list into trimmed entries.
func splitKeywords(raw string) []string {
	var keywords []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

var textCleaner = strings.NewReplacer("\r", "", "\x00", "")

// cleanText strips carriage returns and NUL bytes and trims surrounding
// whitespace so stray control characters never reach the parser.
func cleanText(s string) string {
	return strings.TrimSpace(textCleaner.Replace(s))
}
