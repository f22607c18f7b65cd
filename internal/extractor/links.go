package extractor

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// extractLinks runs one link-tag icon pass (touch icons, favicons). Every
// matching link element yields its own image entry; there is no priority
// suppression and no deduplication across link tags.
func extractLinks(doc *goquery.Document, source string, base *url.URL, res *plugin.Result) {
	f, ok := linkFilters[source]
	if !ok {
		return
	}

	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		rel, exists := s.Attr(f.Key)
		if !exists || !f.Pattern.MatchString(rel) {
			return
		}
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		res.Images = append(res.Images, plugin.Image{
			Src:  resolveURL(base, href),
			Type: f.TypeTag,
		})
	})
}
