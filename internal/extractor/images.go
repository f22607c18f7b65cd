package extractor

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// extractBodyImages appends one image entry per <img> element in the page
// body. Width and height come along only when the attributes coerce to
// usable integers.
func extractBodyImages(doc *goquery.Document, base *url.URL, res *plugin.Result) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" {
			return
		}

		img := plugin.Image{
			Src:  resolveURL(base, src),
			Alt:  s.AttrOr("alt", ""),
			Type: "body_image",
		}
		if w, ok := toInt(s.AttrOr("width", "")); ok {
			img.Width = w
		}
		if h, ok := toInt(s.AttrOr("height", "")); ok {
			img.Height = h
		}

		res.Images = append(res.Images, img)
	})
}
