package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// extractMeta runs one meta-tag pass for the named source and merges the
// fragment into res. Earlier passes win: a field already present in res is
// never overwritten, which is what enforces the Open Graph > Twitter Card >
// generic priority tree. One pass contributes at most one image and one
// video record, assembled from all of the source's matched tags.
func extractMeta(doc *goquery.Document, source string, base *url.URL, res *plugin.Result) {
	f, ok := metaFilters[source]
	if !ok {
		return
	}

	var image plugin.Image
	var video plugin.Video

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		prop, exists := s.Attr(f.Key)
		if !exists || !f.Pattern.MatchString(prop) {
			return
		}
		field, mapped := f.Map[prop]
		if !mapped || hasField(res, field) {
			return
		}
		value, _ := s.Attr("content")

		switch {
		case f.ImageKey != "" && strings.HasPrefix(prop, f.ImageKey) && value != "":
			switch field {
			case "src":
				image.Src = resolveURL(base, value)
			case "width":
				if n, ok := toInt(value); ok {
					image.Width = n
				}
			case "height":
				if n, ok := toInt(value); ok {
					image.Height = n
				}
			}
		case f.VideoKey != "" && strings.HasPrefix(prop, f.VideoKey) && value != "":
			switch field {
			case "src":
				video.Src = value
			case "type":
				video.Type = value
			case "width":
				if n, ok := toInt(value); ok {
					video.Width = n
				}
			case "height":
				if n, ok := toInt(value); ok {
					video.Height = n
				}
			}
		default:
			if value != "" {
				setField(res, field, value)
			}
		}
	})

	if image != (plugin.Image{}) {
		image.Type = f.TypeTag
		res.Images = append(res.Images, image)
	}
	if video != (plugin.Video{}) {
		res.Videos = append(res.Videos, video)
	}
}

// hasField reports whether the accumulating result already carries a value
// for the named output field.
func hasField(r *plugin.Result, name string) bool {
	switch name {
	case "url":
		return r.URL != ""
	case "title":
		return r.Title != ""
	case "description":
		return r.Description != ""
	case "locale":
		return r.Locale != ""
	case "keywords":
		return len(r.Keywords) > 0
	default:
		_, ok := r.Fields[name]
		return ok
	}
}

// setField writes a scalar value under its output field name. Keywords are
// split into a list on the way in.
func setField(r *plugin.Result, name, value string) {
	switch name {
	case "url":
		r.URL = value
	case "title":
		r.Title = value
	case "description":
		r.Description = value
	case "locale":
		r.Locale = value
	case "keywords":
		r.Keywords = splitKeywords(value)
	default:
		r.Fields[name] = value
	}
}
