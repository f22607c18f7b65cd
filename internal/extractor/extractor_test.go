package extractor

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := Parse(html)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestExtractOpenGraphPage(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:title" content="T">
		<meta property="og:description" content="D">
		<meta property="og:image" content="https://site.test/i.png">
	</head><body></body></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	if res.Title != "T" {
		t.Errorf("title = %q, want %q", res.Title, "T")
	}
	if res.Description != "D" {
		t.Errorf("description = %q, want %q", res.Description, "D")
	}
	if res.URL != "https://site.test/p" {
		t.Errorf("url = %q, want input URL", res.URL)
	}
	if len(res.Images) != 1 {
		t.Fatalf("images = %d, want 1", len(res.Images))
	}
	img := res.Images[0]
	if img.Src != "https://site.test/i.png" || img.Type != "og" {
		t.Errorf("image = %+v, want src https://site.test/i.png type og", img)
	}
	if len(res.Videos) != 0 {
		t.Errorf("videos = %d, want 0", len(res.Videos))
	}
}

func TestExtractTitleFallback(t *testing.T) {
	doc := mustDoc(t, `<html><head><title>  Plain Page  </title></head><body></body></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	if res.Title != "Plain Page" {
		t.Errorf("title = %q, want %q", res.Title, "Plain Page")
	}
	if res.URL != "https://site.test/p" {
		t.Errorf("url = %q, want input URL", res.URL)
	}
}

func TestExtractOgURLWins(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:url" content="https://canonical.test/p">
	</head></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	if res.URL != "https://canonical.test/p" {
		t.Errorf("url = %q, want og:url value", res.URL)
	}
}

func TestExtractMalformedDimensionsDropped(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:image" content="/i.png">
		<meta property="og:image:width" content="abc">
		<meta property="og:image:height" content="480">
	</head></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	if len(res.Images) != 1 {
		t.Fatalf("images = %d, want 1", len(res.Images))
	}
	img := res.Images[0]
	if img.Width != 0 {
		t.Errorf("width = %d, want absent", img.Width)
	}
	if img.Height != 480 {
		t.Errorf("height = %d, want 480", img.Height)
	}
	if img.Src != "https://site.test/i.png" {
		t.Errorf("src = %q, want resolved against page URL", img.Src)
	}
}

func TestExtractPriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantDesc string
	}{
		{
			"open graph beats generic",
			`<meta name="description" content="generic">
			 <meta property="og:description" content="og">`,
			"og",
		},
		{
			"twitter beats generic",
			`<meta name="description" content="generic">
			 <meta name="twitter:description" content="tw">`,
			"tw",
		},
		{
			"open graph beats twitter",
			`<meta name="twitter:description" content="tw">
			 <meta property="og:description" content="og">`,
			"og",
		},
		{
			"generic fills the gap",
			`<meta name="description" content="generic">`,
			"generic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "<html><head>"+tt.html+"</head></html>")
			res := Extract(doc, "https://site.test/p", plugin.Options{})
			if res.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", res.Description, tt.wantDesc)
			}
		})
	}
}

func TestExtractFirstTagWinsWithinSource(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:title" content="first">
		<meta property="og:title" content="second">
	</head></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	if res.Title != "first" {
		t.Errorf("title = %q, want %q", res.Title, "first")
	}
}

func TestExtractImageAggregation(t *testing.T) {
	// One image record per meta pass, assembled from scattered tags.
	doc := mustDoc(t, `<html><head>
		<meta property="og:image" content="/og.png">
		<meta property="og:title" content="T">
		<meta property="og:image:width" content="640">
		<meta property="og:image:height" content="480">
		<meta name="twitter:image" content="/tw.png">
	</head></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	if len(res.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(res.Images))
	}
	og := res.Images[0]
	if og.Type != "og" || og.Src != "https://site.test/og.png" || og.Width != 640 || og.Height != 480 {
		t.Errorf("og image = %+v", og)
	}
	tw := res.Images[1]
	if tw.Type != "twitter" || tw.Src != "https://site.test/tw.png" {
		t.Errorf("twitter image = %+v", tw)
	}
}

func TestExtractVideoAggregation(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:video" content="https://site.test/v.mp4">
		<meta property="og:video:width" content="1280">
		<meta property="og:video:height" content="720">
		<meta property="og:video:type" content="video/mp4">
	</head></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	if len(res.Videos) != 1 {
		t.Fatalf("videos = %d, want 1", len(res.Videos))
	}
	v := res.Videos[0]
	if v.Src != "https://site.test/v.mp4" || v.Width != 1280 || v.Height != 720 || v.Type != "video/mp4" {
		t.Errorf("video = %+v", v)
	}
}

func TestExtractLinkIcons(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<link rel="apple-touch-icon" href="/touch.png">
		<link rel="apple-touch-icon-precomposed" href="/touch-pre.png">
		<link rel="icon" href="/favicon.ico">
		<link rel="shortcut icon" href="/favicon.ico">
		<link rel="stylesheet" href="/style.css">
	</head></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	// Icons are never deduplicated; both favicon links come through.
	if len(res.Images) != 4 {
		t.Fatalf("images = %d, want 4", len(res.Images))
	}
	wantTypes := []string{"touch_icon", "touch_icon", "favicon", "favicon"}
	for i, img := range res.Images {
		if img.Type != wantTypes[i] {
			t.Errorf("image %d type = %q, want %q", i, img.Type, wantTypes[i])
		}
	}
	if res.Images[2].Src != "https://site.test/favicon.ico" {
		t.Errorf("favicon src = %q, want resolved", res.Images[2].Src)
	}
}

func TestExtractBodyImages(t *testing.T) {
	html := `<html><body>
		<img src="/a.png" alt="first" width="100" height="50">
		<img src="/b.png" height="abc">
		<img alt="no source">
	</body></html>`

	// Off by default.
	doc := mustDoc(t, html)
	res := Extract(doc, "https://site.test/p", plugin.Options{})
	if len(res.Images) != 0 {
		t.Fatalf("body images extracted without opt-in: %d", len(res.Images))
	}

	res = Extract(doc, "https://site.test/p", plugin.Options{AllImages: plugin.Bool(true)})
	if len(res.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(res.Images))
	}

	a := res.Images[0]
	if a.Src != "https://site.test/a.png" || a.Alt != "first" || a.Type != "body_image" {
		t.Errorf("first image = %+v", a)
	}
	if a.Width != 100 || a.Height != 50 {
		t.Errorf("first image dims = %dx%d, want 100x50", a.Width, a.Height)
	}

	b := res.Images[1]
	if b.Alt != "" {
		t.Errorf("second image alt = %q, want empty", b.Alt)
	}
	if b.Width != 0 || b.Height != 0 {
		t.Errorf("second image dims = %dx%d, want absent", b.Width, b.Height)
	}
}

func TestExtractSourceToggles(t *testing.T) {
	html := `<html><head>
		<meta property="og:description" content="og">
		<meta name="twitter:description" content="tw">
		<meta name="description" content="generic">
		<link rel="icon" href="/favicon.ico">
		<link rel="apple-touch-icon" href="/touch.png">
	</head></html>`

	tests := []struct {
		name       string
		opts       plugin.Options
		wantDesc   string
		wantImages int
	}{
		{"all defaults", plugin.Options{}, "og", 2},
		{"open graph off", plugin.Options{OpenGraph: plugin.Bool(false)}, "tw", 2},
		{"social off falls to generic", plugin.Options{OpenGraph: plugin.Bool(false), TwitterCard: plugin.Bool(false)}, "generic", 2},
		{"favicon off", plugin.Options{Favicon: plugin.Bool(false)}, "og", 1},
		{"icons off", plugin.Options{Favicon: plugin.Bool(false), TouchIcon: plugin.Bool(false)}, "og", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, html)
			res := Extract(doc, "https://site.test/p", tt.opts)
			if res.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", res.Description, tt.wantDesc)
			}
			if len(res.Images) != tt.wantImages {
				t.Errorf("images = %d, want %d", len(res.Images), tt.wantImages)
			}
		})
	}
}

func TestExtractKeywordsAndLocale(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:locale" content="en_US">
		<meta name="keywords" content="go, web,metadata">
	</head></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	if res.Locale != "en_US" {
		t.Errorf("locale = %q, want en_US", res.Locale)
	}
	want := []string{"go", "web", "metadata"}
	if len(res.Keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", res.Keywords, want)
	}
	for i := range want {
		if res.Keywords[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, res.Keywords[i], want[i])
		}
	}
}

func TestExtractEmptyContentIgnored(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:title" content="">
		<meta name="description" content="generic">
	</head><title>Fallback</title></html>`)

	res := Extract(doc, "https://site.test/p", plugin.Options{})

	// An empty og:title must not claim the title slot.
	if res.Title != "Fallback" {
		t.Errorf("title = %q, want fallback", res.Title)
	}
	if res.Description != "generic" {
		t.Errorf("description = %q, want generic", res.Description)
	}
}
