package plugin

import "testing"

func TestOptionsDefaults(t *testing.T) {
	var o Options

	if !o.OpenGraphEnabled() {
		t.Error("open graph should default on")
	}
	if !o.TwitterCardEnabled() {
		t.Error("twitter card should default on")
	}
	if !o.TouchIconEnabled() {
		t.Error("touch icon should default on")
	}
	if !o.FaviconEnabled() {
		t.Error("favicon should default on")
	}
	if o.AllImagesEnabled() {
		t.Error("all images should default off")
	}
}

func TestOptionsMerge(t *testing.T) {
	base := Options{
		OpenGraph: Bool(false),
		AllImages: Bool(true),
	}

	tests := []struct {
		name          string
		override      Options
		wantOpenGraph bool
		wantAllImages bool
		wantFavicon   bool
	}{
		{"zero override keeps base", Options{}, false, true, true},
		{"override wins", Options{OpenGraph: Bool(true)}, true, true, true},
		{"override can disable", Options{AllImages: Bool(false)}, false, false, true},
		{"unset fields stay default", Options{Favicon: Bool(false)}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := tt.override.Merge(base)
			if got := merged.OpenGraphEnabled(); got != tt.wantOpenGraph {
				t.Errorf("open graph = %v, want %v", got, tt.wantOpenGraph)
			}
			if got := merged.AllImagesEnabled(); got != tt.wantAllImages {
				t.Errorf("all images = %v, want %v", got, tt.wantAllImages)
			}
			if got := merged.FaviconEnabled(); got != tt.wantFavicon {
				t.Errorf("favicon = %v, want %v", got, tt.wantFavicon)
			}
		})
	}
}

func TestNewResult(t *testing.T) {
	r := NewResult()
	if r.Fields == nil || r.Images == nil || r.Videos == nil {
		t.Error("NewResult must initialize collections")
	}
	if len(r.Images) != 0 || len(r.Videos) != 0 {
		t.Error("NewResult collections must start empty")
	}
}
