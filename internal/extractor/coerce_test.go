package extractor

import (
	"net/url"
	"reflect"
	"testing"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{"plain integer", "640", 640, true},
		{"surrounding whitespace", "  480 ", 480, true},
		{"not a number", "abc", 0, false},
		{"empty", "", 0, false},
		{"negative", "-5", 0, false},
		{"zero", "0", 0, false},
		{"float", "3.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toInt(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("toInt(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	base, _ := url.Parse("https://site.test/articles/post")

	tests := []struct {
		name string
		base *url.URL
		raw  string
		want string
	}{
		{"already absolute https", base, "https://cdn.test/i.png", "https://cdn.test/i.png"},
		{"already absolute http", base, "http://cdn.test/i.png", "http://cdn.test/i.png"},
		{"root relative", base, "/static/logo.png", "https://site.test/static/logo.png"},
		{"path relative", base, "icon.ico", "https://site.test/articles/icon.ico"},
		{"empty", base, "", ""},
		{"whitespace only", base, "   ", ""},
		{"nil base", nil, "/static/logo.png", "/static/logo.png"},
		// www-prefixed values are not absolute URLs and resolve against
		// the page base like any other relative reference.
		{"bare host is relative", base, "www.other.test/i.png", "https://site.test/articles/www.other.test/i.png"},
		{"protocol relative", base, "//cdn.test/i.png", "https://cdn.test/i.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveURL(tt.base, tt.raw); got != tt.want {
				t.Errorf("resolveURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain list", "go,web,metadata", []string{"go", "web", "metadata"}},
		{"whitespace trimmed", " go , web ", []string{"go", "web"}},
		{"empty entries dropped", "go,,web,", []string{"go", "web"}},
		{"single", "go", []string{"go"}},
		{"empty", "", nil},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitKeywords(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitKeywords(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"carriage returns stripped", "a\r\nb", "a\nb"},
		{"null bytes stripped", "a\x00b", "ab"},
		{"trimmed", "  hello  ", "hello"},
		{"clean passthrough", "hello", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanText(tt.raw); got != tt.want {
				t.Errorf("cleanText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
