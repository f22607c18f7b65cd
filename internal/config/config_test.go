package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ramkansal/pagemeta/internal/client"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagemeta.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("could not write config: %v", err)
	}
	return path
}

func TestLoadAndApply(t *testing.T) {
	path := writeConfig(t, `
fetch:
  fetcher: browser
  timeout_sec: 20
  retry: 3
  user_agent: custom-agent
  parallelism: 8
sources:
  open_graph: false
  all_images: true
output:
  path: out.json
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	target := client.DefaultConfig()
	cfg.Apply(target)

	if target.FetcherMode != client.FetcherBrowser {
		t.Errorf("fetcher = %q, want browser", target.FetcherMode)
	}
	if target.Timeout != 20*time.Second {
		t.Errorf("timeout = %v, want 20s", target.Timeout)
	}
	if target.Retry != 3 {
		t.Errorf("retry = %d, want 3", target.Retry)
	}
	if target.UserAgent != "custom-agent" {
		t.Errorf("user agent = %q", target.UserAgent)
	}
	if target.Parallelism != 8 {
		t.Errorf("parallelism = %d, want 8", target.Parallelism)
	}
	if target.Extract.OpenGraphEnabled() {
		t.Error("open graph should be disabled")
	}
	if !target.Extract.AllImagesEnabled() {
		t.Error("all images should be enabled")
	}
	if !target.SaveOutput || target.OutputPath != "out.json" {
		t.Errorf("output not applied: save=%v path=%q", target.SaveOutput, target.OutputPath)
	}
}

func TestApplyKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
fetch:
  user_agent: custom-agent
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	target := client.DefaultConfig()
	cfg.Apply(target)

	if target.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want untouched default", target.Timeout)
	}
	if target.FetcherMode != client.FetcherHTTP {
		t.Errorf("fetcher = %q, want untouched default", target.FetcherMode)
	}
	if !target.Extract.OpenGraphEnabled() || target.Extract.AllImagesEnabled() {
		t.Error("source defaults should be untouched")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad format", "output:\n  format: xml\n", ErrInvalidFormat},
		{"bad fetcher", "fetch:\n  fetcher: warp\n", ErrInvalidFetcher},
		{"negative retry", "fetch:\n  retry: -1\n", ErrInvalidRetry},
		{"negative timeout", "fetch:\n  timeout_sec: -5\n", ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
