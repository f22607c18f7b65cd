package output

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// TextWriter writes results to a plain text file, mirroring the terminal
// output (without ANSI color codes).
type TextWriter struct {
	path  string
	lines []string
	mu    sync.Mutex
}

// NewTextWriter creates a new plain-text output writer.
func NewTextWriter(path string) *TextWriter {
	return &TextWriter{path: path}
}

func (w *TextWriter) Name() string { return "text" }

func (w *TextWriter) WriteResult(result *plugin.FetchResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if result.Error != "" {
		w.lines = append(w.lines, fmt.Sprintf("  [ERR] %s: %s", result.URL, result.Error))
		return nil
	}

	meta := result.Meta
	w.lines = append(w.lines, fmt.Sprintf("  [OK] %s (%s)", result.URL, fmtDur(result.Duration)))

	if meta.Title != "" {
		w.lines = append(w.lines, "      +-- title: "+meta.Title)
	}
	if meta.Description != "" {
		w.lines = append(w.lines, "      +-- description: "+meta.Description)
	}
	if meta.Locale != "" {
		w.lines = append(w.lines, "      +-- locale: "+meta.Locale)
	}
	if len(meta.Keywords) > 0 {
		w.lines = append(w.lines, "      +-- keywords: "+strings.Join(meta.Keywords, ", "))
	}
	for _, img := range meta.Images {
		line := fmt.Sprintf("      +-- image[%s]: %s", img.Type, img.Src)
		if img.Width > 0 || img.Height > 0 {
			line += fmt.Sprintf(" (%dx%d)", img.Width, img.Height)
		}
		w.lines = append(w.lines, line)
	}
	for _, vid := range meta.Videos {
		line := fmt.Sprintf("      +-- video: %s", vid.Src)
		if vid.Type != "" {
			line += " [" + vid.Type + "]"
		}
		if vid.Width > 0 || vid.Height > 0 {
			line += fmt.Sprintf(" (%dx%d)", vid.Width, vid.Height)
		}
		w.lines = append(w.lines, line)
	}

	return nil
}

func (w *TextWriter) Finalize(summary *plugin.RunSummary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var b strings.Builder

	// Banner
	b.WriteString("\n  PAGEMETA v1.0.0\n")
	b.WriteString("  Priority-resolving page metadata extraction\n")
	b.WriteString("  " + strings.Repeat("-", 58) + "\n\n")

	b.WriteString(fmt.Sprintf("  Started: %s\n\n", summary.StartedAt.Format(time.RFC1123)))

	for _, line := range w.lines {
		b.WriteString(line + "\n")
	}

	// Summary
	b.WriteString("\n  " + strings.Repeat("-", 50) + "\n")
	b.WriteString("  Run complete\n")
	b.WriteString(fmt.Sprintf("    Pages:  %d fetched, %d errors\n", summary.TotalPages, summary.TotalErrors))
	b.WriteString(fmt.Sprintf("    Time:   %s\n\n", fmtDur(summary.Duration)))

	return os.WriteFile(w.path, []byte(b.String()), 0644)
}

func fmtDur(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
