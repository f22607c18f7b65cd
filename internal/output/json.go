// Package output holds the batch-run output writers.
package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/ramkansal/pagemeta/pkg/plugin"
)

// JSONWriter collects per-page results and writes one indented JSON document
// at the end of the run.
type JSONWriter struct {
	path    string
	mu      sync.Mutex
	results []plugin.FetchResult
}

func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Name implements plugin.OutputWriter.
func (w *JSONWriter) Name() string { return "json" }

// WriteResult buffers one result. Errored pages are included too.
func (w *JSONWriter) WriteResult(r *plugin.FetchResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results = append(w.results, *r)
	return nil
}

// Finalize attaches the buffered results to the summary and writes the file.
func (w *JSONWriter) Finalize(summary *plugin.RunSummary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	summary.Results = w.results

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(w.path, data, 0644)
}
