// Package writer serializes the run's aggregate output and report.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/use-agent/huntdex/models"
)

// Writer persists JSON artifacts for one run. The debug dir is created
// lazily so normal runs never touch it.
type Writer struct {
	dataDir  string
	debugDir string
	mu       sync.Mutex
}

// New creates the output directory and returns a Writer.
func New(dataDir, debugDir string) (*Writer, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{dataDir: dataDir, debugDir: debugDir}, nil
}

// WriteAll writes the combined document plus one array per entity type.
// Per-type files are only written when the type has entries; the
// combined document always exists, even when everything failed.
func (w *Writer) WriteAll(data map[models.EntityType][]models.Entry) error {
	combined := make(map[models.EntityType][]models.Entry, len(models.AllEntityTypes))
	for _, t := range models.AllEntityTypes {
		entries := data[t]
		if entries == nil {
			entries = []models.Entry{}
		}
		combined[t] = entries
	}
	if err := w.writeJSON(filepath.Join(w.dataDir, "mhnow_data_all.json"), combined); err != nil {
		return err
	}

	for _, t := range models.AllEntityTypes {
		if len(data[t]) == 0 {
			continue
		}
		name := fmt.Sprintf("mhnow_%s.json", t)
		if err := w.writeJSON(filepath.Join(w.dataDir, name), data[t]); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes the run report.
func (w *Writer) WriteReport(report *models.RunReport) error {
	return w.writeJSON(filepath.Join(w.dataDir, "scrape_report.json"), report)
}

// DumpHTML persists one section's raw rendered markup for inspection.
// It is safe for concurrent use and never fails the run: a dump error
// is worth a log line at most, so it is returned for the caller to
// log and otherwise ignore.
func (w *Writer) DumpHTML(section, html string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.debugDir, 0o755); err != nil {
		return fmt.Errorf("failed to create debug directory: %w", err)
	}
	name := filepath.Join(w.debugDir, fmt.Sprintf("debug_%s.html", section))
	if err := os.WriteFile(name, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write debug dump: %w", err)
	}
	return nil
}

func (w *Writer) writeJSON(path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
