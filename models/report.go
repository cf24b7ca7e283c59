package models

import "time"

// SectionResult is the terminal outcome of one section's run. Entries
// are owned by the orchestrator once the section reaches a terminal
// state; they are never mutated afterwards.
type SectionResult struct {
	SectionName string
	Entries     []Entry
	Error       error
	// RawCount is the number of items the item selector matched before
	// the empty-name drop rule, kept for diagnostics.
	RawCount int
}

// SectionReport is the report-facing summary of one section. It never
// carries the entries themselves.
type SectionReport struct {
	Found int    `json:"found"`
	Kept  int    `json:"kept"`
	Error string `json:"error,omitempty"`
}

// RunReport summarizes a full pass over all configured sections.
type RunReport struct {
	Sections  map[string]SectionReport `json:"sections"`
	Timestamp string                   `json:"timestamp"`
	ElapsedMs int64                    `json:"elapsed_ms"`
}

// NewRunReport creates an empty report stamped with the current time.
func NewRunReport() *RunReport {
	return &RunReport{
		Sections:  make(map[string]SectionReport),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// Record adds one section's terminal result to the report.
func (r *RunReport) Record(res SectionResult) {
	sr := SectionReport{
		Found: res.RawCount,
		Kept:  len(res.Entries),
	}
	if res.Error != nil {
		sr.Error = res.Error.Error()
	}
	r.Sections[res.SectionName] = sr
}

// TotalKept returns the number of entries that survived across all
// sections.
func (r *RunReport) TotalKept() int {
	total := 0
	for _, sr := range r.Sections {
		total += sr.Kept
	}
	return total
}
