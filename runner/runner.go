// Package runner drives one full pass over all configured sections.
//
// Graceful degradation is a run-level guarantee: a section that fails
// to render or match its structural selectors records an error in the
// report and an empty entry set, and never halts the other sections.
package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/use-agent/huntdex/config"
	"github.com/use-agent/huntdex/extract"
	"github.com/use-agent/huntdex/models"
	"github.com/use-agent/huntdex/scraper"
	"golang.org/x/time/rate"
)

// sectionState tracks one section's progress through the run.
type sectionState string

const (
	statePending    sectionState = "pending"
	stateRendering  sectionState = "rendering"
	stateExtracting sectionState = "extracting"
	stateSucceeded  sectionState = "succeeded"
	stateFailed     sectionState = "failed"
)

// Runner owns the per-run orchestration: worker pool, rate limiting,
// per-section state, aggregation, and the report.
type Runner struct {
	renderer   scraper.Renderer
	extractor  *extract.Extractor
	settle     time.Duration
	navTimeout time.Duration
	workers    int
	limiter    *rate.Limiter
}

// New wires a Runner from the loaded configuration. The renderer and
// extractor are shared across workers; each worker borrows its own
// browser page inside Render.
func New(renderer scraper.Renderer, extractor *extract.Extractor, cfg *config.Config) *Runner {
	rps := cfg.Run.RendersPerSecond
	if rps <= 0 {
		rps = 1
	}
	workers := cfg.Run.Workers
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		renderer:   renderer,
		extractor:  extractor,
		settle:     cfg.SettleWait(),
		navTimeout: cfg.Render.NavigationTimeout,
		workers:    workers,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// RunAll processes every configured section and returns the aggregate
// entries by entity type plus the finalized report. It always returns
// a complete report: one entry per configured section, succeeded or
// not.
func (r *Runner) RunAll(ctx context.Context, sections []config.SectionConfig) (map[models.EntityType][]models.Entry, *models.RunReport) {
	start := time.Now()
	report := models.NewRunReport()
	results := make([]models.SectionResult, len(sections))

	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup

	for i, sec := range sections {
		wg.Add(1)
		go func(idx int, sec config.SectionConfig) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = r.runSection(ctx, sec)
		}(i, sec)
	}
	wg.Wait()

	// Merge in configured order so the aggregate output is stable
	// regardless of which worker finished first. Buckets key off each
	// entry's own type tag, not the section config.
	aggregate := make(map[models.EntityType][]models.Entry)
	for i := range sections {
		res := results[i]
		report.Record(res)
		for _, entry := range res.Entries {
			aggregate[entry.EntityType()] = append(aggregate[entry.EntityType()], entry)
		}
	}
	report.ElapsedMs = time.Since(start).Milliseconds()

	slog.Info("run finished",
		"sections", len(sections),
		"kept", report.TotalKept(),
		"elapsedMs", report.ElapsedMs,
	)
	return aggregate, report
}

// runSection walks one section through pending → rendering →
// extracting → terminal. Every section-fatal error is converted into a
// failed result here; nothing below section level escapes.
func (r *Runner) runSection(ctx context.Context, sec config.SectionConfig) models.SectionResult {
	res := models.SectionResult{SectionName: sec.Name}
	logState(sec.Name, statePending)

	if err := r.limiter.Wait(ctx); err != nil {
		res.Error = models.CategorizeRenderError(err, "run canceled before render")
		logState(sec.Name, stateFailed)
		return res
	}

	logState(sec.Name, stateRendering)
	renderCtx, cancel := context.WithTimeout(ctx, r.navTimeout)
	defer cancel()

	rendered, err := r.renderer.Render(renderCtx, sec.Name, sec.URL, r.settle)
	if err != nil {
		slog.Error("section render failed", "section", sec.Name, "url", sec.URL, "error", err)
		res.Error = err
		logState(sec.Name, stateFailed)
		return res
	}

	logState(sec.Name, stateExtracting)
	entries, rawCount, err := r.extractor.Extract(rendered.Doc, sec.Type)
	res.RawCount = rawCount
	if err != nil {
		slog.Error("section extraction failed", "section", sec.Name, "error", err)
		res.Error = err
		logState(sec.Name, stateFailed)
		return res
	}

	res.Entries = entries
	logState(sec.Name, stateSucceeded)
	slog.Info("section extracted",
		"section", sec.Name,
		"finalURL", rendered.FinalURL,
		"found", rawCount,
		"kept", len(entries),
	)
	return res
}

func logState(section string, s sectionState) {
	slog.Debug("section state", "section", section, "state", string(s))
}
