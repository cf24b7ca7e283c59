package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/use-agent/huntdex/config"
	"github.com/use-agent/huntdex/extract"
	"github.com/use-agent/huntdex/runner"
	"github.com/use-agent/huntdex/scraper"
	"github.com/use-agent/huntdex/selectors"
	"github.com/use-agent/huntdex/writer"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── 1. Parse command line + load configuration ──────────────────
	mode := flag.String("mode", config.ModeNormal, "run mode: normal or debug")
	flag.Parse()
	cfg := config.Load(*mode)

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("huntdex starting",
		"mode", cfg.Mode,
		"baseURL", cfg.Site.BaseURL,
		"workers", cfg.Run.Workers,
		"settleWait", cfg.SettleWait(),
	)

	// ── 3. Load + validate selector policy (fatal before any section runs)
	policy, err := selectors.LoadFile(cfg.Site.SelectorsFile)
	if err != nil {
		slog.Error("failed to load selector overrides", "file", cfg.Site.SelectorsFile, "error", err)
		return 1
	}
	if err := policy.Validate(); err != nil {
		slog.Error("selector policy invalid", "error", err)
		return 1
	}

	// ── 4. Initialise output writer ─────────────────────────────────
	out, err := writer.New(cfg.Output.DataDir, cfg.Output.DebugDir)
	if err != nil {
		slog.Error("failed to initialise writer", "error", err)
		return 1
	}

	// ── 5. Initialise renderer (launches browser) ───────────────────
	var dump scraper.DumpSink
	if cfg.Mode == config.ModeDebug {
		dump = func(name, html string) {
			if dumpErr := out.DumpHTML(name, html); dumpErr != nil {
				slog.Warn("debug dump failed", "section", name, "error", dumpErr)
			} else {
				slog.Debug("saved debug HTML", "section", name)
			}
		}
	}
	renderer, err := scraper.NewRodRenderer(cfg.Browser, dump)
	if err != nil {
		slog.Error("failed to initialise renderer", "error", err)
		return 1
	}
	defer renderer.Close()

	// ── 6. Run all sections ─────────────────────────────────────────
	r := runner.New(renderer, extract.New(policy), cfg)
	data, report := r.RunAll(context.Background(), cfg.Sections)

	// ── 7. Write artifacts (always, even on an all-failed run) ──────
	if err := out.WriteAll(data); err != nil {
		slog.Error("failed to write data files", "error", err)
	}
	if err := out.WriteReport(report); err != nil {
		slog.Error("failed to write report", "error", err)
	}

	for name, sr := range report.Sections {
		if sr.Error != "" {
			slog.Warn("section failed", "section", name, "error", sr.Error)
		} else {
			slog.Info("section summary", "section", name, "found", sr.Found, "kept", sr.Kept)
		}
	}

	if report.TotalKept() == 0 {
		slog.Warn("run completed with zero entries, check selectors against the live site")
		return 1
	}
	slog.Info("run completed", "totalEntries", report.TotalKept())
	return 0
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
