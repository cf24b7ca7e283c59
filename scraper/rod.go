package scraper

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/huntdex/config"
	"github.com/use-agent/huntdex/models"
	"github.com/ysmood/gson"
)

// RodRenderer manages the global browser lifecycle and the page pool.
// It is safe for concurrent use: each Render call borrows its own tab.
type RodRenderer struct {
	browser  *rod.Browser
	pagePool rod.Pool[rod.Page]
	cfg      config.BrowserConfig
	dump     DumpSink
}

// NewRodRenderer launches a headless browser and initialises the
// reusable page pool. dump may be nil when debug artifacts are off.
func NewRodRenderer(cfg config.BrowserConfig, dump DumpSink) (*RodRenderer, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	pool := rod.NewPagePool(cfg.MaxPages)
	slog.Info("page pool created", "maxPages", cfg.MaxPages)

	return &RodRenderer{
		browser:  browser,
		pagePool: pool,
		cfg:      cfg,
		dump:     dump,
	}, nil
}

// Render navigates a pooled page to url, waits for the DOM to settle,
// and returns the rendered document.
//
// Lifecycle ordering matters: stealth injection and extra headers must
// be installed before Navigate to take effect for that navigation, and
// the cleanup defer uses the original page reference (without the
// request context) so the pool return succeeds even after a deadline.
func (r *RodRenderer) Render(ctx context.Context, name, target string, settle time.Duration) (*RenderResult, error) {
	page, acquireErr := r.pagePool.Get(func() (*rod.Page, error) {
		return r.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank",
				"section", name, "error", navErr,
			)
		}
		r.pagePool.Put(page)
	}()

	if r.cfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	// A plausible Referer keeps the fan site's hotlink checks quiet.
	if u, parseErr := url.Parse(target); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{
				"Referer": "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname()),
			}),
		}.Call(page)
	}

	p := page.Context(ctx)

	if navErr := p.Navigate(target); navErr != nil {
		return nil, models.CategorizeRenderError(navErr, "navigation to section URL failed")
	}

	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"section", name, "error", stableErr,
		)
	}

	// The site hydrates after load; give it the mode-selected settle
	// wait, but respect the render deadline.
	if settle > 0 {
		select {
		case <-ctx.Done():
			return nil, models.CategorizeRenderError(ctx.Err(), "render deadline hit during settle wait")
		case <-time.After(settle):
		}
	}

	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, models.CategorizeRenderError(htmlErr, "failed to extract page HTML")
	}

	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = target
	}

	if r.dump != nil {
		r.dump(name, rawHTML)
	}

	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if parseErr != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeNavigation,
			"failed to parse rendered HTML",
			parseErr,
		)
	}

	return &RenderResult{
		Doc:      doc,
		HTML:     rawHTML,
		FinalURL: finalURL,
	}, nil
}

// Close drains the page pool and kills the browser process. Call this
// on shutdown to prevent zombie Chrome processes.
func (r *RodRenderer) Close() {
	slog.Info("renderer shutting down: draining page pool")
	r.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	r.browser.MustClose()
	slog.Info("renderer shutdown complete")
}

// evalStringOrEmpty evaluates a JS expression and returns the string
// result, swallowing any errors.
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
