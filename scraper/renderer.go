package scraper

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// RenderResult is the unified return type for a rendered page.
type RenderResult struct {
	// Doc is the rendered DOM, ready for selector queries.
	Doc *goquery.Document

	// HTML is the raw rendered markup the document was parsed from.
	HTML string

	// FinalURL is the location after any redirects (best-effort).
	FinalURL string
}

// Renderer turns a URL into a queryable DOM. name identifies the
// section being rendered and is only used to label debug artifacts;
// settle is the post-navigation wait the caller selected for its mode.
type Renderer interface {
	Render(ctx context.Context, name, url string, settle time.Duration) (*RenderResult, error)
}

// DumpSink receives the raw rendered markup of a section. It is a pure
// side channel: its output never feeds back into extraction.
type DumpSink func(name, html string)
