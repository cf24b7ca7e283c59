// Package extract pulls typed records out of a rendered DOM using the
// selector policy's fallback chains.
//
// The failure policy is deliberately asymmetric: exhausting the
// container or item chain is section-fatal (SectionNotFound), while
// any field-level miss just leaves that field absent from the record.
// Structural drift should surface in the report; field drift should
// degrade silently and keep as much data as possible.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/huntdex/models"
	"github.com/use-agent/huntdex/selectors"
)

// Extractor dispatches on entity type and assembles typed records.
// Extraction is a pure function of the DOM and the policy: the same
// document always yields the same entries.
type Extractor struct {
	policy *selectors.Policy
}

// New creates an Extractor. The policy should already be validated.
func New(policy *selectors.Policy) *Extractor {
	return &Extractor{policy: policy}
}

// Extract returns the surviving records for one entity type plus the
// raw item count before the empty-name drop rule.
func (e *Extractor) Extract(doc *goquery.Document, t models.EntityType) ([]models.Entry, int, error) {
	containerSpec, err := e.policy.Resolve(t, selectors.FieldContainer)
	if err != nil {
		return nil, 0, err
	}
	container := firstMatch(doc.Selection, containerSpec.Chain)
	if container == nil {
		return nil, 0, models.NewScrapeError(models.ErrCodeSectionNotFound,
			fmt.Sprintf("container selector chain exhausted for %s", t), nil)
	}

	itemSpec, err := e.policy.Resolve(t, selectors.FieldItem)
	if err != nil {
		return nil, 0, err
	}
	items := firstMatch(container, itemSpec.Chain)
	if items == nil {
		return nil, 0, models.NewScrapeError(models.ErrCodeSectionNotFound,
			fmt.Sprintf("item selector chain exhausted for %s", t), nil)
	}

	rawCount := items.Length()
	entries := make([]models.Entry, 0, rawCount)
	items.Each(func(_ int, item *goquery.Selection) {
		// Partial or placeholder nodes without a name are expected
		// noise, not errors.
		if entry := e.build(t, item); entry != nil {
			entries = append(entries, entry)
		}
	})

	return entries, rawCount, nil
}

// firstMatch tries each selector in priority order against scope and
// returns the first non-empty match set, or nil when the chain is
// exhausted. It is the single fallback mechanism shared by container,
// item, and field lookups.
func firstMatch(scope *goquery.Selection, chain []string) *goquery.Selection {
	for _, sel := range chain {
		if m := scope.Find(sel); m.Length() > 0 {
			return m
		}
	}
	return nil
}

// text extracts a single-valued field: trimmed text of the first match,
// or the configured attribute when the spec names one (falling back to
// text for chain entries that lack the attribute).
func (e *Extractor) text(item *goquery.Selection, t models.EntityType, f selectors.Field) string {
	spec, err := e.policy.Resolve(t, f)
	if err != nil {
		// Unreachable after Policy.Validate; treat as field absent.
		return ""
	}
	m := firstMatch(item, spec.Chain)
	if m == nil {
		return ""
	}
	return nodeValue(m.First(), spec.Attr)
}

// list extracts a multi-valued field: every match of the winning
// selector in document order, not deduplicated.
func (e *Extractor) list(item *goquery.Selection, t models.EntityType, f selectors.Field) []string {
	spec, err := e.policy.Resolve(t, f)
	if err != nil {
		return nil
	}
	m := firstMatch(item, spec.Chain)
	if m == nil {
		return nil
	}
	var values []string
	m.Each(func(_ int, s *goquery.Selection) {
		if v := nodeValue(s, spec.Attr); v != "" {
			values = append(values, v)
		}
	})
	return values
}

func nodeValue(s *goquery.Selection, attr string) string {
	if attr != "" {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return strings.TrimSpace(s.Text())
}
