package selectors

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/use-agent/huntdex/models"
)

// LoadFile returns the default policy with chain overrides applied
// from a JSON file of the shape:
//
//	{"monster": {"name_en": [".hero-name", ".name"]}}
//
// An empty path returns the defaults unchanged. Unknown entity types
// or fields in the file are configuration errors: a typo here would
// otherwise silently fall back to defaults and hide the override.
func LoadFile(path string) (*Policy, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeConfig,
			"failed to read selectors file", err)
	}

	var overrides map[string]map[string][]string
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeConfig,
			"selectors file is not valid JSON", err)
	}

	for rawType, fields := range overrides {
		t := models.EntityType(rawType)
		known, ok := requiredFields[t]
		if !ok {
			return nil, models.NewScrapeError(models.ErrCodeConfig,
				fmt.Sprintf("selectors file names unknown entity type %q", rawType), nil)
		}
		for rawField, chain := range fields {
			f := Field(rawField)
			if !slices.Contains(known, f) {
				return nil, models.NewScrapeError(models.ErrCodeConfig,
					fmt.Sprintf("selectors file names unknown field %q for %s", rawField, rawType), nil)
			}
			p.Override(t, f, chain)
		}
	}
	return p, nil
}
