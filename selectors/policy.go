// Package selectors holds the per-entity-type fallback selector chains.
//
// The target site's markup is externally controlled and drifts. Every
// logical field is therefore backed by an ordered chain of candidate
// CSS selectors tried in priority order; the first candidate that
// yields a non-empty match wins. The chains here are data, not logic:
// when the site changes, this file is what gets updated.
package selectors

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/use-agent/huntdex/models"
)

// Field names a logical part of an entity's DOM scope.
type Field string

const (
	// Structural fields. Exhausting either chain is section-fatal.
	FieldContainer Field = "container"
	FieldItem      Field = "item"

	// Attribute fields. A chain that matches nothing just leaves the
	// field absent from the record.
	FieldNameEN      Field = "name_en"
	FieldNameJP      Field = "name_jp"
	FieldWeakness    Field = "weakness"
	FieldMaterials   Field = "materials"
	FieldHabitat     Field = "habitat"
	FieldNotes       Field = "notes"
	FieldWeaponClass Field = "weapon_class"
	FieldRarity      Field = "rarity"
	FieldSlot        Field = "slot"
	FieldSkills      Field = "skills"
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
)

// Spec describes how one field is extracted: which selectors to try,
// whether to read an attribute instead of text content, and whether to
// collect every match (document order, no dedup) or just the first.
type Spec struct {
	Chain []string
	Attr  string
	Multi bool
}

// Policy maps (entity type, field) pairs to extraction specs.
type Policy struct {
	chains map[models.EntityType]map[Field]Spec
}

// Resolve returns the spec for a known (type, field) pair. Unknown
// pairs are a configuration error, not a soft miss: every field an
// extractor asks for must have a chain.
func (p *Policy) Resolve(t models.EntityType, f Field) (Spec, error) {
	fields, ok := p.chains[t]
	if !ok {
		return Spec{}, models.NewScrapeError(models.ErrCodeConfig,
			fmt.Sprintf("no selector chains for entity type %q", t), nil)
	}
	spec, ok := fields[f]
	if !ok || len(spec.Chain) == 0 {
		return Spec{}, models.NewScrapeError(models.ErrCodeConfig,
			fmt.Sprintf("no selector chain for %s.%s", t, f), nil)
	}
	return spec, nil
}

// requiredFields lists every field each extractor will ask for, so a
// hole in the policy surfaces at startup instead of mid-run.
var requiredFields = map[models.EntityType][]Field{
	models.TypeMonster: {FieldContainer, FieldItem, FieldNameEN, FieldNameJP, FieldWeakness, FieldMaterials, FieldHabitat, FieldNotes},
	models.TypeWeapon:  {FieldContainer, FieldItem, FieldNameEN, FieldNameJP, FieldWeaponClass, FieldRarity, FieldNotes},
	models.TypeArmor:   {FieldContainer, FieldItem, FieldNameEN, FieldNameJP, FieldSlot, FieldSkills, FieldNotes},
	models.TypeSkill:   {FieldContainer, FieldItem, FieldNameEN, FieldNameJP, FieldCategory, FieldDescription, FieldNotes},
	models.TypeItem:    {FieldContainer, FieldItem, FieldNameEN, FieldNameJP, FieldCategory, FieldDescription, FieldNotes},
}

// Validate checks that every field the extractors need has a chain and
// that every selector in every chain parses. A failure aborts the run
// before any section starts.
func (p *Policy) Validate() error {
	for t, fields := range requiredFields {
		for _, f := range fields {
			if _, err := p.Resolve(t, f); err != nil {
				return err
			}
		}
	}
	for t, fields := range p.chains {
		for f, spec := range fields {
			for _, sel := range spec.Chain {
				if _, err := cascadia.Parse(sel); err != nil {
					return models.NewScrapeError(models.ErrCodeConfig,
						fmt.Sprintf("invalid selector %q for %s.%s", sel, t, f), err)
				}
			}
		}
	}
	return nil
}

// Override replaces the chain for one (type, field) pair. Selectors
// are given as a comma-free list; empty entries are dropped.
func (p *Policy) Override(t models.EntityType, f Field, chain []string) {
	cleaned := make([]string, 0, len(chain))
	for _, sel := range chain {
		if s := strings.TrimSpace(sel); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return
	}
	if p.chains[t] == nil {
		p.chains[t] = make(map[Field]Spec)
	}
	spec := p.chains[t][f]
	spec.Chain = cleaned
	p.chains[t][f] = spec
}

// Default returns the policy tuned for the current site markup. The
// generic "div[class*='card'], li, tr" last resort in the item chains
// catches repeated structures when every specific class has drifted.
func Default() *Policy {
	return &Policy{chains: map[models.EntityType]map[Field]Spec{
		models.TypeMonster: {
			FieldContainer: {Chain: []string{"div.monster-list", "table.monster-table", ".card-container", "main"}},
			FieldItem:      {Chain: []string{"div.monster-card", "tr.monster-row", ".list-item", "div[class*='card'], li, tr"}},
			FieldNameEN:    {Chain: []string{".name-en", ".name", "h3", "[lang='en']"}},
			FieldNameJP:    {Chain: []string{".name-jp", "[lang='ja']"}},
			FieldWeakness:  {Chain: []string{".weakness img", ".weakness", ".element"}, Attr: "alt", Multi: true},
			FieldMaterials: {Chain: []string{".material", ".drop"}, Multi: true},
			FieldHabitat:   {Chain: []string{".habitat", ".location"}},
			FieldNotes:     {Chain: []string{".notes"}},
		},
		models.TypeWeapon: {
			FieldContainer:   {Chain: []string{"div.weapon-list", ".card-container", "main"}},
			FieldItem:        {Chain: []string{"div.weapon-card", ".list-item", "div[class*='card'], li, tr"}},
			FieldNameEN:      {Chain: []string{".name-en", ".name", "h3"}},
			FieldNameJP:      {Chain: []string{".name-jp", "[lang='ja']"}},
			FieldWeaponClass: {Chain: []string{".type", ".class"}},
			FieldRarity:      {Chain: []string{".rarity", ".stars"}},
			FieldNotes:       {Chain: []string{".notes"}},
		},
		models.TypeArmor: {
			FieldContainer: {Chain: []string{"div.armor-list", ".card-container", "main"}},
			FieldItem:      {Chain: []string{"div.armor-card", ".list-item", "div[class*='card'], li, tr"}},
			FieldNameEN:    {Chain: []string{".name-en", ".name", "h3"}},
			FieldNameJP:    {Chain: []string{".name-jp", "[lang='ja']"}},
			FieldSlot:      {Chain: []string{".slot", ".piece"}},
			FieldSkills:    {Chain: []string{".skill"}, Multi: true},
			FieldNotes:     {Chain: []string{".notes"}},
		},
		models.TypeSkill: {
			FieldContainer:   {Chain: []string{"div.skill-list", ".card-container", "main"}},
			FieldItem:        {Chain: []string{"div.skill-card", ".list-item", "div[class*='card'], li, tr"}},
			FieldNameEN:      {Chain: []string{".name-en", ".name", "h3"}},
			FieldNameJP:      {Chain: []string{".name-jp", "[lang='ja']"}},
			FieldCategory:    {Chain: []string{".category", ".type"}},
			FieldDescription: {Chain: []string{".description", ".desc", "p"}},
			FieldNotes:       {Chain: []string{".notes"}},
		},
		models.TypeItem: {
			FieldContainer:   {Chain: []string{"div.material-list", "div.item-list", ".card-container", "main"}},
			FieldItem:        {Chain: []string{"div.material-card", "div.item-card", ".list-item", "div[class*='card'], li, tr"}},
			FieldNameEN:      {Chain: []string{".name-en", ".name", "h3"}},
			FieldNameJP:      {Chain: []string{".name-jp", "[lang='ja']"}},
			FieldCategory:    {Chain: []string{".category", ".type"}},
			FieldDescription: {Chain: []string{".description", ".desc", "p"}},
			FieldNotes:       {Chain: []string{".notes"}},
		},
	}}
}
