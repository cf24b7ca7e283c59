package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/huntdex/models"
	"github.com/use-agent/huntdex/selectors"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse test HTML: %v", err)
	}
	return doc
}

func TestExtract_ContainerFallback(t *testing.T) {
	// Zero .monster-list containers; the secondary .monsters selector
	// holds three cards, two of which have a name.
	html := `
	<html><body>
	  <div class="monsters">
	    <div class="monster-card"><div class="name">Rathalos</div></div>
	    <div class="monster-card"><div class="name"></div></div>
	    <div class="monster-card"><div class="name">Diablos</div></div>
	  </div>
	</body></html>`

	p := selectors.Default()
	p.Override(models.TypeMonster, selectors.FieldContainer, []string{".monster-list", ".monsters"})
	p.Override(models.TypeMonster, selectors.FieldItem, []string{".monster-card"})

	entries, rawCount, err := New(p).Extract(mustDoc(t, html), models.TypeMonster)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if rawCount != 3 {
		t.Errorf("rawCount = %d, want 3", rawCount)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].EnglishName() != "Rathalos" || entries[1].EnglishName() != "Diablos" {
		t.Errorf("unexpected names: %q, %q", entries[0].EnglishName(), entries[1].EnglishName())
	}
}

func TestExtract_FallbackMatchesPrimaryOutcome(t *testing.T) {
	// Selector order only affects priority, not the extracted set: a
	// DOM matched by the secondary selector yields the same entries as
	// one matched by the primary.
	cards := `
	    <div class="monster-card"><div class="name">Rathalos</div></div>
	    <div class="monster-card"><div class="name">Diablos</div></div>`
	primary := `<html><body><div class="monster-list">` + cards + `</div></body></html>`
	secondary := `<html><body><div class="monsters">` + cards + `</div></body></html>`

	p := selectors.Default()
	p.Override(models.TypeMonster, selectors.FieldContainer, []string{".monster-list", ".monsters"})
	p.Override(models.TypeMonster, selectors.FieldItem, []string{".monster-card"})
	e := New(p)

	fromPrimary, _, err := e.Extract(mustDoc(t, primary), models.TypeMonster)
	if err != nil {
		t.Fatalf("primary extract failed: %v", err)
	}
	fromSecondary, _, err := e.Extract(mustDoc(t, secondary), models.TypeMonster)
	if err != nil {
		t.Fatalf("secondary extract failed: %v", err)
	}
	if !reflect.DeepEqual(fromPrimary, fromSecondary) {
		t.Errorf("primary and secondary container matches diverge:\n%v\n%v", fromPrimary, fromSecondary)
	}
}

func TestExtract_SectionNotFound(t *testing.T) {
	p := selectors.Default()
	e := New(p)

	t.Run("container chain exhausted", func(t *testing.T) {
		_, _, err := e.Extract(mustDoc(t, `<html><body><p>maintenance</p></body></html>`), models.TypeMonster)
		if code := models.ErrorCode(err); code != models.ErrCodeSectionNotFound {
			t.Errorf("expected %s, got %v", models.ErrCodeSectionNotFound, err)
		}
	})

	t.Run("item chain exhausted", func(t *testing.T) {
		html := `<html><body><div class="monster-list"><p>no cards yet</p></div></body></html>`
		pp := selectors.Default()
		pp.Override(models.TypeMonster, selectors.FieldItem, []string{".monster-card"})
		_, _, err := New(pp).Extract(mustDoc(t, html), models.TypeMonster)
		if code := models.ErrorCode(err); code != models.ErrCodeSectionNotFound {
			t.Errorf("expected %s, got %v", models.ErrCodeSectionNotFound, err)
		}
	})
}

func TestExtract_WeaponEmptyRarityOmitted(t *testing.T) {
	html := `
	<html><body><div class="weapon-list">
	  <div class="weapon-card">
	    <div class="name">Iron Katana</div>
	    <div class="type">Long Sword</div>
	    <div class="rarity">   </div>
	  </div>
	</div></body></html>`

	entries, _, err := New(selectors.Default()).Extract(mustDoc(t, html), models.TypeWeapon)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	w, ok := entries[0].(models.WeaponEntry)
	if !ok {
		t.Fatalf("entry is %T, want WeaponEntry", entries[0])
	}
	if w.Rarity != "" {
		t.Errorf("rarity should be empty (omitted on serialization), got %q", w.Rarity)
	}
	if w.EN != "Iron Katana" || w.WeaponClass != "Long Sword" {
		t.Errorf("unexpected weapon fields: %+v", w)
	}
}

func TestExtract_RarityKeptVerbatim(t *testing.T) {
	tests := []struct {
		name   string
		rarity string
	}{
		{"numeric", "6"},
		{"annotated", "R5 (event)"},
		{"stars", "★★★"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<html><body><div class="weapon-list"><div class="weapon-card">
			  <div class="name">Blade</div><div class="rarity">` + tt.rarity + `</div>
			</div></div></body></html>`
			entries, _, err := New(selectors.Default()).Extract(mustDoc(t, html), models.TypeWeapon)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			w := entries[0].(models.WeaponEntry)
			if w.Rarity != tt.rarity {
				t.Errorf("rarity = %q, want verbatim %q", w.Rarity, tt.rarity)
			}
		})
	}
}

func TestExtract_MultiValuedFields(t *testing.T) {
	html := `
	<html><body><div class="monster-list">
	  <div class="monster-card">
	    <div class="name">Rathalos</div>
	    <div class="weakness"><img alt="dragon"><img alt="thunder"></div>
	    <span class="material">Rathalos Scale</span>
	    <span class="material">Rathalos Scale</span>
	    <span class="material">Flame Sac</span>
	    <div class="habitat">Forest</div>
	  </div>
	</div></body></html>`

	entries, _, err := New(selectors.Default()).Extract(mustDoc(t, html), models.TypeMonster)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	m := entries[0].(models.MonsterEntry)

	if !reflect.DeepEqual(m.Weakness, []string{"dragon", "thunder"}) {
		t.Errorf("weakness = %v, want [dragon thunder] via img alt", m.Weakness)
	}
	// Document order, no dedup.
	wantMaterials := []string{"Rathalos Scale", "Rathalos Scale", "Flame Sac"}
	if !reflect.DeepEqual(m.Materials, wantMaterials) {
		t.Errorf("materials = %v, want %v", m.Materials, wantMaterials)
	}
	if m.Habitat != "Forest" {
		t.Errorf("habitat = %q, want Forest", m.Habitat)
	}
}

func TestExtract_ArmorSkills(t *testing.T) {
	html := `
	<html><body><div class="armor-list">
	  <div class="armor-card">
	    <div class="name">Rathalos Helm</div>
	    <div class="slot">head</div>
	    <span class="skill">Attack Boost</span>
	    <span class="skill">Fire Resistance</span>
	  </div>
	</div></body></html>`

	entries, _, err := New(selectors.Default()).Extract(mustDoc(t, html), models.TypeArmor)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	a := entries[0].(models.ArmorEntry)
	if a.Slot != "head" {
		t.Errorf("slot = %q, want head", a.Slot)
	}
	if !reflect.DeepEqual(a.Skills, []string{"Attack Boost", "Fire Resistance"}) {
		t.Errorf("skills = %v", a.Skills)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	html := `
	<html><body><div class="skill-list">
	  <div class="skill-card"><h3>Evasion</h3><p>Extends invulnerability.</p></div>
	  <div class="skill-card"><h3>Focus</h3><p>Fills gauges faster.</p></div>
	</div></body></html>`

	e := New(selectors.Default())
	doc := mustDoc(t, html)

	first, firstRaw, err := e.Extract(doc, models.TypeSkill)
	if err != nil {
		t.Fatalf("first extract failed: %v", err)
	}
	second, secondRaw, err := e.Extract(doc, models.TypeSkill)
	if err != nil {
		t.Fatalf("second extract failed: %v", err)
	}

	if firstRaw != secondRaw || !reflect.DeepEqual(first, second) {
		t.Errorf("extraction is not idempotent:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestExtract_RowAndListFallback(t *testing.T) {
	// Drifted markup rendered as table rows or list entries is still
	// recovered by the last-resort item selectors.
	t.Run("table rows", func(t *testing.T) {
		html := `
		<html><body><main><table>
		  <tr class="entry-row"><td class="name">Potion</td><td class="category">consumable</td></tr>
		  <tr class="entry-row"><td class="name">Mega Potion</td><td class="category">consumable</td></tr>
		</table></main></body></html>`

		entries, rawCount, err := New(selectors.Default()).Extract(mustDoc(t, html), models.TypeItem)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if rawCount != 2 || len(entries) != 2 {
			t.Fatalf("got raw=%d kept=%d, want 2/2", rawCount, len(entries))
		}
		if entries[1].EnglishName() != "Mega Potion" {
			t.Errorf("unexpected second entry: %+v", entries[1])
		}
	})

	t.Run("list entries", func(t *testing.T) {
		html := `
		<html><body><main><ul>
		  <li><span class="name">Evasion</span><p>Extends invulnerability.</p></li>
		  <li><span class="name">Focus</span><p>Fills gauges faster.</p></li>
		</ul></main></body></html>`

		entries, rawCount, err := New(selectors.Default()).Extract(mustDoc(t, html), models.TypeSkill)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if rawCount != 2 || len(entries) != 2 {
			t.Fatalf("got raw=%d kept=%d, want 2/2", rawCount, len(entries))
		}
		if entries[0].(models.SkillEntry).Description != "Extends invulnerability." {
			t.Errorf("unexpected description: %+v", entries[0])
		}
	})
}

func TestExtract_GenericItemFallback(t *testing.T) {
	// Every specific item class has drifted; the generic card pattern
	// still recovers the entries.
	html := `
	<html><body><main>
	  <div class="fancy-new-card"><div class="name">Potion</div><div class="category">consumable</div></div>
	  <div class="fancy-new-card"><div class="name">Iron Ore</div><div class="category">material</div></div>
	</main></body></html>`

	entries, rawCount, err := New(selectors.Default()).Extract(mustDoc(t, html), models.TypeItem)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if rawCount != 2 || len(entries) != 2 {
		t.Fatalf("got raw=%d kept=%d, want 2/2", rawCount, len(entries))
	}
	if entries[0].(models.ItemEntry).Category != "consumable" {
		t.Errorf("unexpected category: %+v", entries[0])
	}
}
