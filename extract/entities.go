package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/huntdex/models"
	"github.com/use-agent/huntdex/selectors"
)

// build assembles one typed record from an item scope. It returns nil
// when the required English name is empty, which drops the item.
func (e *Extractor) build(t models.EntityType, item *goquery.Selection) models.Entry {
	en := e.text(item, t, selectors.FieldNameEN)
	if en == "" {
		return nil
	}

	switch t {
	case models.TypeMonster:
		return models.MonsterEntry{
			Type:      t,
			EN:        en,
			JP:        e.text(item, t, selectors.FieldNameJP),
			Weakness:  e.list(item, t, selectors.FieldWeakness),
			Materials: e.list(item, t, selectors.FieldMaterials),
			Habitat:   e.text(item, t, selectors.FieldHabitat),
			Notes:     e.text(item, t, selectors.FieldNotes),
		}
	case models.TypeWeapon:
		return models.WeaponEntry{
			Type:        t,
			EN:          en,
			JP:          e.text(item, t, selectors.FieldNameJP),
			WeaponClass: e.text(item, t, selectors.FieldWeaponClass),
			Rarity:      e.text(item, t, selectors.FieldRarity),
			Notes:       e.text(item, t, selectors.FieldNotes),
		}
	case models.TypeArmor:
		return models.ArmorEntry{
			Type:   t,
			EN:     en,
			JP:     e.text(item, t, selectors.FieldNameJP),
			Slot:   e.text(item, t, selectors.FieldSlot),
			Skills: e.list(item, t, selectors.FieldSkills),
			Notes:  e.text(item, t, selectors.FieldNotes),
		}
	case models.TypeSkill:
		return models.SkillEntry{
			Type:        t,
			EN:          en,
			JP:          e.text(item, t, selectors.FieldNameJP),
			Category:    e.text(item, t, selectors.FieldCategory),
			Description: e.text(item, t, selectors.FieldDescription),
			Notes:       e.text(item, t, selectors.FieldNotes),
		}
	case models.TypeItem:
		return models.ItemEntry{
			Type:        t,
			EN:          en,
			JP:          e.text(item, t, selectors.FieldNameJP),
			Category:    e.text(item, t, selectors.FieldCategory),
			Description: e.text(item, t, selectors.FieldDescription),
			Notes:       e.text(item, t, selectors.FieldNotes),
		}
	}
	return nil
}
