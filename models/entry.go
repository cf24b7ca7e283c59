package models

// EntityType tags the closed set of record variants the pipeline produces.
type EntityType string

const (
	TypeMonster EntityType = "monster"
	TypeWeapon  EntityType = "weapon"
	TypeArmor   EntityType = "armor"
	TypeSkill   EntityType = "skill"
	TypeItem    EntityType = "item"
)

// AllEntityTypes lists every known entity type in canonical section order.
var AllEntityTypes = []EntityType{
	TypeMonster, TypeWeapon, TypeArmor, TypeSkill, TypeItem,
}

// Entry is implemented by every typed record. EnglishName is the
// business key: an entry with an empty name is dropped before
// aggregation and never reaches the output.
type Entry interface {
	EntityType() EntityType
	EnglishName() string
}

// MonsterEntry is one monster record. Weakness and Materials preserve
// document order and are not deduplicated.
type MonsterEntry struct {
	Type      EntityType `json:"type"`
	EN        string     `json:"en"`
	JP        string     `json:"jp,omitempty"`
	Weakness  []string   `json:"weakness,omitempty"`
	Materials []string   `json:"materials,omitempty"`
	Habitat   string     `json:"habitat,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

func (e MonsterEntry) EntityType() EntityType { return TypeMonster }
func (e MonsterEntry) EnglishName() string    { return e.EN }

// WeaponEntry is one weapon record. Rarity is kept verbatim: the site
// formats it inconsistently (sometimes numeric, sometimes annotated)
// and normalizing it would be a guess.
type WeaponEntry struct {
	Type        EntityType `json:"type"`
	EN          string     `json:"en"`
	JP          string     `json:"jp,omitempty"`
	WeaponClass string     `json:"weapon_class,omitempty"`
	Rarity      string     `json:"rarity,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

func (e WeaponEntry) EntityType() EntityType { return TypeWeapon }
func (e WeaponEntry) EnglishName() string    { return e.EN }

// ArmorEntry is one armor piece record.
type ArmorEntry struct {
	Type   EntityType `json:"type"`
	EN     string     `json:"en"`
	JP     string     `json:"jp,omitempty"`
	Slot   string     `json:"slot,omitempty"`
	Skills []string   `json:"skills,omitempty"`
	Notes  string     `json:"notes,omitempty"`
}

func (e ArmorEntry) EntityType() EntityType { return TypeArmor }
func (e ArmorEntry) EnglishName() string    { return e.EN }

// SkillEntry is one skill record.
type SkillEntry struct {
	Type        EntityType `json:"type"`
	EN          string     `json:"en"`
	JP          string     `json:"jp,omitempty"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

func (e SkillEntry) EntityType() EntityType { return TypeSkill }
func (e SkillEntry) EnglishName() string    { return e.EN }

// ItemEntry is one item/material record.
type ItemEntry struct {
	Type        EntityType `json:"type"`
	EN          string     `json:"en"`
	JP          string     `json:"jp,omitempty"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

func (e ItemEntry) EntityType() EntityType { return TypeItem }
func (e ItemEntry) EnglishName() string    { return e.EN }
