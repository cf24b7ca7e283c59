package selectors

import (
	"errors"
	"testing"

	"github.com/use-agent/huntdex/models"
)

func TestDefault_Validate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default policy should validate, got: %v", err)
	}
}

func TestResolve_KnownPairs(t *testing.T) {
	p := Default()

	tests := []struct {
		entity models.EntityType
		field  Field
	}{
		{models.TypeMonster, FieldContainer},
		{models.TypeMonster, FieldWeakness},
		{models.TypeWeapon, FieldRarity},
		{models.TypeArmor, FieldSkills},
		{models.TypeSkill, FieldDescription},
		{models.TypeItem, FieldCategory},
	}

	for _, tt := range tests {
		spec, err := p.Resolve(tt.entity, tt.field)
		if err != nil {
			t.Errorf("Resolve(%s, %s) failed: %v", tt.entity, tt.field, err)
			continue
		}
		if len(spec.Chain) == 0 {
			t.Errorf("Resolve(%s, %s) returned an empty chain", tt.entity, tt.field)
		}
	}
}

func TestResolve_UnknownField(t *testing.T) {
	p := Default()
	_, err := p.Resolve(models.TypeWeapon, Field("sharpness"))
	if err == nil {
		t.Fatal("expected a config error for an unknown field")
	}

	var se *models.ScrapeError
	if !errors.As(err, &se) || se.Code != models.ErrCodeConfig {
		t.Errorf("expected code %s, got: %v", models.ErrCodeConfig, err)
	}
}

func TestResolve_UnknownEntityType(t *testing.T) {
	p := Default()
	if _, err := p.Resolve(models.EntityType("decoration"), FieldContainer); err == nil {
		t.Fatal("expected a config error for an unknown entity type")
	}
}

func TestValidate_MalformedSelector(t *testing.T) {
	p := Default()
	p.Override(models.TypeMonster, FieldNameEN, []string{"div[unclosed"})

	if err := p.Validate(); err == nil {
		t.Fatal("expected validation to fail for a malformed selector")
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	p := &Policy{chains: map[models.EntityType]map[Field]Spec{
		models.TypeMonster: {
			FieldContainer: {Chain: []string{".monster-list"}},
		},
	}}

	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation to fail when required chains are missing")
	}
	if code := models.ErrorCode(err); code != models.ErrCodeConfig {
		t.Errorf("expected code %s, got %s", models.ErrCodeConfig, code)
	}
}

func TestOverride(t *testing.T) {
	p := Default()
	p.Override(models.TypeMonster, FieldContainer, []string{" .custom-list ", "", ".backup"})

	spec, err := p.Resolve(models.TypeMonster, FieldContainer)
	if err != nil {
		t.Fatalf("Resolve after Override failed: %v", err)
	}
	if len(spec.Chain) != 2 || spec.Chain[0] != ".custom-list" || spec.Chain[1] != ".backup" {
		t.Errorf("unexpected chain after Override: %v", spec.Chain)
	}
}

func TestOverride_PreservesAttrAndMulti(t *testing.T) {
	p := Default()
	p.Override(models.TypeMonster, FieldWeakness, []string{".elem-icon"})

	spec, err := p.Resolve(models.TypeMonster, FieldWeakness)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !spec.Multi {
		t.Error("Override should not clear the Multi flag")
	}
	if spec.Attr != "alt" {
		t.Errorf("Override should not clear the Attr, got %q", spec.Attr)
	}
}

func TestOverride_EmptyChainIgnored(t *testing.T) {
	p := Default()
	before, _ := p.Resolve(models.TypeWeapon, FieldRarity)

	p.Override(models.TypeWeapon, FieldRarity, []string{"", "   "})

	after, err := p.Resolve(models.TypeWeapon, FieldRarity)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(after.Chain) != len(before.Chain) {
		t.Errorf("empty override should leave the chain untouched, got %v", after.Chain)
	}
}
