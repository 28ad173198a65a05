package itemdb

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"emoji-arpg/internal/item"
)

var (
	// ErrDuplicateTemplate is returned when two templates share a name, or two
	// weapon templates share a weapon type.
	ErrDuplicateTemplate = errors.New("duplicate template")
	// ErrInvalidTemplate is returned for templates that fail validation.
	ErrInvalidTemplate = errors.New("invalid template")
)

type statDef struct {
	Name  string  `yaml:"name" validate:"required"`
	Value float64 `yaml:"value"`
}

// templateDef is one authored entry in a template file.
type templateDef struct {
	Name        string    `yaml:"name" validate:"required,max=48"`
	Description string    `yaml:"description"`
	Icon        string    `yaml:"icon" validate:"required"`
	Type        string    `yaml:"type" validate:"required"`
	Rarity      string    `yaml:"rarity"`
	Weapon      string    `yaml:"weapon" validate:"required_if=Type weapon"`
	Stackable   bool      `yaml:"stackable"`
	MaxStack    int       `yaml:"max_stack" validate:"gte=0,lte=999"`
	Stats       []statDef `yaml:"stats" validate:"dive"`
}

type templateFile struct {
	Templates []templateDef `yaml:"templates" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadTemplates parses a YAML template set. Unknown keys are rejected.
func LoadTemplates(r io.Reader) ([]*item.Item, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f templateFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	seen := make(map[string]bool, len(f.Templates))
	items := make([]*item.Item, 0, len(f.Templates))
	for i := range f.Templates {
		def := &f.Templates[i]
		if seen[def.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTemplate, def.Name)
		}
		seen[def.Name] = true

		it, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTemplate, def.Name, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// LoadTemplatesFile reads a template set from disk.
func LoadTemplatesFile(path string) ([]*item.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}
	defer f.Close()

	items, err := LoadTemplates(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func (def *templateDef) build() (*item.Item, error) {
	typ, err := item.ParseType(def.Type)
	if err != nil {
		return nil, err
	}
	rarity := item.RarityCommon
	if def.Rarity != "" {
		if rarity, err = item.ParseRarity(def.Rarity); err != nil {
			return nil, err
		}
	}

	it := &item.Item{
		Name:         def.Name,
		Description:  def.Description,
		Icon:         def.Icon,
		Type:         typ,
		Rarity:       rarity,
		Stackable:    def.Stackable,
		MaxStackSize: max(def.MaxStack, 1),
		Quantity:     1,
	}
	if def.Stackable && def.MaxStack < 2 {
		return nil, errors.New("stackable templates need max_stack of at least 2")
	}
	for _, s := range def.Stats {
		it.Stats = append(it.Stats, item.Stat{Name: s.Name, Value: s.Value})
	}

	switch {
	case typ == item.TypeWeapon:
		kind, err := item.ParseWeaponType(def.Weapon)
		if err != nil {
			return nil, err
		}
		base, _ := item.BaseStats(kind)
		it.Weapon = &base
		it.RefreshStats()
	case def.Weapon != "":
		return nil, fmt.Errorf("weapon %q set on a %s", def.Weapon, typ)
	}
	return it, nil
}
