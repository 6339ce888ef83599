// Package factory builds entities: the tileset, the player and the
// data-driven being and item repositories.
package factory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"glyphcrawl/assets"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/repository"
	"glyphcrawl/internal/system"
)

// SystemSpec names a system and its positional parameters.
type SystemSpec struct {
	System string `yaml:"system"`
	Params []any  `yaml:"params"`
}

// Template is one named being or item.
type Template struct {
	Name    string       `yaml:"name"`
	Systems []SystemSpec `yaml:"systems"`
}

// TemplateFile is the layout of a templates YAML file.
type TemplateFile struct {
	Beings []Template `yaml:"beings"`
	Items  []Template `yaml:"items"`
}

// ParseTemplates decodes a templates file.
func ParseTemplates(data []byte) (*TemplateFile, error) {
	var f TemplateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &f, nil
}

// LoadTemplates reads templates from path, or the built-in set when path is
// empty.
func LoadTemplates(path string) (*TemplateFile, error) {
	if path == "" {
		return ParseTemplates(assets.Templates)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return ParseTemplates(data)
}

// Assemblage resolves the template's system names against set.
func (t Template) Assemblage(set *system.Set) (ecs.Assemblage, error) {
	a := make(ecs.Assemblage, 0, len(t.Systems))
	for _, s := range t.Systems {
		sys, ok := set.ByName(s.System)
		if !ok {
			return nil, fmt.Errorf("template %q: unknown system %q", t.Name, s.System)
		}
		a = append(a, ecs.Spec{System: sys, Params: s.Params})
	}
	return a, nil
}

// Repo builds entities from assemblages.
type Repo = repository.Repository[ecs.Assemblage, *ecs.Entity]

// NewRepo returns an empty repository whose instances are created in w.
func NewRepo(name string, w *ecs.World, rng repository.Rand) *Repo {
	return repository.New[ecs.Assemblage, *ecs.Entity](name, func(a ecs.Assemblage) (*ecs.Entity, error) {
		return a.CreateInstance(w, ""), nil
	}, rng)
}

// Define registers every template in ts, in file order.
func Define(r *Repo, set *system.Set, ts []Template) error {
	for _, t := range ts {
		a, err := t.Assemblage(set)
		if err != nil {
			return err
		}
		r.Define(t.Name, a)
	}
	return nil
}

// NewRepositories builds the being and item repositories from f.
func NewRepositories(w *ecs.World, set *system.Set, f *TemplateFile, rng repository.Rand) (beings, items *Repo, err error) {
	beings = NewRepo("beings", w, rng)
	items = NewRepo("items", w, rng)
	if err := Define(beings, set, f.Beings); err != nil {
		return nil, nil, err
	}
	if err := Define(items, set, f.Items); err != nil {
		return nil, nil, err
	}
	return beings, items, nil
}
