// Package catalog loads a named set of planning actions from YAML: a
// thin struct tagged for gopkg.in/yaml.v3, decoded and then converted
// into the domain types the planner operates on.
package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mguryev/graph-plan/internal/domain"
)

// ActionDef is the YAML shape of one catalog entry. Requires/Effects list
// propositions that must hold (or must not hold, via the *Not lists) for
// the action to apply, or that it establishes on success.
type ActionDef struct {
	Name        string   `yaml:"name"`
	Requires    []string `yaml:"requires,omitempty"`
	RequiresNot []string `yaml:"requires_not,omitempty"`
	Effects     []string `yaml:"effects,omitempty"`
	EffectsNot  []string `yaml:"effects_not,omitempty"`
}

// Catalog is a named, versioned collection of action definitions, mirroring
// the Name/Version/Description header pkg/workflow.Definition uses.
type Catalog struct {
	Name        string      `yaml:"name"`
	Version     string      `yaml:"version"`
	Description string      `yaml:"description"`
	Actions     []ActionDef `yaml:"actions"`
}

// Load decodes a Catalog from r and converts every entry into a
// domain.Action, failing closed on a duplicate action name.
func Load(r io.Reader) ([]domain.Action, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Actions))
	actions := make([]domain.Action, 0, len(c.Actions))
	for _, def := range c.Actions {
		if def.Name == "" {
			return nil, fmt.Errorf("catalog: action at index %d has no name", len(actions))
		}
		if _, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("catalog: duplicate action name %q", def.Name)
		}
		seen[def.Name] = struct{}{}
		actions = append(actions, def.toAction())
	}
	return actions, nil
}

// LoadFile opens path and loads it as a Catalog.
func LoadFile(path string) ([]domain.Action, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func (def ActionDef) toAction() domain.Action {
	requirements := domain.NewPropositionSet()
	for _, name := range def.Requires {
		requirements.Add(domain.Prop(name))
	}
	for _, name := range def.RequiresNot {
		requirements.Add(domain.NegProp(name))
	}

	effects := domain.NewPropositionSet()
	for _, name := range def.Effects {
		effects.Add(domain.Prop(name))
	}
	for _, name := range def.EffectsNot {
		effects.Add(domain.NegProp(name))
	}

	return domain.NewAction(def.Name, requirements, effects)
}
