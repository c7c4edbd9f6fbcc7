// Package config loads, validates, and serves the declarative definitions
// the damage pipeline runs on: damage types, modifier kinds, sources,
// conditions, and calculation formulas. The active configuration is an
// immutable snapshot swapped atomically on reload.
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
)

// Documents is one complete, versioned configuration document set as it
// appears on disk or in the document store.
type Documents struct {
	Version      string                  `yaml:"version"`
	DamageTypes  []DamageTypeDefinition  `yaml:"damage_types"`
	Modifiers    []ModifierDefinition    `yaml:"modifiers"`
	Sources      []SourceDefinition      `yaml:"sources"`
	Conditions   []ConditionDefinition   `yaml:"conditions"`
	Calculations []CalculationDefinition `yaml:"calculations"`
}

// DamageTypeDefinition maps a logical damage category to exactly one target
// resource, with the formulas used to derive base damage for it.
type DamageTypeDefinition struct {
	ID       string `yaml:"id"`
	Resource string `yaml:"resource"`
	Category string `yaml:"category"`

	// Element optionally ties the type to an element definition.
	Element string `yaml:"element"`

	// BaseFormula derives base damage for direct-source requests from the
	// attacker's derived stats and the scaling coefficients.
	BaseFormula string `yaml:"base_formula"`

	// ElementFormula derives base damage for elemental-source requests
	// from the actor's mastery variables.
	ElementFormula string `yaml:"element_formula"`

	// Scaling coefficients are bound as extra formula variables.
	Scaling map[string]float64 `yaml:"scaling"`

	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
}

// ModifierDefinition registers a modifier kind or a custom modifier tag,
// with the bounds a request-supplied value must satisfy.
type ModifierDefinition struct {
	// ID is the kind name for built-in kinds, or the custom tag.
	ID string `yaml:"id"`

	// Kind is one of the closed modifier kind set.
	Kind string `yaml:"kind"`

	// Formula is required for custom entries; it sees `damage`, `base`,
	// `value`, and the modifier's property bag.
	Formula   string   `yaml:"formula"`
	Variables []string `yaml:"variables"`

	MinValue *float64 `yaml:"min_value"`
	MaxValue *float64 `yaml:"max_value"`
}

// SourceDefinition registers a damage source tag with the modifiers every
// request of that source picks up by default.
type SourceDefinition struct {
	ID               string        `yaml:"id"`
	Category         string        `yaml:"category"`
	DefaultModifiers []ModifierRef `yaml:"default_modifiers"`

	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
}

// ModifierRef is a modifier instance embedded in configuration.
type ModifierRef struct {
	Kind      string  `yaml:"kind"`
	Value     float64 `yaml:"value"`
	Source    string  `yaml:"source"`
	Condition string  `yaml:"condition"`
	CustomTag string  `yaml:"custom_tag"`
}

// ToModifier converts a configuration modifier reference to the pipeline
// modifier value.
func (r ModifierRef) ToModifier() damage.Modifier {
	return damage.Modifier{
		Kind:        damage.ModifierKind(r.Kind),
		Value:       r.Value,
		Source:      r.Source,
		ConditionID: r.Condition,
		CustomTag:   r.CustomTag,
	}
}

// ConditionDefinition registers a named predicate evaluated against the
// request context.
type ConditionDefinition struct {
	ID        string   `yaml:"id"`
	Formula   string   `yaml:"formula"`
	Variables []string `yaml:"variables"`
}

// CalculationDefinition registers a named calculation formula, used by
// environmental and custom sources and by custom modifiers.
type CalculationDefinition struct {
	ID        string   `yaml:"id"`
	Formula   string   `yaml:"formula"`
	Variables []string `yaml:"variables"`
}

// ParseDocuments decodes a yaml document set. Structural decoding only;
// semantic validation happens when a snapshot is built.
func ParseDocuments(data []byte) (*Documents, error) {
	var docs Documents
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "failed to decode configuration documents")
	}
	return &docs, nil
}
