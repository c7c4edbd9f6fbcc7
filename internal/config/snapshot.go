package config

import (
	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
	"github.com/chaosforge/damage-api/internal/formula"
)

// DamageType is a validated damage type with its formulas compiled.
type DamageType struct {
	Definition DamageTypeDefinition

	// BaseProgram is non-nil when the type declares a base formula.
	BaseProgram *formula.Program

	// ElementProgram is non-nil when the type declares an element formula.
	ElementProgram *formula.Program
}

// ModifierKindDef is a validated modifier registration.
type ModifierKindDef struct {
	Definition ModifierDefinition
	Kind       damage.ModifierKind

	// Program is non-nil for custom modifier tags.
	Program *formula.Program
}

// InBounds reports whether a modifier value satisfies the configured
// bounds. Absent bounds do not constrain.
func (m *ModifierKindDef) InBounds(value float64) bool {
	if m.Definition.MinValue != nil && value < *m.Definition.MinValue {
		return false
	}
	if m.Definition.MaxValue != nil && value > *m.Definition.MaxValue {
		return false
	}
	return true
}

// Condition is a validated condition with its predicate compiled.
type Condition struct {
	Definition ConditionDefinition
	Program    *formula.Program
}

// Calculation is a validated calculation formula, compiled.
type Calculation struct {
	Definition CalculationDefinition
	Program    *formula.Program
}

// SourceDef is a validated damage source registration.
type SourceDef struct {
	Definition SourceDefinition

	// DefaultModifiers are appended to every request of this source, after
	// bridge-supplied modifiers.
	DefaultModifiers []damage.Modifier
}

// Snapshot is one complete, validated, immutable configuration version.
// Readers hold a snapshot for the duration of one request; reload never
// mutates a snapshot in place.
type Snapshot struct {
	// Version is the declared document version.
	Version string

	// Hash is the content digest of the document set. Reloading documents
	// with an identical hash is a no-op.
	Hash string

	// Generation counts swaps since the store was created, starting at 1.
	Generation uint64

	damageTypes  map[string]*DamageType
	modifiers    map[string]*ModifierKindDef
	sources      map[string]*SourceDef
	conditions   map[string]*Condition
	calculations map[string]*Calculation
}

// DamageType resolves a damage type id. Unknown ids are configuration
// errors, never silent defaults.
func (s *Snapshot) DamageType(id string) (*DamageType, error) {
	if dt, ok := s.damageTypes[id]; ok {
		return dt, nil
	}
	return nil, errors.Configurationf("damage type %q is not registered", id)
}

// ModifierDef resolves a modifier kind name or custom tag.
func (s *Snapshot) ModifierDef(id string) (*ModifierKindDef, error) {
	if m, ok := s.modifiers[id]; ok {
		return m, nil
	}
	return nil, errors.Configurationf("modifier %q is not registered", id)
}

// SourceDef resolves a damage source id.
func (s *Snapshot) SourceDef(id string) (*SourceDef, error) {
	if src, ok := s.sources[id]; ok {
		return src, nil
	}
	return nil, errors.Configurationf("damage source %q is not registered", id)
}

// Condition resolves a condition id.
func (s *Snapshot) Condition(id string) (*Condition, error) {
	if c, ok := s.conditions[id]; ok {
		return c, nil
	}
	return nil, errors.Configurationf("condition %q is not registered", id)
}

// Calculation resolves a calculation id.
func (s *Snapshot) Calculation(id string) (*Calculation, error) {
	if c, ok := s.calculations[id]; ok {
		return c, nil
	}
	return nil, errors.Configurationf("calculation %q is not registered", id)
}

// HasDamageType reports whether a damage type id is registered.
func (s *Snapshot) HasDamageType(id string) bool {
	_, ok := s.damageTypes[id]
	return ok
}

// HasSource reports whether a damage source id is registered.
func (s *Snapshot) HasSource(id string) bool {
	_, ok := s.sources[id]
	return ok
}

// HasCondition reports whether a condition id is registered.
func (s *Snapshot) HasCondition(id string) bool {
	_, ok := s.conditions[id]
	return ok
}
