// Package damage defines the core data model of the damage pipeline:
// requests, modifiers, results, and the deterministic request fingerprint
// used for caching. Every value here is plain data; the pipeline packages
// own all behavior.
package damage

import (
	"time"
)

// Source tags the causal origin of a damage request.
type Source string

// Damage sources. The calculator dispatches on these.
const (
	SourceDirect        Source = "direct"
	SourceStatus        Source = "status"
	SourceElemental     Source = "elemental"
	SourceAction        Source = "action"
	SourceEnvironmental Source = "environmental"
	SourceCustom        Source = "custom"
)

// Valid reports whether s is a known source tag.
func (s Source) Valid() bool {
	switch s {
	case SourceDirect, SourceStatus, SourceElemental, SourceAction, SourceEnvironmental, SourceCustom:
		return true
	default:
		return false
	}
}

// ModifierKind identifies how a modifier transforms the running damage value.
type ModifierKind string

// Modifier kinds. The set is closed; KindCustom resolves through a
// registered modifier definition's formula keyed by the modifier's
// CustomTag.
const (
	KindMultiplier ModifierKind = "multiplier"
	KindAddition   ModifierKind = "addition"
	KindReduction  ModifierKind = "reduction"
	KindResistance ModifierKind = "resistance"
	KindImmunity   ModifierKind = "immunity"
	KindAbsorption ModifierKind = "absorption"
	KindReflection ModifierKind = "reflection"
	KindCustom     ModifierKind = "custom"
)

// Valid reports whether k is a known modifier kind.
func (k ModifierKind) Valid() bool {
	switch k {
	case KindMultiplier, KindAddition, KindReduction, KindResistance,
		KindImmunity, KindAbsorption, KindReflection, KindCustom:
		return true
	default:
		return false
	}
}

// Modifier is a typed, ordered transformation applied during folding.
type Modifier struct {
	Kind ModifierKind

	// Value is interpreted per kind: factor for multipliers, flat amount
	// for additions/reductions, fraction in [0,1] for resistances.
	Value float64

	// Source labels where the modifier came from, for diagnostics.
	Source string

	// ConditionID optionally references a registered condition; the
	// modifier is skipped when the condition evaluates false.
	ConditionID string

	// CustomTag references a registered calculation formula for KindCustom.
	CustomTag string

	// Properties carries extra numeric bindings made available to custom
	// and condition formulas.
	Properties map[string]float64
}

// Context records the circumstances a request was raised under. Condition
// formulas evaluate against it.
type Context struct {
	SessionID   string
	AttackerID  string
	TargetID    string
	Environment string
	Timestamp   time.Time
}

// Request is the immutable input to the pipeline. Callers construct it once
// and never mutate it afterwards.
type Request struct {
	TargetID     string
	DamageTypeID string

	// BaseDamage is a non-negative hint; sources other than direct may
	// replace it entirely with bridge-derived values.
	BaseDamage float64

	Source    Source
	ElementID string

	// OriginID names the action or effect that caused this request, when
	// one exists.
	OriginID string

	// Modifiers are caller-supplied and applied before any bridge-supplied
	// modifiers, in the order given.
	Modifiers []Modifier

	// Properties is a free-form bag of numeric bindings, exposed to custom
	// calculation formulas as variables.
	Properties map[string]float64

	Context Context
}

// AppliedModifier is the audit record of one modifier that survived
// condition filtering and transformed the running value.
type AppliedModifier struct {
	Kind   ModifierKind
	Value  float64
	Source string
	Before float64
	After  float64
}

// Result is the single artifact produced per request.
type Result struct {
	TargetID     string
	DamageTypeID string

	BaseDamage  float64
	FinalDamage float64

	// DamageApplied is the magnitude actually applied to the target
	// resource, after the attribute store's own clamping.
	DamageApplied float64

	// DamageBlocked is the portion of FinalDamage the resource apply step
	// could not land, plus everything removed by immunity.
	DamageBlocked float64

	ImmunityTriggered bool

	// AbsorbedAsHealing signals the final value was converted to healing;
	// DamageApplied then records the amount healed.
	AbsorbedAsHealing bool

	// ReflectedDamage is the amount to schedule as a new request against
	// the original attacker. Zero when no reflection modifier applied.
	ReflectedDamage float64

	ModifiersApplied []AppliedModifier

	// Events lists the event types raised for this result, in order.
	Events []string

	Timestamp time.Time
}
