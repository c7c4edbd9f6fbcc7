package bridges

import (
	"context"

	"github.com/chaosforge/damage-api/internal/damage"
)

// AttributeClient is the actor-attribute collaborator: it owns and mutates
// resource values such as health and mana.
type AttributeClient interface {
	ActorExists(ctx context.Context, actorID string) (bool, error)
	GetDerivedStats(ctx context.Context, actorID string) (map[string]float64, error)
	GetResources(ctx context.Context, actorID string) (map[string]ResourceValue, error)
	ApplyResourceDelta(ctx context.Context, input *ResourceDeltaInput) (*ResourceDeltaOutput, error)
	CheckDamageImmunity(ctx context.Context, actorID, damageTypeID string) (bool, error)
}

// ResourceValue is one resource's current value and bound, keyed by
// resource name in GetResources. Condition and custom-modifier formulas
// see these as variables.
type ResourceValue struct {
	Current float64
	Max     float64
}

// ResourceDeltaInput requests a signed change to one actor resource.
// Negative deltas are damage, positive deltas are healing.
type ResourceDeltaInput struct {
	ActorID  string
	Resource string
	Delta    float64
}

// ResourceDeltaOutput reports what the attribute store actually did. The
// store clamps at resource bounds, so Applied may be smaller in magnitude
// than the requested delta.
type ResourceDeltaOutput struct {
	// Applied is the signed delta that landed.
	Applied float64

	// Remaining is the resource value after the change.
	Remaining float64
}

// EffectClient is the timed-effect collaborator: it owns effect lifecycles.
type EffectClient interface {
	GetActiveEffects(ctx context.Context, actorID string) ([]EffectSummary, error)
	CheckDamageImmunity(ctx context.Context, actorID, damageTypeID string) (bool, error)
}

// EffectSummary describes one active effect as seen across the boundary.
type EffectSummary struct {
	ID        string
	Magnitude float64

	// DamageProducing effects contribute their magnitude to status-source
	// base damage for their damage type.
	DamageProducing bool

	DamageTypeID string
	ElementID    string

	// Modifiers carried by the effect (shields, vulnerabilities) are
	// gathered by the effect bridge in effect order.
	Modifiers []damage.Modifier
}

// AffinityClient is the affinity/mastery collaborator: it owns per-actor
// per-element proficiency.
type AffinityClient interface {
	GetMastery(ctx context.Context, actorID, elementID string) (*MasteryData, error)
	CheckImmunity(ctx context.Context, actorID, elementID string) (bool, error)
}

// MasteryData is an actor's proficiency with one element.
type MasteryData struct {
	Level float64
	Tier  int

	// Resistance is a damage-reduction fraction in [0,1].
	Resistance float64
}

// ActionClient is the action/skill collaborator: it owns cooldowns and
// action resolution.
type ActionClient interface {
	GetActionDefinition(ctx context.Context, actionID string) (*ActionSummary, error)
	CheckImmunity(ctx context.Context, actorID, actionID string) (bool, error)
}

// ActionSummary describes one action as seen across the boundary.
type ActionSummary struct {
	ID            string
	BaseDamage    float64
	Effectiveness float64

	// CooldownSeconds is informational; cooldown enforcement stays with
	// the action system.
	CooldownSeconds float64

	// Modifiers the action applies to its own damage.
	Modifiers []damage.Modifier
}
