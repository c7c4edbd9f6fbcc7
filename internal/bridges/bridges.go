// Package bridges is the only boundary through which the damage pipeline
// touches externally-owned state. Each bridge translates one collaborator
// subsystem (actor attributes, timed effects, affinity mastery, actions)
// into the same three-operation contract, so the calculator and modifier
// processor never see subsystem internals.
package bridges

//go:generate mockgen -destination=mock/mock_bridges.go -package=bridgesmock github.com/chaosforge/damage-api/internal/bridges Bridge,AttributeClient,EffectClient,AffinityClient,ActionClient

import (
	"context"

	"github.com/chaosforge/damage-api/internal/damage"
)

// Bridge names, also used as circuit breaker names.
const (
	NameAttribute = "attribute"
	NameAffinity  = "affinity"
	NameEffect    = "effect"
	NameAction    = "action"
)

// Bridge exposes one collaborator's state to the pipeline. A bridge call
// that cannot complete surfaces an INTEGRATION error; it never silently
// returns a zero contribution.
type Bridge interface {
	// Name identifies the bridge in errors, logs, and breaker state.
	Name() string

	// GetBaseContribution returns the collaborator's numeric contribution
	// to base damage, plus extra variable bindings for formulas.
	GetBaseContribution(ctx context.Context, input *BaseContributionInput) (*BaseContributionOutput, error)

	// GetModifiers returns the collaborator's modifiers for this request,
	// in the collaborator's own order.
	GetModifiers(ctx context.Context, input *ModifiersInput) (*ModifiersOutput, error)

	// CheckImmunity answers whether the actor is immune to this request.
	CheckImmunity(ctx context.Context, input *ImmunityInput) (*ImmunityOutput, error)
}

// BaseContributionInput identifies the actor whose state contributes. For
// attacker-derived sources this is the attacker, not the target.
type BaseContributionInput struct {
	ActorID string
	Request *damage.Request
}

// BaseContributionOutput carries the contribution value and any extra
// formula variable bindings derived from collaborator state.
type BaseContributionOutput struct {
	Value float64
	Vars  map[string]float64
}

// ModifiersInput identifies the target actor being modified.
type ModifiersInput struct {
	ActorID string
	Request *damage.Request
}

// ModifiersOutput carries the bridge-supplied modifiers in order.
type ModifiersOutput struct {
	Modifiers []damage.Modifier
}

// ImmunityInput identifies the target actor being checked.
type ImmunityInput struct {
	ActorID string
	Request *damage.Request
}

// ImmunityOutput carries the immunity answer.
type ImmunityOutput struct {
	Immune bool

	// Reason labels which rule granted immunity, for diagnostics.
	Reason string
}
