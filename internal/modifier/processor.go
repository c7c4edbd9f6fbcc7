// Package modifier folds an ordered modifier list over a base damage value.
// The fold order and the per-kind arithmetic are fixed contracts: two runs
// with identical inputs against the same configuration snapshot produce
// identical outcomes.
package modifier

import (
	"context"
	"math"

	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
	"github.com/chaosforge/damage-api/internal/formula"
)

//go:generate mockgen -destination=mock/mock_processor.go -package=modifiermock github.com/chaosforge/damage-api/internal/modifier Processor

// Processor applies modifiers to a base damage value.
type Processor interface {
	Apply(ctx context.Context, in *Input) (*Outcome, error)
}

// Input is one fold: the base value and the flattened, ordered modifier
// list. Callers flatten request-supplied modifiers first, then
// bridge-supplied ones in bridge order.
type Input struct {
	Request   *damage.Request
	Base      float64
	Modifiers []damage.Modifier
	Snapshot  *config.Snapshot

	// ActorState holds the target's stats and resources, flattened to
	// formula variables: each resource binds under its name and
	// "<name>_max". Condition and custom formulas read these; request and
	// modifier properties override on collision.
	ActorState map[string]float64
}

// Outcome is the fold result.
type Outcome struct {
	// Final is the folded damage value, never negative.
	Final float64

	// ImmunityTriggered reports that an immunity modifier zeroed the
	// running value during the fold.
	ImmunityTriggered bool

	// Absorbed reports that the final value converts to healing.
	Absorbed bool

	// Reflected is the amount to schedule back against the attacker.
	Reflected float64

	// Applied audits every modifier that survived condition filtering, in
	// application order.
	Applied []damage.AppliedModifier
}

// Config holds the dependencies for the processor.
type Config struct {
	Evaluator *formula.Evaluator
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Evaluator == nil {
		vb.RequiredField("Evaluator")
	}

	return vb.Build()
}

type processor struct {
	eval *formula.Evaluator
}

// New creates a processor from its config.
func New(cfg *Config) (Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &processor{eval: cfg.Evaluator}, nil
}

// Apply folds the modifier list over the base value. Modifiers whose
// condition evaluates false are skipped and excluded from the audit list.
// Immunity pins the running value at zero for the rest of the fold; later
// modifiers are still applied for diagnostics but cannot raise it again.
// Absorption and reflection end the fold.
func (p *processor) Apply(ctx context.Context, in *Input) (*Outcome, error) {
	out := &Outcome{Applied: []damage.AppliedModifier{}}

	d := in.Base
	pinned := false

	for _, mod := range in.Modifiers {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDeadlineExceeded, "modifier fold canceled")
		}

		survives, err := p.conditionHolds(in, mod, d)
		if err != nil {
			return nil, err
		}
		if !survives {
			continue
		}

		before := d
		terminal := false

		switch mod.Kind {
		case damage.KindMultiplier:
			d *= mod.Value
		case damage.KindAddition:
			d += mod.Value
		case damage.KindReduction:
			d = math.Max(0, d-mod.Value)
		case damage.KindResistance:
			// Fractions clamp to [0,1]; resistance never amplifies.
			d *= 1 - math.Min(1, math.Max(0, mod.Value))
		case damage.KindImmunity:
			d = 0
			pinned = true
			out.ImmunityTriggered = true
		case damage.KindAbsorption:
			out.Absorbed = true
			terminal = true
		case damage.KindReflection:
			out.Reflected = d
			terminal = true
		case damage.KindCustom:
			d, err = p.applyCustom(in, mod, d)
			if err != nil {
				return nil, err
			}
		default:
			return nil, errors.InvalidArgumentf("unknown modifier kind %q", mod.Kind)
		}

		if pinned {
			d = math.Min(0, d)
		}

		out.Applied = append(out.Applied, damage.AppliedModifier{
			Kind:   mod.Kind,
			Value:  mod.Value,
			Source: mod.Source,
			Before: before,
			After:  d,
		})

		if terminal {
			break
		}
	}

	out.Final = math.Max(0, d)
	return out, nil
}

// conditionHolds evaluates the modifier's condition predicate, when one is
// referenced, against the actor state, the request property bag, and the
// running fold state.
func (p *processor) conditionHolds(in *Input, mod damage.Modifier, running float64) (bool, error) {
	if mod.ConditionID == "" {
		return true, nil
	}

	cond, err := in.Snapshot.Condition(mod.ConditionID)
	if err != nil {
		return false, err
	}

	return p.eval.Bool(cond.Program, p.vars(in, mod, running))
}

// applyCustom resolves the tagged custom modifier formula and evaluates it
// as the new running value.
func (p *processor) applyCustom(in *Input, mod damage.Modifier, running float64) (float64, error) {
	if mod.CustomTag == "" {
		return 0, errors.InvalidArgument("custom modifier has no tag")
	}

	def, err := in.Snapshot.ModifierDef(mod.CustomTag)
	if err != nil {
		return 0, err
	}
	if def.Program == nil {
		return 0, errors.Configurationf("custom modifier %q has no formula", mod.CustomTag)
	}

	vars := p.vars(in, mod, running)
	vars["value"] = mod.Value
	return p.eval.Number(def.Program, vars)
}

// vars builds the binding set formulas see: the target's actor state, the
// request property bag, the modifier's own properties, and the fold state
// under `damage` and `base`.
func (p *processor) vars(in *Input, mod damage.Modifier, running float64) map[string]float64 {
	vars := make(map[string]float64, len(in.ActorState)+len(in.Request.Properties)+len(mod.Properties)+2)
	for k, v := range in.ActorState {
		vars[k] = v
	}
	for k, v := range in.Request.Properties {
		vars[k] = v
	}
	for k, v := range mod.Properties {
		vars[k] = v
	}
	vars["damage"] = running
	vars["base"] = in.Base
	return vars
}
