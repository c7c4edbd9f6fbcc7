// Package calculator derives the base damage value for a request before
// modifiers are applied. The derivation is dispatched on the request's
// damage source; every source pulls its raw inputs through exactly one
// bridge and binds them as variables for the configured formulas.
package calculator

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/chaosforge/damage-api/internal/bridges"
	"github.com/chaosforge/damage-api/internal/cache"
	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
	"github.com/chaosforge/damage-api/internal/formula"
)

//go:generate mockgen -destination=mock/mock_calculator.go -package=calculatormock github.com/chaosforge/damage-api/internal/calculator Calculator

// Calculator derives base damage for a request against one configuration
// snapshot.
type Calculator interface {
	CalculateBase(ctx context.Context, req *damage.Request, snap *config.Snapshot) (float64, error)
}

// Config holds the dependencies for the calculator.
type Config struct {
	AttributeBridge bridges.Bridge
	EffectBridge    bridges.Bridge
	AffinityBridge  bridges.Bridge
	ActionBridge    bridges.Bridge
	Evaluator       *formula.Evaluator

	// Cache memoizes derived base values until the next snapshot swap.
	Cache *cache.Cache
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.AttributeBridge == nil {
		vb.RequiredField("AttributeBridge")
	}
	if c.EffectBridge == nil {
		vb.RequiredField("EffectBridge")
	}
	if c.AffinityBridge == nil {
		vb.RequiredField("AffinityBridge")
	}
	if c.ActionBridge == nil {
		vb.RequiredField("ActionBridge")
	}
	if c.Evaluator == nil {
		vb.RequiredField("Evaluator")
	}
	if c.Cache == nil {
		vb.RequiredField("Cache")
	}

	return vb.Build()
}

type calculator struct {
	attribute bridges.Bridge
	effect    bridges.Bridge
	affinity  bridges.Bridge
	action    bridges.Bridge
	eval      *formula.Evaluator
	cache     *cache.Cache
}

// New creates a calculator from its config.
func New(cfg *Config) (Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &calculator{
		attribute: cfg.AttributeBridge,
		effect:    cfg.EffectBridge,
		affinity:  cfg.AffinityBridge,
		action:    cfg.ActionBridge,
		eval:      cfg.Evaluator,
		cache:     cfg.Cache,
	}, nil
}

// CalculateBase derives base damage for the request. Derived values are
// memoized; the orchestrator invalidates the cache on snapshot swap, so a
// cached value is never served across configuration versions.
func (c *calculator) CalculateBase(ctx context.Context, req *damage.Request, snap *config.Snapshot) (float64, error) {
	key := baseCacheKey(req)
	if value, ok := c.cache.Get(key); ok {
		return value, nil
	}

	value, err := c.derive(ctx, req, snap)
	if err != nil {
		return 0, err
	}

	// Base damage is a magnitude; a formula that goes negative floors at
	// zero rather than pre-healing the target.
	value = math.Max(0, value)

	c.cache.Put(key, value)
	return value, nil
}

func (c *calculator) derive(ctx context.Context, req *damage.Request, snap *config.Snapshot) (float64, error) {
	switch req.Source {
	case damage.SourceDirect:
		return c.directBase(ctx, req, snap)
	case damage.SourceStatus:
		return c.statusBase(ctx, req)
	case damage.SourceElemental:
		return c.elementalBase(ctx, req, snap)
	case damage.SourceAction:
		return c.actionBase(ctx, req)
	case damage.SourceEnvironmental, damage.SourceCustom:
		return c.calculationBase(req, snap)
	default:
		return 0, errors.InvalidArgumentf("unknown damage source %q", req.Source)
	}
}

// directBase evaluates the damage type's base formula against the
// attacker's derived stats and the type's scaling coefficients. Types
// without a base formula use the request value as-is.
func (c *calculator) directBase(ctx context.Context, req *damage.Request, snap *config.Snapshot) (float64, error) {
	dt, err := snap.DamageType(req.DamageTypeID)
	if err != nil {
		return 0, err
	}

	out, err := c.attribute.GetBaseContribution(ctx, &bridges.BaseContributionInput{
		ActorID: contributingActor(req),
		Request: req,
	})
	if err != nil {
		return 0, err
	}

	if dt.BaseProgram == nil {
		return out.Value, nil
	}

	vars := mergeVars(dt.Definition.Scaling, out.Vars)
	vars["base"] = req.BaseDamage
	return c.eval.Number(dt.BaseProgram, vars)
}

// statusBase is the summed magnitude of the target's active
// damage-producing effects for this damage type.
func (c *calculator) statusBase(ctx context.Context, req *damage.Request) (float64, error) {
	out, err := c.effect.GetBaseContribution(ctx, &bridges.BaseContributionInput{
		ActorID: req.TargetID,
		Request: req,
	})
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// elementalBase evaluates the damage type's element formula against the
// attacker's mastery variables.
func (c *calculator) elementalBase(ctx context.Context, req *damage.Request, snap *config.Snapshot) (float64, error) {
	dt, err := snap.DamageType(req.DamageTypeID)
	if err != nil {
		return 0, err
	}
	if dt.ElementProgram == nil {
		return 0, errors.Configurationf("damage type %q has no element formula", req.DamageTypeID)
	}

	out, err := c.affinity.GetBaseContribution(ctx, &bridges.BaseContributionInput{
		ActorID: contributingActor(req),
		Request: req,
	})
	if err != nil {
		return 0, err
	}

	vars := mergeVars(dt.Definition.Scaling, out.Vars)
	vars["base"] = req.BaseDamage
	return c.eval.Number(dt.ElementProgram, vars)
}

// actionBase is the action's base damage scaled by its effectiveness.
func (c *calculator) actionBase(ctx context.Context, req *damage.Request) (float64, error) {
	out, err := c.action.GetBaseContribution(ctx, &bridges.BaseContributionInput{
		ActorID: contributingActor(req),
		Request: req,
	})
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// calculationBase evaluates the registered calculation named by the
// request's origin id, with the request property bag bound as variables.
func (c *calculator) calculationBase(req *damage.Request, snap *config.Snapshot) (float64, error) {
	calc, err := snap.Calculation(req.OriginID)
	if err != nil {
		return 0, err
	}
	return c.eval.Number(calc.Program, req.Properties)
}

// contributingActor names the actor whose state feeds base damage. For
// attacker-derived sources this is the attacker; requests without one fall
// back to the target.
func contributingActor(req *damage.Request) string {
	if req.Context.AttackerID != "" {
		return req.Context.AttackerID
	}
	return req.TargetID
}

// baseCacheKey keys memoized base values. The request fingerprint alone is
// not enough: the attacker's state feeds direct and elemental bases, and
// the property bag feeds environmental and custom ones.
func baseCacheKey(req *damage.Request) string {
	var b strings.Builder
	b.WriteString("base|")
	b.WriteString(req.Context.AttackerID)
	b.WriteString("|")
	b.WriteString(req.OriginID)
	b.WriteString("|")
	b.WriteString(damage.Fingerprint(req))

	if req.Source == damage.SourceEnvironmental || req.Source == damage.SourceCustom {
		keys := make([]string, 0, len(req.Properties))
		for k := range req.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("|")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(strconv.FormatFloat(req.Properties[k], 'g', -1, 64))
		}
	}
	return b.String()
}

func mergeVars(layers ...map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}
