// Package damage orchestrates the full damage pipeline: validation,
// immunity checks, base calculation, modifier folding, resource
// application, and event publication. Any error surfaces before the
// resource delta commits; partial application never happens.
package damage

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/chaosforge/damage-api/internal/bridges"
	"github.com/chaosforge/damage-api/internal/cache"
	"github.com/chaosforge/damage-api/internal/calculator"
	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
	"github.com/chaosforge/damage-api/internal/events"
	"github.com/chaosforge/damage-api/internal/modifier"
	"github.com/chaosforge/damage-api/internal/pkg/clock"
	"github.com/chaosforge/damage-api/internal/pkg/idgen"
	"github.com/chaosforge/damage-api/internal/scheduler"
)

// Service is the damage pipeline entry point.
type Service interface {
	// ApplyDamage runs one request through the full pipeline.
	ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error)

	// ApplyDamageBatch runs a batch: different targets in parallel, same
	// target strictly in submission order.
	ApplyDamageBatch(ctx context.Context, input *ApplyDamageBatchInput) (*ApplyDamageBatchOutput, error)
}

// Config holds the dependencies for the damage orchestrator.
type Config struct {
	AttributeBridge bridges.Bridge
	AffinityBridge  bridges.Bridge
	EffectBridge    bridges.Bridge
	ActionBridge    bridges.Bridge

	// Attributes is the direct client used for actor existence checks and
	// the final resource application.
	Attributes bridges.AttributeClient

	Store      *config.Store
	Calculator calculator.Calculator
	Processor  modifier.Processor
	Scheduler  *scheduler.Scheduler
	Cache      *cache.Cache
	Dispatcher *events.Dispatcher
	Clock      clock.Clock
	IDGen      idgen.Generator

	// CallTimeout bounds each direct attribute-client call, matching the
	// per-call timeout the resilient bridge wrapper applies. Zero means
	// the bridge default.
	CallTimeout time.Duration
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.AttributeBridge == nil {
		vb.RequiredField("AttributeBridge")
	}
	if c.AffinityBridge == nil {
		vb.RequiredField("AffinityBridge")
	}
	if c.EffectBridge == nil {
		vb.RequiredField("EffectBridge")
	}
	if c.ActionBridge == nil {
		vb.RequiredField("ActionBridge")
	}
	if c.Attributes == nil {
		vb.RequiredField("Attributes")
	}
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Calculator == nil {
		vb.RequiredField("Calculator")
	}
	if c.Processor == nil {
		vb.RequiredField("Processor")
	}
	if c.Scheduler == nil {
		vb.RequiredField("Scheduler")
	}
	if c.Cache == nil {
		vb.RequiredField("Cache")
	}
	if c.Dispatcher == nil {
		vb.RequiredField("Dispatcher")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGen == nil {
		vb.RequiredField("IDGen")
	}

	return vb.Build()
}

type orchestrator struct {
	attribute bridges.Bridge
	affinity  bridges.Bridge
	effect    bridges.Bridge
	action    bridges.Bridge

	attributes bridges.AttributeClient

	store      *config.Store
	calculator calculator.Calculator
	processor  modifier.Processor
	scheduler  *scheduler.Scheduler
	cache      *cache.Cache
	dispatcher *events.Dispatcher
	clock      clock.Clock
	idGen      idgen.Generator

	callTimeout time.Duration
}

// New creates the damage orchestrator. Every configuration swap drops the
// calculation cache, so memoized values never outlive the snapshot they
// were derived from.
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		attribute:  cfg.AttributeBridge,
		affinity:   cfg.AffinityBridge,
		effect:     cfg.EffectBridge,
		action:     cfg.ActionBridge,
		attributes: cfg.Attributes,
		store:      cfg.Store,
		calculator: cfg.Calculator,
		processor:  cfg.Processor,
		scheduler:  cfg.Scheduler,
		cache:      cfg.Cache,
		dispatcher: cfg.Dispatcher,
		clock:      cfg.Clock,
		idGen:      cfg.IDGen,

		callTimeout: cfg.CallTimeout,
	}
	if o.callTimeout <= 0 {
		o.callTimeout = bridges.DefaultCallTimeout
	}

	dropCache := cfg.Cache
	cfg.Store.OnSwap(func(*config.Snapshot) {
		dropCache.InvalidateAll()
	})

	return o, nil
}

func (o *orchestrator) ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error) {
	if input == nil || input.Request == nil {
		return nil, errors.InvalidArgument("request is required")
	}
	req := input.Request

	snap := o.store.Snapshot()
	if snap == nil {
		return nil, errors.Configuration("no configuration loaded")
	}

	if err := o.validateRequest(ctx, req, snap); err != nil {
		return nil, err
	}

	result, err := o.process(ctx, req, snap)
	if err != nil {
		slog.Error("damage request failed",
			"target_id", req.TargetID,
			"damage_type", req.DamageTypeID,
			"source", req.Source,
			"error", err,
		)
		return nil, err
	}

	return &ApplyDamageOutput{Result: result}, nil
}

func (o *orchestrator) ApplyDamageBatch(ctx context.Context, input *ApplyDamageBatchInput) (*ApplyDamageBatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	items := o.scheduler.Run(ctx, input.Requests, func(taskCtx context.Context, req *damage.Request) (*damage.Result, error) {
		out, err := o.ApplyDamage(taskCtx, &ApplyDamageInput{Request: req})
		if err != nil {
			return nil, err
		}
		return out.Result, nil
	})

	output := &ApplyDamageBatchOutput{Items: make([]BatchItem, len(items))}
	for i, it := range items {
		output.Items[i] = BatchItem{Result: it.Result, Err: it.Err}
	}
	return output, nil
}

// process runs the pipeline for one validated request.
func (o *orchestrator) process(ctx context.Context, req *damage.Request, snap *config.Snapshot) (*damage.Result, error) {
	result := &damage.Result{
		TargetID:     req.TargetID,
		DamageTypeID: req.DamageTypeID,
		BaseDamage:   req.BaseDamage,
		Events:       []string{},
		Timestamp:    o.clock.Now(),
	}

	immune, reason, err := o.checkImmunity(ctx, req)
	if err != nil {
		return nil, err
	}
	if immune {
		result.ImmunityTriggered = true
		result.DamageBlocked = req.BaseDamage
		o.publish(ctx, result, events.TypeDamageImmunity, req.BaseDamage, "")

		slog.Debug("damage short-circuited by immunity",
			"target_id", req.TargetID,
			"damage_type", req.DamageTypeID,
			"reason", reason,
		)
		return result, nil
	}

	base, err := o.calculator.CalculateBase(ctx, req, snap)
	if err != nil {
		return nil, err
	}
	result.BaseDamage = base

	mods, err := o.gatherModifiers(ctx, req, snap)
	if err != nil {
		return nil, err
	}

	actorState, err := o.actorState(ctx, req.TargetID, mods)
	if err != nil {
		return nil, err
	}

	outcome, err := o.processor.Apply(ctx, &modifier.Input{
		Request:    req,
		Base:       base,
		Modifiers:  mods,
		Snapshot:   snap,
		ActorState: actorState,
	})
	if err != nil {
		return nil, err
	}

	result.FinalDamage = outcome.Final
	result.ImmunityTriggered = outcome.ImmunityTriggered
	result.AbsorbedAsHealing = outcome.Absorbed
	result.ReflectedDamage = outcome.Reflected
	result.ModifiersApplied = outcome.Applied

	if err := o.commit(ctx, req, snap, outcome, result); err != nil {
		return nil, err
	}

	o.publishOutcome(ctx, req, outcome, result)
	return result, nil
}

// checkImmunity asks every bridge, in a fixed order, whether the target is
// immune to this request. The first immunity wins.
func (o *orchestrator) checkImmunity(ctx context.Context, req *damage.Request) (bool, string, error) {
	input := &bridges.ImmunityInput{ActorID: req.TargetID, Request: req}

	for _, bridge := range []bridges.Bridge{o.attribute, o.affinity, o.effect, o.action} {
		out, err := bridge.CheckImmunity(ctx, input)
		if err != nil {
			return false, "", err
		}
		if out.Immune {
			return true, out.Reason, nil
		}
	}
	return false, "", nil
}

// gatherModifiers flattens the modifier list in the pipeline's fixed
// order: request-supplied first, then bridge-supplied in {affinity,
// effect, action} order, then the source's configured defaults.
func (o *orchestrator) gatherModifiers(ctx context.Context, req *damage.Request, snap *config.Snapshot) ([]damage.Modifier, error) {
	mods := make([]damage.Modifier, 0, len(req.Modifiers))
	mods = append(mods, req.Modifiers...)

	input := &bridges.ModifiersInput{ActorID: req.TargetID, Request: req}
	for _, bridge := range []bridges.Bridge{o.affinity, o.effect, o.action} {
		out, err := bridge.GetModifiers(ctx, input)
		if err != nil {
			return nil, err
		}
		mods = append(mods, out.Modifiers...)
	}

	src, err := snap.SourceDef(string(req.Source))
	if err != nil {
		return nil, err
	}
	mods = append(mods, src.DefaultModifiers...)

	return mods, nil
}

// actorState flattens the target's stats and resources into formula
// variables for condition and custom-modifier evaluation. Each resource
// binds under its name and "<name>_max". The fetch is skipped when no
// gathered modifier can read it.
func (o *orchestrator) actorState(ctx context.Context, targetID string, mods []damage.Modifier) (map[string]float64, error) {
	needed := false
	for _, mod := range mods {
		if mod.ConditionID != "" || mod.Kind == damage.KindCustom {
			needed = true
			break
		}
	}
	if !needed {
		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	stats, err := o.attributes.GetDerivedStats(callCtx, targetID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"failed to load stats for actor %s", targetID)
	}
	resources, err := o.attributes.GetResources(callCtx, targetID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"failed to load resources for actor %s", targetID)
	}

	state := make(map[string]float64, len(stats)+2*len(resources))
	for name, value := range stats {
		state[name] = value
	}
	for name, value := range resources {
		state[name] = value.Current
		state[name+"_max"] = value.Max
	}
	return state, nil
}

// commit applies the folded value to the damage type's target resource.
// Nothing is mutated for a zero outcome, so an immunity-zeroed fold leaves
// the target untouched.
func (o *orchestrator) commit(ctx context.Context, req *damage.Request, snap *config.Snapshot, outcome *modifier.Outcome, result *damage.Result) error {
	if outcome.Final == 0 {
		if outcome.ImmunityTriggered {
			result.DamageBlocked = result.BaseDamage
		}
		return nil
	}

	dt, err := snap.DamageType(req.DamageTypeID)
	if err != nil {
		return err
	}

	delta := -outcome.Final
	if outcome.Absorbed {
		delta = outcome.Final
	}

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	applied, err := o.attributes.ApplyResourceDelta(callCtx, &bridges.ResourceDeltaInput{
		ActorID:  req.TargetID,
		Resource: dt.Definition.Resource,
		Delta:    delta,
	})
	if err != nil {
		if errors.GetCode(err) == errors.CodeResourceApplication {
			return err
		}
		return errors.WrapWithCodef(err, errors.CodeResourceApplication,
			"failed to apply %s delta to actor %s", dt.Definition.Resource, req.TargetID)
	}

	result.DamageApplied = math.Abs(applied.Applied)
	if !outcome.Absorbed {
		result.DamageBlocked = outcome.Final - result.DamageApplied
	}
	return nil
}

// publishOutcome raises the outcome events for a committed result, in a
// fixed order: applied or absorbed first, then blocked, then reflected.
func (o *orchestrator) publishOutcome(ctx context.Context, req *damage.Request, outcome *modifier.Outcome, result *damage.Result) {
	switch {
	case outcome.ImmunityTriggered:
		o.publish(ctx, result, events.TypeDamageImmunity, result.BaseDamage, "")
	case outcome.Absorbed:
		o.publish(ctx, result, events.TypeDamageAbsorbed, result.DamageApplied, "")
	default:
		o.publish(ctx, result, events.TypeDamageApplied, result.DamageApplied, "")
	}

	if result.DamageBlocked > 0 && !outcome.ImmunityTriggered {
		o.publish(ctx, result, events.TypeDamageBlocked, result.DamageBlocked, "")
	}

	if outcome.Reflected > 0 {
		o.publish(ctx, result, events.TypeDamageReflected, outcome.Reflected, req.Context.AttackerID)
	}
}

func (o *orchestrator) publish(ctx context.Context, result *damage.Result, eventType events.Type, amount float64, attackerID string) {
	evt := events.Event{
		ID:           o.idGen.Generate(),
		Type:         eventType,
		ActorID:      result.TargetID,
		DamageTypeID: result.DamageTypeID,
		Amount:       amount,
		AttackerID:   attackerID,
		Timestamp:    o.clock.Now(),
	}

	o.dispatcher.Publish(ctx, evt)
	result.Events = append(result.Events, string(eventType))
}
