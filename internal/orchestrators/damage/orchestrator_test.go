package damage_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chaosforge/damage-api/internal/bridges"
	"github.com/chaosforge/damage-api/internal/bridges/memory"
	"github.com/chaosforge/damage-api/internal/cache"
	"github.com/chaosforge/damage-api/internal/calculator"
	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
	"github.com/chaosforge/damage-api/internal/events"
	"github.com/chaosforge/damage-api/internal/formula"
	"github.com/chaosforge/damage-api/internal/modifier"
	orchestrator "github.com/chaosforge/damage-api/internal/orchestrators/damage"
	"github.com/chaosforge/damage-api/internal/pkg/clock"
	"github.com/chaosforge/damage-api/internal/pkg/idgen"
	"github.com/chaosforge/damage-api/internal/scheduler"
	"github.com/chaosforge/damage-api/internal/testutils"
)

// pipelineConfigYAML keeps the physical type formula-free so the request
// value is used as base damage directly.
const pipelineConfigYAML = `version: "1.0.0"
damage_types:
  - id: physical
    resource: health
    display_name: Physical
  - id: fire
    resource: health
    element: fire
    element_formula: "mastery_level * 2"
    display_name: Fire
modifiers:
  - id: multiplier
    kind: multiplier
    min_value: 0
    max_value: 100
  - id: addition
    kind: addition
  - id: reduction
    kind: reduction
    min_value: 0
  - id: resistance
    kind: resistance
    min_value: 0
    max_value: 1
  - id: immunity
    kind: immunity
  - id: absorption
    kind: absorption
  - id: reflection
    kind: reflection
  - id: berserk_bonus
    kind: custom
    formula: "damage * (1 + value)"
    variables: [damage, value]
sources:
  - id: direct
  - id: status
  - id: elemental
  - id: action
  - id: environmental
    default_modifiers:
      - kind: resistance
        value: 0.1
        source: environment_shelter
        condition: sheltered
  - id: custom
conditions:
  - id: bloodied
    formula: "health / health_max < 0.5"
    variables: [health, health_max]
  - id: always
    formula: "true"
  - id: never
    formula: "false"
  - id: sheltered
    formula: "environment_shelter > 0"
    variables: [environment_shelter]
calculations:
  - id: lava_floor
    formula: "intensity * exposure"
    variables: [intensity, exposure]
`

type OrchestratorSuite struct {
	suite.Suite
	ctx context.Context

	attributes *memory.AttributeStore
	effects    *memory.EffectStore
	affinities *memory.AffinityStore
	actions    *memory.ActionStore

	configPath string
	store      *config.Store
	cache      *cache.Cache
	dispatcher *events.Dispatcher
	service    orchestrator.Service

	mu       sync.Mutex
	captured []events.Event
}

func (s *OrchestratorSuite) SetupTest() {
	s.ctx = context.Background()
	s.captured = nil

	s.attributes = memory.NewAttributeStore()
	s.effects = memory.NewEffectStore()
	s.affinities = memory.NewAffinityStore()
	s.actions = memory.NewActionStore()

	s.attributes.AddActor(&memory.Actor{
		ID:           "hero",
		Stats:        map[string]float64{"attack": 10},
		Resources:    map[string]float64{"health": 150},
		MaxResources: map[string]float64{"health": 200},
	})
	s.attributes.AddActor(&memory.Actor{
		ID:        "villain",
		Stats:     map[string]float64{"attack": 20},
		Resources: map[string]float64{"health": 100},
	})

	s.configPath = testutils.WriteConfigFile(s.T(), pipelineConfigYAML)
	source, err := config.NewFileSource(s.configPath)
	s.Require().NoError(err)
	s.store, err = config.NewStore(&config.StoreConfig{Source: source})
	s.Require().NoError(err)
	s.Require().NoError(s.store.Load(s.ctx))

	attribute, err := bridges.NewAttributeBridge(&bridges.AttributeBridgeConfig{Client: s.attributes})
	s.Require().NoError(err)
	effect, err := bridges.NewEffectBridge(&bridges.EffectBridgeConfig{Client: s.effects})
	s.Require().NoError(err)
	affinity, err := bridges.NewAffinityBridge(&bridges.AffinityBridgeConfig{Client: s.affinities})
	s.Require().NoError(err)
	action, err := bridges.NewActionBridge(&bridges.ActionBridgeConfig{Client: s.actions})
	s.Require().NoError(err)

	s.cache, err = cache.New(&cache.Config{Capacity: 128})
	s.Require().NoError(err)

	eval := formula.NewEvaluator()

	calc, err := calculator.New(&calculator.Config{
		AttributeBridge: attribute,
		EffectBridge:    effect,
		AffinityBridge:  affinity,
		ActionBridge:    action,
		Evaluator:       eval,
		Cache:           s.cache,
	})
	s.Require().NoError(err)

	proc, err := modifier.New(&modifier.Config{Evaluator: eval})
	s.Require().NoError(err)

	sched, err := scheduler.New(nil)
	s.Require().NoError(err)

	s.dispatcher = events.NewDispatcher()
	s.dispatcher.Subscribe(events.SubscriberFunc(func(_ context.Context, evt events.Event) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.captured = append(s.captured, evt)
		return nil
	}))

	s.service, err = orchestrator.New(&orchestrator.Config{
		AttributeBridge: attribute,
		AffinityBridge:  affinity,
		EffectBridge:    effect,
		ActionBridge:    action,
		Attributes:      s.attributes,
		Store:           s.store,
		Calculator:      calc,
		Processor:       proc,
		Scheduler:       sched,
		Cache:           s.cache,
		Dispatcher:      s.dispatcher,
		Clock:           clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		IDGen:           idgen.NewSequential("evt"),
	})
	s.Require().NoError(err)
}

func (s *OrchestratorSuite) apply(req *damage.Request) *damage.Result {
	out, err := s.service.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{Request: req})
	s.Require().NoError(err)
	s.Require().NotNil(out.Result)
	return out.Result
}

func (s *OrchestratorSuite) request(base float64, mods ...damage.Modifier) *damage.Request {
	return &damage.Request{
		TargetID:     "hero",
		DamageTypeID: "physical",
		BaseDamage:   base,
		Source:       damage.SourceDirect,
		Modifiers:    mods,
		Context:      damage.Context{AttackerID: "villain"},
	}
}

func (s *OrchestratorSuite) capturedTypes() []events.Type {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]events.Type, len(s.captured))
	for i, evt := range s.captured {
		types[i] = evt.Type
	}
	return types
}

func (s *OrchestratorSuite) TestDirectDamageWithNoModifiers() {
	result := s.apply(s.request(100))

	s.Equal(float64(100), result.FinalDamage)
	s.Equal(float64(100), result.DamageApplied)
	s.Zero(result.DamageBlocked)
	s.Equal(float64(50), s.attributes.Resource("hero", "health"))
	s.Equal([]string{string(events.TypeDamageApplied)}, result.Events)
}

func (s *OrchestratorSuite) TestMultiplierAndResistanceFold() {
	result := s.apply(s.request(100,
		damage.Modifier{Kind: damage.KindMultiplier, Value: 1.5},
		damage.Modifier{Kind: damage.KindResistance, Value: 0.2},
	))

	s.Equal(float64(120), result.FinalDamage)
	s.Equal(float64(120), result.DamageApplied)
	s.Equal(float64(30), s.attributes.Resource("hero", "health"))
}

func (s *OrchestratorSuite) TestImmunityModifierZeroesDamageWithoutResourceDelta() {
	result := s.apply(s.request(50,
		damage.Modifier{Kind: damage.KindImmunity, ConditionID: "always", Source: "ward"},
	))

	s.Zero(result.FinalDamage)
	s.True(result.ImmunityTriggered)
	s.Equal(float64(150), s.attributes.Resource("hero", "health"))
	s.Contains(result.Events, string(events.TypeDamageImmunity))
	s.NotContains(result.Events, string(events.TypeDamageApplied))
}

func (s *OrchestratorSuite) TestImmunityConditionFalseStillApplies() {
	result := s.apply(s.request(50,
		damage.Modifier{Kind: damage.KindImmunity, ConditionID: "never", Source: "ward"},
	))

	s.Equal(float64(50), result.FinalDamage)
	s.False(result.ImmunityTriggered)
	s.Equal(float64(100), s.attributes.Resource("hero", "health"))
}

func (s *OrchestratorSuite) TestConditionOnTargetHealthGatesModifier() {
	// bloodied: health / health_max < 0.5. Hero sits at 150/200.
	result := s.apply(s.request(100,
		damage.Modifier{Kind: damage.KindMultiplier, Value: 2, Source: "execute", ConditionID: "bloodied"},
	))

	s.Equal(float64(100), result.FinalDamage)
	s.Empty(result.ModifiersApplied)

	s.attributes.AddActor(&memory.Actor{
		ID:           "straggler",
		Resources:    map[string]float64{"health": 40},
		MaxResources: map[string]float64{"health": 100},
	})
	req := s.request(100,
		damage.Modifier{Kind: damage.KindMultiplier, Value: 2, Source: "execute", ConditionID: "bloodied"},
	)
	req.TargetID = "straggler"
	result = s.apply(req)

	s.Equal(float64(200), result.FinalDamage)
	s.Require().Len(result.ModifiersApplied, 1)
	s.Equal(float64(40), result.DamageApplied)
	s.Equal(float64(0), s.attributes.Resource("straggler", "health"))
}

func (s *OrchestratorSuite) TestAbsorptionConvertsToHealing() {
	s.attributes.AddActor(&memory.Actor{
		ID:           "wounded",
		Resources:    map[string]float64{"health": 100},
		MaxResources: map[string]float64{"health": 200},
	})

	req := s.request(80, damage.Modifier{Kind: damage.KindAbsorption, Source: "void_shield"})
	req.TargetID = "wounded"

	result := s.apply(req)

	s.True(result.AbsorbedAsHealing)
	s.Equal(float64(80), result.FinalDamage)
	s.Equal(float64(80), result.DamageApplied)
	s.Equal(float64(180), s.attributes.Resource("wounded", "health"))
	s.Contains(result.Events, string(events.TypeDamageAbsorbed))
}

func (s *OrchestratorSuite) TestReflectionSchedulesDamageBackAtAttacker() {
	result := s.apply(s.request(40,
		damage.Modifier{Kind: damage.KindReflection, Source: "thorns"},
	))

	s.Equal(float64(40), result.FinalDamage)
	s.Equal(float64(40), result.ReflectedDamage)
	s.Equal(float64(110), s.attributes.Resource("hero", "health"))
	s.Contains(result.Events, string(events.TypeDamageReflected))

	s.mu.Lock()
	defer s.mu.Unlock()
	var reflected *events.Event
	for i := range s.captured {
		if s.captured[i].Type == events.TypeDamageReflected {
			reflected = &s.captured[i]
		}
	}
	s.Require().NotNil(reflected)
	s.Equal("villain", reflected.AttackerID)
	s.Equal(float64(40), reflected.Amount)
}

func (s *OrchestratorSuite) TestBridgeImmunityShortCircuits() {
	s.effects.SetImmunity("hero", "physical")

	result := s.apply(s.request(100))

	s.Zero(result.FinalDamage)
	s.True(result.ImmunityTriggered)
	s.Equal(float64(150), s.attributes.Resource("hero", "health"))
	s.Equal([]string{string(events.TypeDamageImmunity)}, result.Events)
}

func (s *OrchestratorSuite) TestElementImmunityShortCircuits() {
	s.affinities.SetImmunity("hero", "fire")

	req := s.request(100)
	req.DamageTypeID = "fire"
	req.Source = damage.SourceElemental
	req.ElementID = "fire"

	result := s.apply(req)

	s.Zero(result.FinalDamage)
	s.True(result.ImmunityTriggered)
	s.Equal(float64(150), s.attributes.Resource("hero", "health"))
}

func (s *OrchestratorSuite) TestOverkillDamageIsClampedAndBlocked() {
	result := s.apply(s.request(500))

	s.Equal(float64(500), result.FinalDamage)
	s.Equal(float64(150), result.DamageApplied)
	s.Equal(float64(350), result.DamageBlocked)
	s.Zero(s.attributes.Resource("hero", "health"))
	s.Contains(result.Events, string(events.TypeDamageBlocked))
}

func (s *OrchestratorSuite) TestEnvironmentalSourceDefaultModifiers() {
	req := &damage.Request{
		TargetID:     "hero",
		DamageTypeID: "fire",
		Source:       damage.SourceEnvironmental,
		OriginID:     "lava_floor",
		Properties: map[string]float64{
			"intensity":           3,
			"exposure":            2,
			"environment_shelter": 1,
		},
	}

	// lava_floor yields 6; the sheltered resistance default takes 10%.
	result := s.apply(req)

	s.InDelta(5.4, result.FinalDamage, 1e-9)
	s.Require().Len(result.ModifiersApplied, 1)
	s.Equal(damage.KindResistance, result.ModifiersApplied[0].Kind)
}

func (s *OrchestratorSuite) TestCustomModifierFoldsThroughFormula() {
	result := s.apply(s.request(100,
		damage.Modifier{Kind: damage.KindCustom, Value: 0.25, CustomTag: "berserk_bonus"},
	))

	s.Equal(float64(125), result.FinalDamage)
}

func (s *OrchestratorSuite) TestDeterminism() {
	mods := []damage.Modifier{
		{Kind: damage.KindMultiplier, Value: 1.3},
		{Kind: damage.KindCustom, Value: 0.25, CustomTag: "berserk_bonus"},
		{Kind: damage.KindResistance, Value: 0.4},
	}

	first := s.apply(s.request(77, mods...))
	second := s.apply(s.request(77, mods...))

	s.Equal(first.FinalDamage, second.FinalDamage)
	s.Equal(first.ModifiersApplied, second.ModifiersApplied)
}

func (s *OrchestratorSuite) TestNonNegativity() {
	result := s.apply(s.request(50,
		damage.Modifier{Kind: damage.KindReduction, Value: 500},
	))

	s.Zero(result.FinalDamage)
	s.Zero(result.DamageApplied)
	s.Equal(float64(150), s.attributes.Resource("hero", "health"))
}

func (s *OrchestratorSuite) TestResistanceMonotonicity() {
	weak := s.apply(s.request(100, damage.Modifier{Kind: damage.KindResistance, Value: 0.2}))
	strong := s.apply(s.request(100, damage.Modifier{Kind: damage.KindResistance, Value: 0.5}))

	s.LessOrEqual(strong.FinalDamage, weak.FinalDamage)
}

func (s *OrchestratorSuite) TestValidationFailures() {
	cases := []struct {
		name  string
		req   *damage.Request
		check func(error) bool
	}{
		{
			name:  "unknown damage type",
			req:   &damage.Request{TargetID: "hero", DamageTypeID: "void", BaseDamage: 10, Source: damage.SourceDirect},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "negative base damage",
			req:   &damage.Request{TargetID: "hero", DamageTypeID: "physical", BaseDamage: -1, Source: damage.SourceDirect},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "unknown source",
			req:   &damage.Request{TargetID: "hero", DamageTypeID: "physical", BaseDamage: 10, Source: "weird"},
			check: errors.IsInvalidArgument,
		},
		{
			name: "modifier out of bounds",
			req: &damage.Request{TargetID: "hero", DamageTypeID: "physical", BaseDamage: 10, Source: damage.SourceDirect,
				Modifiers: []damage.Modifier{{Kind: damage.KindResistance, Value: 2}}},
			check: errors.IsInvalidArgument,
		},
		{
			name: "unknown condition",
			req: &damage.Request{TargetID: "hero", DamageTypeID: "physical", BaseDamage: 10, Source: damage.SourceDirect,
				Modifiers: []damage.Modifier{{Kind: damage.KindMultiplier, Value: 2, ConditionID: "eclipse"}}},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "elemental without element",
			req:   &damage.Request{TargetID: "hero", DamageTypeID: "fire", BaseDamage: 10, Source: damage.SourceElemental},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "missing actor",
			req:   &damage.Request{TargetID: "ghost", DamageTypeID: "physical", BaseDamage: 10, Source: damage.SourceDirect},
			check: errors.IsNotFound,
		},
		{
			name:  "missing actor wins over field errors",
			req:   &damage.Request{TargetID: "ghost", DamageTypeID: "void", BaseDamage: -1, Source: damage.SourceDirect},
			check: errors.IsNotFound,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{Request: tc.req})
			s.Require().Error(err)
			s.True(tc.check(err), "unexpected error: %v", err)
		})
	}

	// No validation failure may touch the target.
	s.Equal(float64(150), s.attributes.Resource("hero", "health"))
}

func (s *OrchestratorSuite) TestBatchSameTargetAppliesInSubmissionOrder() {
	out, err := s.service.ApplyDamageBatch(s.ctx, &orchestrator.ApplyDamageBatchInput{
		Requests: []*damage.Request{
			s.request(100),
			s.request(100),
		},
	})

	s.Require().NoError(err)
	s.Require().Len(out.Items, 2)
	s.Require().NoError(out.Items[0].Err)
	s.Require().NoError(out.Items[1].Err)

	// 150 health: the first request lands in full, the second clamps.
	s.Equal(float64(100), out.Items[0].Result.DamageApplied)
	s.Equal(float64(50), out.Items[1].Result.DamageApplied)
	s.Zero(s.attributes.Resource("hero", "health"))
}

func (s *OrchestratorSuite) TestBatchDifferentTargetsBothComplete() {
	villainReq := s.request(30)
	villainReq.TargetID = "villain"
	villainReq.Context.AttackerID = "hero"

	out, err := s.service.ApplyDamageBatch(s.ctx, &orchestrator.ApplyDamageBatchInput{
		Requests: []*damage.Request{s.request(30), villainReq},
	})

	s.Require().NoError(err)
	s.Require().Len(out.Items, 2)
	for _, item := range out.Items {
		s.Require().NoError(item.Err)
		s.Equal(float64(30), item.Result.DamageApplied)
	}
	s.Equal(float64(120), s.attributes.Resource("hero", "health"))
	s.Equal(float64(70), s.attributes.Resource("villain", "health"))
}

func (s *OrchestratorSuite) TestBatchKeepsPerRequestErrorsInPlace() {
	bad := s.request(10)
	bad.DamageTypeID = "void"

	out, err := s.service.ApplyDamageBatch(s.ctx, &orchestrator.ApplyDamageBatchInput{
		Requests: []*damage.Request{s.request(10), bad, s.request(10)},
	})

	s.Require().NoError(err)
	s.Require().Len(out.Items, 3)
	s.NoError(out.Items[0].Err)
	s.Error(out.Items[1].Err)
	s.NoError(out.Items[2].Err)
}

func (s *OrchestratorSuite) TestIdempotentReloadKeepsCache() {
	s.apply(s.request(100))
	s.Require().NotZero(s.cache.Len())
	before := s.cache.Len()

	s.Require().NoError(s.store.Reload(s.ctx))

	s.Equal(before, s.cache.Len())
	s.Equal(uint64(1), s.store.Snapshot().Generation)
}

func (s *OrchestratorSuite) TestChangedConfigReloadDropsCache() {
	s.apply(s.request(100))
	s.Require().NotZero(s.cache.Len())

	changed := pipelineConfigYAML + `  - id: acid_pool
    formula: "intensity * 3"
    variables: [intensity]
`
	s.Require().NoError(os.WriteFile(s.configPath, []byte(changed), 0o600))
	s.Require().NoError(s.store.Reload(s.ctx))

	s.Zero(s.cache.Len())
	s.Equal(uint64(2), s.store.Snapshot().Generation)
}

func (s *OrchestratorSuite) TestNoConfigurationLoaded() {
	source, err := config.NewFileSource(s.configPath)
	s.Require().NoError(err)
	store, err := config.NewStore(&config.StoreConfig{Source: source})
	s.Require().NoError(err)

	svc, err := orchestrator.New(s.serviceConfig(store))
	s.Require().NoError(err)

	_, err = svc.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{Request: s.request(10)})
	s.Require().Error(err)
	s.True(errors.IsConfiguration(err))
}

// serviceConfig rebuilds the orchestrator config against an alternative
// store, reusing the suite's collaborators.
func (s *OrchestratorSuite) serviceConfig(store *config.Store) *orchestrator.Config {
	attribute, err := bridges.NewAttributeBridge(&bridges.AttributeBridgeConfig{Client: s.attributes})
	s.Require().NoError(err)
	effect, err := bridges.NewEffectBridge(&bridges.EffectBridgeConfig{Client: s.effects})
	s.Require().NoError(err)
	affinity, err := bridges.NewAffinityBridge(&bridges.AffinityBridgeConfig{Client: s.affinities})
	s.Require().NoError(err)
	action, err := bridges.NewActionBridge(&bridges.ActionBridgeConfig{Client: s.actions})
	s.Require().NoError(err)

	c, err := cache.New(nil)
	s.Require().NoError(err)

	eval := formula.NewEvaluator()
	calc, err := calculator.New(&calculator.Config{
		AttributeBridge: attribute,
		EffectBridge:    effect,
		AffinityBridge:  affinity,
		ActionBridge:    action,
		Evaluator:       eval,
		Cache:           c,
	})
	s.Require().NoError(err)

	proc, err := modifier.New(&modifier.Config{Evaluator: eval})
	s.Require().NoError(err)

	sched, err := scheduler.New(nil)
	s.Require().NoError(err)

	return &orchestrator.Config{
		AttributeBridge: attribute,
		AffinityBridge:  affinity,
		EffectBridge:    effect,
		ActionBridge:    action,
		Attributes:      s.attributes,
		Store:           store,
		Calculator:      calc,
		Processor:       proc,
		Scheduler:       sched,
		Cache:           c,
		Dispatcher:      events.NewDispatcher(),
		Clock:           clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		IDGen:           idgen.NewSequential("evt"),
	}
}

func (s *OrchestratorSuite) TestConfigValidation() {
	_, err := orchestrator.New(&orchestrator.Config{})
	s.Error(err)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}
