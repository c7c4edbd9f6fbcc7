package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chaosforge/damage-api/internal/bridges"
	"github.com/chaosforge/damage-api/internal/bridges/memory"
	"github.com/chaosforge/damage-api/internal/cache"
	"github.com/chaosforge/damage-api/internal/calculator"
	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/events"
	"github.com/chaosforge/damage-api/internal/formula"
	"github.com/chaosforge/damage-api/internal/modifier"
	damageorch "github.com/chaosforge/damage-api/internal/orchestrators/damage"
	"github.com/chaosforge/damage-api/internal/pkg/clock"
	"github.com/chaosforge/damage-api/internal/pkg/idgen"
	"github.com/chaosforge/damage-api/internal/scheduler"
)

var (
	simulateConfigPath  string
	simulateConcurrency int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted damage batch against in-memory collaborators",
	Long:  `Wire the full damage pipeline against in-memory actor, effect, affinity, and action stores, run a scripted batch, and log every result and published event.`,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateConfigPath, "config", "", "path to a yaml configuration file (required)")
	simulateCmd.Flags().IntVar(&simulateConcurrency, "concurrency", 0, "max concurrent actor groups, 0 for unlimited")
	_ = simulateCmd.MarkFlagRequired("config")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	source, err := config.NewFileSource(simulateConfigPath)
	if err != nil {
		return err
	}
	store, err := config.NewStore(&config.StoreConfig{Source: source})
	if err != nil {
		return err
	}
	if err := store.Load(ctx); err != nil {
		return err
	}

	attributes, effects, affinities, actions := seedCollaborators()

	resilience := &bridges.ResilienceConfig{}

	attributeBridge, err := bridges.NewAttributeBridge(&bridges.AttributeBridgeConfig{Client: attributes})
	if err != nil {
		return err
	}
	effectBridge, err := bridges.NewEffectBridge(&bridges.EffectBridgeConfig{Client: effects})
	if err != nil {
		return err
	}
	affinityBridge, err := bridges.NewAffinityBridge(&bridges.AffinityBridgeConfig{Client: affinities})
	if err != nil {
		return err
	}
	actionBridge, err := bridges.NewActionBridge(&bridges.ActionBridgeConfig{Client: actions})
	if err != nil {
		return err
	}

	valueCache, err := cache.New(nil)
	if err != nil {
		return err
	}

	eval := formula.NewEvaluator()

	calc, err := calculator.New(&calculator.Config{
		AttributeBridge: bridges.Resilient(attributeBridge, resilience),
		EffectBridge:    bridges.Resilient(effectBridge, resilience),
		AffinityBridge:  bridges.Resilient(affinityBridge, resilience),
		ActionBridge:    bridges.Resilient(actionBridge, resilience),
		Evaluator:       eval,
		Cache:           valueCache,
	})
	if err != nil {
		return err
	}

	processor, err := modifier.New(&modifier.Config{Evaluator: eval})
	if err != nil {
		return err
	}

	sched, err := scheduler.New(&scheduler.Config{MaxConcurrentGroups: simulateConcurrency})
	if err != nil {
		return err
	}

	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(events.SubscriberFunc(func(_ context.Context, evt events.Event) error {
		slog.Info("event published",
			"event_id", evt.ID,
			"type", evt.Type,
			"actor_id", evt.ActorID,
			"damage_type", evt.DamageTypeID,
			"amount", evt.Amount,
		)
		return nil
	}))

	service, err := damageorch.New(&damageorch.Config{
		AttributeBridge: bridges.Resilient(attributeBridge, resilience),
		AffinityBridge:  bridges.Resilient(affinityBridge, resilience),
		EffectBridge:    bridges.Resilient(effectBridge, resilience),
		ActionBridge:    bridges.Resilient(actionBridge, resilience),
		Attributes:      attributes,
		Store:           store,
		Calculator:      calc,
		Processor:       processor,
		Scheduler:       sched,
		Cache:           valueCache,
		Dispatcher:      dispatcher,
		Clock:           clock.New(),
		IDGen:           idgen.NewUUID("evt"),
	})
	if err != nil {
		return err
	}

	out, err := service.ApplyDamageBatch(ctx, &damageorch.ApplyDamageBatchInput{
		Requests: scriptedBatch(),
	})
	if err != nil {
		return err
	}

	for i, item := range out.Items {
		if item.Err != nil {
			slog.Error("request failed", "index", i, "error", item.Err)
			continue
		}
		slog.Info("request complete",
			"index", i,
			"target_id", item.Result.TargetID,
			"damage_type", item.Result.DamageTypeID,
			"base", item.Result.BaseDamage,
			"final", item.Result.FinalDamage,
			"applied", item.Result.DamageApplied,
			"blocked", item.Result.DamageBlocked,
			"immune", item.Result.ImmunityTriggered,
			"absorbed", item.Result.AbsorbedAsHealing,
			"reflected", item.Result.ReflectedDamage,
		)
	}

	slog.Info("remaining resources",
		"knight_health", attributes.Resource("knight", "health"),
		"pyromancer_health", attributes.Resource("pyromancer", "health"),
	)
	return nil
}

// seedCollaborators fills the in-memory stores with a small cast so the
// scripted batch exercises every damage source.
func seedCollaborators() (*memory.AttributeStore, *memory.EffectStore, *memory.AffinityStore, *memory.ActionStore) {
	attributes := memory.NewAttributeStore()
	attributes.AddActor(&memory.Actor{
		ID:        "knight",
		Stats:     map[string]float64{"attack": 18, "weapon_power": 7},
		Resources: map[string]float64{"health": 250, "mana": 60},
	})
	attributes.AddActor(&memory.Actor{
		ID:        "pyromancer",
		Stats:     map[string]float64{"attack": 9, "weapon_power": 2},
		Resources: map[string]float64{"health": 140, "mana": 120},
	})

	effects := memory.NewEffectStore()
	effects.AddEffect("knight", bridges.EffectSummary{
		ID:              "bleed",
		Magnitude:       6,
		DamageProducing: true,
		DamageTypeID:    "physical",
	})

	affinities := memory.NewAffinityStore()
	affinities.SetMastery("pyromancer", "fire", bridges.MasteryData{Level: 14, Tier: 3, Resistance: 0.4})
	affinities.SetMastery("knight", "fire", bridges.MasteryData{Level: 2, Tier: 1, Resistance: 0.1})

	actions := memory.NewActionStore()
	actions.AddAction(bridges.ActionSummary{
		ID:            "shield_bash",
		BaseDamage:    35,
		Effectiveness: 1.2,
	})

	return attributes, effects, affinities, actions
}

// scriptedBatch covers each damage source, a modifier fold, and two
// requests against the same target to show in-order application.
func scriptedBatch() []*damage.Request {
	return []*damage.Request{
		{
			TargetID:     "knight",
			DamageTypeID: "physical",
			BaseDamage:   40,
			Source:       damage.SourceDirect,
			Context:      damage.Context{AttackerID: "pyromancer"},
		},
		{
			TargetID:     "knight",
			DamageTypeID: "physical",
			BaseDamage:   40,
			Source:       damage.SourceDirect,
			Modifiers: []damage.Modifier{
				{Kind: damage.KindMultiplier, Value: 1.5, Source: "flanking"},
				{Kind: damage.KindResistance, Value: 0.2, Source: "plate_armor"},
			},
			Context: damage.Context{AttackerID: "pyromancer"},
		},
		{
			TargetID:     "knight",
			DamageTypeID: "physical",
			Source:       damage.SourceStatus,
		},
		{
			TargetID:     "pyromancer",
			DamageTypeID: "fire",
			Source:       damage.SourceElemental,
			ElementID:    "fire",
			Context:      damage.Context{AttackerID: "knight"},
		},
		{
			TargetID:     "pyromancer",
			DamageTypeID: "physical",
			Source:       damage.SourceAction,
			OriginID:     "shield_bash",
			Context:      damage.Context{AttackerID: "knight"},
		},
	}
}
