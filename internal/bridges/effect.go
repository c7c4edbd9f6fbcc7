package bridges

import (
	"context"

	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
)

// EffectBridgeConfig holds the dependencies for the effect bridge.
type EffectBridgeConfig struct {
	Client EffectClient
}

// Validate ensures all required dependencies are provided.
func (c *EffectBridgeConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

type effectBridge struct {
	client EffectClient
}

// NewEffectBridge adapts the timed-effect collaborator to the Bridge
// contract. Its base contribution is the summed magnitude of active
// damage-producing effects for the request's damage type.
func NewEffectBridge(cfg *EffectBridgeConfig) (Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &effectBridge{client: cfg.Client}, nil
}

func (b *effectBridge) Name() string {
	return NameEffect
}

func (b *effectBridge) GetBaseContribution(ctx context.Context, input *BaseContributionInput) (*BaseContributionOutput, error) {
	effects, err := b.client.GetActiveEffects(ctx, input.ActorID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"effect bridge: failed to get active effects for %s", input.ActorID)
	}

	var sum float64
	var count float64
	for _, eff := range effects {
		if eff.DamageProducing && eff.DamageTypeID == input.Request.DamageTypeID {
			sum += eff.Magnitude
			count++
		}
	}

	return &BaseContributionOutput{
		Value: sum,
		Vars: map[string]float64{
			"effect_total": sum,
			"effect_count": count,
		},
	}, nil
}

func (b *effectBridge) GetModifiers(ctx context.Context, input *ModifiersInput) (*ModifiersOutput, error) {
	effects, err := b.client.GetActiveEffects(ctx, input.ActorID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"effect bridge: failed to get active effects for %s", input.ActorID)
	}

	mods := []damage.Modifier{}
	for _, eff := range effects {
		mods = append(mods, eff.Modifiers...)
	}
	return &ModifiersOutput{Modifiers: mods}, nil
}

func (b *effectBridge) CheckImmunity(ctx context.Context, input *ImmunityInput) (*ImmunityOutput, error) {
	immune, err := b.client.CheckDamageImmunity(ctx, input.ActorID, input.Request.DamageTypeID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"effect bridge: immunity check failed for %s", input.ActorID)
	}

	out := &ImmunityOutput{Immune: immune}
	if immune {
		out.Reason = "effect-granted immunity"
	}
	return out, nil
}
