package bridges

import (
	"context"

	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
)

// AttributeBridgeConfig holds the dependencies for the attribute bridge.
type AttributeBridgeConfig struct {
	Client AttributeClient
}

// Validate ensures all required dependencies are provided.
func (c *AttributeBridgeConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

type attributeBridge struct {
	client AttributeClient
}

// NewAttributeBridge adapts the actor-attribute collaborator to the Bridge
// contract. Its base contribution is the attacker's derived stats bound as
// formula variables.
func NewAttributeBridge(cfg *AttributeBridgeConfig) (Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &attributeBridge{client: cfg.Client}, nil
}

func (b *attributeBridge) Name() string {
	return NameAttribute
}

func (b *attributeBridge) GetBaseContribution(ctx context.Context, input *BaseContributionInput) (*BaseContributionOutput, error) {
	stats, err := b.client.GetDerivedStats(ctx, input.ActorID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"attribute bridge: failed to get derived stats for %s", input.ActorID)
	}

	return &BaseContributionOutput{
		Value: input.Request.BaseDamage,
		Vars:  stats,
	}, nil
}

func (b *attributeBridge) GetModifiers(ctx context.Context, input *ModifiersInput) (*ModifiersOutput, error) {
	// The attribute store owns resources, not combat modifiers.
	return &ModifiersOutput{Modifiers: []damage.Modifier{}}, nil
}

func (b *attributeBridge) CheckImmunity(ctx context.Context, input *ImmunityInput) (*ImmunityOutput, error) {
	immune, err := b.client.CheckDamageImmunity(ctx, input.ActorID, input.Request.DamageTypeID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"attribute bridge: immunity check failed for %s", input.ActorID)
	}

	out := &ImmunityOutput{Immune: immune}
	if immune {
		out.Reason = "attribute damage immunity"
	}
	return out, nil
}
