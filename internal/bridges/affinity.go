package bridges

import (
	"context"

	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
)

// AffinityBridgeConfig holds the dependencies for the affinity bridge.
type AffinityBridgeConfig struct {
	Client AffinityClient
}

// Validate ensures all required dependencies are provided.
func (c *AffinityBridgeConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

type affinityBridge struct {
	client AffinityClient
}

// NewAffinityBridge adapts the affinity/mastery collaborator to the Bridge
// contract. Requests without an element neither contribute nor modify.
func NewAffinityBridge(cfg *AffinityBridgeConfig) (Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &affinityBridge{client: cfg.Client}, nil
}

func (b *affinityBridge) Name() string {
	return NameAffinity
}

func (b *affinityBridge) GetBaseContribution(ctx context.Context, input *BaseContributionInput) (*BaseContributionOutput, error) {
	if input.Request.ElementID == "" {
		return &BaseContributionOutput{}, nil
	}

	mastery, err := b.client.GetMastery(ctx, input.ActorID, input.Request.ElementID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"affinity bridge: failed to get mastery for %s element %s", input.ActorID, input.Request.ElementID)
	}

	return &BaseContributionOutput{
		Value: mastery.Level,
		Vars: map[string]float64{
			"mastery_level":      mastery.Level,
			"mastery_tier":       float64(mastery.Tier),
			"mastery_resistance": mastery.Resistance,
		},
	}, nil
}

func (b *affinityBridge) GetModifiers(ctx context.Context, input *ModifiersInput) (*ModifiersOutput, error) {
	if input.Request.ElementID == "" {
		return &ModifiersOutput{Modifiers: []damage.Modifier{}}, nil
	}

	mastery, err := b.client.GetMastery(ctx, input.ActorID, input.Request.ElementID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"affinity bridge: failed to get mastery for %s element %s", input.ActorID, input.Request.ElementID)
	}

	mods := []damage.Modifier{}
	if mastery.Resistance > 0 {
		mods = append(mods, damage.Modifier{
			Kind:   damage.KindResistance,
			Value:  mastery.Resistance,
			Source: "affinity_mastery",
		})
	}
	return &ModifiersOutput{Modifiers: mods}, nil
}

func (b *affinityBridge) CheckImmunity(ctx context.Context, input *ImmunityInput) (*ImmunityOutput, error) {
	if input.Request.ElementID == "" {
		return &ImmunityOutput{}, nil
	}

	immune, err := b.client.CheckImmunity(ctx, input.ActorID, input.Request.ElementID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"affinity bridge: immunity check failed for %s element %s", input.ActorID, input.Request.ElementID)
	}

	out := &ImmunityOutput{Immune: immune}
	if immune {
		out.Reason = "element immunity"
	}
	return out, nil
}
