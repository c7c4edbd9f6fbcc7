package bridges

import (
	"context"

	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
)

// ActionBridgeConfig holds the dependencies for the action bridge.
type ActionBridgeConfig struct {
	Client ActionClient
}

// Validate ensures all required dependencies are provided.
func (c *ActionBridgeConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

type actionBridge struct {
	client ActionClient
}

// NewActionBridge adapts the action/skill collaborator to the Bridge
// contract. The request's origin id names the action.
func NewActionBridge(cfg *ActionBridgeConfig) (Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &actionBridge{client: cfg.Client}, nil
}

func (b *actionBridge) Name() string {
	return NameAction
}

func (b *actionBridge) GetBaseContribution(ctx context.Context, input *BaseContributionInput) (*BaseContributionOutput, error) {
	if input.Request.OriginID == "" {
		return &BaseContributionOutput{}, nil
	}

	action, err := b.client.GetActionDefinition(ctx, input.Request.OriginID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"action bridge: failed to get action %s", input.Request.OriginID)
	}

	return &BaseContributionOutput{
		Value: action.BaseDamage * action.Effectiveness,
		Vars: map[string]float64{
			"action_base":          action.BaseDamage,
			"action_effectiveness": action.Effectiveness,
		},
	}, nil
}

func (b *actionBridge) GetModifiers(ctx context.Context, input *ModifiersInput) (*ModifiersOutput, error) {
	if input.Request.Source != damage.SourceAction || input.Request.OriginID == "" {
		return &ModifiersOutput{Modifiers: []damage.Modifier{}}, nil
	}

	action, err := b.client.GetActionDefinition(ctx, input.Request.OriginID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"action bridge: failed to get action %s", input.Request.OriginID)
	}

	return &ModifiersOutput{Modifiers: append([]damage.Modifier{}, action.Modifiers...)}, nil
}

func (b *actionBridge) CheckImmunity(ctx context.Context, input *ImmunityInput) (*ImmunityOutput, error) {
	if input.Request.OriginID == "" {
		return &ImmunityOutput{}, nil
	}

	immune, err := b.client.CheckImmunity(ctx, input.ActorID, input.Request.OriginID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
			"action bridge: immunity check failed for %s action %s", input.ActorID, input.Request.OriginID)
	}

	out := &ImmunityOutput{Immune: immune}
	if immune {
		out.Reason = "action immunity"
	}
	return out, nil
}
