package damage

import (
	"context"
	"math"

	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
)

// validateRequest checks a request against the active snapshot before any
// pipeline work starts. Validation performs no side effects; the only
// lookup that leaves the process is the actor existence check, which runs
// first so a missing actor always reports NOT_FOUND regardless of other
// field problems.
func (o *orchestrator) validateRequest(ctx context.Context, req *damage.Request, snap *config.Snapshot) error {
	if req == nil {
		return errors.InvalidArgument("request is required")
	}

	vb := errors.NewValidationBuilder()

	if req.TargetID == "" {
		vb.RequiredField("TargetID")
	} else {
		callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
		exists, err := o.attributes.ActorExists(callCtx, req.TargetID)
		cancel()
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeIntegration,
				"failed to check actor %s", req.TargetID)
		}
		if !exists {
			return errors.NotFoundf("target actor %q does not exist", req.TargetID)
		}
	}

	if req.DamageTypeID == "" {
		vb.RequiredField("DamageTypeID")
	} else if !snap.HasDamageType(req.DamageTypeID) {
		vb.InvalidField("DamageTypeID", "is not a registered damage type")
	}

	if !req.Source.Valid() {
		vb.InvalidField("Source", "is not a known damage source")
	} else if !snap.HasSource(string(req.Source)) {
		vb.InvalidField("Source", "is not a registered damage source")
	}

	if req.BaseDamage < 0 {
		vb.InvalidField("BaseDamage", "must not be negative")
	} else if math.IsNaN(req.BaseDamage) || math.IsInf(req.BaseDamage, 0) {
		vb.InvalidField("BaseDamage", "must be finite")
	}

	switch req.Source {
	case damage.SourceElemental:
		if req.ElementID == "" {
			vb.InvalidField("ElementID", "is required for elemental damage")
		}
	case damage.SourceAction:
		if req.OriginID == "" {
			vb.InvalidField("OriginID", "is required for action damage")
		}
	case damage.SourceEnvironmental, damage.SourceCustom:
		if req.OriginID == "" {
			vb.InvalidField("OriginID", "must name a registered calculation")
		}
	}

	for i, mod := range req.Modifiers {
		o.validateModifier(vb, i, mod, snap)
	}

	return vb.Build()
}

func (o *orchestrator) validateModifier(vb *errors.ValidationBuilder, index int, mod damage.Modifier, snap *config.Snapshot) {
	if !mod.Kind.Valid() {
		vb.Fieldf("Modifiers", "entry %d: unknown kind %q", index, mod.Kind)
		return
	}

	id := string(mod.Kind)
	if mod.Kind == damage.KindCustom {
		if mod.CustomTag == "" {
			vb.Fieldf("Modifiers", "entry %d: custom modifier requires a tag", index)
			return
		}
		id = mod.CustomTag
	}

	def, err := snap.ModifierDef(id)
	if err != nil {
		vb.Fieldf("Modifiers", "entry %d: %q is not a registered modifier", index, id)
		return
	}
	if !def.InBounds(mod.Value) {
		vb.Fieldf("Modifiers", "entry %d: value %v is out of bounds for %q", index, mod.Value, id)
	}

	if mod.ConditionID != "" && !snap.HasCondition(mod.ConditionID) {
		vb.Fieldf("Modifiers", "entry %d: condition %q is not registered", index, mod.ConditionID)
	}
}
