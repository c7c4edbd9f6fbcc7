package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
	"github.com/chaosforge/damage-api/internal/formula"
)

// BuildSnapshot validates a document set and compiles it into a snapshot.
// Validation is all-or-nothing: any failure returns an error and no
// snapshot. The generation is assigned by the store on swap.
func BuildSnapshot(docs *Documents) (*Snapshot, error) {
	if docs == nil {
		return nil, errors.Configuration("configuration documents are nil")
	}

	vb := errors.NewValidationBuilder()

	if docs.Version == "" {
		vb.RequiredField("version")
	}

	snap := &Snapshot{
		Version:      docs.Version,
		Hash:         hashDocuments(docs),
		damageTypes:  make(map[string]*DamageType, len(docs.DamageTypes)),
		modifiers:    make(map[string]*ModifierKindDef, len(docs.Modifiers)),
		sources:      make(map[string]*SourceDef, len(docs.Sources)),
		conditions:   make(map[string]*Condition, len(docs.Conditions)),
		calculations: make(map[string]*Calculation, len(docs.Calculations)),
	}

	buildCalculations(docs, snap, vb)
	buildConditions(docs, snap, vb)
	buildDamageTypes(docs, snap, vb)
	buildModifiers(docs, snap, vb)
	buildSources(docs, snap, vb)

	if err := vb.Build(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "configuration documents failed validation")
	}
	return snap, nil
}

func buildCalculations(docs *Documents, snap *Snapshot, vb *errors.ValidationBuilder) {
	for i, def := range docs.Calculations {
		field := fmt.Sprintf("calculations[%d]", i)
		if def.ID == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if _, dup := snap.calculations[def.ID]; dup {
			vb.Fieldf(field+".id", "duplicate calculation id %q", def.ID)
			continue
		}
		prog, err := formula.Compile("calculation:"+def.ID, def.Formula, def.Variables)
		if err != nil {
			vb.InvalidField(field+".formula", err.Error())
			continue
		}
		snap.calculations[def.ID] = &Calculation{Definition: def, Program: prog}
	}
}

func buildConditions(docs *Documents, snap *Snapshot, vb *errors.ValidationBuilder) {
	for i, def := range docs.Conditions {
		field := fmt.Sprintf("conditions[%d]", i)
		if def.ID == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if _, dup := snap.conditions[def.ID]; dup {
			vb.Fieldf(field+".id", "duplicate condition id %q", def.ID)
			continue
		}
		prog, err := formula.Compile("condition:"+def.ID, def.Formula, def.Variables)
		if err != nil {
			vb.InvalidField(field+".formula", err.Error())
			continue
		}
		snap.conditions[def.ID] = &Condition{Definition: def, Program: prog}
	}
}

func buildDamageTypes(docs *Documents, snap *Snapshot, vb *errors.ValidationBuilder) {
	for i, def := range docs.DamageTypes {
		field := fmt.Sprintf("damage_types[%d]", i)
		if def.ID == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if def.Resource == "" {
			vb.RequiredField(field + ".resource")
			continue
		}
		if _, dup := snap.damageTypes[def.ID]; dup {
			vb.Fieldf(field+".id", "duplicate damage type id %q", def.ID)
			continue
		}

		dt := &DamageType{Definition: def}
		ok := true
		if def.BaseFormula != "" {
			prog, err := formula.Compile("damage_type:"+def.ID+":base", def.BaseFormula, nil)
			if err != nil {
				vb.InvalidField(field+".base_formula", err.Error())
				ok = false
			}
			dt.BaseProgram = prog
		}
		if def.ElementFormula != "" {
			prog, err := formula.Compile("damage_type:"+def.ID+":element", def.ElementFormula, nil)
			if err != nil {
				vb.InvalidField(field+".element_formula", err.Error())
				ok = false
			}
			dt.ElementProgram = prog
		}
		if ok {
			snap.damageTypes[def.ID] = dt
		}
	}
}

func buildModifiers(docs *Documents, snap *Snapshot, vb *errors.ValidationBuilder) {
	for i, def := range docs.Modifiers {
		field := fmt.Sprintf("modifiers[%d]", i)
		if def.ID == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if _, dup := snap.modifiers[def.ID]; dup {
			vb.Fieldf(field+".id", "duplicate modifier id %q", def.ID)
			continue
		}

		kind := damage.ModifierKind(def.Kind)
		if !kind.Valid() {
			vb.Fieldf(field+".kind", "unknown modifier kind %q", def.Kind)
			continue
		}
		if def.MinValue != nil && def.MaxValue != nil && *def.MinValue > *def.MaxValue {
			vb.InvalidField(field+".min_value", "min_value exceeds max_value")
			continue
		}

		md := &ModifierKindDef{Definition: def, Kind: kind}
		if kind == damage.KindCustom {
			if def.Formula == "" {
				vb.RequiredField(field + ".formula")
				continue
			}
			prog, err := formula.Compile("modifier:"+def.ID, def.Formula, def.Variables)
			if err != nil {
				vb.InvalidField(field+".formula", err.Error())
				continue
			}
			md.Program = prog
		}
		snap.modifiers[def.ID] = md
	}
}

func buildSources(docs *Documents, snap *Snapshot, vb *errors.ValidationBuilder) {
	for i, def := range docs.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		if def.ID == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if _, dup := snap.sources[def.ID]; dup {
			vb.Fieldf(field+".id", "duplicate source id %q", def.ID)
			continue
		}

		src := &SourceDef{Definition: def}
		ok := true
		for j, ref := range def.DefaultModifiers {
			refField := fmt.Sprintf("%s.default_modifiers[%d]", field, j)
			lookup := ref.Kind
			if damage.ModifierKind(ref.Kind) == damage.KindCustom {
				lookup = ref.CustomTag
			}
			if _, found := snap.modifiers[lookup]; !found {
				vb.Fieldf(refField+".kind", "references unregistered modifier %q", lookup)
				ok = false
			}
			if ref.Condition != "" {
				if _, found := snap.conditions[ref.Condition]; !found {
					vb.Fieldf(refField+".condition", "references unregistered condition %q", ref.Condition)
					ok = false
				}
			}
			src.DefaultModifiers = append(src.DefaultModifiers, ref.ToModifier())
		}
		if ok {
			snap.sources[def.ID] = src
		}
	}
}

// hashDocuments digests the canonical yaml encoding of a document set.
// Byte-identical content always hashes identically, which is what makes
// reload idempotence observable.
func hashDocuments(docs *Documents) string {
	data, err := yaml.Marshal(docs)
	if err != nil {
		// Documents decoded from yaml always re-encode.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
