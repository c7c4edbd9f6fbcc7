package damage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaosforge/damage-api/internal/damage"
)

func TestFingerprintDeterministic(t *testing.T) {
	req := &damage.Request{
		TargetID:     "actor-1",
		DamageTypeID: "physical",
		Source:       damage.SourceDirect,
		BaseDamage:   100,
		ElementID:    "fire",
	}

	first := damage.Fingerprint(req)
	second := damage.Fingerprint(req)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestFingerprintIgnoresModifiersAndContext(t *testing.T) {
	base := &damage.Request{
		TargetID:     "actor-1",
		DamageTypeID: "physical",
		Source:       damage.SourceDirect,
		BaseDamage:   100,
	}
	withExtras := &damage.Request{
		TargetID:     "actor-1",
		DamageTypeID: "physical",
		Source:       damage.SourceDirect,
		BaseDamage:   100,
		Modifiers: []damage.Modifier{
			{Kind: damage.KindMultiplier, Value: 2},
		},
		Context: damage.Context{SessionID: "session-9", AttackerID: "actor-2"},
	}

	assert.Equal(t, damage.Fingerprint(base), damage.Fingerprint(withExtras))
}

func TestFingerprintSensitivity(t *testing.T) {
	base := damage.Request{
		TargetID:     "actor-1",
		DamageTypeID: "physical",
		Source:       damage.SourceDirect,
		BaseDamage:   100,
		ElementID:    "fire",
	}

	cases := map[string]func(r *damage.Request){
		"target":   func(r *damage.Request) { r.TargetID = "actor-2" },
		"type":     func(r *damage.Request) { r.DamageTypeID = "magical" },
		"source":   func(r *damage.Request) { r.Source = damage.SourceElemental },
		"base":     func(r *damage.Request) { r.BaseDamage = 101 },
		"element":  func(r *damage.Request) { r.ElementID = "water" },
	}

	original := damage.Fingerprint(&base)
	for name, mutate := range cases {
		changed := base
		mutate(&changed)
		assert.NotEqual(t, original, damage.Fingerprint(&changed), "field %s should change the fingerprint", name)
	}
}

func TestModifierDigestOrderSensitive(t *testing.T) {
	a := damage.Modifier{Kind: damage.KindMultiplier, Value: 1.5}
	b := damage.Modifier{Kind: damage.KindResistance, Value: 0.2}

	ab := damage.ModifierDigest([]damage.Modifier{a, b})
	ba := damage.ModifierDigest([]damage.Modifier{b, a})

	assert.NotEqual(t, ab, ba)
	assert.Equal(t, ab, damage.ModifierDigest([]damage.Modifier{a, b}))
}

func TestModifierDigestEmpty(t *testing.T) {
	assert.Equal(t, "none", damage.ModifierDigest(nil))
}

func TestKindAndSourceValidity(t *testing.T) {
	assert.True(t, damage.KindMultiplier.Valid())
	assert.True(t, damage.KindCustom.Valid())
	assert.False(t, damage.ModifierKind("vorpal").Valid())

	assert.True(t, damage.SourceDirect.Valid())
	assert.True(t, damage.SourceEnvironmental.Valid())
	assert.False(t, damage.Source("cosmic").Valid())
}
