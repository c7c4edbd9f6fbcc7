package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// BaselineConfigYAML is a small but complete configuration document set
// covering every definition kind, shared by store, pipeline, and cmd tests.
const BaselineConfigYAML = `version: "1.0.0"
damage_types:
  - id: physical
    resource: health
    category: physical
    base_formula: "attack * power_scale + weapon_power"
    scaling:
      power_scale: 1.0
    display_name: Physical
  - id: fire
    resource: health
    category: elemental
    element: fire
    base_formula: "attack * power_scale"
    element_formula: "mastery_level * 2 + mastery_tier * 10"
    scaling:
      power_scale: 0.8
    display_name: Fire
  - id: mana_burn
    resource: mana
    category: arcane
    base_formula: "attack * 0.5"
    display_name: Mana Burn
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
    min_value: 0
    max_value: 1
  - id: berserk_bonus
    kind: custom
    formula: "damage * (1 + value)"
    variables: [damage, value]
sources:
  - id: direct
    category: physical
  - id: status
    category: periodic
  - id: elemental
    category: elemental
  - id: action
    category: skill
  - id: environmental
    category: world
    default_modifiers:
      - kind: resistance
        value: 0.1
        source: environment_shelter
        condition: sheltered
  - id: custom
    category: scripted
conditions:
  - id: low_health
    formula: "target_health / target_max_health < 0.3"
    variables: [target_health, target_max_health]
  - id: sheltered
    formula: "environment_shelter > 0"
    variables: [environment_shelter]
  - id: always
    formula: "true"
calculations:
  - id: lava_floor
    formula: "intensity * exposure"
    variables: [intensity, exposure]
`

// WriteConfigFile writes yaml content into a temp directory and returns the
// file path.
func WriteConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "damage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
