package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmarsden/gametable/internal/game/combat"
	"github.com/kmarsden/gametable/internal/game/scenario"
	"github.com/kmarsden/gametable/internal/game/world"
)

const validScenario = `
scenario:
  session: table-1
  players:
    - id: aela
      name: Aela
      ac: 16
      hp: 24
      dexterity: 14
      position: {x: 0, y: 0}
      attack_bonus: 5
      damage: "1d8+3"
    - id: corin
      name: Corin
      ac: 12
      hp: 18
      initiative_bonus: 1
      role: caster
  monsters:
    - id: g1
      name: Goblin
      ac: 15
      hp: 7
      dexterity: 14
      position: {x: 10, y: 0}
      speed: 6
      ranged: true
      ranged_range: 24
      ranged_attack_bonus: 4
      ranged_damage: "1d6+2"
      actions:
        - name: scimitar
          attack_bonus: 4
          damage: "1d6+2"
  environment:
    - id: boulder
      kind: cover
      position: {x: 5, y: 1}
      radius: 2
      cover_bonus: 2
    - id: swamp
      kind: difficult
      position: {x: 8, y: 8}
      radius: 4
      movement_cost_multiplier: 3
`

func TestLoad_Valid(t *testing.T) {
	sc, err := scenario.Load([]byte(validScenario))
	require.NoError(t, err)

	assert.Equal(t, "table-1", sc.SessionID)
	require.Len(t, sc.Players, 2)
	require.Len(t, sc.Monsters, 1)
	require.Len(t, sc.Environment, 2)

	aela := sc.Players[0]
	assert.Equal(t, combat.ControllerPlayer, aela.Controller)
	assert.Equal(t, 24, aela.CurrentHP)
	assert.Equal(t, 24, aela.MaxHP)
	assert.Equal(t, 14, aela.Dexterity)
	require.NotNil(t, aela.Position)
	assert.Equal(t, world.Point{X: 0, Y: 0}, *aela.Position)

	corin := sc.Players[1]
	assert.Nil(t, corin.Position, "position is optional")
	assert.Equal(t, "caster", corin.Role)
	assert.Equal(t, 1, corin.Modifier)

	g1 := sc.Monsters[0]
	assert.Equal(t, combat.ControllerMonster, g1.Controller)
	assert.True(t, g1.HasRangedAttack)
	assert.InDelta(t, 24.0, g1.RangedRange, 1e-9)
	require.Len(t, g1.Actions, 1)
	assert.Equal(t, "1d6+2", g1.Actions[0].Damage)

	swamp := sc.Environment[1]
	assert.Equal(t, world.Difficult, swamp.Kind)
	assert.InDelta(t, 3.0, swamp.MovementCostMultiplier, 1e-9)
}

func TestLoad_NameDefaultsToID(t *testing.T) {
	sc, err := scenario.Load([]byte(`
scenario:
  session: s
  players:
    - {id: p1, ac: 10, hp: 5}
  monsters:
    - {id: m1, ac: 10, hp: 5}
`))
	require.NoError(t, err)
	assert.Equal(t, "p1", sc.Players[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", `{{{`},
		{"missing session", `
scenario:
  players: [{id: p, ac: 10, hp: 5}]
  monsters: [{id: m, ac: 10, hp: 5}]
`},
		{"no players", `
scenario:
  session: s
  monsters: [{id: m, ac: 10, hp: 5}]
`},
		{"no monsters", `
scenario:
  session: s
  players: [{id: p, ac: 10, hp: 5}]
`},
		{"duplicate id across rosters", `
scenario:
  session: s
  players: [{id: x, ac: 10, hp: 5}]
  monsters: [{id: x, ac: 10, hp: 5}]
`},
		{"missing id", `
scenario:
  session: s
  players: [{ac: 10, hp: 5}]
  monsters: [{id: m, ac: 10, hp: 5}]
`},
		{"zero hp", `
scenario:
  session: s
  players: [{id: p, ac: 10, hp: 0}]
  monsters: [{id: m, ac: 10, hp: 5}]
`},
		{"bad damage expression", `
scenario:
  session: s
  players: [{id: p, ac: 10, hp: 5, damage: "8+2"}]
  monsters: [{id: m, ac: 10, hp: 5}]
`},
		{"bad action damage", `
scenario:
  session: s
  players: [{id: p, ac: 10, hp: 5}]
  monsters: [{id: m, ac: 10, hp: 5, actions: [{name: claw, damage: "xdy"}]}]
`},
		{"unknown feature kind", `
scenario:
  session: s
  players: [{id: p, ac: 10, hp: 5}]
  monsters: [{id: m, ac: 10, hp: 5}]
  environment: [{id: f, kind: lava, position: {x: 0, y: 0}, radius: 1}]
`},
		{"zero radius feature", `
scenario:
  session: s
  players: [{id: p, ac: 10, hp: 5}]
  monsters: [{id: m, ac: 10, hp: 5}]
  environment: [{id: f, kind: cover, position: {x: 0, y: 0}, radius: 0}]
`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.Load([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := scenario.LoadFile("/does/not/exist.yaml")
	assert.Error(t, err)
}
