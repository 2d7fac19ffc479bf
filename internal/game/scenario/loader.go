// Package scenario loads encounter definitions — rosters and battlefield
// features — from YAML files.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kmarsden/gametable/internal/game/combat"
	"github.com/kmarsden/gametable/internal/game/dice"
	"github.com/kmarsden/gametable/internal/game/world"
)

// Scenario is a fully converted encounter definition ready to seed combat
// state: disjoint player and monster rosters plus the battlefield features.
type Scenario struct {
	SessionID   string
	Players     []*combat.Combatant
	Monsters    []*combat.Combatant
	Environment []world.Feature
}

// yamlScenarioFile wraps the YAML top-level key.
type yamlScenarioFile struct {
	Scenario yamlScenario `yaml:"scenario"`
}

type yamlScenario struct {
	Session     string          `yaml:"session"`
	Players     []yamlCombatant `yaml:"players"`
	Monsters    []yamlCombatant `yaml:"monsters"`
	Environment []yamlFeature   `yaml:"environment"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlCombatant struct {
	ID                string       `yaml:"id"`
	Name              string       `yaml:"name"`
	AC                int          `yaml:"ac"`
	HP                int          `yaml:"hp"`
	InitiativeBonus   int          `yaml:"initiative_bonus"`
	Dexterity         int          `yaml:"dexterity"`
	Position          *yamlPoint   `yaml:"position"`
	Reach             float64      `yaml:"reach"`
	Speed             float64      `yaml:"speed"`
	Ranged            bool         `yaml:"ranged"`
	RangedRange       float64      `yaml:"ranged_range"`
	AttackBonus       int          `yaml:"attack_bonus"`
	RangedAttackBonus int          `yaml:"ranged_attack_bonus"`
	Damage            string       `yaml:"damage"`
	RangedDamage      string       `yaml:"ranged_damage"`
	Role              string       `yaml:"role"`
	Actions           []yamlAction `yaml:"actions"`
}

type yamlAction struct {
	Name        string `yaml:"name"`
	AttackBonus int    `yaml:"attack_bonus"`
	Damage      string `yaml:"damage"`
}

type yamlFeature struct {
	ID          string    `yaml:"id"`
	Kind        string    `yaml:"kind"`
	Position    yamlPoint `yaml:"position"`
	Radius      float64   `yaml:"radius"`
	CoverBonus  int       `yaml:"cover_bonus"`
	Concealment bool      `yaml:"concealment"`
	MoveCost    float64   `yaml:"movement_cost_multiplier"`
}

// LoadFile reads and validates a scenario YAML file.
//
// Postcondition: returns a validated Scenario or a non-nil error.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}
	return Load(data)
}

// Load parses and validates a scenario from YAML bytes.
//
// Postcondition: the returned scenario has a non-empty session ID, at least
// one combatant per roster, unique combatant IDs across both rosters,
// parseable damage expressions, and recognized feature kinds.
func Load(data []byte) (*Scenario, error) {
	var file yamlScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	ys := file.Scenario

	if ys.Session == "" {
		return nil, fmt.Errorf("scenario: session must not be empty")
	}
	if len(ys.Players) == 0 {
		return nil, fmt.Errorf("scenario %q: at least one player is required", ys.Session)
	}
	if len(ys.Monsters) == 0 {
		return nil, fmt.Errorf("scenario %q: at least one monster is required", ys.Session)
	}

	sc := &Scenario{SessionID: ys.Session}
	ids := make(map[string]struct{}, len(ys.Players)+len(ys.Monsters))

	for _, yc := range ys.Players {
		c, err := convertCombatant(yc, combat.ControllerPlayer, ids)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", ys.Session, err)
		}
		sc.Players = append(sc.Players, c)
	}
	for _, yc := range ys.Monsters {
		c, err := convertCombatant(yc, combat.ControllerMonster, ids)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", ys.Session, err)
		}
		sc.Monsters = append(sc.Monsters, c)
	}

	for _, yf := range ys.Environment {
		f, err := convertFeature(yf)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", ys.Session, err)
		}
		sc.Environment = append(sc.Environment, f)
	}

	return sc, nil
}

// convertCombatant validates one roster entry and converts it to a Combatant.
func convertCombatant(yc yamlCombatant, controller combat.Controller, ids map[string]struct{}) (*combat.Combatant, error) {
	if yc.ID == "" {
		return nil, fmt.Errorf("combatant missing id")
	}
	if _, dup := ids[yc.ID]; dup {
		return nil, fmt.Errorf("duplicate combatant id %q", yc.ID)
	}
	ids[yc.ID] = struct{}{}
	if yc.HP <= 0 {
		return nil, fmt.Errorf("combatant %q: hp must be > 0", yc.ID)
	}
	for _, expr := range []string{yc.Damage, yc.RangedDamage} {
		if expr == "" {
			continue
		}
		if _, err := dice.Parse(expr); err != nil {
			return nil, fmt.Errorf("combatant %q: %w", yc.ID, err)
		}
	}

	c := &combat.Combatant{
		ID:                yc.ID,
		Controller:        controller,
		Name:              yc.Name,
		AC:                yc.AC,
		CurrentHP:         yc.HP,
		MaxHP:             yc.HP,
		Modifier:          yc.InitiativeBonus,
		Dexterity:         yc.Dexterity,
		Reach:             yc.Reach,
		Speed:             yc.Speed,
		HasRangedAttack:   yc.Ranged,
		RangedRange:       yc.RangedRange,
		AttackBonus:       yc.AttackBonus,
		RangedAttackBonus: yc.RangedAttackBonus,
		PrimaryDamageExpr: yc.Damage,
		RangedDamageExpr:  yc.RangedDamage,
		Role:              yc.Role,
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	if yc.Position != nil {
		c.Position = &world.Point{X: yc.Position.X, Y: yc.Position.Y}
	}
	for _, ya := range yc.Actions {
		if ya.Damage != "" {
			if _, err := dice.Parse(ya.Damage); err != nil {
				return nil, fmt.Errorf("combatant %q action %q: %w", yc.ID, ya.Name, err)
			}
		}
		c.Actions = append(c.Actions, combat.MonsterAction{
			Name:        ya.Name,
			AttackBonus: ya.AttackBonus,
			Damage:      ya.Damage,
		})
	}
	return c, nil
}

// convertFeature validates one environment entry and converts it to a Feature.
func convertFeature(yf yamlFeature) (world.Feature, error) {
	kind := world.FeatureKind(yf.Kind)
	if !kind.Valid() {
		return world.Feature{}, fmt.Errorf("feature %q: unknown kind %q", yf.ID, yf.Kind)
	}
	if yf.Radius <= 0 {
		return world.Feature{}, fmt.Errorf("feature %q: radius must be > 0", yf.ID)
	}
	return world.Feature{
		ID:                     yf.ID,
		Kind:                   kind,
		Position:               world.Point{X: yf.Position.X, Y: yf.Position.Y},
		Radius:                 yf.Radius,
		CoverBonus:             yf.CoverBonus,
		Concealment:            yf.Concealment,
		MovementCostMultiplier: yf.MoveCost,
	}, nil
}
