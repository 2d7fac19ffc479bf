// Package combat implements the turn-based combat resolution engine:
// initiative, attack resolution, threat tracking, and the turn sequencer.
package combat

import "github.com/kmarsden/gametable/internal/game/world"

// Controller identifies who drives a combatant's decisions.
type Controller string

// Recognized controllers.
const (
	ControllerPlayer  Controller = "player"
	ControllerMonster Controller = "monster"
	ControllerDM      Controller = "dm"
)

// Valid reports whether c is one of the recognized controllers.
func (c Controller) Valid() bool {
	switch c {
	case ControllerPlayer, ControllerMonster, ControllerDM:
		return true
	default:
		return false
	}
}

// MonsterAction is one entry from a monster's stat-block action list.
type MonsterAction struct {
	Name        string
	AttackBonus int
	Damage      string // dice expression, e.g. "1d8+2"
}

// Combatant is one participant in an encounter, stable for its duration.
//
// Invariant: 0 <= CurrentHP <= MaxHP; Total == Roll + Modifier.
type Combatant struct {
	ID         string
	Controller Controller
	Name       string

	// Roll is the raw d20 initiative roll; Modifier the initiative bonus;
	// Total is always Roll + Modifier, set by RollInitiative.
	Roll     int
	Modifier int
	Total    int

	AC        int
	CurrentHP int
	MaxHP     int

	// Dexterity is the secondary initiative tie-break stat; 0 when unknown.
	// When Modifier is unset (zero) and Dexterity is set, the initiative
	// modifier derives from it as floor((dex-10)/2).
	Dexterity int

	// Position is the battlefield coordinate; nil when the combatant has no
	// known position (theatre-of-the-mind encounters).
	Position *world.Point
	// Reach is the melee threat range; 0 means the default of 5.
	Reach float64
	// Speed is the per-turn movement allowance; 0 means the default of 6.
	Speed float64
	// HasRangedAttack marks the combatant as able to attack at range.
	HasRangedAttack bool
	// RangedRange is the maximum ranged attack distance; 0 means the
	// default of 30 when HasRangedAttack is set.
	RangedRange float64

	// AttackBonus is the melee attack bonus; default 0.
	AttackBonus int
	// RangedAttackBonus is the ranged attack bonus; 0 falls back to AttackBonus.
	RangedAttackBonus int
	// PrimaryDamageExpr is the melee damage expression. When empty the
	// fallback chain is Actions[0].Damage, then "1d6".
	PrimaryDamageExpr string
	// RangedDamageExpr is the ranged damage expression; empty falls back to
	// the melee chain.
	RangedDamageExpr string
	// Actions is the raw stat-block action list.
	Actions []MonsterAction

	// Role tags the combatant's tactical role; "caster" raises its
	// targeting priority for monsters.
	Role string
}

// Default field values applied by the accessor methods below.
const (
	DefaultReach       = 5.0
	DefaultSpeed       = 6.0
	DefaultRangedRange = 30.0
	DefaultDamageExpr  = "1d6"
)

// IsAlive reports whether the combatant has hit points remaining.
func (c *Combatant) IsAlive() bool { return c.CurrentHP > 0 }

// IsPlayer reports whether this combatant is player-controlled.
func (c *Combatant) IsPlayer() bool { return c.Controller == ControllerPlayer }

// IsMonster reports whether this combatant is AI-controlled.
func (c *Combatant) IsMonster() bool { return c.Controller == ControllerMonster }

// ApplyDamage reduces CurrentHP by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHP >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// EffectiveReach returns Reach or the default of 5.
func (c *Combatant) EffectiveReach() float64 {
	if c.Reach > 0 {
		return c.Reach
	}
	return DefaultReach
}

// EffectiveSpeed returns Speed or the default of 6.
func (c *Combatant) EffectiveSpeed() float64 {
	if c.Speed > 0 {
		return c.Speed
	}
	return DefaultSpeed
}

// EffectiveRangedRange returns RangedRange or the default of 30.
// Only meaningful when HasRangedAttack is set.
func (c *Combatant) EffectiveRangedRange() float64 {
	if c.RangedRange > 0 {
		return c.RangedRange
	}
	return DefaultRangedRange
}

// MeleeDamageExpr resolves the melee damage expression through the fallback
// chain: PrimaryDamageExpr, then Actions[0].Damage, then "1d6".
func (c *Combatant) MeleeDamageExpr() string {
	if c.PrimaryDamageExpr != "" {
		return c.PrimaryDamageExpr
	}
	if len(c.Actions) > 0 && c.Actions[0].Damage != "" {
		return c.Actions[0].Damage
	}
	return DefaultDamageExpr
}

// RangedDamage resolves the ranged damage expression, falling back to the
// melee chain when no ranged-specific expression is set.
func (c *Combatant) RangedDamage() string {
	if c.RangedDamageExpr != "" {
		return c.RangedDamageExpr
	}
	return c.MeleeDamageExpr()
}

// RangedBonus resolves the ranged attack bonus, falling back to the melee
// attack bonus when unset.
func (c *Combatant) RangedBonus() int {
	if c.RangedAttackBonus != 0 {
		return c.RangedAttackBonus
	}
	return c.AttackBonus
}

// InitiativeModifier returns the effective initiative modifier: the explicit
// Modifier when set, otherwise floor((Dexterity-10)/2) when Dexterity is set,
// otherwise 0.
func (c *Combatant) InitiativeModifier() int {
	if c.Modifier != 0 {
		return c.Modifier
	}
	if c.Dexterity != 0 {
		return AbilityMod(c.Dexterity)
	}
	return 0
}

// AbilityMod computes the standard ability modifier using floor division:
// floor((score - 10) / 2).
func AbilityMod(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}
