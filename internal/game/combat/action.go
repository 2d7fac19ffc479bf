package combat

import "github.com/kmarsden/gametable/internal/game/world"

// ActionType identifies what a combatant does with its turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; intentionally invalid
	ActionAttack
	ActionMove
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionMove:
		return "move"
	default:
		return "unknown"
	}
}

// Action describes one resolved or planned combat action. Attack fields are
// set for ActionAttack, movement fields for ActionMove.
type Action struct {
	Type    ActionType
	ActorID string

	// Attack fields.
	TargetID    string
	Ranged      bool
	AttackBonus int
	DamageExpr  string

	// Movement fields.
	To world.Point
	// Toward is the ID of the target the mover is closing on.
	Toward string
	// MoveDistance is the distance the actor is allowed to cover this turn,
	// before terrain adjustment.
	MoveDistance float64
}

// Event is one entry in the encounter's append-only action history.
type Event struct {
	// ID is a unique event identifier, assigned by State.Record.
	ID string
	// Round is the round the event occurred in, assigned by State.Record.
	Round  int
	Action Action
	// Attack holds the roll breakdown for attack actions; nil otherwise.
	Attack *AttackResult
	// AllowedDistance is the terrain-adjusted movement allowance recorded
	// for move actions; see ApplyMove.
	AllowedDistance float64
	// Note carries a short human-readable description of the outcome.
	Note string
}
