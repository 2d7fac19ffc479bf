package combat

import (
	"fmt"

	"github.com/kmarsden/gametable/internal/game/world"
)

// ApplyMove applies a move action to the encounter state and records it in
// the history.
//
// The terrain-adjusted allowance (requested distance divided by the difficult
// terrain multiplier at the destination) is computed and recorded on the
// history event, but the actor is placed at the full requested destination
// regardless. Terrain cost is informational here; clamping movement to it is
// a rules-layer decision.
//
// Postcondition: returns the actor's new position, or nil when the action is
// not a move or the actor ID is unknown; unknown actors mutate nothing.
func ApplyMove(s *State, action Action) *world.Point {
	if action.Type != ActionMove {
		return nil
	}
	actor := s.Combatant(action.ActorID)
	if actor == nil {
		return nil
	}

	allowed := action.MoveDistance
	if cost := world.MovementCostAt(action.To, s.Environment); cost > 1 {
		allowed = action.MoveDistance / cost
	}

	dest := action.To
	actor.Position = &dest

	s.Record(Event{
		Action:          action,
		AllowedDistance: allowed,
		Note: fmt.Sprintf("%s moves to (%.1f, %.1f) toward %s",
			actor.Name, dest.X, dest.Y, action.Toward),
	})
	return actor.Position
}
