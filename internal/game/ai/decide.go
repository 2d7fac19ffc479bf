package ai

import (
	"github.com/kmarsden/gametable/internal/game/combat"
)

// DecideMonsterActions chooses actions for up to maxActions monster-controlled
// combatants, scanned in initiative order starting at the current turn pointer
// and wrapping. The decision is deterministic given the state: the only
// randomness in a monster turn lives downstream, in the dice rolled by
// whichever resolver executes the chosen action.
//
// Every decision is computed against the state as given; an earlier monster's
// planned move in the same pass does not shift later decisions.
//
// Postcondition: returns at most maxActions actions; empty when the
// initiative list is empty, maxActions <= 0, or no monster has a living
// player target.
func DecideMonsterActions(s *combat.State, maxActions int) []combat.Action {
	var actions []combat.Action
	n := len(s.Initiatives)
	if n == 0 || maxActions <= 0 {
		return actions
	}

	for offset := 0; offset < n && len(actions) < maxActions; offset++ {
		monster := s.Initiatives[(s.TurnIndex+offset)%n]
		if !monster.IsMonster() || !monster.IsAlive() {
			continue
		}
		if action, ok := decideOne(s, monster); ok {
			actions = append(actions, action)
		}
	}
	return actions
}

// decideOne picks one action for a single monster, or reports false when it
// has nothing to act against.
func decideOne(s *combat.State, monster *combat.Combatant) (combat.Action, bool) {
	targets := s.LivingPlayers()
	if len(targets) == 0 {
		return combat.Action{}, false
	}

	// Positionless battlefield: fall back to the legacy heuristic of a melee
	// attack against the lowest-HP target. The same applies when the monster
	// itself has no position, since no distance can be computed (see
	// DESIGN.md on partially positioned rosters).
	positioned := positionedCandidates(monster, targets)
	if len(positioned) == 0 {
		return meleeAttack(monster, lowestHP(targets)), true
	}

	var melee, ranged []candidate
	for _, c := range positioned {
		if c.distance <= monster.EffectiveReach() {
			melee = append(melee, c)
		} else if monster.HasRangedAttack && c.distance <= monster.EffectiveRangedRange() {
			ranged = append(ranged, c)
		}
	}

	if len(melee) > 0 {
		sortMelee(s, melee)
		return meleeAttack(monster, melee[0].target), true
	}

	if len(ranged) > 0 {
		sortRanged(s, ranged)
		target := pickRangedTarget(s, monster, ranged)
		return combat.Action{
			Type:        combat.ActionAttack,
			ActorID:     monster.ID,
			TargetID:    target.ID,
			Ranged:      true,
			AttackBonus: monster.RangedBonus(),
			DamageExpr:  monster.RangedDamage(),
		}, true
	}

	// Nothing in range: close on the nearest target. The destination is the
	// point a full move (speed) of the way toward the target, while the
	// reported allowance stops at reach.
	nearest := positioned[0]
	for _, c := range positioned[1:] {
		if c.distance < nearest.distance {
			nearest = c
		}
	}
	moveDistance := nearest.distance - monster.EffectiveReach()
	if moveDistance < 0 {
		moveDistance = 0
	}
	if speed := monster.EffectiveSpeed(); moveDistance > speed {
		moveDistance = speed
	}
	return combat.Action{
		Type:         combat.ActionMove,
		ActorID:      monster.ID,
		To:           monster.Position.Toward(*nearest.target.Position, monster.EffectiveSpeed()),
		Toward:       nearest.target.ID,
		MoveDistance: moveDistance,
	}, true
}

// positionedCandidates returns the targets both sides can measure a distance
// to: the monster and the target each have a known position.
func positionedCandidates(monster *combat.Combatant, targets []*combat.Combatant) []candidate {
	if monster.Position == nil {
		return nil
	}
	var out []candidate
	for _, t := range targets {
		if t.Position == nil {
			continue
		}
		out = append(out, candidate{target: t, distance: monster.Position.DistanceTo(*t.Position)})
	}
	return out
}

// meleeAttack builds a melee attack action with the monster's melee stats and
// damage fallback chain.
func meleeAttack(monster, target *combat.Combatant) combat.Action {
	return combat.Action{
		Type:        combat.ActionAttack,
		ActorID:     monster.ID,
		TargetID:    target.ID,
		AttackBonus: monster.AttackBonus,
		DamageExpr:  monster.MeleeDamageExpr(),
	}
}
