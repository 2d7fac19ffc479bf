// Package ai implements the monster decision engine: rules-driven target
// selection and movement for AI-controlled combatants.
package ai

import (
	"sort"

	"github.com/kmarsden/gametable/internal/game/combat"
	"github.com/kmarsden/gametable/internal/game/world"
)

// roleCaster is the role tag that raises a target's priority.
const roleCaster = "caster"

// candidate pairs a potential target with its distance from the deciding
// monster. Distance is meaningful only when both sides have positions.
type candidate struct {
	target   *combat.Combatant
	distance float64
}

// lowestHP returns the candidate target with the lowest CurrentHP, ties
// broken by initiative order.
func lowestHP(targets []*combat.Combatant) *combat.Combatant {
	best := targets[0]
	for _, t := range targets[1:] {
		if t.CurrentHP < best.CurrentHP {
			best = t
		}
	}
	return best
}

// sortMelee orders melee-reachable candidates by: threat desc, flanked desc,
// caster role desc, current HP asc.
func sortMelee(s *combat.State, cands []candidate) {
	flanked := make(map[string]bool, len(cands))
	for _, c := range cands {
		flanked[c.target.ID] = combat.IsFlanked(s, c.target.ID)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].target, cands[j].target
		if ta, tb := combat.Threat(s, a.ID), combat.Threat(s, b.ID); ta != tb {
			return ta > tb
		}
		if fa, fb := flanked[a.ID], flanked[b.ID]; fa != fb {
			return fa
		}
		if ca, cb := a.Role == roleCaster, b.Role == roleCaster; ca != cb {
			return ca
		}
		return a.CurrentHP < b.CurrentHP
	})
}

// sortRanged orders ranged-reachable candidates by: threat desc, caster role
// desc, current HP asc.
func sortRanged(s *combat.State, cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].target, cands[j].target
		if ta, tb := combat.Threat(s, a.ID), combat.Threat(s, b.ID); ta != tb {
			return ta > tb
		}
		if ca, cb := a.Role == roleCaster, b.Role == roleCaster; ca != cb {
			return ca
		}
		return a.CurrentHP < b.CurrentHP
	})
}

// pickRangedTarget returns the first sorted candidate whose line of sight
// from the monster is clear of cover. When every line is obstructed the
// top-sorted candidate is used anyway.
func pickRangedTarget(s *combat.State, monster *combat.Combatant, cands []candidate) *combat.Combatant {
	for _, c := range cands {
		if !world.Obstructed(*monster.Position, *c.target.Position, s.Environment) {
			return c.target
		}
	}
	return cands[0].target
}
