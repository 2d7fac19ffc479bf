package combat

import (
	"sort"

	"github.com/kmarsden/gametable/internal/game/dice"
)

// RollInitiative rolls one d20 per combatant, sets Roll/Modifier/Total, and
// returns players and monsters merged into a single turn order sorted by
// Total descending.
//
// Ties resolve through a fixed chain: higher Dexterity, then higher MaxHP,
// then a uniform random shuffle key drawn from src, so full ties never fall
// back to roster order.
//
// Precondition: src must be non-nil; the rosters must be disjoint.
// Postcondition: the result is a permutation of players+monsters; every
// combatant has Total == Roll + Modifier; re-sorting the output by the same
// chain is idempotent.
func RollInitiative(players, monsters []*Combatant, src dice.Source) []*Combatant {
	order := make([]*Combatant, 0, len(players)+len(monsters))
	order = append(order, players...)
	order = append(order, monsters...)

	// Shuffle keys break full ties uniformly; a pre-drawn key per combatant
	// keeps the comparator transitive.
	shuffleKey := make(map[*Combatant]int, len(order))
	for _, c := range order {
		c.Roll = src.Intn(20) + 1
		c.Modifier = c.InitiativeModifier()
		c.Total = c.Roll + c.Modifier
		shuffleKey[c] = src.Intn(1 << 30)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Dexterity != b.Dexterity {
			return a.Dexterity > b.Dexterity
		}
		if a.MaxHP != b.MaxHP {
			return a.MaxHP > b.MaxHP
		}
		return shuffleKey[a] > shuffleKey[b]
	})

	return order
}
