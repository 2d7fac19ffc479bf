// Package dice provides the randomness abstraction and dice-expression
// evaluation used by the gametable combat engine.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Rolls) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d6+3"
	Rolls      []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == sum(r.Rolls) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Rolls {
		total += d
	}
	return total
}

// Empty reports whether r carries no rolls and no modifier — the degraded
// result Evaluate produces for malformed input.
func (r RollResult) Empty() bool {
	return len(r.Rolls) == 0 && r.Modifier == 0
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
func (r RollResult) String() string {
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Rolls, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
