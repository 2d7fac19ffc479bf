package combat

import "github.com/kmarsden/gametable/internal/game/dice"

// AttackResult holds the full breakdown of a single resolved attack roll.
type AttackResult struct {
	// D20 is the raw attack die before modifiers.
	D20 int
	// AttackTotal is D20 + attack bonus.
	AttackTotal int
	// IsCritical is true on a natural 20, which always hits.
	IsCritical bool
	// IsFumble is true on a natural 1, which always misses, even past the
	// critical rule.
	IsFumble bool
	// Hit is the final hit determination.
	Hit bool
	// DamageRolls holds every damage die rolled; on a critical the dice are
	// rolled twice and both sets appear here.
	DamageRolls []int
	// DamageModifier is the flat damage modifier, applied exactly once.
	DamageModifier int
	// DamageTotal is sum(DamageRolls) + DamageModifier; 0 on a miss or when
	// the damage expression is absent or malformed.
	DamageTotal int
}

// ResolveAttack rolls a single attack against targetAC and, on a hit,
// evaluates damageExpr. A natural 20 is a critical and hits regardless of AC;
// a natural 1 is a fumble and misses regardless of everything else. Critical
// hits roll the damage dice a second, independent time and concatenate the
// two sets, but apply the flat modifier only once.
//
// A malformed or empty damageExpr degrades to zero damage; this function
// never fails.
//
// Precondition: src must be non-nil.
// Postcondition: DamageTotal == sum(DamageRolls) + DamageModifier on a hit
// with valid damage, 0 otherwise.
func ResolveAttack(attackBonus, targetAC int, damageExpr string, src dice.Source) AttackResult {
	d20 := src.Intn(20) + 1

	result := AttackResult{
		D20:         d20,
		AttackTotal: d20 + attackBonus,
		IsCritical:  d20 == 20,
		IsFumble:    d20 == 1,
	}
	result.Hit = !result.IsFumble && (result.IsCritical || result.AttackTotal >= targetAC)

	if !result.Hit || damageExpr == "" {
		return result
	}

	expr, err := dice.Parse(damageExpr)
	if err != nil {
		// Malformed damage degrades to zero; the hit still lands.
		return result
	}

	damage := dice.Roll(expr, src)
	result.DamageRolls = damage.Rolls
	result.DamageModifier = damage.Modifier
	if result.IsCritical {
		extra := dice.Roll(expr, src)
		result.DamageRolls = append(result.DamageRolls, extra.Rolls...)
	}

	result.DamageTotal = result.DamageModifier
	for _, d := range result.DamageRolls {
		result.DamageTotal += d
	}
	return result
}
