package combat

import "math"

// UpdateThreat adds amount to actorID's accumulated threat score. Threat is
// additive and unbounded, persists for the encounter, and never decays on its
// own; callers decide when, if ever, to reset it.
func UpdateThreat(s *State, actorID string, amount float64) {
	if s.ThreatScores == nil {
		s.ThreatScores = make(map[string]float64)
	}
	s.ThreatScores[actorID] += amount
}

// Threat returns actorID's accumulated threat score, or 0.
func Threat(s *State, actorID string) float64 {
	return s.ThreatScores[actorID]
}

// flankingCosThreshold is cos(120°); a pair of attackers whose
// vectors-to-target diverge by more than ~120° flank the target.
const flankingCosThreshold = -0.5

// IsFlanked reports whether the combatant with targetID is flanked: at least
// two other monster-controlled combatants with known positions stand such
// that, for some pair, the angle between their vectors to the target exceeds
// ~120°. Fewer than two positioned attackers never flank.
func IsFlanked(s *State, targetID string) bool {
	target := s.Combatant(targetID)
	if target == nil || target.Position == nil {
		return false
	}

	type vec struct{ x, y float64 }
	var attackers []vec
	for _, c := range s.Initiatives {
		if c.ID == targetID || !c.IsMonster() || !c.IsAlive() || c.Position == nil {
			continue
		}
		attackers = append(attackers, vec{
			x: c.Position.X - target.Position.X,
			y: c.Position.Y - target.Position.Y,
		})
	}
	if len(attackers) < 2 {
		return false
	}

	for i := 0; i < len(attackers); i++ {
		for j := i + 1; j < len(attackers); j++ {
			a, b := attackers[i], attackers[j]
			magA := math.Hypot(a.x, a.y)
			magB := math.Hypot(b.x, b.y)
			if magA == 0 || magB == 0 {
				continue
			}
			cos := (a.x*b.x + a.y*b.y) / (magA * magB)
			if cos < flankingCosThreshold {
				return true
			}
		}
	}
	return false
}
