package world

// segmentDistance returns the minimum distance from pt to the segment a-b,
// clamping the projection parameter to [0, 1] so endpoints are handled.
func segmentDistance(pt, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a.DistanceTo(pt)
	}
	t := ((pt.X-a.X)*dx + (pt.Y-a.Y)*dy) / lenSq
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	nearest := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return nearest.DistanceTo(pt)
}

// Obstructed reports whether the straight segment from a to b passes through
// any cover feature in features. A cover feature obstructs when its center is
// within its radius of the segment.
func Obstructed(a, b Point, features []Feature) bool {
	for _, f := range features {
		if f.Kind != Cover {
			continue
		}
		if segmentDistance(f.Position, a, b) <= f.Radius {
			return true
		}
	}
	return false
}

// MovementCostAt returns the movement cost divisor for a destination point:
// the multiplier of the first difficult feature containing pt, or 1 when the
// point is on open ground.
//
// Postcondition: return value >= 1.
func MovementCostAt(pt Point, features []Feature) float64 {
	for _, f := range features {
		if f.Kind == Difficult && f.Contains(pt) {
			return f.costMultiplier()
		}
	}
	return 1
}

// FeaturesAt returns every feature containing pt, in declaration order.
// Hazard and high-ground effects are applied by rules layers above this
// engine; this query is their lookup primitive.
func FeaturesAt(pt Point, features []Feature) []Feature {
	var out []Feature
	for _, f := range features {
		if f.Contains(pt) {
			out = append(out, f)
		}
	}
	return out
}
