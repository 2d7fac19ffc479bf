// Package world models the battlefield: positions and the terrain features
// used for line-of-sight and movement-cost queries.
package world

import "math"

// FeatureKind classifies a terrain feature.
type FeatureKind string

// Recognized terrain feature kinds.
const (
	Cover      FeatureKind = "cover"
	Difficult  FeatureKind = "difficult"
	HighGround FeatureKind = "high_ground"
	Hazard     FeatureKind = "hazard"
)

// Valid reports whether k is one of the recognized feature kinds.
func (k FeatureKind) Valid() bool {
	switch k {
	case Cover, Difficult, HighGround, Hazard:
		return true
	default:
		return false
	}
}

// Point is a 2D battlefield coordinate in grid units (5 ft squares in most
// rulesets, but the engine treats units as opaque).
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance from p to q.
//
// Postcondition: return value >= 0.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Toward returns the point reached by traveling dist from p toward q.
// If p == q there is no direction to travel, so p is returned unchanged.
func (p Point) Toward(q Point, dist float64) Point {
	total := p.DistanceTo(q)
	if total == 0 {
		return p
	}
	t := dist / total
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Feature is a circular terrain feature placed on the battlefield.
type Feature struct {
	ID       string
	Kind     FeatureKind
	Position Point
	Radius   float64
	// CoverBonus is the AC bonus granted by a cover feature. Informational
	// to this engine; consumed by rules layers above it.
	CoverBonus int
	// Concealment marks a cover feature as concealing rather than blocking.
	Concealment bool
	// MovementCostMultiplier divides allowed movement inside a difficult
	// feature. Zero means unset; MovementCostAt applies the default of 2.
	MovementCostMultiplier float64
}

// Contains reports whether pt lies within the feature's radius (circular
// containment, boundary inclusive).
func (f Feature) Contains(pt Point) bool {
	return f.Position.DistanceTo(pt) <= f.Radius
}

// defaultMovementCostMultiplier applies when a difficult feature does not set one.
const defaultMovementCostMultiplier = 2

// costMultiplier returns the effective movement cost multiplier for f.
func (f Feature) costMultiplier() float64 {
	if f.MovementCostMultiplier > 0 {
		return f.MovementCostMultiplier
	}
	return defaultMovementCostMultiplier
}
