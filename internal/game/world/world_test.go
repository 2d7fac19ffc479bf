package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/kmarsden/gametable/internal/game/world"
)

func TestPoint_DistanceTo(t *testing.T) {
	a := world.Point{X: 0, Y: 0}
	b := world.Point{X: 3, Y: 4}
	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-9)
	assert.InDelta(t, 5.0, b.DistanceTo(a), 1e-9)
	assert.Zero(t, a.DistanceTo(a))
}

func TestPoint_Toward(t *testing.T) {
	a := world.Point{X: 0, Y: 0}
	b := world.Point{X: 10, Y: 0}

	mid := a.Toward(b, 4)
	assert.InDelta(t, 4.0, mid.X, 1e-9)
	assert.InDelta(t, 0.0, mid.Y, 1e-9)

	// Zero distance between the points has no direction; stay put.
	assert.Equal(t, a, a.Toward(a, 5))
}

func TestFeature_Contains(t *testing.T) {
	f := world.Feature{Kind: world.Difficult, Position: world.Point{X: 5, Y: 5}, Radius: 3}
	assert.True(t, f.Contains(world.Point{X: 5, Y: 5}))
	assert.True(t, f.Contains(world.Point{X: 8, Y: 5}), "boundary is inclusive")
	assert.False(t, f.Contains(world.Point{X: 9, Y: 5}))
}

func TestFeatureKind_Valid(t *testing.T) {
	for _, k := range []world.FeatureKind{world.Cover, world.Difficult, world.HighGround, world.Hazard} {
		assert.True(t, k.Valid(), "kind %q", k)
	}
	assert.False(t, world.FeatureKind("lava").Valid())
}

func TestObstructed_CoverBlocksSegment(t *testing.T) {
	wall := world.Feature{ID: "wall", Kind: world.Cover, Position: world.Point{X: 5, Y: 0}, Radius: 1}

	// Segment passes straight through the feature center.
	assert.True(t, world.Obstructed(world.Point{X: 0, Y: 0}, world.Point{X: 10, Y: 0}, []world.Feature{wall}))

	// Segment passes well clear of the feature.
	assert.False(t, world.Obstructed(world.Point{X: 0, Y: 5}, world.Point{X: 10, Y: 5}, []world.Feature{wall}))

	// Feature beyond the segment's far endpoint does not obstruct; the
	// projection parameter is clamped to the segment.
	far := world.Feature{ID: "far", Kind: world.Cover, Position: world.Point{X: 20, Y: 0}, Radius: 1}
	assert.False(t, world.Obstructed(world.Point{X: 0, Y: 0}, world.Point{X: 10, Y: 0}, []world.Feature{far}))
}

func TestObstructed_NonCoverIgnored(t *testing.T) {
	bog := world.Feature{Kind: world.Difficult, Position: world.Point{X: 5, Y: 0}, Radius: 2}
	assert.False(t, world.Obstructed(world.Point{X: 0, Y: 0}, world.Point{X: 10, Y: 0}, []world.Feature{bog}))
}

func TestObstructed_DegenerateSegment(t *testing.T) {
	wall := world.Feature{Kind: world.Cover, Position: world.Point{X: 0, Y: 0}, Radius: 1}
	p := world.Point{X: 0.5, Y: 0}
	assert.True(t, world.Obstructed(p, p, []world.Feature{wall}))
}

func TestMovementCostAt(t *testing.T) {
	features := []world.Feature{
		{Kind: world.Difficult, Position: world.Point{X: 0, Y: 0}, Radius: 2},
		{Kind: world.Difficult, Position: world.Point{X: 10, Y: 0}, Radius: 2, MovementCostMultiplier: 3},
	}

	assert.InDelta(t, 2.0, world.MovementCostAt(world.Point{X: 1, Y: 0}, features), 1e-9, "default multiplier is 2")
	assert.InDelta(t, 3.0, world.MovementCostAt(world.Point{X: 10, Y: 1}, features), 1e-9)
	assert.InDelta(t, 1.0, world.MovementCostAt(world.Point{X: 5, Y: 5}, features), 1e-9, "open ground costs 1")
}

func TestFeaturesAt(t *testing.T) {
	features := []world.Feature{
		{ID: "pit", Kind: world.Hazard, Position: world.Point{X: 0, Y: 0}, Radius: 1},
		{ID: "hill", Kind: world.HighGround, Position: world.Point{X: 0, Y: 0}, Radius: 4},
	}
	at := world.FeaturesAt(world.Point{X: 0, Y: 2}, features)
	if assert.Len(t, at, 1) {
		assert.Equal(t, "hill", at[0].ID)
	}
}

// TestObstructed_Property_SegmentThroughCenter: any segment whose endpoints
// straddle a cover feature's center on the x axis is obstructed.
func TestObstructed_Property_SegmentThroughCenter(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cx := rapid.Float64Range(-50, 50).Draw(rt, "cx")
		cy := rapid.Float64Range(-50, 50).Draw(rt, "cy")
		r := rapid.Float64Range(0.1, 5).Draw(rt, "r")
		span := rapid.Float64Range(1, 50).Draw(rt, "span")

		f := world.Feature{Kind: world.Cover, Position: world.Point{X: cx, Y: cy}, Radius: r}
		a := world.Point{X: cx - span, Y: cy}
		b := world.Point{X: cx + span, Y: cy}
		assert.True(rt, world.Obstructed(a, b, []world.Feature{f}))
	})
}
