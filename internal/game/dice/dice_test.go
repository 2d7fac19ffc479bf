package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/kmarsden/gametable/internal/game/dice"
)

// fixedSource always returns val for any Intn call.
type fixedSource struct{ val int }

func (f fixedSource) Intn(_ int) int { return f.val }

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Rolls: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total(), "Total() must equal sum(Rolls)+Modifier")
}

func TestRollResult_Total_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rolls := rapid.SliceOf(rapid.IntRange(1, 20)).Draw(rt, "rolls")
		modifier := rapid.Int().Draw(rt, "modifier")

		r := dice.RollResult{Expression: "NdM+K", Rolls: rolls, Modifier: modifier}

		expected := modifier
		for _, d := range rolls {
			expected += d
		}
		assert.Equal(rt, expected, r.Total())
	})
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Rolls: []int{4, 5}, Modifier: 3}
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestParse_ValidForms(t *testing.T) {
	tests := []struct {
		expr  string
		count int
		sides int
		mod   int
	}{
		{"d20", 1, 20, 0},
		{"1d6", 1, 6, 0},
		{"2d6+3", 2, 6, 3},
		{"4d8-2", 4, 8, -2},
		{"10d10+0", 10, 10, 0},
		{"1D12+5", 1, 12, 5}, // case-insensitive
	}
	for _, tc := range tests {
		e, err := dice.Parse(tc.expr)
		require.NoError(t, err, "expr=%q", tc.expr)
		assert.Equal(t, tc.count, e.Count, "expr=%q", tc.expr)
		assert.Equal(t, tc.sides, e.Sides, "expr=%q", tc.expr)
		assert.Equal(t, tc.mod, e.Modifier, "expr=%q", tc.expr)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, expr := range []string{"", "6", "2x6", "0d6", "-1d6", "2d1", "2d", "2d6+", "ad6", "2dz+1"} {
		_, err := dice.Parse(expr)
		assert.Error(t, err, "expr=%q must not parse", expr)
	}
}

func TestParse_Property_RoundTripShape(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		sides := rapid.IntRange(2, 100).Draw(rt, "sides")
		mod := rapid.IntRange(-50, 50).Draw(rt, "mod")

		expr := dice.Expression{Count: count, Sides: sides, Modifier: mod}
		result := dice.Roll(expr, dice.NewCryptoSource())

		require.Len(rt, result.Rolls, count)
		for _, d := range result.Rolls {
			assert.GreaterOrEqual(rt, d, 1)
			assert.LessOrEqual(rt, d, sides)
		}
		assert.Equal(rt, mod, result.Modifier)
	})
}

func TestRoll_UsesSource(t *testing.T) {
	result := dice.Roll(dice.MustParse("3d6+2"), fixedSource{val: 3})
	assert.Equal(t, []int{4, 4, 4}, result.Rolls)
	assert.Equal(t, 14, result.Total())
}

func TestEvaluate_DegradesOnMalformedInput(t *testing.T) {
	result := dice.Evaluate("not-dice", dice.NewCryptoSource())
	assert.True(t, result.Empty(), "malformed expression must degrade to empty")
	assert.Equal(t, 0, result.Total())
	assert.Empty(t, result.Rolls)
}

func TestEvaluate_ValidInputNotEmpty(t *testing.T) {
	result := dice.Evaluate("1d6+3", fixedSource{val: 0})
	assert.False(t, result.Empty())
	assert.Equal(t, 4, result.Total())
}

func TestLoggedRoller_Evaluate(t *testing.T) {
	roller := dice.NewLoggedRoller(fixedSource{val: 5}, zap.NewNop())

	result := roller.Evaluate("2d6+1")
	assert.Equal(t, 13, result.Total())

	degraded := roller.Evaluate("garbage")
	assert.True(t, degraded.Empty())
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

// TestCryptoSource_Distribution is a coarse uniformity check: over many d6
// rolls every face must appear a plausible number of times.
func TestCryptoSource_Distribution(t *testing.T) {
	src := dice.NewCryptoSource()
	counts := make([]int, 6)
	const trials = 6000
	for i := 0; i < trials; i++ {
		counts[src.Intn(6)]++
	}
	for face, n := range counts {
		// Expected 1000 per face; allow a wide statistical margin.
		assert.Greater(t, n, 700, "face %d rolled %d times", face+1, n)
		assert.Less(t, n, 1300, "face %d rolled %d times", face+1, n)
	}
}
