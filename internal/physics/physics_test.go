package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestNormalizeZeroVector(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	n := Vec2{X: 3, Y: 4}.Normalize()
	assert.InDelta(t, 0.6, n.X, eps)
	assert.InDelta(t, 0.8, n.Y, eps)
}

func TestShortestAngleBetween(t *testing.T) {
	tests := []struct {
		name   string
		a1, a2 float64
		want   float64
	}{
		{"same", 1, 1, 0},
		{"quarter ccw", 0, math.Pi / 2, math.Pi / 2},
		{"quarter cw", 0, -math.Pi / 2, -math.Pi / 2},
		{"wraps forward", 3 * math.Pi / 4, -3 * math.Pi / 4, math.Pi / 2},
		{"wraps backward", -3 * math.Pi / 4, 3 * math.Pi / 4, -math.Pi / 2},
		{"half turn is positive", 0, math.Pi, math.Pi},
		{"negative half turn is positive", math.Pi, 0, math.Pi},
		{"multiple turns", 0, 5 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ShortestAngleBetween(tt.a1, tt.a2), eps)
		})
	}
}

func TestShortestAngleRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		a := (r.Float64() - 0.5) * 40
		b := (r.Float64() - 0.5) * 40
		d := ShortestAngleBetween(a, b)
		require.Greater(t, d, -math.Pi-eps)
		require.LessOrEqual(t, d, math.Pi+eps)
	}
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1.0, Sign(2.5))
	assert.Equal(t, -1.0, Sign(-0.1))
	assert.Equal(t, 0.0, Sign(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(-3, 1, 5))
	assert.Equal(t, 5.0, Clamp(9, 1, 5))
	assert.Equal(t, 2.0, Clamp(2, 1, 5))
}

func TestRectIntersects(t *testing.T) {
	a := RectAround(Vec2{}, 10, 10)
	assert.True(t, a.Intersects(RectAround(Vec2{X: 9}, 10, 10)))
	assert.False(t, a.Intersects(RectAround(Vec2{X: 10}, 10, 10)), "touching edges do not intersect")
	assert.False(t, a.Intersects(RectAround(Vec2{Y: -30}, 10, 10)))
}

func TestRectInsetCollapses(t *testing.T) {
	r := RectAround(Vec2{X: 5, Y: 5}, 10, 4).Inset(6, 1)
	assert.Equal(t, 5.0, r.Min.X)
	assert.Equal(t, 5.0, r.Max.X)
	assert.Equal(t, 4.0, r.Min.Y)
	assert.Equal(t, 6.0, r.Max.Y)
}

func TestCirclesOverlap(t *testing.T) {
	assert.True(t, CirclesOverlap(0, 0, 1, 1.5, 0, 1))
	assert.False(t, CirclesOverlap(0, 0, 1, 2, 0, 1))
	assert.InDelta(t, 25, DistanceSquared(0, 0, 3, 4), eps)
}

func TestSpatialGridQueryAround(t *testing.T) {
	field := RectAround(Vec2{}, 100, 100)
	g := NewSpatialGrid(field, 10)

	g.Insert(Vec2{X: -45, Y: -45}, 0)
	g.Insert(Vec2{X: -38, Y: -45}, 1)
	g.Insert(Vec2{X: 40, Y: 40}, 2)
	g.Insert(Vec2{X: 500, Y: 500}, 3) // clamped into the corner cell

	var found []int
	g.QueryAround(Vec2{X: -45, Y: -45}, func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.ElementsMatch(t, []int{0, 1}, found)

	found = found[:0]
	g.QueryAround(Vec2{X: 45, Y: 45}, func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.ElementsMatch(t, []int{2, 3}, found)

	g.Clear()
	found = found[:0]
	g.QueryAround(Vec2{X: 45, Y: 45}, func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.Empty(t, found)
}
