package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/hurricaneship/internal/game"
	"github.com/tomz197/hurricaneship/internal/object"
	"github.com/tomz197/hurricaneship/internal/physics"
)

func body(h object.Handle, kind object.Kind, cat object.Category, x, y float64) object.Entity {
	return object.Entity{
		Handle:   h,
		Kind:     kind,
		Category: cat,
		Position: physics.Vec2{X: x, Y: y},
		Scale:    1,
		Size:     physics.Vec2{X: 20, Y: 20},
	}
}

func TestContactCellSizeCoversLargestPair(t *testing.T) {
	cfg := game.DefaultConfig()
	// Guard shield: 110 * 1.2 = 132 across.
	assert.InDelta(t, 132.0, contactCellSize(cfg), 1e-9)
}

func TestDetectReportsBeginOnly(t *testing.T) {
	d := NewContactDetector(game.DefaultConfig())
	ship := body(1, object.KindShip, object.CategoryShip, 0, 0)
	meteor := body(2, object.KindMeteor, object.CategoryMeteor, 15, 0)

	got := d.Detect([]object.Entity{ship, meteor})
	require.Len(t, got, 1)
	assert.Equal(t, Contact{CatA: object.CategoryShip, CatB: object.CategoryMeteor, A: 1, B: 2}, got[0])

	assert.Empty(t, d.Detect([]object.Entity{ship, meteor}), "still touching")

	meteor.Position.X = 100
	assert.Empty(t, d.Detect([]object.Entity{ship, meteor}), "separated")

	meteor.Position.X = 5
	assert.Len(t, d.Detect([]object.Entity{ship, meteor}), 1, "touching again")
}

func TestDetectFiltersPairs(t *testing.T) {
	d := NewContactDetector(game.DefaultConfig())
	bodies := []object.Entity{
		body(1, object.KindShip, object.CategoryShip, 0, 0),
		body(2, object.KindHazard, object.CategoryNone, 0, 0),  // wall: no contacts
		body(3, object.KindMeteor, object.CategoryMeteor, 300, 0),
		body(4, object.KindMeteor, object.CategoryMeteor, 305, 0), // meteors ignore each other
		body(5, object.KindPowerUp, object.CategoryGoldPowerUp, 600, 0),
		body(6, object.KindHazard, object.CategoryDecreaser, 605, 0), // pickups ignore each other
	}
	assert.Empty(t, d.Detect(bodies))
}

func TestDetectSkipsOwnGuard(t *testing.T) {
	d := NewContactDetector(game.DefaultConfig())
	ship := body(1, object.KindShip, object.CategoryShip, 0, 0)
	guard := body(2, object.KindGuard, object.CategoryGuard, 0, 0)
	guard.Owner = ship.Handle
	meteor := body(3, object.KindMeteor, object.CategoryMeteor, 0, 15)

	got := d.Detect([]object.Entity{ship, guard, meteor})
	assert.ElementsMatch(t, []Contact{
		{CatA: object.CategoryShip, CatB: object.CategoryMeteor, A: 1, B: 3},
		{CatA: object.CategoryGuard, CatB: object.CategoryMeteor, A: 2, B: 3},
	}, got)
}

func TestDetectAcrossGridCells(t *testing.T) {
	cfg := game.DefaultConfig()
	d := NewContactDetector(cfg)
	cell := contactCellSize(cfg)

	// Straddle a cell boundary.
	ship := body(1, object.KindShip, object.CategoryShip, cfg.Field().Min.X+cell-5, 0)
	meteor := body(2, object.KindMeteor, object.CategoryMeteor, cfg.Field().Min.X+cell+5, 0)
	assert.Len(t, d.Detect([]object.Entity{meteor, ship}), 1)
}

func TestResetForgetsTouchingPairs(t *testing.T) {
	d := NewContactDetector(game.DefaultConfig())
	bodies := []object.Entity{
		body(1, object.KindShip, object.CategoryShip, 0, 0),
		body(2, object.KindMeteor, object.CategoryMeteor, 0, 0),
	}
	require.Len(t, d.Detect(bodies), 1)
	d.Reset()
	assert.Len(t, d.Detect(bodies), 1)
}
