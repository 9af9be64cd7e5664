package loop

import (
	"github.com/tomz197/hurricaneship/internal/game"
	"github.com/tomz197/hurricaneship/internal/object"
	"github.com/tomz197/hurricaneship/internal/physics"
)

// Contact is a pair of bodies that started touching this frame.
type Contact struct {
	CatA, CatB object.Category
	A, B       object.Handle
}

type pairKey struct {
	lo, hi object.Handle
}

func keyOf(a, b object.Handle) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// ContactDetector finds overlapping body pairs with circle tests over a
// spatial grid. A pair is reported once, on the frame it starts touching, and
// again only after it has separated.
type ContactDetector struct {
	grid     *physics.SpatialGrid
	touching map[pairKey]struct{}
	next     map[pairKey]struct{}
}

// NewContactDetector covers field with a grid whose cells fit the largest
// contact distance of cfg's bodies.
func NewContactDetector(cfg game.Config) *ContactDetector {
	return &ContactDetector{
		grid:     physics.NewSpatialGrid(cfg.Field(), contactCellSize(cfg)),
		touching: make(map[pairKey]struct{}),
		next:     make(map[pairKey]struct{}),
	}
}

// contactCellSize is twice the largest body radius, the furthest two
// touching centres can be apart.
func contactCellSize(cfg game.Config) float64 {
	r := max(
		cfg.ShipSize.X*cfg.ShipScale,
		cfg.MeteorSize.X*cfg.MeteorScale,
		cfg.PickupSize.X*cfg.PickupScale,
		cfg.GuardSize.X*cfg.GuardScale,
	) / 2
	return 2 * r
}

// Detect returns the contacts that began since the previous call.
func (d *ContactDetector) Detect(bodies []object.Entity) []Contact {
	d.grid.Clear()
	for i := range bodies {
		if bodies[i].Category != object.CategoryNone {
			d.grid.Insert(bodies[i].Position, i)
		}
	}

	clear(d.next)
	var began []Contact
	for i := range bodies {
		a := &bodies[i]
		if a.Category == object.CategoryNone {
			continue
		}
		d.grid.QueryAround(a.Position, func(j int) bool {
			if j <= i {
				return false
			}
			b := &bodies[j]
			if !object.CanContact(a, b) {
				return false
			}
			if !physics.CirclesOverlap(a.Position.X, a.Position.Y, a.Radius(), b.Position.X, b.Position.Y, b.Radius()) {
				return false
			}

			key := keyOf(a.Handle, b.Handle)
			d.next[key] = struct{}{}
			if _, was := d.touching[key]; !was {
				began = append(began, Contact{CatA: a.Category, CatB: b.Category, A: a.Handle, B: b.Handle})
			}
			return false
		})
	}

	d.touching, d.next = d.next, d.touching
	return began
}

// Reset forgets all touching pairs, e.g. when a new game starts.
func (d *ContactDetector) Reset() {
	clear(d.touching)
}
