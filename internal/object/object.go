// Package object defines the game entities and the registry that tracks the live ones.
package object

import (
	"fmt"

	"github.com/tomz197/hurricaneship/internal/physics"
)

// Handle identifies a live entity. The zero handle refers to nothing.
type Handle uint64

// Kind is the broad type of an entity.
type Kind int

const (
	KindShip Kind = iota
	KindMeteor
	KindPowerUp
	KindHazard
	KindGuard
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindMeteor:
		return "meteor"
	case KindPowerUp:
		return "power-up"
	case KindHazard:
		return "hazard"
	case KindGuard:
		return "guard"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Variant distinguishes the bonus/malus pickups.
type Variant int

const (
	VariantNone         Variant = iota
	VariantShrink               // hazard: shrinks the ship for a while
	VariantGuardSpawner         // power-up: grants an orbiting guard
	VariantGold                 // power-up: invulnerability gem, no effect yet
	VariantWall                 // hazard: cosmetic, never collides
	VariantGrow                 // hazard: speed-up/grow
)

func (v Variant) String() string {
	switch v {
	case VariantNone:
		return "none"
	case VariantShrink:
		return "shrink"
	case VariantGuardSpawner:
		return "guard-spawner"
	case VariantGold:
		return "gold"
	case VariantWall:
		return "wall"
	case VariantGrow:
		return "grow"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Unlimited marks an entity that never expires on its own.
const Unlimited = -1.0

// expiryEpsilon absorbs float drift when lifetimes are counted down in frame steps.
const expiryEpsilon = 1e-9

// Entity is a spawned game body.
type Entity struct {
	Handle   Handle
	Kind     Kind
	Variant  Variant
	Category Category

	Position physics.Vec2
	Velocity physics.Vec2
	Rotation float64      // Heading in radians
	Scale    float64      // Uniform scale applied to Size
	Size     physics.Vec2 // Unscaled extent

	Owner    Handle       // Parent whose lifetime this entity shares (guards)
	Lifetime float64      // Seconds remaining, Unlimited if it does not expire
	Target   physics.Vec2 // Travel destination (meteors)
}

// Bounds returns the scaled axis-aligned bounding box.
func (e *Entity) Bounds() physics.Rect {
	return physics.RectAround(e.Position, e.Size.X*e.Scale, e.Size.Y*e.Scale)
}

// Radius returns the collision circle radius (half the scaled width).
func (e *Entity) Radius() float64 {
	return e.Size.X * e.Scale / 2
}

// Expires reports whether the entity has a finite lifetime.
func (e *Entity) Expires() bool {
	return e.Lifetime >= 0
}
