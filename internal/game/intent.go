package game

import (
	"github.com/tomz197/hurricaneship/internal/object"
	"github.com/tomz197/hurricaneship/internal/physics"
)

// Intent is an instruction for the host: spawn, remove, animate or rescale a body.
// Hosts switch on the concrete type.
type Intent interface {
	intent()
}

// SpawnEntity asks the host to create a renderable body for a new entity.
type SpawnEntity struct {
	Handle   object.Handle
	Kind     object.Kind
	Variant  object.Variant
	Category object.Category
	Position physics.Vec2
	Scale    float64
	Lifetime float64 // object.Unlimited if the entity does not expire
	Owner    object.Handle
}

// RemoveEntity asks the host to drop the body for Handle. Emitted once per handle.
type RemoveEntity struct {
	Handle object.Handle
}

// Effect is a visual effect the host plays on a body.
type Effect int

const (
	EffectBlink Effect = iota // fade out/in loop
	EffectOrbit               // guard frame animation
)

func (e Effect) String() string {
	switch e {
	case EffectBlink:
		return "blink"
	case EffectOrbit:
		return "orbit"
	default:
		return "unknown"
	}
}

// Forever is the PlayEffect duration of a looping effect that ends with its body.
const Forever = -1.0

// PlayEffect asks the host to play Effect on Handle for Duration seconds.
type PlayEffect struct {
	Handle   object.Handle
	Effect   Effect
	Duration float64
}

// SetScale asks the host to rescale the body for Handle.
type SetScale struct {
	Handle object.Handle
	Scale  float64
}

// GameOver tells the host the session has ended.
type GameOver struct{}

func (SpawnEntity) intent()  {}
func (RemoveEntity) intent() {}
func (PlayEffect) intent()   {}
func (SetScale) intent()     {}
func (GameOver) intent()     {}

func spawnIntent(e *object.Entity) SpawnEntity {
	return SpawnEntity{
		Handle:   e.Handle,
		Kind:     e.Kind,
		Variant:  e.Variant,
		Category: e.Category,
		Position: e.Position,
		Scale:    e.Scale,
		Lifetime: e.Lifetime,
		Owner:    e.Owner,
	}
}
