package object

// Registry tracks live entities in spawn order.
// The ship and the most recently spawned meteor are kept in named slots.
type Registry struct {
	byHandle map[Handle]*Entity
	order    []Handle
	next     Handle

	ship   Handle
	meteor Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byHandle: make(map[Handle]*Entity),
	}
}

// Add assigns a fresh handle to e and starts tracking it.
// Adding a ship fills the ship slot; adding a meteor replaces the current meteor slot.
func (r *Registry) Add(e *Entity) Handle {
	r.next++
	e.Handle = r.next
	r.byHandle[e.Handle] = e
	r.order = append(r.order, e.Handle)

	switch e.Kind {
	case KindShip:
		r.ship = e.Handle
	case KindMeteor:
		r.meteor = e.Handle
	}
	return e.Handle
}

// Get returns the entity for h, or nil if it is no longer live.
func (r *Registry) Get(h Handle) *Entity {
	return r.byHandle[h]
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.byHandle)
}

// Ship returns the ship, or nil once it has been removed.
func (r *Registry) Ship() *Entity {
	return r.byHandle[r.ship]
}

// CurrentMeteor returns the most recently spawned meteor if it is still live.
func (r *Registry) CurrentMeteor() *Entity {
	return r.byHandle[r.meteor]
}

// Remove stops tracking h and every entity it owns, directly or transitively.
// It returns the handles actually removed, parent first. Removing an unknown
// or already removed handle is a no-op and returns nil.
func (r *Registry) Remove(h Handle) []Handle {
	if _, ok := r.byHandle[h]; !ok {
		return nil
	}

	removed := []Handle{h}
	for i := 0; i < len(removed); i++ {
		parent := removed[i]
		for _, child := range r.order {
			if e := r.byHandle[child]; e != nil && e.Owner == parent && !containsHandle(removed, child) {
				removed = append(removed, child)
			}
		}
	}

	for _, rh := range removed {
		delete(r.byHandle, rh)
		if rh == r.ship {
			r.ship = 0
		}
		if rh == r.meteor {
			r.meteor = 0
		}
	}

	kept := r.order[:0]
	for _, oh := range r.order {
		if _, ok := r.byHandle[oh]; ok {
			kept = append(kept, oh)
		}
	}
	r.order = kept

	return removed
}

// Each calls fn for every live entity in spawn order until fn returns false.
// fn must not add or remove entities.
func (r *Registry) Each(fn func(e *Entity) bool) {
	for _, h := range r.order {
		if !fn(r.byHandle[h]) {
			return
		}
	}
}

// ByKind returns the live entities of the given kind in spawn order.
func (r *Registry) ByKind(kind Kind) []*Entity {
	var out []*Entity
	for _, h := range r.order {
		if e := r.byHandle[h]; e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Meteors returns every live meteor.
func (r *Registry) Meteors() []*Entity {
	return r.ByKind(KindMeteor)
}

// Guards returns every live guard shield.
func (r *Registry) Guards() []*Entity {
	return r.ByKind(KindGuard)
}

// Snapshot returns value copies of all live entities in spawn order.
func (r *Registry) Snapshot() []Entity {
	out := make([]Entity, 0, len(r.order))
	for _, h := range r.order {
		out = append(out, *r.byHandle[h])
	}
	return out
}

// Age counts down finite lifetimes by dt and removes the entities that ran out.
// It returns every removed handle, including owned children.
func (r *Registry) Age(dt float64) []Handle {
	var expired []Handle
	for _, h := range r.order {
		e := r.byHandle[h]
		if !e.Expires() {
			continue
		}
		e.Lifetime -= dt
		if e.Lifetime <= expiryEpsilon {
			e.Lifetime = 0
			expired = append(expired, h)
		}
	}

	var removed []Handle
	for _, h := range expired {
		removed = append(removed, r.Remove(h)...)
	}
	return removed
}

func containsHandle(hs []Handle, h Handle) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}
