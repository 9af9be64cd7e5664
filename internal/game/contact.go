package game

import (
	"go.uber.org/zap"

	"github.com/tomz197/hurricaneship/internal/object"
)

// OnCollision applies the contact rules for a pair reported by the host and
// returns only the intents this contact caused. The pair may be given in
// either order; ship rules need the ship-tagged side to be the live ship.
// Contacts are ignored once the game is over or when a handle is already gone.
func (s *Simulation) OnCollision(catA, catB object.Category, a, b object.Handle) []Intent {
	if s.gameOver {
		return nil
	}
	start := len(s.out)

	if other, otherCat, ok := pairWith(object.CategoryShip, catA, catB, a, b); ok {
		shipSide := a
		if other == a {
			shipSide = b
		}
		if ship := s.reg.Ship(); ship != nil && ship.Handle == shipSide {
			s.resolveShipContact(other, otherCat)
		}
	}

	if other, otherCat, ok := pairWith(object.CategoryGuard, catA, catB, a, b); ok && otherCat == object.CategoryMeteor {
		guardSide := a
		if other == a {
			guardSide = b
		}
		if g := s.reg.Get(guardSide); g != nil && g.Kind == object.KindGuard {
			if s.remove(other) {
				s.log.Debug("guard destroyed meteor", zap.Uint64("meteor", uint64(other)))
			}
		}
	}

	return s.takeFrom(start)
}

// pairWith returns the side of the pair that is not of category want.
func pairWith(want, catA, catB object.Category, a, b object.Handle) (object.Handle, object.Category, bool) {
	switch {
	case catA == want:
		return b, catB, true
	case catB == want:
		return a, catA, true
	default:
		return 0, object.CategoryNone, false
	}
}

func (s *Simulation) resolveShipContact(other object.Handle, otherCat object.Category) {
	switch otherCat {
	case object.CategoryMeteor:
		if s.remove(other) {
			s.log.Debug("ship hit meteor", zap.Uint64("meteor", uint64(other)))
			s.shipHit()
		}
	case object.CategoryDecreaser:
		if s.remove(other) {
			s.shrinkShip()
		}
	case object.CategoryGuard:
		e := s.reg.Get(other)
		if e == nil || e.Kind != object.KindPowerUp {
			return
		}
		s.remove(other)
		s.addGuard()
	}
}

// shipHit blinks the ship, takes a life and ends the game at zero.
func (s *Simulation) shipHit() {
	ship := s.reg.Ship()
	s.emit(PlayEffect{Handle: ship.Handle, Effect: EffectBlink, Duration: s.cfg.BlinkDuration})

	s.lives--
	s.log.Info("life lost", zap.Int("lives", s.lives))
	if s.lives > 0 {
		return
	}

	s.remove(ship.Handle)
	s.gameOver = true
	s.delayed = nil
	s.emit(GameOver{})
	s.log.Info("game over")
}

// shrinkShip scales the ship down and restores it after ShrinkDuration.
// Every pickup schedules its own restore.
func (s *Simulation) shrinkShip() {
	ship := s.reg.Ship()
	ship.Scale = s.cfg.ShrinkScale
	s.emit(SetScale{Handle: ship.Handle, Scale: ship.Scale})

	h := ship.Handle
	s.after(s.cfg.ShrinkDuration, func() {
		if e := s.reg.Get(h); e != nil {
			e.Scale = s.cfg.ShipScale
			s.emit(SetScale{Handle: h, Scale: e.Scale})
		}
	})
}

// addGuard attaches a guard shield to the ship, then sweeps the meteors
// already overlapping any guard.
func (s *Simulation) addGuard() {
	ship := s.reg.Ship()
	g := &object.Entity{
		Kind:     object.KindGuard,
		Category: object.CategoryGuard,
		Position: ship.Position,
		Scale:    s.cfg.GuardScale,
		Size:     s.cfg.GuardSize,
		Owner:    ship.Handle,
		Lifetime: object.Unlimited,
	}
	s.reg.Add(g)
	s.emit(spawnIntent(g))
	s.emit(PlayEffect{Handle: g.Handle, Effect: EffectOrbit, Duration: Forever})
	s.log.Debug("guard attached", zap.Int("guards", len(s.reg.Guards())))

	s.sweepGuards()
}

func (s *Simulation) sweepGuards() {
	var meteors []*object.Entity
	if s.cfg.SingleMeteorSlot {
		if m := s.reg.CurrentMeteor(); m != nil {
			meteors = append(meteors, m)
		}
	} else {
		meteors = s.reg.Meteors()
	}

	for _, g := range s.reg.Guards() {
		gb := g.Bounds()
		for _, m := range meteors {
			if s.reg.Get(m.Handle) == nil {
				continue
			}
			if gb.Intersects(m.Bounds()) {
				s.remove(m.Handle)
				s.log.Debug("guard swept meteor", zap.Uint64("meteor", uint64(m.Handle)))
			}
		}
	}
}
