package game

import (
	"fmt"

	"github.com/tomz197/hurricaneship/internal/object"
	"github.com/tomz197/hurricaneship/internal/physics"
	"github.com/tomz197/hurricaneship/internal/random"
)

// Percentage thresholds of the bonus/malus and meteor draws. Each threshold is
// checked against its own fresh draw, so the chains are not a single weighted pick.
const (
	bonusBranchPercent   = 55 // power-up branch, else malus
	shrinkPercent        = 55 // power-up: shrink hazard
	guardSpawnerPercent  = 90 // power-up: guard spawner
	goldPercent          = 100
	wallPercent          = 60 // malus: cosmetic wall, else grow
	meteorSlowPercent    = 30 // 3s crossing
	meteorMediumPercent  = 20 // 2s crossing
	meteorSlowestPercent = 40 // 4s crossing, else 1s
)

// Edge is a side of the play field meteors enter from.
type Edge int

const (
	EdgeBottom Edge = iota
	EdgeTop
	EdgeLeft
	EdgeRight
)

// Scheduler owns the two spawn timers and the draws that decide what they spawn.
type Scheduler struct {
	cfg    Config
	rnd    *random.Policy
	bonus  *Timer
	meteor *Timer
}

// NewScheduler returns a scheduler whose bonus timer fires on the first frame
// and whose meteor timer first fires after the configured delay.
func NewScheduler(cfg Config, rnd *random.Policy) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		rnd:    rnd,
		bonus:  NewTimer(cfg.BonusPeriod, 0),
		meteor: NewTimer(cfg.MeteorPeriod, cfg.MeteorDelay),
	}
}

// Advance moves both timers forward by dt and reports which fired.
func (s *Scheduler) Advance(dt float64) (bonus, meteor bool) {
	return s.bonus.Advance(dt), s.meteor.Advance(dt)
}

// SinceBonus returns the time since the bonus timer last fired.
func (s *Scheduler) SinceBonus() float64 { return s.bonus.Elapsed() }

// SinceMeteor returns the time since the meteor timer last fired.
func (s *Scheduler) SinceMeteor() float64 { return s.meteor.Elapsed() }

// PickVariant runs the bonus/malus draw chain.
// It returns ok=false when the power-up chain falls through without a pick.
func (s *Scheduler) PickVariant() (kind object.Kind, variant object.Variant, category object.Category, ok bool) {
	if s.rnd.Within(bonusBranchPercent) {
		switch {
		case s.rnd.Within(shrinkPercent):
			return object.KindHazard, object.VariantShrink, object.CategoryDecreaser, true
		case s.rnd.Within(guardSpawnerPercent):
			return object.KindPowerUp, object.VariantGuardSpawner, object.CategoryGuard, true
		case s.rnd.Percent() == goldPercent:
			return object.KindPowerUp, object.VariantGold, object.CategoryGoldPowerUp, true
		default:
			return 0, object.VariantNone, object.CategoryNone, false
		}
	}

	if s.rnd.Within(wallPercent) {
		return object.KindHazard, object.VariantWall, object.CategoryNone, true
	}
	return object.KindHazard, object.VariantGrow, object.CategoryIncreaser, true
}

// SpawnPickup draws a bonus/malus entity. It returns nil when the draw picks nothing.
func (s *Scheduler) SpawnPickup() (*object.Entity, error) {
	kind, variant, category, ok := s.PickVariant()
	if !ok {
		return nil, nil
	}

	w := s.cfg.PickupSize.X * s.cfg.PickupScale
	h := s.cfg.PickupSize.Y * s.cfg.PickupScale
	area := s.cfg.Field().Inset(w/2, h/2)

	x, err := s.rnd.Float(area.Min.X, area.Max.X)
	if err != nil {
		return nil, fmt.Errorf("pickup x: %w", err)
	}
	y, err := s.rnd.Float(area.Min.Y, area.Max.Y)
	if err != nil {
		return nil, fmt.Errorf("pickup y: %w", err)
	}

	return &object.Entity{
		Kind:     kind,
		Variant:  variant,
		Category: category,
		Position: physics.Vec2{X: x, Y: y},
		Scale:    s.cfg.PickupScale,
		Size:     s.cfg.PickupSize,
		Lifetime: s.cfg.PickupLifetime,
	}, nil
}

// PickEdge chooses the entry side with the layered 1-in-4 draws.
func (s *Scheduler) PickEdge() Edge {
	switch {
	case s.rnd.Roll(4) == 1:
		return EdgeBottom
	case s.rnd.Roll(4) == 2:
		return EdgeTop
	case s.rnd.Roll(4) == 3:
		return EdgeLeft
	default:
		return EdgeRight
	}
}

// PickCrossingTime draws how many seconds a meteor takes to cross the field.
func (s *Scheduler) PickCrossingTime() float64 {
	switch {
	case s.rnd.Within(meteorSlowPercent):
		return 3
	case s.rnd.Within(meteorMediumPercent):
		return 2
	case s.rnd.Within(meteorSlowestPercent):
		return 4
	default:
		return 1
	}
}

// EdgePoint draws a point on the given edge of the field.
func (s *Scheduler) EdgePoint(edge Edge) (physics.Vec2, error) {
	field := s.cfg.Field()
	switch edge {
	case EdgeBottom, EdgeTop:
		x, err := s.rnd.Float(field.Min.X, field.Max.X)
		if err != nil {
			return physics.Vec2{}, fmt.Errorf("edge x: %w", err)
		}
		if edge == EdgeBottom {
			return physics.Vec2{X: x, Y: field.Min.Y}, nil
		}
		return physics.Vec2{X: x, Y: field.Max.Y}, nil
	default:
		y, err := s.rnd.Float(field.Min.Y, field.Max.Y)
		if err != nil {
			return physics.Vec2{}, fmt.Errorf("edge y: %w", err)
		}
		if edge == EdgeLeft {
			return physics.Vec2{X: field.Min.X, Y: y}, nil
		}
		return physics.Vec2{X: field.Max.X, Y: y}, nil
	}
}

// SpawnMeteor draws a meteor entering from an edge and heading to the diametrically
// opposite point. Its lifetime equals the crossing time, so it expires on arrival.
func (s *Scheduler) SpawnMeteor() (*object.Entity, error) {
	start, err := s.EdgePoint(s.PickEdge())
	if err != nil {
		return nil, err
	}
	target := start.Neg()
	crossing := s.PickCrossingTime()

	return &object.Entity{
		Kind:     object.KindMeteor,
		Category: object.CategoryMeteor,
		Position: start,
		Velocity: target.Sub(start).Scale(1 / crossing),
		Scale:    s.cfg.MeteorScale,
		Size:     s.cfg.MeteorSize,
		Lifetime: crossing,
		Target:   target,
	}, nil
}
