// Package game implements the frame-driven simulation: spawn timers, ship
// kinematics and contact rules. It knows nothing about rendering; the host feeds
// it frame time, pointer input and detected contacts, and applies the returned intents.
package game

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/hurricaneship/internal/object"
	"github.com/tomz197/hurricaneship/internal/physics"
	"github.com/tomz197/hurricaneship/internal/random"
)

// State is the gameplay state visible to the host.
type State struct {
	Lives            int
	GameOver         bool
	SinceBonusSpawn  float64
	SinceMeteorSpawn float64
}

// Simulation is a single game session. It is not safe for concurrent use;
// the host calls OnFrame and OnCollision from its frame loop.
type Simulation struct {
	cfg   Config
	log   *zap.Logger
	rnd   *random.Policy
	reg   *object.Registry
	sched *Scheduler

	lives    int
	gameOver bool

	pointer    physics.Vec2
	hasPointer bool

	delayed []delayedAction
	toSpawn []*object.Entity // added to the registry at the end of the frame
	out     []Intent
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Simulation) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRandom replaces the random policy derived from Config.Seed.
func WithRandom(rnd *random.Policy) Option {
	return func(s *Simulation) {
		if rnd != nil {
			s.rnd = rnd
		}
	}
}

// New creates a session with the ship at the field centre.
// The ship's SpawnEntity intent is returned by the first OnFrame call.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &Simulation{
		cfg:   cfg,
		log:   zap.NewNop(),
		rnd:   random.New(seed),
		reg:   object.NewRegistry(),
		lives: cfg.StartingLives,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sched = NewScheduler(cfg, s.rnd)

	ship := &object.Entity{
		Kind:     object.KindShip,
		Category: object.CategoryShip,
		Scale:    cfg.ShipScale,
		Size:     cfg.ShipSize,
		Lifetime: object.Unlimited,
	}
	s.reg.Add(ship)
	s.emit(spawnIntent(ship))

	return s, nil
}

// Config returns the session configuration.
func (s *Simulation) Config() Config {
	return s.cfg
}

// State returns lives, game-over flag and timer accumulators.
func (s *Simulation) State() State {
	return State{
		Lives:            s.lives,
		GameOver:         s.gameOver,
		SinceBonusSpawn:  s.sched.SinceBonus(),
		SinceMeteorSpawn: s.sched.SinceMeteor(),
	}
}

// Entities returns copies of all live entities in spawn order.
func (s *Simulation) Entities() []object.Entity {
	return s.reg.Snapshot()
}

// Entity returns a copy of the entity for h.
func (s *Simulation) Entity(h object.Handle) (object.Entity, error) {
	e := s.reg.Get(h)
	if e == nil {
		return object.Entity{}, fmt.Errorf("handle %d: %w", h, ErrUnknownEntity)
	}
	return *e, nil
}

// Ship returns a copy of the ship, and false once it has been removed.
func (s *Simulation) Ship() (object.Entity, bool) {
	e := s.reg.Ship()
	if e == nil {
		return object.Entity{}, false
	}
	return *e, true
}

// OnFrame advances the session by dt seconds. pointer is the latest touch
// position, or nil when there was none this frame; the last one keeps steering.
//
// Order within a frame: spawn timers, delayed effects, ship kinematics, body
// movement, lifetime expiry, then newly spawned entities join the registry.
func (s *Simulation) OnFrame(dt float64, pointer *physics.Vec2) []Intent {
	if dt < 0 {
		dt = 0
	}

	if !s.gameOver || s.cfg.SpawnAfterGameOver {
		s.runTimers(dt)
	}
	s.runDelayed(dt)
	if !s.gameOver {
		s.moveShip(dt, pointer)
	}
	s.moveBodies(dt)

	for _, h := range s.reg.Age(dt) {
		s.emit(RemoveEntity{Handle: h})
	}
	s.flushSpawned()

	return s.drain()
}

// after schedules fn to run once delay seconds of frame time have passed.
func (s *Simulation) after(delay float64, fn func()) {
	s.delayed = append(s.delayed, delayedAction{remaining: delay, fn: fn})
}

func (s *Simulation) runTimers(dt float64) {
	bonus, meteor := s.sched.Advance(dt)

	if bonus {
		e, err := s.sched.SpawnPickup()
		switch {
		case err != nil:
			s.log.Warn("pickup spawn skipped", zap.Error(err))
		case e != nil:
			s.toSpawn = append(s.toSpawn, e)
		}
	}

	if meteor {
		e, err := s.sched.SpawnMeteor()
		if err != nil {
			s.log.Warn("meteor spawn skipped", zap.Error(err))
		} else {
			s.toSpawn = append(s.toSpawn, e)
		}
	}
}

func (s *Simulation) runDelayed(dt float64) {
	if len(s.delayed) == 0 {
		return
	}

	var due []func()
	kept := s.delayed[:0]
	for _, d := range s.delayed {
		d.remaining -= dt
		if d.remaining <= 1e-9 {
			due = append(due, d.fn)
		} else {
			kept = append(kept, d)
		}
	}
	s.delayed = kept

	for _, fn := range due {
		fn()
	}
}

func (s *Simulation) moveShip(dt float64, pointer *physics.Vec2) {
	ship := s.reg.Ship()
	if ship == nil {
		return
	}

	if pointer != nil {
		v, err := physics.SteerToward(*pointer, ship.Position, s.cfg.ShipSpeed)
		if err != nil {
			s.log.Debug("pointer on ship, stopping", zap.Error(err))
		}
		ship.Velocity = v
		s.pointer = *pointer
		s.hasPointer = true
	}

	if s.cfg.ArriveOnTarget && s.hasPointer && !ship.Velocity.IsZero() &&
		physics.Arrived(ship.Position, s.pointer, ship.Velocity, dt) {
		ship.Position = s.pointer
		ship.Velocity = physics.Vec2{}
		return
	}

	ship.Position = physics.Integrate(ship.Position, ship.Velocity, dt)
	ship.Rotation = physics.RotateToward(ship.Rotation, ship.Velocity, s.cfg.RotationRate, dt)
}

// moveBodies integrates every non-ship body; guards ride on their owner.
func (s *Simulation) moveBodies(dt float64) {
	s.reg.Each(func(e *object.Entity) bool {
		switch e.Kind {
		case object.KindShip:
		case object.KindGuard:
			if owner := s.reg.Get(e.Owner); owner != nil {
				e.Position = owner.Position
			}
		default:
			if !e.Velocity.IsZero() {
				e.Position = physics.Integrate(e.Position, e.Velocity, dt)
			}
		}
		return true
	})
}

func (s *Simulation) flushSpawned() {
	for _, e := range s.toSpawn {
		s.reg.Add(e)
		s.emit(spawnIntent(e))
		s.log.Debug("spawned",
			zap.Uint64("handle", uint64(e.Handle)),
			zap.Stringer("kind", e.Kind),
			zap.Stringer("variant", e.Variant),
			zap.Float64("x", e.Position.X),
			zap.Float64("y", e.Position.Y),
			zap.Float64("lifetime", e.Lifetime),
		)
	}
	s.toSpawn = s.toSpawn[:0]
}

// remove drops h (and anything it owns) and emits one RemoveEntity per handle.
// It reports whether h was live.
func (s *Simulation) remove(h object.Handle) bool {
	removed := s.reg.Remove(h)
	for _, rh := range removed {
		s.emit(RemoveEntity{Handle: rh})
	}
	return len(removed) > 0
}

func (s *Simulation) emit(i Intent) {
	s.out = append(s.out, i)
}

// takeFrom removes and returns the intents emitted since s.out had length
// start, leaving earlier pending ones for the next OnFrame.
func (s *Simulation) takeFrom(start int) []Intent {
	if len(s.out) == start {
		return nil
	}
	out := slices.Clone(s.out[start:])
	s.out = s.out[:start]
	return out
}

func (s *Simulation) drain() []Intent {
	out := s.out
	s.out = nil
	return out
}
