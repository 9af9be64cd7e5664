package game

import (
	"fmt"
	"math"

	"github.com/tomz197/hurricaneship/internal/physics"
)

// Config holds every tunable of a game session.
// Durations and periods are in seconds, speeds in field units per second.
type Config struct {
	// Ship
	ShipSpeed     float64 `yaml:"ship_speed" toml:"ship_speed"`
	RotationRate  float64 `yaml:"rotation_rate" toml:"rotation_rate"` // radians per second
	StartingLives int     `yaml:"starting_lives" toml:"starting_lives"`
	ShipScale     float64 `yaml:"ship_scale" toml:"ship_scale"`
	BlinkDuration float64 `yaml:"blink_duration" toml:"blink_duration"`

	// Shrink hazard
	ShrinkScale    float64 `yaml:"shrink_scale" toml:"shrink_scale"`
	ShrinkDuration float64 `yaml:"shrink_duration" toml:"shrink_duration"`

	// Spawning
	BonusPeriod    float64 `yaml:"bonus_period" toml:"bonus_period"`
	MeteorPeriod   float64 `yaml:"meteor_period" toml:"meteor_period"`
	MeteorDelay    float64 `yaml:"meteor_delay" toml:"meteor_delay"`
	PickupLifetime float64 `yaml:"pickup_lifetime" toml:"pickup_lifetime"`
	PickupScale    float64 `yaml:"pickup_scale" toml:"pickup_scale"`
	MeteorScale    float64 `yaml:"meteor_scale" toml:"meteor_scale"`

	// Guard
	GuardScale     float64 `yaml:"guard_scale" toml:"guard_scale"`
	GuardFrameTime float64 `yaml:"guard_frame_time" toml:"guard_frame_time"`

	// Play field, centred on the origin
	FieldWidth  float64 `yaml:"field_width" toml:"field_width"`
	FieldHeight float64 `yaml:"field_height" toml:"field_height"`

	// Unscaled sprite extents
	ShipSize   physics.Vec2 `yaml:"ship_size" toml:"ship_size"`
	MeteorSize physics.Vec2 `yaml:"meteor_size" toml:"meteor_size"`
	PickupSize physics.Vec2 `yaml:"pickup_size" toml:"pickup_size"`
	GuardSize  physics.Vec2 `yaml:"guard_size" toml:"guard_size"`

	// ArriveOnTarget parks the ship on the pointer instead of flying past it.
	ArriveOnTarget bool `yaml:"arrive_on_target" toml:"arrive_on_target"`
	// SingleMeteorSlot limits the guard sweep to the most recent meteor.
	SingleMeteorSlot bool `yaml:"single_meteor_slot" toml:"single_meteor_slot"`
	// SpawnAfterGameOver keeps both spawn timers running once the game is over.
	SpawnAfterGameOver bool `yaml:"spawn_after_game_over" toml:"spawn_after_game_over"`

	// Seed for the spawn draws; 0 picks a random seed.
	Seed uint64 `yaml:"seed" toml:"seed"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		ShipSpeed:     480,
		RotationRate:  2 * math.Pi,
		StartingLives: 3,
		ShipScale:     0.8,
		BlinkDuration: 3.0,

		ShrinkScale:    0.3,
		ShrinkDuration: 3.0,

		BonusPeriod:    3.0,
		MeteorPeriod:   1.5,
		MeteorDelay:    2.0,
		PickupLifetime: 2.0,
		PickupScale:    0.2,
		MeteorScale:    0.2,

		GuardScale:     1.2,
		GuardFrameTime: 0.2,

		FieldWidth:  1334,
		FieldHeight: 750,

		ShipSize:   physics.Vec2{X: 120, Y: 120},
		MeteorSize: physics.Vec2{X: 300, Y: 300},
		PickupSize: physics.Vec2{X: 300, Y: 300},
		GuardSize:  physics.Vec2{X: 110, Y: 110},
	}
}

// Field returns the play field rectangle.
func (c Config) Field() physics.Rect {
	return physics.RectAround(physics.Vec2{}, c.FieldWidth, c.FieldHeight)
}

// Validate checks that the values describe a playable session.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"ship_speed", c.ShipSpeed},
		{"rotation_rate", c.RotationRate},
		{"ship_scale", c.ShipScale},
		{"shrink_scale", c.ShrinkScale},
		{"bonus_period", c.BonusPeriod},
		{"meteor_period", c.MeteorPeriod},
		{"pickup_lifetime", c.PickupLifetime},
		{"pickup_scale", c.PickupScale},
		{"meteor_scale", c.MeteorScale},
		{"guard_scale", c.GuardScale},
		{"field_width", c.FieldWidth},
		{"field_height", c.FieldHeight},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%s must be positive, got %g: %w", p.name, p.v, ErrInvalidConfig)
		}
	}
	if c.StartingLives < 1 {
		return fmt.Errorf("starting_lives must be at least 1, got %d: %w", c.StartingLives, ErrInvalidConfig)
	}
	if c.MeteorDelay < 0 || c.ShrinkDuration < 0 || c.BlinkDuration < 0 {
		return fmt.Errorf("durations must not be negative: %w", ErrInvalidConfig)
	}
	return nil
}
