package physics

import (
	"errors"
	"math"
)

// ErrInvalidTarget is returned when a steering target equals the current position.
var ErrInvalidTarget = errors.New("physics: steering target equals current position")

// SteerToward returns the velocity of magnitude speed pointing from current to target.
// When the two points coincide it returns the zero vector and ErrInvalidTarget.
func SteerToward(target, current Vec2, speed float64) (Vec2, error) {
	offset := target.Sub(current)
	if offset.IsZero() {
		return Vec2{}, ErrInvalidTarget
	}
	return offset.Normalize().Scale(speed), nil
}

// RotateToward turns rotation toward the heading of velocity by at most
// maxRadiansPerSecond*dt and never past the heading.
// A zero velocity has no heading and leaves rotation unchanged.
func RotateToward(rotation float64, velocity Vec2, maxRadiansPerSecond, dt float64) float64 {
	if velocity.IsZero() || dt <= 0 {
		return rotation
	}
	shortest := ShortestAngleBetween(rotation, velocity.Angle())
	step := math.Min(maxRadiansPerSecond*dt, math.Abs(shortest))
	return rotation + Sign(shortest)*step
}

// Integrate advances position by velocity over dt (explicit Euler).
func Integrate(position, velocity Vec2, dt float64) Vec2 {
	return position.Add(velocity.Scale(dt))
}

// Arrived reports whether moving at velocity for dt would reach or pass target.
func Arrived(position, target, velocity Vec2, dt float64) bool {
	return target.Sub(position).Length() <= velocity.Scale(dt).Length()
}
