package game

import (
	"errors"

	"github.com/tomz197/hurricaneship/internal/physics"
	"github.com/tomz197/hurricaneship/internal/random"
)

var (
	// ErrInvalidConfig is returned by New when the configuration is not playable.
	ErrInvalidConfig = errors.New("game: invalid config")
	// ErrUnknownEntity is returned when a handle no longer refers to a live entity.
	ErrUnknownEntity = errors.New("game: unknown entity")

	// ErrInvalidTarget is reported when the pointer sits exactly on the ship.
	ErrInvalidTarget = physics.ErrInvalidTarget
	// ErrInvalidRange is reported when a spawn draw gets an empty range.
	ErrInvalidRange = random.ErrInvalidRange
)
