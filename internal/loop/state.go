package loop

import (
	"github.com/tomz197/hurricaneship/internal/game"
	"github.com/tomz197/hurricaneship/internal/object"
)

// GameState is the phase of a terminal session.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Out of lives, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// blinkPhase is how long a blinking body stays hidden, then shown: one
// fade-out or fade-in of the blink.
const blinkPhase = 0.6

// orbitFrames is the length of the guard animation cycle.
const orbitFrames = 5

type effect struct {
	kind      game.Effect
	remaining float64 // game.Forever for loops
	elapsed   float64
}

// effects is the host-side animation state driven by PlayEffect intents.
type effects struct {
	byHandle  map[object.Handle]*effect
	frameTime float64 // seconds per orbit frame
}

func newEffects(frameTime float64) *effects {
	return &effects{
		byHandle:  make(map[object.Handle]*effect),
		frameTime: frameTime,
	}
}

// play starts (or restarts) an effect on h, replacing any effect it had.
func (fx *effects) play(h object.Handle, kind game.Effect, duration float64) {
	fx.byHandle[h] = &effect{kind: kind, remaining: duration}
}

func (fx *effects) forget(h object.Handle) {
	delete(fx.byHandle, h)
}

func (fx *effects) reset() {
	clear(fx.byHandle)
}

// advance ages every effect and drops the finished ones.
func (fx *effects) advance(dt float64) {
	for h, e := range fx.byHandle {
		e.elapsed += dt
		if e.remaining == game.Forever {
			continue
		}
		e.remaining -= dt
		if e.remaining <= 0 {
			delete(fx.byHandle, h)
		}
	}
}

// visible reports whether h is drawn this frame. A blink starts by fading
// out, so the body is hidden for the first phase.
func (fx *effects) visible(h object.Handle) bool {
	e, ok := fx.byHandle[h]
	if !ok || e.kind != game.EffectBlink {
		return true
	}
	return int(e.elapsed/blinkPhase)%2 == 1
}

// orbitFrame returns the guard animation frame for h, 0 when it has none.
func (fx *effects) orbitFrame(h object.Handle) int {
	e, ok := fx.byHandle[h]
	if !ok || e.kind != game.EffectOrbit || fx.frameTime <= 0 {
		return 0
	}
	return int(e.elapsed/fx.frameTime) % orbitFrames
}
