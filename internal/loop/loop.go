// Package loop runs a game session in a terminal: it reads keys and mouse
// reports, drives the simulation, detects contacts and draws the result.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/hurricaneship/internal/config"
	"github.com/tomz197/hurricaneship/internal/draw"
	"github.com/tomz197/hurricaneship/internal/game"
	"github.com/tomz197/hurricaneship/internal/input"
	"github.com/tomz197/hurricaneship/internal/physics"
	"github.com/tomz197/hurricaneship/internal/session"
)

// maxFrameDelta caps the simulated step after a stall so bodies do not jump.
const maxFrameDelta = 0.1

// Options configures a session.
type Options struct {
	Config       *config.Config    // defaults when nil
	Logger       *zap.Logger       // discards when nil
	TermSizeFunc draw.TermSizeFunc // draw.DefaultTermSizeFunc when nil
	// Session and Sessions are set for SSH players: server events stop the
	// loop and finished runs go to the leaderboard.
	Session  *session.Handle
	Sessions *session.Manager
}

// host is one terminal session.
type host struct {
	cfg      *config.Config
	log      *zap.Logger
	w        io.Writer
	stream   *input.Stream
	termSize draw.TermSizeFunc

	canvas *draw.Canvas
	cw     *draw.ChunkWriter
	view   draw.View

	session  *session.Handle
	sessions *session.Manager

	state       GameState
	prevState   GameState
	running     bool
	in          input.Input
	lastInput   time.Time
	inactive    bool
	wasInactive bool
	shutdownIn  float64

	sim      *game.Simulation
	detector *ContactDetector
	fx       *effects
	cursor   physics.Vec2
	lives    int
	survived float64
	games    int
	record   *session.Run
}

// Run plays until the user quits, the input closes or the server shuts down.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	h, err := newHost(r, w, opts)
	if err != nil {
		return err
	}

	draw.HideCursor(w)
	io.WriteString(w, input.EnableMouse)
	draw.ClearScreen(w)
	defer func() {
		io.WriteString(w, input.DisableMouse)
		draw.ShowCursor(w)
		draw.ClearScreen(w)
	}()

	frameTime := h.cfg.Host.FrameTime()
	lastTime := time.Now()

	for h.running {
		frameStart := time.Now()
		dt := min(frameStart.Sub(lastTime).Seconds(), maxFrameDelta)
		lastTime = frameStart

		if err := h.frame(dt); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
	return nil
}

func newHost(r *bufio.Reader, w io.Writer, opts Options) (*host, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	gcfg, err := cfg.GameConfig()
	if err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}

	viewW, viewH := float64(cfg.Host.ViewWidth), float64(cfg.Host.ViewHeight)
	termW, termH, _ := termSize()
	canvas := draw.NewScaledCanvas(termW, termH, viewW, viewH)

	return &host{
		cfg:       cfg,
		log:       log,
		w:         w,
		stream:    input.StartStream(r),
		termSize:  termSize,
		canvas:    canvas,
		cw:        draw.NewChunkWriter(w),
		view:      draw.NewView(gcfg.Field(), viewW, viewH),
		session:   opts.Session,
		sessions:  opts.Sessions,
		state:     GameStateStart,
		prevState: GameStateStart,
		running:   true,
		lastInput: time.Now(),
		detector:  NewContactDetector(gcfg),
		fx:        newEffects(gcfg.GuardFrameTime),
		lives:     gcfg.StartingLives,
	}, nil
}

// frame runs one Input, Update, Draw cycle.
func (h *host) frame(dt float64) error {
	h.processInput()
	h.processSessionEvents()
	h.updateScreen()

	switch h.state {
	case GameStateStart:
		if h.in.Space || h.in.Enter {
			if err := h.startGame(); err != nil {
				return err
			}
		}
	case GameStateOver:
		if h.in.Space || h.in.Enter {
			if err := h.startGame(); err != nil {
				return err
			}
			break
		}
		// Bodies already in flight finish their paths behind the prompt.
		h.step(dt)
	case GameStatePlaying:
		h.step(dt)
	case GameStateShutdown:
		h.shutdownIn -= dt
		if h.shutdownIn <= 0 {
			h.running = false
		}
	}

	return h.drawFrame()
}

func (h *host) processInput() {
	h.in = input.ReadInput(h.stream)

	idle := time.Since(h.lastInput).Seconds()
	switch {
	case len(h.in.Pressed) > 0:
		h.lastInput = time.Now()
		h.inactive = false
	case h.cfg.Host.InactivityDisconnect > 0 && idle > h.cfg.Host.InactivityDisconnect:
		h.log.Info("disconnecting idle session", zap.Float64("idle_seconds", idle))
		h.running = false
	case h.cfg.Host.InactivityWarn > 0 && idle > h.cfg.Host.InactivityWarn:
		h.inactive = true
	}

	if h.in.Quit || h.in.Closed {
		h.running = false
	}
}

func (h *host) processSessionEvents() {
	if h.session == nil {
		return
	}
	for {
		select {
		case ev, ok := <-h.session.Events:
			if !ok {
				h.running = false
				return
			}
			switch ev.Type {
			case session.EventServerShutdown:
				h.state = GameStateShutdown
				h.shutdownIn = h.cfg.Host.ShutdownDisplay
			case session.EventNewRecord:
				run := ev.Run
				h.record = &run
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes.
func (h *host) updateScreen() {
	termW, termH, err := h.termSize()
	if err != nil {
		return
	}
	if termW != h.canvas.TerminalWidth() || termH != h.canvas.TerminalHeight() {
		draw.ClearScreen(h.w)
		h.canvas.Resize(termW, termH)
		h.canvas.ForceRedraw()
	}
}

// startGame begins a fresh simulation.
func (h *host) startGame() error {
	input.ResetKeyInput(h.stream)

	gcfg, err := h.cfg.GameConfig()
	if err != nil {
		return err
	}
	// A fixed seed replays per game index, so restarts still differ.
	if gcfg.Seed != 0 {
		gcfg.Seed += uint64(h.games)
	}
	sim, err := game.New(gcfg, game.WithLogger(h.log.With(zap.Int("game", h.games+1))))
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	h.games++
	h.sim = sim
	h.detector.Reset()
	h.fx.reset()
	h.cursor = physics.Vec2{}
	h.lives = gcfg.StartingLives
	h.survived = 0
	h.state = GameStatePlaying
	h.log.Debug("game started", zap.Int("game", h.games))
	return nil
}

// step advances the running game by dt.
func (h *host) step(dt float64) {
	h.moveCursor(dt)

	h.apply(h.sim.OnFrame(dt, &h.cursor))
	for _, c := range h.detector.Detect(h.sim.Entities()) {
		h.apply(h.sim.OnCollision(c.CatA, c.CatB, c.A, c.B))
	}
	h.fx.advance(dt)

	st := h.sim.State()
	h.lives = st.Lives
	if !st.GameOver {
		h.survived += dt
	}
}

// moveCursor steers the pointer with held keys, or jumps it to the mouse.
func (h *host) moveCursor(dt float64) {
	field := h.view.Field()

	if m := h.in.Mouse; m != nil && m.Down {
		p := h.canvas.TerminalToLogical(m.Col, m.Row)
		h.cursor = h.view.ToWorld(p)
	} else {
		var dir physics.Vec2
		if h.in.Left {
			dir.X--
		}
		if h.in.Right {
			dir.X++
		}
		if h.in.Up {
			dir.Y++
		}
		if h.in.Down {
			dir.Y--
		}
		h.cursor = h.cursor.Add(dir.Normalize().Scale(h.cfg.Host.CursorSpeed * dt))
	}

	h.cursor.X = physics.Clamp(h.cursor.X, field.Min.X, field.Max.X)
	h.cursor.Y = physics.Clamp(h.cursor.Y, field.Min.Y, field.Max.Y)
}

// apply carries out the simulation's intents on the host side.
func (h *host) apply(intents []game.Intent) {
	for _, in := range intents {
		switch v := in.(type) {
		case game.SpawnEntity:
		case game.RemoveEntity:
			h.fx.forget(v.Handle)
		case game.PlayEffect:
			h.fx.play(v.Handle, v.Effect, v.Duration)
		case game.SetScale:
			h.log.Debug("ship scale", zap.Float64("scale", v.Scale))
		case game.GameOver:
			h.gameOver()
		}
	}
}

func (h *host) gameOver() {
	h.state = GameStateOver
	survived := time.Duration(h.survived * float64(time.Second))
	h.log.Info("game over", zap.Int("game", h.games), zap.Duration("survived", survived))
	if h.sessions != nil && h.session != nil {
		h.sessions.RecordRun(h.session.ID, survived)
	}
}
