package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/tomz197/hurricaneship/internal/config"
	"github.com/tomz197/hurricaneship/internal/draw"
	applog "github.com/tomz197/hurricaneship/internal/logging"
	"github.com/tomz197/hurricaneship/internal/loop"
	"github.com/tomz197/hurricaneship/internal/session"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := applog.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.Warn("failed to get working directory", zap.Error(workErr))
	}
	log.Info("ssh config",
		zap.String("host", cfg.SSH.Host),
		zap.String("port", cfg.SSH.Port),
		zap.String("host_key", cfg.SSH.HostKeyPath),
		zap.String("working_dir", workingDir),
		zap.Int("max_sessions", cfg.SSH.MaxSessions),
	)

	sessions := session.NewManager(cfg.SSH.MaxSessions, log.Named("sessions"))
	games := &gameHandler{cfg: cfg, log: log.Named("game"), sessions: sessions}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Input latency matters more than packet count.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting ssh server", zap.String("addr", s.Addr))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-done
	log.Info("shutting down, notifying players", zap.Int("sessions", sessions.Count()))
	sessions.Shutdown(cfg.SSH.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", zap.Error(err))
	}
}

// gameHandler runs one simulation per SSH session.
type gameHandler struct {
	cfg      *config.Config
	log      *zap.Logger
	sessions *session.Manager
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h, err := g.sessions.Register(sess.User())
		if err != nil {
			if errors.Is(err, session.ErrFull) {
				fmt.Fprintln(sess, "Server is full, try again in a few minutes.")
			}
			g.log.Warn("session rejected", zap.String("user", sess.User()), zap.Error(err))
			return
		}
		defer g.sessions.Unregister(h.ID)

		log := g.log.With(zap.String("session", h.ID), zap.String("user", h.User))
		log.Info("new game session",
			zap.String("term", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height),
		)

		size := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				size.update(win.Width, win.Height)
			}
		}()

		err = loop.Run(bufio.NewReader(sess), sess, loop.Options{
			Config:       g.cfg,
			Logger:       log,
			TermSizeFunc: size.getSize,
			Session:      h,
			Sessions:     g.sessions,
		})
		if err != nil {
			log.Error("game error", zap.Error(err))
		}

		log.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
