// Package session tracks the players connected over SSH. Each session runs its
// own simulation; the manager only hands out ids, delivers server events and
// keeps the survival leaderboard.
package session

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrFull is returned by Register when the session limit is reached.
var ErrFull = errors.New("session limit reached")

// maxUsernameLength caps the displayed user name.
const maxUsernameLength = 16

// EventType identifies a server-to-session event.
type EventType int

const (
	EventServerShutdown EventType = iota
	EventNewRecord
)

// Event is sent from the manager to a session.
type Event struct {
	Type EventType
	Run  Run // set for EventNewRecord
}

// Handle is a registered session.
type Handle struct {
	ID     string
	User   string
	Joined time.Time
	Events chan Event
}

// Run is one finished game on the leaderboard.
type Run struct {
	User     string
	Survived time.Duration
	At       time.Time
}

// Manager registers sessions and broadcasts events to them. It is safe for
// concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Handle
	max      int
	board    []Run
	boardLen int
	log      *zap.Logger
}

// NewManager creates a manager accepting at most maxSessions sessions
// (0 means unlimited).
func NewManager(maxSessions int, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Handle),
		max:      maxSessions,
		boardLen: 10,
		log:      log,
	}
}

// Register adds a session for user and returns its handle.
func (m *Manager) Register(user string) (*Handle, error) {
	if len(user) > maxUsernameLength {
		user = user[:maxUsernameLength]
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.max > 0 && len(m.sessions) >= m.max {
		return nil, ErrFull
	}

	h := &Handle{
		ID:     uuid.NewString(),
		User:   user,
		Joined: time.Now(),
		Events: make(chan Event, 16),
	}
	m.sessions[h.ID] = h
	m.log.Info("session registered",
		zap.String("id", h.ID),
		zap.String("user", user),
		zap.Int("sessions", len(m.sessions)),
	)
	return h, nil
}

// Unregister removes the session and closes its event channel.
// Unknown ids are ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.sessions[id]
	if !ok {
		return
	}
	close(h.Events)
	delete(m.sessions, id)
	m.log.Info("session unregistered",
		zap.String("id", id),
		zap.String("user", h.User),
		zap.Duration("connected", time.Since(h.Joined)),
	)
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RecordRun adds a finished game to the leaderboard. When it becomes the best
// run, every session is told about it.
func (m *Manager) RecordRun(id string, survived time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.sessions[id]
	if !ok {
		return
	}

	run := Run{User: h.User, Survived: survived, At: time.Now()}
	pos, _ := slices.BinarySearchFunc(m.board, run, func(a, b Run) int {
		// Longest first; ties keep the earlier run ahead.
		switch {
		case a.Survived > b.Survived:
			return -1
		case a.Survived < b.Survived:
			return 1
		default:
			return -1
		}
	})
	if pos >= m.boardLen {
		return
	}
	m.board = slices.Insert(m.board, pos, run)
	if len(m.board) > m.boardLen {
		m.board = m.board[:m.boardLen]
	}

	if pos == 0 {
		m.log.Info("new best run", zap.String("user", run.User), zap.Duration("survived", survived))
		m.broadcastLocked(Event{Type: EventNewRecord, Run: run})
	}
}

// TopRuns returns up to n leaderboard entries, best first.
func (m *Manager) TopRuns(n int) []Run {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n > len(m.board) {
		n = len(m.board)
	}
	return slices.Clone(m.board[:n])
}

// Shutdown notifies every session that the server is going down and waits for
// them to unregister, or for timeout to pass.
func (m *Manager) Shutdown(timeout time.Duration) {
	m.mu.RLock()
	m.broadcastLocked(Event{Type: EventServerShutdown})
	m.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if m.Count() == 0 {
			return
		}
		select {
		case <-deadline:
			m.log.Warn("shutdown timed out", zap.Int("remaining", m.Count()))
			return
		case <-ticker.C:
		}
	}
}

// broadcastLocked sends ev without blocking; a full channel drops it.
func (m *Manager) broadcastLocked(ev Event) {
	for _, h := range m.sessions {
		select {
		case h.Events <- ev:
		default:
		}
	}
}
