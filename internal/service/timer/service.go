package timer

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is the preset selected when a client opens the timer.
const DefaultDuration = 300 * time.Second

// Presets are the selectable mindfulness durations, in seconds.
var Presets = []int{60, 180, 300, 600}

var ErrNoActiveSession = errors.New("no active timer session")

// Session is one running or finished mindfulness countdown.
type Session struct {
	ID        string        `json:"id"`
	Duration  time.Duration `json:"-"`
	StartedAt time.Time     `json:"-"`
}

// State is a point-in-time view of a user's timer.
type State struct {
	ID        string `json:"id"`
	Duration  int    `json:"duration"`
	Remaining int    `json:"remaining"`
	Active    bool   `json:"active"`
	Completed bool   `json:"completed"`
}

// Service tracks one timer session per user. The countdown itself runs
// client-side; the service only holds the deadline.
type Service struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

// NewService bootstraps the timer service.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Start opens a session for the user, replacing any previous one. A
// non-positive duration falls back to the default preset.
func (s *Service) Start(userID string, duration time.Duration) Session {
	if duration <= 0 {
		duration = DefaultDuration
	}

	session := Session{
		ID:        uuid.NewString(),
		Duration:  duration,
		StartedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	return session
}

// Stop discards the user's session. Stopping without one is a no-op.
func (s *Service) Stop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// State reports the user's current countdown.
func (s *Service) State(userID string) (State, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	s.mu.Unlock()

	if !ok {
		return State{}, ErrNoActiveSession
	}

	elapsed := s.now().Sub(session.StartedAt)
	remaining := session.Duration - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return State{
		ID:        session.ID,
		Duration:  int(session.Duration / time.Second),
		Remaining: int(remaining / time.Second),
		Active:    remaining > 0,
		Completed: remaining == 0,
	}, nil
}
