// Package session holds the per-server automation session settings.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultImplicitWait = 10 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// ErrNegativeWait is returned when setting a negative implicit wait.
var ErrNegativeWait = errors.New("implicit wait must not be negative")

// State is the single session of a bridge. There is no per-session
// isolation: a new session id replaces the previous one and keeps the
// timing settings.
type State struct {
	mu           sync.Mutex
	id           string
	implicitWait time.Duration
	pollInterval time.Duration
}

// New returns a state with the given timings. Zero values select the
// defaults.
func New(implicitWait, pollInterval time.Duration) *State {
	if implicitWait == 0 {
		implicitWait = DefaultImplicitWait
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &State{implicitWait: implicitWait, pollInterval: pollInterval}
}

// Open starts a new session and returns its id.
func (s *State) Open() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = uuid.NewString()
	return s.id
}

// Close ends the session with the given id. Unknown ids are ignored.
func (s *State) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == id {
		s.id = ""
	}
}

// ID returns the current session id, or "" when none is open.
func (s *State) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// SetImplicitWait sets how long element searches keep polling.
func (s *State) SetImplicitWait(d time.Duration) error {
	if d < 0 {
		return ErrNegativeWait
	}
	s.mu.Lock()
	s.implicitWait = d
	s.mu.Unlock()
	return nil
}

// ImplicitWait returns the element search timeout.
func (s *State) ImplicitWait() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.implicitWait
}

// PollInterval returns the delay between element search attempts.
func (s *State) PollInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pollInterval
}
