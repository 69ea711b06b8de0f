package chat

import (
	"errors"
	"sync"
)

// ErrStreamActive is returned when a send is attempted while another message
// is still streaming. The UI issues one request at a time per session.
var ErrStreamActive = errors.New("a message is already streaming for this session")

// Session holds the opaque conversation identifier the backend hands out in
// session events. It outlives individual messages: the id captured during
// one exchange is attached to the next request so the backend keeps context.
// It also enforces the single-active-stream invariant.
type Session struct {
	mu     sync.Mutex
	id     string
	active bool
}

func NewSession() *Session {
	return &Session{}
}

// ID returns the current session identifier, empty when no session has been
// established or after Clear.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// SetID captures the identifier from a session event.
func (s *Session) SetID(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
}

// Clear drops the session identifier; the next request starts a fresh
// backend conversation.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
}

// Begin marks a stream as active, failing if one already is.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return ErrStreamActive
	}
	s.active = true
	return nil
}

// End releases the active-stream slot. Safe to call when no stream is
// active.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}
