package mem

import (
	"errors"
	"sync"
	"time"

	"photowalk/internal/walk"
)

var ErrSessionExpired = errors.New("session missing or expired")

type SessionStore interface {
	Set(session *walk.Session)

	// Get returns a copy of the session if it has not expired. Expired
	// entries are removed on access.
	Get(id string) (*walk.Session, bool)

	// Update runs fn on the stored session while holding the store lock, so
	// concurrent captures on one session never interleave.
	Update(id string, fn func(*walk.Session) error) error

	// Consume removes the session and returns it (single-use). A second
	// caller for the same id gets ErrSessionExpired.
	Consume(id string) (*walk.Session, error)

	Delete(id string)
}

type entry struct {
	session   *walk.Session
	expiresAt time.Time
}

type Sessions struct {
	mu   sync.Mutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *Sessions) Set(session *walk.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = entry{
		session:   session,
		expiresAt: s.now().Add(s.ttl),
	}
}

func (s *Sessions) Get(id string) (*walk.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		return nil, false
	}
	return e.session.Clone(), true
}

func (s *Sessions) Update(id string, fn func(*walk.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		return ErrSessionExpired
	}
	if err := fn(e.session); err != nil {
		return err
	}
	// activity keeps the session alive
	e.expiresAt = s.now().Add(s.ttl)
	s.data[id] = e
	return nil
}

func (s *Sessions) Consume(id string) (*walk.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrSessionExpired
	}
	delete(s.data, id) // single-use
	return e.session, nil
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

// Sweep drops every expired session and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
			n++
		}
	}
	return n
}

// lookup must be called with the lock held.
func (s *Sessions) lookup(id string) (entry, bool) {
	e, ok := s.data[id]
	if !ok {
		return entry{}, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return entry{}, false
	}
	return e, true
}
