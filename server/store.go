package server

import (
	"errors"
	"sync"

	"github.com/etnz/powermix"
	"github.com/google/uuid"
)

var errSessionNotFound = errors.New("session not found")

// session is one user's simulation. Its mutex serializes every operation on
// it, the simulation itself is not safe for concurrent use.
type session struct {
	mu  sync.Mutex
	sim *powermix.Simulation
}

// store keeps the live sessions in memory.
type store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func newStore() *store {
	return &store{sessions: make(map[uuid.UUID]*session)}
}

// add registers a new session and returns its id.
func (s *store) add(sim *powermix.Simulation) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{sim: sim}
	return id
}

func (s *store) get(id string) (*session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errSessionNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[uid]
	if !ok {
		return nil, errSessionNotFound
	}
	return sess, nil
}

func (s *store) remove(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return errSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[uid]; !ok {
		return errSessionNotFound
	}
	delete(s.sessions, uid)
	return nil
}

// count returns the number of live sessions.
func (s *store) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// with runs f while holding the session lock.
func (s *store) with(id string, f func(sim *powermix.Simulation) error) error {
	sess, err := s.get(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return f(sess.sim)
}
