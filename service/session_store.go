package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("game not found")
	ErrSessionExpired  = errors.New("game expired")
	ErrNotSessionOwner = errors.New("this is not your game")
)

type sessionEntry[T any] struct {
	value    T
	deadline time.Time
}

// SessionStore keeps interactive game state between button presses. Every
// session has a deadline that each successful Get pushes back.
type SessionStore[T any] struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry[T]
	timeout  time.Duration
	now      func() time.Time
}

func NewSessionStore[T any](timeout time.Duration) *SessionStore[T] {
	return &SessionStore[T]{
		sessions: make(map[string]*sessionEntry[T]),
		timeout:  timeout,
		now:      time.Now,
	}
}

// Put stores value under a new id
func (s *SessionStore[T]) Put(value T) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &sessionEntry[T]{value: value, deadline: s.now().Add(s.timeout)}
	return id
}

// Get returns the session and refreshes its deadline. An expired session
// is removed and reported as ErrSessionExpired.
func (s *SessionStore[T]) Get(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	entry, ok := s.sessions[id]
	if !ok {
		return zero, ErrSessionNotFound
	}

	now := s.now()
	if !now.Before(entry.deadline) {
		delete(s.sessions, id)
		return zero, ErrSessionExpired
	}

	entry.deadline = now.Add(s.timeout)
	return entry.value, nil
}

// Deadline returns when the session expires unless touched again
func (s *SessionStore[T]) Deadline(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return time.Time{}, false
	}
	return entry.deadline, true
}

func (s *SessionStore[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup drops expired sessions and returns how many were removed
func (s *SessionStore[T]) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if !now.Before(entry.deadline) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunCleanup sweeps expired sessions every interval until ctx is done
func (s *SessionStore[T]) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Cleanup(); removed > 0 {
				log.WithField("removed", removed).Debug("Swept expired game sessions")
			}
		}
	}
}
