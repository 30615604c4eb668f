package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
)

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	idle     time.Duration
	now      func() time.Time
}

func NewMemoryStore(idle time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]models.Session),
		idle:     idle,
		now:      time.Now,
	}
}

// WithClock replaces the time source; tests use it to step past the idle window.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Create(ctx context.Context, userName string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	sess := models.Session{
		ID:         newID(),
		UserName:   userName,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	s.sessions[sess.ID] = sess

	return &sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id, s.now())
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *MemoryStore) Touch(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, err := s.lookupLocked(id, now)
	if err != nil {
		return nil, err
	}
	sess.LastSeenAt = now
	s.sessions[id] = sess

	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Len reports stored sessions, including expired ones not yet evicted.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) lookupLocked(id string, now time.Time) (models.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return models.Session{}, common.ErrorNotFound
	}
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return models.Session{}, common.ErrorNotFound
	}
	return sess, nil
}

func (s *MemoryStore) evictLocked(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) expired(sess models.Session, now time.Time) bool {
	return now.Sub(sess.LastSeenAt) >= s.idle
}
