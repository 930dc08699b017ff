package service

import (
	"sync"
	"time"

	"github.com/nikolayk812/freshbasket/internal/domain"
)

type session struct {
	admin     domain.Admin
	expiresAt time.Time
}

// SessionStore is an in-process token store with lazy expiry.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
	}
}

func (s *SessionStore) Put(token string, admin domain.Admin) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = session{
		admin:     admin,
		expiresAt: time.Now().Add(s.ttl),
	}
}

func (s *SessionStore) Get(token string) (domain.Admin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return domain.Admin{}, false
	}

	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return domain.Admin{}, false
	}

	return sess.admin, true
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}
