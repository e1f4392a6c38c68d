package session

import (
	"errors"
	"sync"

	"github.com/oren0115/ecommerce-sub000/models"
)

// MemStore keeps the session in memory only. Used in tests and anywhere
// persistence across restarts is not wanted.
type MemStore struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemStore) User() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *MemStore) Set(token string, user *models.User) error {
	if token == "" || user == nil {
		return errors.New("session requires both a token and a user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.token = token
	s.user = &u
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}
