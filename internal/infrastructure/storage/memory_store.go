package storage

import (
	"encoding/json"
	"sync"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// MemoryStore is a process-local SessionStore. The user is kept serialized so
// callers never share a pointer with the store.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryStore) User() (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, false
	}
	var u domain.User
	if err := json.Unmarshal(s.user, &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (s *MemoryStore) SetUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u == nil {
		s.user = nil
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	s.user = data
}

func (s *MemoryStore) Clear() {
	s.SetToken("")
	s.SetUser(nil)
}
