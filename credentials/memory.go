// ABOUTME: In-memory credential store for tests and ephemeral sessions
// ABOUTME: Same contract as FileStore without touching the filesystem

package credentials

import (
	"sync"

	"github.com/tutorlink/tutorlink-go/models"
)

// MemoryStore holds credentials in process memory. Safe for concurrent
// use.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
	user    *models.UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryStore) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *MemoryStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemoryStore) SetUser(user *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return nil
}

func (s *MemoryStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.user = nil
}
