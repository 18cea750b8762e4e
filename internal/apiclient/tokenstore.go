package apiclient

import "sync"

// TokenStore holds the session's token pair.  It is passed explicitly to
// NewClient instead of living in ambient storage so the refresh/replay logic
// can be exercised in tests with a plain in-memory store.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string)
	// Clear drops both tokens; the transport calls it when a refresh attempt
	// is rejected so a dead session is not replayed forever.
	Clear()
}

// MemoryTokenStore is a mutex-guarded in-memory TokenStore.
type MemoryTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemoryTokenStore returns a store seeded with the given pair.  Either
// value may be empty.
func NewMemoryTokenStore(access, refresh string) *MemoryTokenStore {
	return &MemoryTokenStore{access: access, refresh: refresh}
}

func (s *MemoryTokenStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *MemoryTokenStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

func (s *MemoryTokenStore) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
}
