package sessions

import "sync"

// MemoryStore is a Store held entirely in memory. It implements the same
// synchronous write semantics as FileStore without touching the filesystem,
// which makes it the substitute of choice in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]string{},
	}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	return value, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) SetAll(entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]string{}
	for k, v := range entries {
		s.entries[k] = v
	}
	return nil
}

func (s *MemoryStore) RemoveAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]string{}
	return nil
}

// Len returns the number of entries currently held. Tests use it to assert
// the store was emptied or populated wholesale.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
