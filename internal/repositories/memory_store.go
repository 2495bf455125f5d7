package repositories

import (
	"fmt"
	"slices"
	"sync"

	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/shared"
)

var _ models.Store = (*MemoryStore)(nil)

// MemoryStore implements a simple in-memory store. It is intended mainly for testing.
//
// Boards are kept encoded, so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	boards   map[string][]byte
	manifest []string
	hasIndex bool
}

// NewMemoryStore returns a new, empty memory store with no manifest.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string][]byte)}
}

func (s *MemoryStore) Load(name string) (*models.Leaderboard, error) {
	s.mu.RLock()
	data, ok := s.boards[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrBoardNotFound, name)
	}
	return models.Decode(data)
}

func (s *MemoryStore) Save(board *models.Leaderboard) error {
	data, err := board.Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrPersistence, err)
	}
	s.mu.Lock()
	s.boards[board.Name()] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[name]; !ok {
		return fmt.Errorf("%w: %s", shared.ErrBoardNotFound, name)
	}
	delete(s.boards, name)
	return nil
}

func (s *MemoryStore) ReadManifest() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasIndex {
		return nil, shared.ErrManifestNotFound
	}
	return slices.Clone(s.manifest), nil
}

func (s *MemoryStore) WriteManifest(names []string) error {
	s.mu.Lock()
	s.manifest = slices.Clone(names)
	s.hasIndex = true
	s.mu.Unlock()
	return nil
}
