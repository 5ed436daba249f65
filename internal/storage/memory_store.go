package storage

import (
	"sync"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
)

// MemoryStore is a process-local store. It backs ":memory:" and tests.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string][]byte

	// CommitErr and ClearErr, when set, make the next operations fail.
	// LoadErr makes Load fall back to defaults as an unreachable store does.
	CommitErr error
	ClearErr  error
	LoadErr   error
	Commits   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error           { return nil }
func (s *MemoryStore) Close() error          { return nil }
func (s *MemoryStore) GetConfigPath() string { return ":memory:" }

func (s *MemoryStore) Load(defaults models.UserData) (models.UserData, bool) {
	s.mu.Lock()
	blob, ok := s.slots[constants.StateKey]
	loadErr := s.LoadErr
	s.mu.Unlock()
	if loadErr != nil || !ok {
		return defaults, true
	}
	return decode(blob, defaults, ":memory:")
}

func (s *MemoryStore) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LoadErr
}

func (s *MemoryStore) Commit(data models.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CommitErr != nil {
		return commitError(s.CommitErr)
	}
	blob, err := encode(data)
	if err != nil {
		return commitError(err)
	}
	s.slots[constants.StateKey] = blob
	s.Commits++
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return clearError(s.ClearErr)
	}
	delete(s.slots, constants.StateKey)
	return nil
}

// Put stores a raw blob under the state key, bypassing encoding.
func (s *MemoryStore) Put(blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[constants.StateKey] = blob
}
