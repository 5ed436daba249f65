package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/logger"
	"github.com/julianstephens/miaomotion/internal/models"
)

// JSONStore keeps the aggregate in a JSON file shaped like a key-value slot:
// {"miao_motion_data": {...}}.
type JSONStore struct {
	path    string
	mu      sync.Mutex
	loadErr error
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) Load(defaults models.UserData) (models.UserData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadErr = nil
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.loadErr = err
			logger.Warn("Failed to read state file", "path", s.path, "error", err)
		}
		return defaults, true
	}

	var slots map[string]json.RawMessage
	if err := json.Unmarshal(raw, &slots); err != nil {
		logger.Warn("Discarding unreadable state file", "path", s.path, "error", err)
		return defaults, true
	}
	blob, ok := slots[constants.StateKey]
	if !ok || string(blob) == "null" {
		return defaults, true
	}
	return decode(blob, defaults, s.path)
}

func (s *JSONStore) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *JSONStore) Commit(data models.UserData) error {
	blob, err := encode(data)
	if err != nil {
		return commitError(err)
	}
	raw, err := json.MarshalIndent(map[string]json.RawMessage{constants.StateKey: blob}, "", "  ")
	if err != nil {
		return commitError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.path, raw); err != nil {
		return commitError(err)
	}
	return nil
}

func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return clearError(err)
	}
	return nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path, so readers never observe a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
