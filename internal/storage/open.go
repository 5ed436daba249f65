package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/miaomotion/internal/logger"
	"github.com/julianstephens/miaomotion/internal/storage/postgres"
)

// MemoryConfig selects the in-memory store.
const MemoryConfig = ":memory:"

// Open selects a Provider from config: a PostgreSQL URL, ":memory:", a
// *.json file, or otherwise a SQLite file. The store is not initialized.
func Open(config string) (Provider, error) {
	switch {
	case postgres.IsConnString(config):
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return NewPostgresStore(config), nil
	case config == MemoryConfig:
		return NewMemoryStore(), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return NewSQLiteStore(path), nil
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsFileBacked reports whether the store keeps its state in a local file
// that can be backed up.
func IsFileBacked(p Provider) bool {
	switch s := p.(type) {
	case *JSONStore:
		return true
	case *SlotStore:
		return s.Kind() == "sqlite"
	}
	return false
}

func warnLoad(source string, err error) {
	logger.Warn("Failed to read state, starting fresh", "source", source, "error", err)
}
