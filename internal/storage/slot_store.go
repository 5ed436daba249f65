package storage

import (
	"database/sql"
	"sync"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/migration"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/storage/postgres"
	"github.com/julianstephens/miaomotion/internal/storage/sqlite"
)

// slotBackend is a key-value table with schema migrations.
type slotBackend interface {
	Init() error
	Close() error
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	GetConfigPath() string
	SchemaStatus() (migration.Status, error)
	GetDB() *sql.DB
}

// SlotStore adapts a SQL key-value backend to Provider.
type SlotStore struct {
	backend slotBackend
	kind    string

	mu      sync.Mutex
	loadErr error
}

// NewSQLiteStore creates a store backed by a local SQLite file.
func NewSQLiteStore(path string) *SlotStore {
	return &SlotStore{backend: sqlite.NewStore(path), kind: "sqlite"}
}

// NewPostgresStore creates a store backed by PostgreSQL. connStr must not
// embed a password.
func NewPostgresStore(connStr string) *SlotStore {
	return &SlotStore{backend: postgres.New(connStr), kind: "postgres"}
}

func (s *SlotStore) Init() error           { return s.backend.Init() }
func (s *SlotStore) Close() error          { return s.backend.Close() }
func (s *SlotStore) GetConfigPath() string { return s.backend.GetConfigPath() }

// DB exposes the open connection for diagnostics. ok is false before Init.
func (s *SlotStore) DB() (db *sql.DB, ok bool) {
	db = s.backend.GetDB()
	return db, db != nil
}

// Kind is "sqlite" or "postgres".
func (s *SlotStore) Kind() string { return s.kind }

// SchemaStatus reports the migration state of the backing database.
func (s *SlotStore) SchemaStatus() (migration.Status, error) {
	return s.backend.SchemaStatus()
}

func (s *SlotStore) Load(defaults models.UserData) (models.UserData, bool) {
	blob, ok, err := s.backend.Get(constants.StateKey)
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
	if err != nil {
		// Load never fails; an unreachable slot reads as a first run and
		// LoadError keeps the cause.
		warnLoad(s.kind, err)
		return defaults, true
	}
	if !ok {
		return defaults, true
	}
	return decode(blob, defaults, s.kind)
}

func (s *SlotStore) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *SlotStore) Commit(data models.UserData) error {
	blob, err := encode(data)
	if err != nil {
		return commitError(err)
	}
	if err := s.backend.Put(constants.StateKey, blob); err != nil {
		return commitError(err)
	}
	return nil
}

func (s *SlotStore) Clear() error {
	if err := s.backend.Delete(constants.StateKey); err != nil {
		return clearError(err)
	}
	return nil
}
