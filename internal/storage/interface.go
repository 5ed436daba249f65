package storage

import (
	"errors"

	"github.com/julianstephens/miaomotion/internal/models"
)

var (
	// ErrCommitFailed wraps any failure to persist the aggregate.
	ErrCommitFailed = errors.New("commit failed")
	// ErrClearFailed wraps any failure to erase the aggregate.
	ErrClearFailed = errors.New("clear failed")
)

// Provider owns the single persisted aggregate.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Load returns the persisted aggregate. Absent or unreadable state is not
	// an error: defaults come back with firstRun set.
	Load(defaults models.UserData) (data models.UserData, firstRun bool)
	// Commit replaces the persisted aggregate.
	Commit(models.UserData) error
	// Clear erases the persisted aggregate.
	Clear() error

	// GetConfigPath returns the file path or connection string backing the store.
	GetConfigPath() string
}

// LoadErrorReporter is implemented by stores that can tell an unreachable
// slot apart from an absent one.
type LoadErrorReporter interface {
	// LoadError returns the failure behind the last Load, or nil when the
	// slot was read or simply absent.
	LoadError() error
}

// LoadError reports why p's last Load fell back to defaults, if p knows.
func LoadError(p Provider) error {
	if r, ok := p.(LoadErrorReporter); ok {
		return r.LoadError()
	}
	return nil
}
