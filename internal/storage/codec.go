package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/miaomotion/internal/logger"
	"github.com/julianstephens/miaomotion/internal/models"
)

// encode serializes the aggregate in its persisted shape.
func encode(data models.UserData) ([]byte, error) {
	data.Normalize()
	blob, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}
	return blob, nil
}

// decode parses a persisted blob. A blob that does not parse degrades to
// defaults and firstRun, logged but never returned as an error.
func decode(blob []byte, defaults models.UserData, source string) (models.UserData, bool) {
	var data models.UserData
	if err := json.Unmarshal(blob, &data); err != nil {
		logger.Warn("Discarding unreadable state", "source", source, "error", err)
		return defaults, true
	}
	data.Normalize()
	return data, false
}

func commitError(err error) error {
	return fmt.Errorf("%w: %v", ErrCommitFailed, err)
}

func clearError(err error) error {
	return fmt.Errorf("%w: %v", ErrClearFailed, err)
}
