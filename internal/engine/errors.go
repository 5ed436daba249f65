package engine

import (
	"errors"
	"fmt"
)

// ErrRejected marks a validation rejection. The aggregate is left unchanged
// whenever a transition returns an error wrapping it.
var ErrRejected = errors.New("rejected")

var (
	ErrAlreadyCheckedIn = fmt.Errorf("%w: already checked in for this date", ErrRejected)
	ErrInsufficientFood = fmt.Errorf("%w: insufficient food", ErrRejected)
	ErrEmptyTask        = fmt.Errorf("%w: task must not be empty", ErrRejected)
	ErrInvalidDate      = fmt.Errorf("%w: invalid date", ErrRejected)
	ErrInvalidTime      = fmt.Errorf("%w: invalid time", ErrRejected)
	ErrInvalidBreed     = fmt.Errorf("%w: invalid breed", ErrRejected)
	ErrInvalidSport     = fmt.Errorf("%w: invalid activity", ErrRejected)
	ErrOutOfOrderDate   = fmt.Errorf("%w: date is before the last check-in", ErrRejected)
)

// IsRejection reports whether err is a validation rejection rather than a
// failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrRejected)
}
