// Package geo resolves the location label shown on the home screen. Only
// success or failure of the lookup matters, coordinates are never used.
package geo

import (
	"context"
	"errors"

	"github.com/julianstephens/miaomotion/internal/constants"
)

// ErrPermissionDenied is returned when the user declined location access.
var ErrPermissionDenied = errors.New("location permission denied")

// Locator looks up the user's position.
type Locator interface {
	Locate(ctx context.Context) error
}

// StaticLocator answers with a fixed permission decision.
type StaticLocator struct {
	Granted bool
}

func (l StaticLocator) Locate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !l.Granted {
		return ErrPermissionDenied
	}
	return nil
}

// Label maps a lookup outcome to its display label. Any failure, including
// a cancelled context, gets the fallback label.
func Label(err error) string {
	if err != nil {
		return constants.LocationLabelFallback
	}
	return constants.LocationLabelGranted
}

// Resolve runs the locator and returns the label to display.
func Resolve(ctx context.Context, l Locator) string {
	if l == nil {
		return constants.LocationLabelFallback
	}
	return Label(l.Locate(ctx))
}
