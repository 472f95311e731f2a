package position

import (
	"context"
	"errors"
	"time"
)

// Fix is a single resolved geographic position reading.
type Fix struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	AccuracyM float64   `json:"accuracy_m"`
	Timestamp time.Time `json:"timestamp"`
}

var (
	// ErrPermissionDenied means the device has not granted location access.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrNoFix means no position has been reported yet.
	ErrNoFix = errors.New("no position fix available")
)

// Provider supplies on-demand position fixes behind a one-time
// authorization gate.
type Provider interface {
	// Authorize confirms location permission. Denial is terminal for the
	// session until the device grants access.
	Authorize(ctx context.Context) error
	// CurrentFix resolves the device's position. May be slow; callers
	// bound it with the context.
	CurrentFix(ctx context.Context) (Fix, error)
}
