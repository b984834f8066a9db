//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"pokedex-bot/internal/domain/port"
)

// ErrCameraUnavailable сборка без тега gocv
var ErrCameraUnavailable = errors.New("gocv build tag is not enabled")

type Camera struct {
	DeviceID     int
	JPEGQuality  int
	WarmupFrames int
}

// NewCamera возвращает ошибку, если сборка без тега gocv.
func NewCamera(deviceID int) (*Camera, error) {
	_ = deviceID
	return nil, ErrCameraUnavailable
}

// Capture возвращает ошибку, если сборка без тега gocv.
func (c *Camera) Capture(ctx context.Context) ([]byte, error) {
	_ = ctx
	return nil, ErrCameraUnavailable
}

func (c *Camera) Close() error {
	return nil
}

var _ port.ImageSource = (*Camera)(nil)
