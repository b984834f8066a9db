//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"pokedex-bot/internal/domain/port"
)

// Camera снимает кадры с веб-камеры через OpenCV
type Camera struct {
	DeviceID    int
	JPEGQuality int
	// WarmupFrames кадры, которые пропускаются, пока камера настраивает экспозицию
	WarmupFrames int

	capture *gocv.VideoCapture
}

// NewCamera открывает устройство с номером deviceID
func NewCamera(deviceID int) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", deviceID, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("open camera %d: device is not available", deviceID)
	}

	return &Camera{
		DeviceID:     deviceID,
		JPEGQuality:  90,
		WarmupFrames: 5,
		capture:      capture,
	}, nil
}

// Capture читает один кадр и кодирует его в JPEG
func (c *Camera) Capture(ctx context.Context) ([]byte, error) {
	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; i <= c.WarmupFrames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ok := c.capture.Read(&frame); !ok {
			return nil, fmt.Errorf("read frame from camera %d", c.DeviceID)
		}
	}
	if frame.Empty() {
		return nil, errors.New("empty frame")
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, frame, []int{int(gocv.IMWriteJpegQuality), c.JPEGQuality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// Копируем, потому что память буфера принадлежит OpenCV
	return append([]byte(nil), buf.GetBytes()...), nil
}

// Close освобождает устройство
func (c *Camera) Close() error {
	return c.capture.Close()
}

var _ port.ImageSource = (*Camera)(nil)
