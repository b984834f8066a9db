package port

import "context"

// ImageSource источник снимков (веб-камера)
type ImageSource interface {
	// Capture делает один снимок и возвращает его в JPEG
	Capture(ctx context.Context) ([]byte, error)

	Close() error
}
