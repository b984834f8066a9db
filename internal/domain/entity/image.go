package entity

import "encoding/base64"

// EncodeImage кодирует байты изображения в base64 без потерь.
func EncodeImage(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeImage обратная операция к EncodeImage.
func DecodeImage(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}

// ImageDataURI встраивает JPEG в data URI для запроса к модели
func ImageDataURI(data []byte) string {
	return "data:image/jpeg;base64," + EncodeImage(data)
}
