package export

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRRenderer renders strings as QR codes.
type QRRenderer interface {
	// PNG returns a PNG image of content.
	PNG(content string) ([]byte, error)

	// Text returns a terminal preview of content.
	Text(content string) (string, error)
}

// QRCodes renders with go-qrcode.
type QRCodes struct {
	Level qrcode.RecoveryLevel
	Size  int
}

// NewQRCodes returns a renderer producing 256px medium-recovery codes.
func NewQRCodes() QRCodes {
	return QRCodes{Level: qrcode.Medium, Size: 256}
}

// PNG renders content as a PNG image of q.Size pixels.
func (q QRCodes) PNG(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, q.Level, q.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR image: %w", err)
	}
	return png, nil
}

// Text renders content as a compact block-character preview.
func (q QRCodes) Text(content string) (string, error) {
	code, err := qrcode.New(content, q.Level)
	if err != nil {
		return "", fmt.Errorf("failed to render QR preview: %w", err)
	}
	return code.ToSmallString(false), nil
}
