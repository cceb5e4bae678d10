package services

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRService renders place detail URLs as scannable PNG images. The payload is
// always a resolvable URL, never free text.
type QRService struct {
	baseURL string
	level   qrcode.RecoveryLevel
	size    int
}

// NewQRService builds an issuer. level is one of low, medium, high, highest;
// size is the output edge length in pixels.
func NewQRService(baseURL, level string, size int) (*QRService, error) {
	rl, err := recoveryLevel(level)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("qr size must be positive, got %d", size)
	}
	return &QRService{baseURL: baseURL, level: rl, size: size}, nil
}

func recoveryLevel(level string) (qrcode.RecoveryLevel, error) {
	switch level {
	case "low":
		return qrcode.Low, nil
	case "medium":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	default:
		return 0, fmt.Errorf("unknown qr error-correction level %q", level)
	}
}

// PlaceURL is the destination encoded for a place.
func (s *QRService) PlaceURL(placeID uint) string {
	return fmt.Sprintf("%s/api/v1/places/%d", s.baseURL, placeID)
}

// EncodePlace renders the place's detail URL as PNG bytes.
func (s *QRService) EncodePlace(placeID uint) ([]byte, error) {
	png, err := qrcode.Encode(s.PlaceURL(placeID), s.level, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr: %w", err)
	}
	return png, nil
}

// WritePlaceFile renders the place's QR code to path.
func (s *QRService) WritePlaceFile(placeID uint, path string) error {
	if err := qrcode.WriteFile(s.PlaceURL(placeID), s.level, s.size, path); err != nil {
		return fmt.Errorf("failed to write qr file: %w", err)
	}
	return nil
}
