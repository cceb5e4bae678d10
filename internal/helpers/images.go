package helpers

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Letterbox scales an image to fit inside width x height without distorting
// its aspect ratio, then centers it on a white canvas of exactly that size.
func Letterbox(img image.Image, width, height int) image.Image {
	fitted := imaging.Fit(img, width, height, imaging.Lanczos)
	canvas := imaging.New(width, height, color.White)
	return imaging.PasteCenter(canvas, fitted)
}

// ProcessAndSaveImage decodes an uploaded image, letterboxes it to the target
// box and writes it to uploadDir as a JPEG under a random name. The original
// filename never becomes part of the stored path.
func ProcessAndSaveImage(r io.Reader, uploadDir string, width, height, quality int) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.NewString() + ".jpg"
	path := filepath.Join(uploadDir, filename)
	out := Letterbox(img, width, height)
	if err := imaging.Save(out, path, imaging.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return filename, nil
}

// RemoveImage deletes a stored upload. A missing file is not an error; the
// record it backed is already gone or never existed.
func RemoveImage(uploadDir, filename string) error {
	err := os.Remove(filepath.Join(uploadDir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image %q: %w", filename, err)
	}
	return nil
}
