package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// PNGPath returns path with a ".png" extension appended when it has none.
// Paths with any other extension are rejected, since only PNG preserves the
// hidden bits.
func PNGPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("output path is empty")
	}
	switch ext := filepath.Ext(path); strings.ToLower(ext) {
	case ".png":
		return path, nil
	case "":
		return path + ".png", nil
	default:
		return "", fmt.Errorf("output must be a PNG file, got %q", ext)
	}
}

// SavePNG writes img to path as a PNG file.
//
// The image is first written to a temporary file in the destination
// directory and then renamed over path, so on any failure path is left
// untouched and no partial file remains.
//
// Returns the final path written, which has ".png" appended if path had no
// extension.
func SavePNG(path string, img image.Image) (string, error) {
	path, err := PNGPath(path)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".stego-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	encode := imgio.PNGEncoder()
	if err := encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	return path, nil
}

// encodePNGBase64 encodes img as PNG and returns it base64-encoded.
func encodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	encode := imgio.PNGEncoder()
	if err := encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
