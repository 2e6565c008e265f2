// Package workflow joins the file layer and the codec into the file-level
// operations offered by the command-line tool and the MCP server.
//
// Every operation takes its inputs as explicit arguments. An empty input path
// means the user cancelled the selection and yields ErrCancelled, which
// callers should treat as a no-op rather than a failure.
package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/stego-tools-mcp/internal/imaging"
	"github.com/ironsheep/stego-tools-mcp/internal/stego"
)

// ErrCancelled reports that no input was chosen.
var ErrCancelled = errors.New("operation cancelled")

// EncodeResult describes a completed encode.
type EncodeResult struct {
	OutputPath    string `json:"output_path"`
	MessageLength int    `json:"message_length"`
	Capacity      int    `json:"capacity"`
	BitsWritten   int    `json:"bits_written"`
	PixelsTouched int    `json:"pixels_touched"`

	// LossyInput is set when the cover was read from a lossy format.
	LossyInput bool `json:"lossy_input"`
}

// DecodeResult describes a completed decode. Found is false when the image
// carries no message; that is not an error.
type DecodeResult struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
	Length  int    `json:"length"`
}

// Capacity returns how many characters the image at path can hide.
func Capacity(cache *imaging.ImageCache, path string) (int, error) {
	if path == "" {
		return 0, ErrCancelled
	}
	grid, err := cache.Load(path)
	if err != nil {
		return 0, err
	}
	return stego.Capacity(grid), nil
}

// EncodeFile hides message in the image at inputPath and writes the result to
// outputPath as PNG.
//
// The message is checked against the image capacity before anything is
// written. On any failure no output file is created. outputPath is evicted
// from cache after a successful write.
//
// # Errors
//
//   - ErrCancelled if inputPath is empty
//   - imaging.ErrImageUnavailable if the cover cannot be loaded
//   - stego.ErrMessageTooLarge (as *stego.MessageTooLargeError)
//   - stego.ErrUnsupportedCharacter (as *stego.UnsupportedCharacterError)
//   - I/O errors from writing the output, unchanged
func EncodeFile(cache *imaging.ImageCache, inputPath, message, outputPath string) (*EncodeResult, error) {
	if inputPath == "" {
		return nil, ErrCancelled
	}

	grid, err := cache.Load(inputPath)
	if err != nil {
		return nil, err
	}

	capacity := stego.Capacity(grid)
	encoded, err := stego.Encode(grid, message)
	if err != nil {
		return nil, err
	}

	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
	}
	written, err := imaging.SavePNG(outputPath, encoded)
	if err != nil {
		return nil, err
	}
	cache.Evict(written)

	bits, pixels := stego.Footprint(grid, message)

	return &EncodeResult{
		OutputPath:    written,
		MessageLength: len([]rune(message)),
		Capacity:      capacity,
		BitsWritten:   bits,
		PixelsTouched: pixels,
		LossyInput:    imaging.IsLossyFormat(imaging.FormatOf(inputPath)),
	}, nil
}

// DecodeFile recovers the message hidden in the image at path.
func DecodeFile(cache *imaging.ImageCache, path string) (*DecodeResult, error) {
	if path == "" {
		return nil, ErrCancelled
	}

	grid, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	msg, found := stego.Decode(grid)
	return &DecodeResult{
		Found:   found,
		Message: msg,
		Length:  len([]rune(msg)),
	}, nil
}

// CompareFiles reports the differences between a cover image and a stego
// image.
func CompareFiles(cache *imaging.ImageCache, coverPath, stegoPath string) (*imaging.CompareResult, error) {
	if coverPath == "" || stegoPath == "" {
		return nil, ErrCancelled
	}
	a, err := cache.Load(coverPath)
	if err != nil {
		return nil, err
	}
	b, err := cache.Load(stegoPath)
	if err != nil {
		return nil, err
	}
	return imaging.Compare(a, b)
}

// DefaultOutputPath suggests where to save the stego version of inputPath:
// "<base>-encoded.png" in the user's Downloads directory, or next to the
// input when there is no Downloads directory.
func DefaultOutputPath(inputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := fmt.Sprintf("%s-encoded.png", base)

	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, "Downloads")
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return filepath.Join(dir, name)
		}
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}
