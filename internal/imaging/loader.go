package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/stego-tools-mcp/internal/stego"
)

// ErrImageUnavailable is wrapped by every load failure: a missing file, an
// unreadable file or undecodable image data.
var ErrImageUnavailable = errors.New("image unavailable")

// cacheEntry holds a normalized grid and facts about the decoded source that
// normalization hides.
type cacheEntry struct {
	grid       *image.NRGBA
	hasAlpha   bool
	colorDepth string
}

// ImageCache provides thread-safe caching of loaded grids to avoid redundant
// disk reads.
//
// Grids are keyed by the exact path string passed to Load. Callers that write
// to a path must Evict it so later loads see the new contents.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	grid, err := cache.Load("/path/to/cover.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := stego.Encode(grid, "hello")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*cacheEntry
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*cacheEntry),
	}
}

// Load returns the grid for path, decoding and caching it on first use.
//
// The returned grid is shared with other callers and must not be modified.
//
// # Errors
//
// Returns an error wrapping ErrImageUnavailable if the file does not exist,
// cannot be read, or is not a supported image format.
func (c *ImageCache) Load(path string) (*image.NRGBA, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.grid, nil
}

func (c *ImageCache) load(path string) (*cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageUnavailable, path, err)
	}

	e := &cacheEntry{
		grid:       ToGrid(src),
		colorDepth: "8-bit",
	}
	switch src.(type) {
	case *image.RGBA, *image.NRGBA, *image.Paletted:
		e.hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		e.hasAlpha = true
		e.colorDepth = "16-bit"
	case *image.Gray16:
		e.colorDepth = "16-bit"
	}

	c.mu.Lock()
	c.images[path] = e
	c.mu.Unlock()

	return e, nil
}

// Clear removes all grids from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific grid from the cache by its path.
// If the path is not cached, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ToGrid converts any image to an independent *image.NRGBA with the origin
// at (0,0). Missing alpha is expanded to fully opaque; 16-bit channels are
// reduced to 8 bits.
func ToGrid(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// ImageInfo contains metadata about an image file and how much text it can
// hide.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format by file extension: "png", "jpeg",
	// "gif", "bmp", "tiff", "webp", or "unknown".
	Format string `json:"format"`

	// ColorDepth indicates the source bit depth per channel: "8-bit" or "16-bit".
	// Grids are always 8-bit after loading.
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the source image carries transparency data.
	HasAlpha bool `json:"has_alpha"`

	// Lossy is true for formats whose earlier compression may have
	// disturbed the channel LSBs.
	Lossy bool `json:"lossy"`

	// Capacity is the maximum number of characters the image can hide.
	Capacity int `json:"capacity"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns its metadata and capacity.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// # Format Detection
//
// The format is determined by file extension, case-insensitively:
//   - ".png" -> "png"
//   - ".jpg", ".jpeg" -> "jpeg" (lossy)
//   - ".gif" -> "gif"
//   - ".bmp" -> "bmp"
//   - ".tif", ".tiff" -> "tiff"
//   - ".webp" -> "webp" (lossy)
//   - Other extensions -> "unknown"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := FormatOf(path)
	bounds := e.grid.Bounds()

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    e.colorDepth,
		HasAlpha:      e.hasAlpha,
		Lossy:         IsLossyFormat(format),
		Capacity:      stego.Capacity(e.grid),
		FileSizeBytes: stat.Size(),
	}, nil
}

// FormatOf names the image format implied by the extension of path.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	}
	return "unknown"
}

// IsLossyFormat reports whether format names a lossy encoding.
func IsLossyFormat(format string) bool {
	return format == "jpeg" || format == "webp"
}
