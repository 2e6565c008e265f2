package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// createNoiseGrid creates an in-memory NRGBA grid with every channel,
// alpha included, set from a simple deterministic pattern.
func createNoiseGrid(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = uint8(i*37 + i/7)
	}
	return img
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1 == nil {
		t.Fatal("Load returned nil image")
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}
	if c := img1.NRGBAAt(50, 50); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel: got %v, want opaque red", c)
	}

	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if !errors.Is(err, ErrImageUnavailable) {
		t.Errorf("Load: got %v, want ErrImageUnavailable", err)
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	tmpFile, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	_, err = cache.Load(tmpFile.Name())
	if !errors.Is(err, ErrImageUnavailable) {
		t.Errorf("Load: got %v, want ErrImageUnavailable", err)
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})
	defer os.Remove(imgPath)

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	cache.mu.RLock()
	count := len(cache.images)
	cache.mu.RUnlock()

	if count != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", count)
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(imgPath)

	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove image from cache")
	}
}

func TestImageCache_Evict_NonExistent(t *testing.T) {
	cache := NewImageCache()
	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})
	defer os.Remove(imgPath)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestToGrid(t *testing.T) {
	t.Run("gray becomes opaque", func(t *testing.T) {
		gray := image.NewGray(image.Rect(0, 0, 4, 3))
		gray.SetGray(1, 1, color.Gray{Y: 77})

		grid := ToGrid(gray)
		if c := grid.NRGBAAt(1, 1); c != (color.NRGBA{77, 77, 77, 255}) {
			t.Errorf("pixel: got %v, want {77 77 77 255}", c)
		}
	})

	t.Run("origin normalized", func(t *testing.T) {
		base := createNoiseGrid(10, 10)
		sub := base.SubImage(image.Rect(3, 4, 8, 9))

		grid := ToGrid(sub)
		if grid.Rect != image.Rect(0, 0, 5, 5) {
			t.Errorf("bounds: got %v, want (0,0)-(5,5)", grid.Rect)
		}
		if grid.NRGBAAt(0, 0) != base.NRGBAAt(3, 4) {
			t.Error("pixel (0,0) does not match source (3,4)")
		}
	})

	t.Run("independent copy", func(t *testing.T) {
		src := createNoiseGrid(2, 2)
		grid := ToGrid(src)
		grid.Pix[0]++
		if grid.Pix[0] == src.Pix[0] {
			t.Error("ToGrid shares pixel memory with its source")
		}
	})
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})
	defer os.Remove(imgPath)

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.Capacity != 11250 {
		t.Errorf("Capacity: got %d, want 11250", info.Capacity)
	}
	if info.Lossy {
		t.Error("PNG should not be reported as lossy")
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_SixteenBit(t *testing.T) {
	cache := NewImageCache()
	path := filepath.Join(t.TempDir(), "deep.png")

	img := image.NewNRGBA64(image.Rect(0, 0, 8, 8))
	img.SetNRGBA64(0, 0, color.NRGBA64{R: 0x1234, G: 0x5678, B: 0x9abc, A: 0x8000})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	png.Encode(f, img)
	f.Close()

	info, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.ColorDepth != "16-bit" {
		t.Errorf("ColorDepth: got %s, want 16-bit", info.ColorDepth)
	}
	if !info.HasAlpha {
		t.Error("HasAlpha should be true")
	}
	if info.Capacity != 24 {
		t.Errorf("Capacity: got %d, want 24", info.Capacity)
	}
}

func TestLoadImageInfo_FormatDetection(t *testing.T) {
	cache := NewImageCache()

	tests := []struct {
		ext    string
		format string
		lossy  bool
	}{
		{".png", "png", false},
		{".PNG", "png", false},
		{".jpg", "jpeg", true},
		{".jpeg", "jpeg", true},
		{".gif", "gif", false},
		{".bmp", "bmp", false},
		{".tiff", "tiff", false},
		{".webp", "webp", true},
		{".xyz", "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			tmpPath := filepath.Join(t.TempDir(), "test-format"+tt.ext)

			// A valid PNG regardless of extension; decoding sniffs content.
			img := image.NewRGBA(image.Rect(0, 0, 10, 10))
			f, err := os.Create(tmpPath)
			if err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
			png.Encode(f, img)
			f.Close()

			info, err := LoadImageInfo(cache, tmpPath)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}

			if info.Format != tt.format {
				t.Errorf("Format for %s: got %s, want %s", tt.ext, info.Format, tt.format)
			}
			if info.Lossy != tt.lossy {
				t.Errorf("Lossy for %s: got %v, want %v", tt.ext, info.Lossy, tt.lossy)
			}
		})
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := LoadImageInfo(cache, "/nonexistent/image.png")
	if !errors.Is(err, ErrImageUnavailable) {
		t.Errorf("LoadImageInfo: got %v, want ErrImageUnavailable", err)
	}
}
