package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"testing"
)

func TestRenderBitPlane(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 10})
	img.SetNRGBA(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	plane, ratio, err := RenderBitPlane(img, "rgb", 1)
	if err != nil {
		t.Fatalf("RenderBitPlane failed: %v", err)
	}

	if c := plane.NRGBAAt(0, 0); c != (color.NRGBA{255, 0, 255, 255}) {
		t.Errorf("pixel 0: got %v", c)
	}
	if c := plane.NRGBAAt(1, 0); c != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("pixel 1: got %v", c)
	}
	if ratio != 0.5 {
		t.Errorf("OnesRatio: got %v, want 0.5", ratio)
	}
}

func TestRenderBitPlane_SingleChannel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 1, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 0, B: 1, A: 255})

	plane, ratio, err := RenderBitPlane(img, "g", 1)
	if err != nil {
		t.Fatalf("RenderBitPlane failed: %v", err)
	}
	if c := plane.NRGBAAt(0, 0); c != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel 0: got %v, want white", c)
	}
	if c := plane.NRGBAAt(1, 0); c != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("pixel 1: got %v, want black", c)
	}
	if ratio != 0.5 {
		t.Errorf("OnesRatio: got %v, want 0.5", ratio)
	}
}

func TestRenderBitPlane_Scale(t *testing.T) {
	img := createNoiseGrid(5, 4)

	plane, _, err := RenderBitPlane(img, "", 3)
	if err != nil {
		t.Fatalf("RenderBitPlane failed: %v", err)
	}
	if plane.Bounds().Dx() != 15 || plane.Bounds().Dy() != 12 {
		t.Errorf("dimensions: got %dx%d, want 15x12", plane.Bounds().Dx(), plane.Bounds().Dy())
	}

	small, _, _ := RenderBitPlane(img, "", 1)
	if plane.NRGBAAt(7, 4) != small.NRGBAAt(2, 1) {
		t.Error("nearest-neighbour upscale altered a bit cell")
	}
}

func TestRenderBitPlane_InvalidArgs(t *testing.T) {
	img := createNoiseGrid(2, 2)

	tests := []struct {
		name    string
		channel string
		scale   int
	}{
		{"zero scale", "rgb", 0},
		{"huge scale", "rgb", MaxPlaneScale + 1},
		{"bad channel", "alpha", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := RenderBitPlane(img, tt.channel, tt.scale); err == nil {
				t.Error("RenderBitPlane should fail")
			}
		})
	}
}

func TestBitPlane(t *testing.T) {
	img := createNoiseGrid(10, 10)

	result, err := BitPlane(img, "", 2)
	if err != nil {
		t.Fatalf("BitPlane failed: %v", err)
	}
	if result.Width != 20 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 20x20", result.Width, result.Height)
	}
	if result.Channel != "rgb" {
		t.Errorf("Channel: got %s, want rgb", result.Channel)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if _, err := base64.StdEncoding.DecodeString(result.ImageBase64); err != nil {
		t.Errorf("failed to decode base64: %v", err)
	}
}
