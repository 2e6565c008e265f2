package imaging

import (
	"fmt"
	"image"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// LSBBits holds the least-significant bit of each payload channel.
type LSBBits struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// PixelSample describes one pixel of a grid and the payload bits it carries.
type PixelSample struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Hex  string    `json:"hex"` // "#rrggbb" (no alpha)
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
	LSB  LSBBits   `json:"lsb"`

	// ChannelIndex is the position of this pixel's R channel in the
	// embedding order. Its three bits are stream bits ChannelIndex to
	// ChannelIndex+2.
	ChannelIndex int `json:"channel_index"`
}

// SamplePixel reads the pixel at (x, y) of img.
//
// Coordinates are 0-based relative to the top-left corner of the grid.
//
// Returns an error if the coordinates are outside the image bounds.
func SamplePixel(img *image.NRGBA, x, y int) (*PixelSample, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := img.NRGBAAt(px, py)
	cf := toColorful(c.R, c.G, c.B)
	h, s, l := cf.Hsl()

	return &PixelSample{
		X:    x,
		Y:    y,
		Hex:  cf.Hex(),
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		LSB:  LSBBits{R: c.R & 1, G: c.G & 1, B: c.B & 1},

		ChannelIndex: (y*bounds.Dx() + x) * 3,
	}, nil
}
