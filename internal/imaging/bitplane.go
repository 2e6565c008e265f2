package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// MaxPlaneScale bounds the upscaling factor for bit-plane renders.
const MaxPlaneScale = 16

// BitPlaneResult contains a rendered LSB plane encoded as base64 PNG.
type BitPlaneResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Channel     string `json:"channel"`
	Scale       int    `json:"scale"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	// OnesRatio is the fraction of rendered LSBs that are set (0.0 to 1.0).
	// Unmodified photographs sit near 0.5; long runs of text payload skew it.
	OnesRatio float64 `json:"ones_ratio"`
}

// RenderBitPlane draws the least-significant bits of img as a black and
// white image, which makes an embedded payload visible as a band of noise at
// the top of the picture.
//
// Parameters:
//   - img: The grid to render.
//   - channel: "rgb" (each channel rendered into its own output channel),
//     or one of "r", "g", "b" for a grayscale view of a single channel.
//     An empty string means "rgb".
//   - scale: Integer upscaling factor (1 to MaxPlaneScale). Nearest-neighbour
//     sampling keeps every bit a sharp square.
//
// Returns the rendered plane and the fraction of set bits.
func RenderBitPlane(img *image.NRGBA, channel string, scale int) (*image.NRGBA, float64, error) {
	if scale < 1 || scale > MaxPlaneScale {
		return nil, 0, fmt.Errorf("scale must be between 1 and %d, got %d", MaxPlaneScale, scale)
	}

	pick, err := planeSelector(channel)
	if err != nil {
		return nil, 0, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	plane := image.NewNRGBA(image.Rect(0, 0, w, h))
	ones, total := 0, 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			out, set, n := pick(c)
			ones += set
			total += n
			plane.SetNRGBA(x, y, out)
		}
	}

	var ratio float64
	if total > 0 {
		ratio = float64(ones) / float64(total)
	}

	if scale > 1 && w > 0 && h > 0 {
		plane = imaging.Resize(plane, w*scale, h*scale, imaging.NearestNeighbor)
	}

	return plane, ratio, nil
}

// BitPlane renders the LSB plane of img and returns it as a base64 PNG.
func BitPlane(img *image.NRGBA, channel string, scale int) (*BitPlaneResult, error) {
	plane, ratio, err := RenderBitPlane(img, channel, scale)
	if err != nil {
		return nil, err
	}

	encoded, err := encodePNGBase64(plane)
	if err != nil {
		return nil, err
	}

	if channel == "" {
		channel = "rgb"
	}

	return &BitPlaneResult{
		Width:       plane.Bounds().Dx(),
		Height:      plane.Bounds().Dy(),
		Channel:     channel,
		Scale:       scale,
		ImageBase64: encoded,
		MimeType:    "image/png",
		OnesRatio:   ratio,
	}, nil
}

// planeSelector returns a function mapping a source pixel to its plane pixel,
// the number of set bits, and the number of bits examined.
func planeSelector(channel string) (func(color.NRGBA) (color.NRGBA, int, int), error) {
	lsb := func(v uint8) (uint8, int) {
		if v&1 == 1 {
			return 255, 1
		}
		return 0, 0
	}

	switch channel {
	case "", "rgb":
		return func(c color.NRGBA) (color.NRGBA, int, int) {
			r, nr := lsb(c.R)
			g, ng := lsb(c.G)
			b, nb := lsb(c.B)
			return color.NRGBA{R: r, G: g, B: b, A: 255}, nr + ng + nb, 3
		}, nil
	case "r", "g", "b":
		idx := map[string]int{"r": 0, "g": 1, "b": 2}[channel]
		return func(c color.NRGBA) (color.NRGBA, int, int) {
			v, n := lsb([3]uint8{c.R, c.G, c.B}[idx])
			return color.NRGBA{R: v, G: v, B: v, A: 255}, n, 1
		}, nil
	default:
		return nil, fmt.Errorf("unknown channel: %s", channel)
	}
}
