package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// CompareResult summarizes the differences between a cover image and a
// stego image.
type CompareResult struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	TotalPixels int `json:"total_pixels"`

	// PixelsDifferent counts pixels whose R, G or B value changed.
	PixelsDifferent int `json:"pixels_different"`

	// ChannelsDifferent counts individual R, G and B values that changed.
	ChannelsDifferent int `json:"channels_different"`

	// MaxChannelDiff is the largest absolute change of any R, G or B value.
	// LSB embedding never exceeds 1.
	MaxChannelDiff int `json:"max_channel_diff"`

	// AlphaChanged counts pixels whose alpha value changed.
	AlphaChanged int `json:"alpha_changed"`

	// FirstDifferentPixel and LastDifferentPixel are raster-order pixel
	// indexes of the first and last changed pixels, or -1 when identical.
	FirstDifferentPixel int `json:"first_different_pixel"`
	LastDifferentPixel  int `json:"last_different_pixel"`

	// Identical is true when no channel differs.
	Identical bool `json:"identical"`

	// PSNR is the peak signal-to-noise ratio over R, G and B in decibels.
	// It is omitted for identical images, where it is unbounded.
	PSNR float64 `json:"psnr_db,omitempty"`

	// MeanDeltaE and MaxDeltaE are CIEDE2000 perceptual distances averaged
	// over all pixels and at the worst pixel. Values below 1 are not
	// perceptible.
	MeanDeltaE float64 `json:"mean_delta_e"`
	MaxDeltaE  float64 `json:"max_delta_e"`
}

// Compare measures how far b deviates from a, pixel by pixel.
//
// Both grids must have the same dimensions. Their origins may differ.
func Compare(a, b *image.NRGBA) (*CompareResult, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return nil, fmt.Errorf("image dimensions differ: %dx%d vs %dx%d",
			ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	w, h := ab.Dx(), ab.Dy()
	res := &CompareResult{
		Width:               w,
		Height:              h,
		TotalPixels:         w * h,
		FirstDifferentPixel: -1,
		LastDifferentPixel:  -1,
	}

	var sqErr, sumDeltaE float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ca := a.NRGBAAt(ab.Min.X+x, ab.Min.Y+y)
			cb := b.NRGBAAt(bb.Min.X+x, bb.Min.Y+y)

			if ca.A != cb.A {
				res.AlphaChanged++
			}

			changed := 0
			for _, d := range [3]int{absDiff(ca.R, cb.R), absDiff(ca.G, cb.G), absDiff(ca.B, cb.B)} {
				if d == 0 {
					continue
				}
				changed++
				sqErr += float64(d * d)
				if d > res.MaxChannelDiff {
					res.MaxChannelDiff = d
				}
			}
			if changed == 0 {
				continue
			}

			idx := y*w + x
			if res.FirstDifferentPixel < 0 {
				res.FirstDifferentPixel = idx
			}
			res.LastDifferentPixel = idx
			res.PixelsDifferent++
			res.ChannelsDifferent += changed

			de := toColorful(ca.R, ca.G, ca.B).DistanceCIEDE2000(toColorful(cb.R, cb.G, cb.B))
			sumDeltaE += de
			if de > res.MaxDeltaE {
				res.MaxDeltaE = de
			}
		}
	}

	res.Identical = res.ChannelsDifferent == 0
	if res.TotalPixels > 0 {
		res.MeanDeltaE = round(sumDeltaE/float64(res.TotalPixels), 4)
		if !res.Identical {
			mse := sqErr / float64(res.TotalPixels*3)
			res.PSNR = round(10*math.Log10(255*255/mse), 2)
		}
	}
	res.MaxDeltaE = round(res.MaxDeltaE, 4)

	return res, nil
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
