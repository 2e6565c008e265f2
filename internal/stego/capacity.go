package stego

import (
	"image"
	"unicode/utf8"
)

const (
	// ChannelsPerPixel is the number of channels carrying payload bits (R, G, B).
	ChannelsPerPixel = 3

	// BitsPerChar is the width of one encoded character.
	BitsPerChar = 8

	// DelimiterBits is the length of the zero run written after the message.
	DelimiterBits = 16
)

// Capacity returns the maximum number of characters that fit in img.
//
// The result depends only on the image dimensions and is computed as
// floor(width * height * 3 / 8). Pixel data is never read.
func Capacity(img image.Image) int {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	return channelCount(b) / BitsPerChar
}

// CheckMessage verifies that message can be embedded in an image with the
// given capacity. The length check runs first.
//
// Returns *MessageTooLargeError or *UnsupportedCharacterError on failure.
func CheckMessage(capacity int, message string) error {
	if n := utf8.RuneCountInString(message); n > capacity {
		return &MessageTooLargeError{Length: n, Capacity: capacity}
	}
	i := 0
	for _, r := range message {
		if r < 1 || r > 0xFF {
			return &UnsupportedCharacterError{Char: r, Index: i}
		}
		i++
	}
	return nil
}

// Footprint reports how many channel bits and pixels encoding message into
// img will touch. Both are clipped to the size of the image.
func Footprint(img image.Image, message string) (bits, pixels int) {
	bits = utf8.RuneCountInString(message)*BitsPerChar + DelimiterBits
	if img == nil {
		return 0, 0
	}
	if avail := channelCount(img.Bounds()); bits > avail {
		bits = avail
	}
	pixels = (bits + ChannelsPerPixel - 1) / ChannelsPerPixel
	return bits, pixels
}

func channelCount(b image.Rectangle) int {
	if b.Empty() {
		return 0
	}
	return b.Dx() * b.Dy() * ChannelsPerPixel
}
