package stego

import (
	"image"
	"strings"
)

// Decode recovers a message hidden by Encode.
//
// Channel LSBs are read in the same order Encode writes them and grouped into
// bytes. Decoding stops at the first zero byte; a trailing group of fewer than
// 8 bits is discarded. If no zero byte appears, every complete byte in the
// image is returned.
//
// found is false when the recovered message is empty, which is how an image
// carrying an empty message (or one starting with a zero byte) is reported.
// Decode never fails: an image that was never encoded yields either nothing or
// arbitrary text.
func Decode(src *image.NRGBA) (message string, found bool) {
	if src == nil {
		return "", false
	}

	var sb strings.Builder
	total := channelCount(src.Rect)
	for k := 0; k+BitsPerChar <= total; k += BitsPerChar {
		var cur byte
		for j := 0; j < BitsPerChar; j++ {
			cur = cur<<1 | src.Pix[channelOffset(src, k+j)]&1
		}
		if cur == 0 {
			break
		}
		sb.WriteRune(rune(cur))
	}

	message = sb.String()
	return message, message != ""
}
