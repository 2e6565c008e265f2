package stego

import (
	"image"
)

// Encode hides message in the channel LSBs of src and returns the result as a
// new grid with the same bounds.
//
// Parameters:
//   - src: The cover image. It is never modified.
//   - message: Text to hide. Every character must be in the range U+0001 to
//     U+00FF and the character count must not exceed Capacity(src).
//
// Returns:
//   - *image.NRGBA: A copy of src carrying the message.
//   - error: *MessageTooLargeError or *UnsupportedCharacterError when the
//     message is rejected. No grid is produced in that case.
//
// # Layout
//
// The bit stream is the message bytes, most-significant bit first, followed by
// 16 zero bits. Bits are written to the R, G and B channels of each pixel in
// raster order, and writing stops once the stream is exhausted. Everything
// after the last written bit, and every alpha value, is copied unchanged.
func Encode(src *image.NRGBA, message string) (*image.NRGBA, error) {
	if err := CheckMessage(Capacity(src), message); err != nil {
		return nil, err
	}

	dst := cloneGrid(src)
	stream := newBitStream(message)
	total := channelCount(dst.Rect)

	for k := 0; k < total; k++ {
		bit, ok := stream.next()
		if !ok {
			break
		}
		i := channelOffset(dst, k)
		dst.Pix[i] = dst.Pix[i]&0xFE | bit
	}

	return dst, nil
}

// bitStream yields the payload bits of a validated message followed by the
// zero delimiter.
type bitStream struct {
	data []byte
	pos  int
}

func newBitStream(message string) *bitStream {
	data := make([]byte, 0, len(message)+DelimiterBits/BitsPerChar)
	for _, r := range message {
		data = append(data, byte(r))
	}
	data = append(data, make([]byte, DelimiterBits/BitsPerChar)...)
	return &bitStream{data: data}
}

func (s *bitStream) size() int {
	return len(s.data) * BitsPerChar
}

func (s *bitStream) next() (byte, bool) {
	if s.pos >= s.size() {
		return 0, false
	}
	b := s.data[s.pos/BitsPerChar] >> (BitsPerChar - 1 - s.pos%BitsPerChar) & 1
	s.pos++
	return b, true
}

// cloneGrid copies src row by row so sub-images with a wider stride are
// handled.
func cloneGrid(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	rowLen := src.Rect.Dx() * 4
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		si := src.PixOffset(src.Rect.Min.X, y)
		di := dst.PixOffset(dst.Rect.Min.X, y)
		copy(dst.Pix[di:di+rowLen], src.Pix[si:si+rowLen])
	}
	return dst
}

// channelOffset returns the Pix index of the k-th payload channel in
// traversal order.
func channelOffset(img *image.NRGBA, k int) int {
	p := k / ChannelsPerPixel
	w := img.Rect.Dx()
	x := img.Rect.Min.X + p%w
	y := img.Rect.Min.Y + p/w
	return img.PixOffset(x, y) + k%ChannelsPerPixel
}
