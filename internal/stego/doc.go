// Package stego implements least-significant-bit steganography over 8-bit
// RGBA pixel grids.
//
// A message is hidden by overwriting the lowest bit of the R, G and B channels
// of an *image.NRGBA. The alpha channel is never read or written.
//
// # Wire Format
//
// The encoder and decoder share a fixed layout so that grids produced by one
// implementation can be read by another:
//
//   - Each character (a rune in the range 1-255) becomes one byte, written
//     most-significant bit first.
//   - The payload is followed by a delimiter of 16 zero bits.
//   - Pixels are visited in raster order: row 0 first, left to right within a
//     row. Within a pixel the channels are visited R, G, B.
//   - Each visited channel receives one bit: channel = (channel &^ 1) | bit.
//
// The decoder groups the collected bits into bytes and stops at the first zero
// byte. Only one zero byte is checked even though two are written; the second
// delimiter byte is consumed but never inspected.
//
// # Capacity
//
// An image of width w and height h holds floor(w*h*3/8) characters. The
// delimiter is not counted, so a message at exactly full capacity gets only
// the delimiter bits that still fit. Any trailing partial byte is discarded by
// the decoder, so such messages still round-trip.
//
// # Thread Safety
//
// All functions are pure. Encode never mutates its input and returns a freshly
// allocated grid, so independent grids may be processed concurrently. A grid
// must not be written by the caller while Decode reads it.
package stego
