// Package imaging loads, saves and inspects the pixel grids used for
// steganography.
//
// Every image is normalized to *image.NRGBA on load: 8-bit non-premultiplied
// R, G, B, A channels with (0,0) at the top-left corner. Sources without an
// alpha channel become fully opaque. This is the grid format consumed by the
// stego package.
//
// # Supported Formats
//
// Input: PNG, JPEG, GIF, BMP, TIFF and WebP. Output: PNG only, because
// lossless storage is required for the hidden bits to survive. Lossy inputs
// such as JPEG are accepted but flagged in ImageInfo, since any earlier lossy
// re-encode may already have disturbed the low bits.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Grids returned by the cache
// are shared between callers and must be treated as read-only; stego.Encode
// always returns a new grid.
//
// # Error Handling
//
// Failures to open or decode a source image wrap ErrImageUnavailable. Write
// failures are returned as-is. SavePNG writes through a temporary file, so a
// failed save never leaves a partial output behind.
package imaging
