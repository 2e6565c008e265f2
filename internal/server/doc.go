// Package server implements the MCP (Model Context Protocol) server for the
// steganography tools.
//
// The server speaks JSON-RPC 2.0 over stdio and exposes the encode, decode
// and inspection operations as MCP tools, so an assistant can hide text in an
// image or read it back on a user's behalf.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - stego_image_info: Dimensions, format and hiding capacity
//   - stego_capacity: Maximum message length in characters
//
// Steganography:
//   - stego_encode: Hide a message and save the result as PNG
//   - stego_decode: Recover a hidden message
//
// Inspection:
//   - stego_sample_pixel: Channel values and LSBs at a pixel
//   - stego_bit_plane: Render the LSB plane as a PNG
//   - stego_compare: Measure the distortion between cover and stego images
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. The
// encode tool evicts its output path so later calls see the new file.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the Go
// error string as data. A decode that finds no message is not an error: the
// result carries "found": false.
package server
