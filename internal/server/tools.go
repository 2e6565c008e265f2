package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "stego_image_info",
			Description: "Load an image and return its dimensions, format, and how many characters it can hide. Flags lossy formats (JPEG, WebP) whose low bits may already be disturbed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "stego_capacity",
			Description: "Return the maximum number of characters that can be hidden in an image (floor(width*height*3/8)).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Steganography
		{
			Name:        "stego_encode",
			Description: "Hide a text message in the least-significant bits of an image's RGB channels and save the result as PNG. Characters must be in the range U+0001 to U+00FF.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the cover image"),
					"message": map[string]interface{}{
						"type":        "string",
						"description": "Text to hide",
					},
					"output_path": pathProperty("Absolute path for the PNG output. Defaults to <name>-encoded.png in ~/Downloads or next to the input"),
				},
				"required": []string{"path", "message"},
			},
		},
		{
			Name:        "stego_decode",
			Description: "Recover a message hidden with stego_encode. Returns found=false when the image carries no message.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the encoded image"),
				},
				"required": []string{"path"},
			},
		},

		// Inspection
		{
			Name:        "stego_sample_pixel",
			Description: "Get the channel values of a pixel and the least-significant bit each payload channel carries.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "stego_bit_plane",
			Description: "Render the least-significant-bit plane of an image as a base64 PNG. Embedded payloads show up as a noisy band at the top.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"channel": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rgb", "r", "g", "b"},
						"description": "Channel to render. Default rgb",
						"default":     "rgb",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer upscaling factor (1-16). Default 1",
						"default":     1,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "stego_compare",
			Description: "Compare a cover image with its encoded version: changed pixels and channels, PSNR, and CIEDE2000 perceptual distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"cover_path": pathProperty("Absolute path to the original image"),
					"stego_path": pathProperty("Absolute path to the encoded image"),
				},
				"required": []string{"cover_path", "stego_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
