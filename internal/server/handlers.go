package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/stego-tools-mcp/internal/imaging"
	"github.com/ironsheep/stego-tools-mcp/internal/workflow"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "stego_encode").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image Information
	case "stego_image_info":
		return s.handleImageInfo(args)
	case "stego_capacity":
		return s.handleCapacity(args)

	// Steganography
	case "stego_encode":
		return s.handleEncode(args)
	case "stego_decode":
		return s.handleDecode(args)

	// Inspection
	case "stego_sample_pixel":
		return s.handleSamplePixel(args)
	case "stego_bit_plane":
		return s.handleBitPlane(args)
	case "stego_compare":
		return s.handleCompare(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// requirePath rejects a missing path argument before it reaches the
// workflow layer, where an empty path means a cancelled selection.
func requirePath(name, path string) error {
	if path == "" {
		return fmt.Errorf("missing required argument: %s", name)
	}
	return nil
}

// === Image Information Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type capacityResult struct {
	Capacity int `json:"capacity"`
}

func (s *Server) handleCapacity(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	n, err := workflow.Capacity(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	return &capacityResult{Capacity: n}, nil
}

// === Steganography Handlers ===

type encodeArgs struct {
	Path       string  `json:"path"`
	Message    *string `json:"message"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleEncode(args json.RawMessage) (interface{}, error) {
	var a encodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	if a.Message == nil {
		return nil, fmt.Errorf("missing required argument: message")
	}

	res, err := workflow.EncodeFile(s.cache, a.Path, *a.Message, a.OutputPath)
	if err != nil {
		return nil, err
	}
	if res.LossyInput {
		log.Printf("warning: cover %s is lossy; output saved as PNG", a.Path)
	}
	if s.debug {
		log.Printf("encoded %d characters into %s", res.MessageLength, res.OutputPath)
	}
	return res, nil
}

func (s *Server) handleDecode(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return workflow.DecodeFile(s.cache, a.Path)
}

// === Inspection Handlers ===

type samplePixelArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleSamplePixel(args json.RawMessage) (interface{}, error) {
	var a samplePixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SamplePixel(img, a.X, a.Y)
}

type bitPlaneArgs struct {
	Path    string `json:"path"`
	Channel string `json:"channel"`
	Scale   int    `json:"scale"`
}

func (s *Server) handleBitPlane(args json.RawMessage) (interface{}, error) {
	var a bitPlaneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.BitPlane(img, a.Channel, a.Scale)
}

type compareArgs struct {
	CoverPath string `json:"cover_path"`
	StegoPath string `json:"stego_path"`
}

func (s *Server) handleCompare(args json.RawMessage) (interface{}, error) {
	var a compareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("cover_path", a.CoverPath); err != nil {
		return nil, err
	}
	if err := requirePath("stego_path", a.StegoPath); err != nil {
		return nil, err
	}
	return workflow.CompareFiles(s.cache, a.CoverPath, a.StegoPath)
}
