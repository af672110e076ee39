package domain

import (
	"context"

	"github.com/llm-course/text-adventure-go/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MemoryInput is the (empty) input for the memory tool.
type MemoryInput struct{}

// MemoryResult carries the formatted session summary.
type MemoryResult struct {
	Summary string `json:"summary" jsonschema:"location, score, moves, recent actions, and the current observation"`
}

// MemoryTool defines the MCP tool schema for the session summary.
func MemoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "memory",
		Description: "Get a summary of the current game state: location, score, moves, recent actions, and current observation.",
	}
}

// MemoryHandler renders the session summary.
func MemoryHandler(s *session.Session) mcp.ToolHandlerFor[MemoryInput, MemoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ MemoryInput) (*mcp.CallToolResult, MemoryResult, error) {
		_, span := tracer.Start(ctx, "memory")
		defer span.End()
		return nil, MemoryResult{Summary: s.Memory()}, nil
	}
}

// MapInput is the (empty) input for the map tool.
type MapInput struct{}

// MapResult carries the exploration report.
type MapResult struct {
	Map string `json:"map" jsonschema:"explored locations with their known exits and the current location"`
}

// MapTool defines the MCP tool schema for the exploration map.
func MapTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_map",
		Description: "Get a map showing explored locations and the movement connections between them. Useful for navigation and avoiding getting lost.",
	}
}

// MapHandler renders the exploration report.
func MapHandler(s *session.Session) mcp.ToolHandlerFor[MapInput, MapResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ MapInput) (*mcp.CallToolResult, MapResult, error) {
		_, span := tracer.Start(ctx, "get_map")
		defer span.End()
		return nil, MapResult{Map: s.Map()}, nil
	}
}

// InventoryInput is the (empty) input for the inventory tool.
type InventoryInput struct{}

// InventoryResult carries the formatted item list.
type InventoryResult struct {
	Inventory string `json:"inventory" jsonschema:"comma-separated list of carried items"`
}

// InventoryTool defines the MCP tool schema for the inventory listing.
func InventoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "inventory",
		Description: "Check what items you are currently carrying.",
	}
}

// InventoryHandler renders the parsed inventory.
func InventoryHandler(s *session.Session) mcp.ToolHandlerFor[InventoryInput, InventoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ InventoryInput) (*mcp.CallToolResult, InventoryResult, error) {
		_, span := tracer.Start(ctx, "inventory")
		defer span.End()
		return nil, InventoryResult{Inventory: s.Inventory()}, nil
	}
}

// ValidActionsInput is the (empty) input for the valid actions tool.
type ValidActionsInput struct{}

// ValidActionsResult carries the formatted action list or an error report.
type ValidActionsResult struct {
	Actions string `json:"actions" jsonschema:"list of actions currently accepted by the game"`
}

// ValidActionsTool defines the MCP tool schema for the valid-action listing.
func ValidActionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "valid_actions",
		Description: "Get the list of valid actions you can perform in the current game state.",
	}
}

// ValidActionsHandler queries the engine for valid actions. Engine failures
// come back as text, never as a tool error.
func ValidActionsHandler(s *session.Session) mcp.ToolHandlerFor[ValidActionsInput, ValidActionsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ValidActionsInput) (*mcp.CallToolResult, ValidActionsResult, error) {
		ctx, span := tracer.Start(ctx, "valid_actions")
		defer span.End()
		return nil, ValidActionsResult{Actions: s.ValidActions(ctx)}, nil
	}
}

// CheckVocabularyInput is the MCP tool input for a vocabulary lookup.
type CheckVocabularyInput struct {
	Word string `json:"word" jsonschema:"the word to look up in the game's dictionary"`
}

// CheckVocabularyResult carries the match report.
type CheckVocabularyResult struct {
	Report string `json:"report" jsonschema:"whether the game understands the word, with matching dictionary tokens"`
}

// CheckVocabularyTool defines the MCP tool schema for vocabulary lookups.
func CheckVocabularyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_vocabulary",
		Description: "Check if a specific word is understood by the game engine. Use this before trying unusual verbs or interacting with odd objects.",
	}
}

// CheckVocabularyHandler answers a vocabulary lookup. Engine failures come
// back as text, never as a tool error.
func CheckVocabularyHandler(s *session.Session) mcp.ToolHandlerFor[CheckVocabularyInput, CheckVocabularyResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CheckVocabularyInput) (*mcp.CallToolResult, CheckVocabularyResult, error) {
		ctx, span := tracer.Start(ctx, "check_vocabulary")
		defer span.End()
		return nil, CheckVocabularyResult{Report: s.CheckVocabulary(ctx, input.Word)}, nil
	}
}
