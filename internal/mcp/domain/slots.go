package domain

import (
	"context"
	"fmt"

	"github.com/llm-course/text-adventure-go/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SaveStateInput is the MCP tool input for saving to a named slot.
type SaveStateInput struct {
	SlotName string `json:"slot_name" jsonschema:"name of the save slot (e.g. 'before_combat', 'checkpoint_1')"`
}

// SaveStateResult carries the save confirmation or error report.
type SaveStateResult struct {
	Status string `json:"status" jsonschema:"confirmation that the state was saved"`
}

// SaveStateTool defines the MCP tool schema for saving game state.
func SaveStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "save_state",
		Description: "Save the current game state to a named in-memory slot before doing something risky. Slots are lost when the server exits.",
	}
}

// SaveStateHandler captures the engine state into a slot. Failures come back
// as text, never as a tool error.
func SaveStateHandler(s *session.Session) mcp.ToolHandlerFor[SaveStateInput, SaveStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SaveStateInput) (*mcp.CallToolResult, SaveStateResult, error) {
		ctx, span := tracer.Start(ctx, "save_state")
		defer span.End()
		return nil, SaveStateResult{Status: s.Save(ctx, input.SlotName)}, nil
	}
}

// LoadStateInput is the MCP tool input for restoring a named slot.
type LoadStateInput struct {
	SlotName string `json:"slot_name" jsonschema:"name of the save slot to load from"`
}

// LoadStateResult carries the load confirmation with the refreshed location.
type LoadStateResult struct {
	Status string `json:"status" jsonschema:"confirmation with the current location, or a not-found report"`
}

// LoadStateTool defines the MCP tool schema for restoring game state.
func LoadStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "load_state",
		Description: "Load a previously saved game state if you died or made a mistake. History and the explored map are not rewound.",
	}
}

// LoadStateHandler restores a slot. An unknown slot name is reported as
// text; a failed restore or refresh is a hard error because the session
// state would be undefined afterwards.
func LoadStateHandler(s *session.Session) mcp.ToolHandlerFor[LoadStateInput, LoadStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LoadStateInput) (*mcp.CallToolResult, LoadStateResult, error) {
		ctx, span := tracer.Start(ctx, "load_state")
		defer span.End()

		text, err := s.Load(ctx, input.SlotName)
		if err != nil {
			return nil, LoadStateResult{}, fmt.Errorf("load state failed: %w", err)
		}
		return nil, LoadStateResult{Status: text}, nil
	}
}
