package domain

import (
	"context"
	"fmt"

	"github.com/llm-course/text-adventure-go/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
)

// tracer traces tool handler execution when tracing is configured.
var tracer = otel.Tracer("github.com/llm-course/text-adventure-go/internal/mcp/domain")

// PlayActionInput is the MCP tool input for executing a game action.
type PlayActionInput struct {
	Action string `json:"action" jsonschema:"the command to execute (e.g. 'north', 'take lamp', 'open mailbox')"`
}

// PlayActionResult carries the game's response to an action.
type PlayActionResult struct {
	Response string `json:"response" jsonschema:"narrative text with a score/move summary"`
}

// PlayActionTool defines the MCP tool schema for executing a game action.
func PlayActionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "play_action",
		Description: "Execute a game action in the text adventure and return the game's response with score and move counts.",
	}
}

// PlayActionHandler executes one game action against the session.
func PlayActionHandler(s *session.Session) mcp.ToolHandlerFor[PlayActionInput, PlayActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlayActionInput) (*mcp.CallToolResult, PlayActionResult, error) {
		ctx, span := tracer.Start(ctx, "play_action")
		defer span.End()

		text, err := s.TakeAction(ctx, input.Action)
		if err != nil {
			return nil, PlayActionResult{}, fmt.Errorf("play action failed: %w", err)
		}
		return nil, PlayActionResult{Response: text}, nil
	}
}
