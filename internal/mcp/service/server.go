// Package service hosts the MCP server over stdio or HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/llm-course/text-adventure-go/internal/mcp/domain"
	"github.com/llm-course/text-adventure-go/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
const serverName = "Text Adventure MCP"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP listen address. Defaults to localhost:8081 for HTTP transport.
}

// Server hosts the MCP server for one game session.
type Server struct {
	mcpServer *mcp.Server
	sess      *session.Session
}

// New builds an MCP server with every game tool registered against the
// session. The session must already be reset; the server never restarts it.
func New(sess *session.Session) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(mcpServer, domain.PlayActionTool(), domain.PlayActionHandler(sess))
	mcp.AddTool(mcpServer, domain.MemoryTool(), domain.MemoryHandler(sess))
	mcp.AddTool(mcpServer, domain.MapTool(), domain.MapHandler(sess))
	mcp.AddTool(mcpServer, domain.InventoryTool(), domain.InventoryHandler(sess))
	mcp.AddTool(mcpServer, domain.ValidActionsTool(), domain.ValidActionsHandler(sess))
	mcp.AddTool(mcpServer, domain.CheckVocabularyTool(), domain.CheckVocabularyHandler(sess))
	mcp.AddTool(mcpServer, domain.SaveStateTool(), domain.SaveStateHandler(sess))
	mcp.AddTool(mcpServer, domain.LoadStateTool(), domain.LoadStateHandler(sess))

	return &Server{mcpServer: mcpServer, sess: sess}
}

// Run serves the session over the configured transport and blocks until the
// context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return s.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return s.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport starts the MCP server using the provided transport. A
// cancelled context is a clean shutdown, not an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP serves MCP over the streamable HTTP transport. Every request is
// routed to the same server instance so all clients share the one session.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if addr == "" {
		addr = "localhost:8081"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shut down MCP HTTP server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP over HTTP: %w", err)
	}
}
