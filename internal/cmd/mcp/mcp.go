// Package mcp parses MCP command flags and wires the game session to a
// transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/llm-course/text-adventure-go/internal/engine"
	"github.com/llm-course/text-adventure-go/internal/engine/builtin"
	"github.com/llm-course/text-adventure-go/internal/engine/jericho"
	"github.com/llm-course/text-adventure-go/internal/games"
	"github.com/llm-course/text-adventure-go/internal/mcp/service"
	"github.com/llm-course/text-adventure-go/internal/platform/config"
	"github.com/llm-course/text-adventure-go/internal/platform/otel"
	"github.com/llm-course/text-adventure-go/internal/session"
	"github.com/llm-course/text-adventure-go/internal/transcript"
)

// Config holds MCP command configuration.
type Config struct {
	Game         string `env:"TEXT_ADVENTURE_GAME"          envDefault:"zork1"`
	Engine       string `env:"TEXT_ADVENTURE_ENGINE"        envDefault:"jericho"`
	BridgeCmd    string `env:"TEXT_ADVENTURE_BRIDGE_CMD"`
	Transport    string `env:"TEXT_ADVENTURE_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr     string `env:"TEXT_ADVENTURE_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	TranscriptDB string `env:"TEXT_ADVENTURE_TRANSCRIPT_DB"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Game, "game", cfg.Game, "game to play")
	fs.StringVar(&cfg.Engine, "engine", cfg.Engine, "game engine: jericho or builtin")
	fs.StringVar(&cfg.BridgeCmd, "bridge-cmd", cfg.BridgeCmd, "jericho bridge command line override")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.TranscriptDB, "transcript-db", cfg.TranscriptDB, "SQLite transcript path (optional)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewEngine builds the configured engine for a game.
func NewEngine(cfg Config) (engine.Engine, error) {
	switch cfg.Engine {
	case "jericho":
		if !games.IsSupported(cfg.Game) {
			return nil, fmt.Errorf("game %q is not in the catalog", cfg.Game)
		}
		command := []string{"python3", "scripts/jericho_bridge.py", cfg.Game}
		if cfg.BridgeCmd != "" {
			command = append(strings.Fields(cfg.BridgeCmd), cfg.Game)
		}
		return jericho.Start(command)
	case "builtin":
		return builtin.Open(cfg.Game)
	default:
		return nil, fmt.Errorf("engine %q is not supported", cfg.Engine)
	}
}

// Run starts the MCP server and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	eng, err := NewEngine(cfg)
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer eng.Close()

	sess, err := session.New(ctx, cfg.Game, eng)
	if err != nil {
		return err
	}

	if cfg.TranscriptDB != "" {
		store, err := transcript.Open(cfg.TranscriptDB, cfg.Game)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer store.Close()
		sess.Observe(store)
	}

	return service.New(sess).Run(ctx, service.Config{
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}
