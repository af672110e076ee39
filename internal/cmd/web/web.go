// Package web parses web command flags and starts the landing page server.
package web

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/llm-course/text-adventure-go/internal/platform/config"
	"github.com/llm-course/text-adventure-go/internal/platform/otel"
	"github.com/llm-course/text-adventure-go/internal/web"
)

// Config holds web command configuration.
type Config struct {
	Addr string `env:"TEXT_ADVENTURE_WEB_ADDR" envDefault:"localhost:8080"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the landing page server and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "web")
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

	return web.NewServer(web.Config{Addr: cfg.Addr}).ListenAndServe(ctx)
}
