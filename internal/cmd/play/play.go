// Package play runs an interactive terminal session against a game engine.
package play

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	mcpcmd "github.com/llm-course/text-adventure-go/internal/cmd/mcp"
	"github.com/llm-course/text-adventure-go/internal/platform/config"
	"github.com/llm-course/text-adventure-go/internal/session"
)

// Config holds play command configuration.
type Config struct {
	Game      string `env:"TEXT_ADVENTURE_GAME"   envDefault:"zork1"`
	Engine    string `env:"TEXT_ADVENTURE_ENGINE" envDefault:"jericho"`
	BridgeCmd string `env:"TEXT_ADVENTURE_BRIDGE_CMD"`
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
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

const replHelp = `Meta commands:
  /memory         game state summary
  /map            explored locations
  /inventory      carried items
  /actions        valid actions
  /vocab <word>   vocabulary check
  /save <slot>    save to a named slot
  /load <slot>    load a named slot
  /help           this text
  /quit           leave the game
Anything else is sent to the game as an action.`

// Run starts an interactive session on stdin/stdout.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	eng, err := mcpcmd.NewEngine(mcpcmd.Config{
		Game:      cfg.Game,
		Engine:    cfg.Engine,
		BridgeCmd: cfg.BridgeCmd,
	})
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer eng.Close()

	sess, err := session.New(ctx, cfg.Game, eng)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Playing %s. Type /help for meta commands.\n\n%s\n\n", cfg.Game, sess.Current().Observation)
	return repl(ctx, sess, in, out)
}

// repl reads commands until EOF or /quit.
func repl(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := metaCommand(ctx, sess, line, out)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		text, err := sess.TakeAction(ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n\n", text)
	}
	return scanner.Err()
}

// metaCommand dispatches a /-prefixed command and reports whether to quit.
func metaCommand(ctx context.Context, sess *session.Session, line string, out io.Writer) (bool, error) {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintf(out, "%s\n\n", replHelp)
	case "/memory":
		fmt.Fprintf(out, "%s\n\n", sess.Memory())
	case "/map":
		fmt.Fprintf(out, "%s\n\n", sess.Map())
	case "/inventory":
		fmt.Fprintf(out, "%s\n\n", sess.Inventory())
	case "/actions":
		fmt.Fprintf(out, "%s\n\n", sess.ValidActions(ctx))
	case "/vocab":
		if arg == "" {
			fmt.Fprint(out, "Usage: /vocab <word>\n\n")
			break
		}
		fmt.Fprintf(out, "%s\n\n", sess.CheckVocabulary(ctx, arg))
	case "/save":
		if arg == "" {
			fmt.Fprint(out, "Usage: /save <slot>\n\n")
			break
		}
		fmt.Fprintf(out, "%s\n\n", sess.Save(ctx, arg))
	case "/load":
		if arg == "" {
			fmt.Fprint(out, "Usage: /load <slot>\n\n")
			break
		}
		text, err := sess.Load(ctx, arg)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "%s\n\n", text)
	default:
		fmt.Fprintf(out, "Unknown command %s. Type /help for meta commands.\n\n", command)
	}
	return false, nil
}
