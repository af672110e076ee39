package web

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

const (
	pageTitle       = "Playing Zork has never been so boring"
	pageDescription = "Build AI agents to play classic text adventure games " +
		"(Zork, Colossal Cave, Enchanter, etc.) using the Model Context Protocol (MCP)."
)

// page wraps body components in the HTML shell.
func page(body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`,
			html.EscapeString(pageTitle)); err != nil {
			return err
		}
		for _, component := range body {
			if err := component.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// heading renders the landing title and description.
func heading() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>%s</h1><p>%s</p>`,
			html.EscapeString(pageTitle), html.EscapeString(pageDescription))
		return err
	})
}

// gettingStarted renders the quick-start instructions.
func gettingStarted() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h2>Getting Started</h2>`+
			`<ol>`+
			`<li>Start the MCP server: <code>go run ./cmd/mcp</code></li>`+
			`<li>Point your MCP client at it (stdio by default, <code>-transport http</code> for remote).</li>`+
			`<li>Play by calling <code>play_action</code>, check yourself with <code>memory</code> and <code>get_map</code>.</li>`+
			`</ol>`)
		return err
	})
}

// gameCatalog renders the list of playable games.
func gameCatalog(names []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h2>%d Games</h2><ul>`, len(names)); err != nil {
			return err
		}
		for _, name := range names {
			if _, err := fmt.Fprintf(w, `<li>%s</li>`, html.EscapeString(name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

// landing is the full landing page.
func landing(names []string) templ.Component {
	return page(heading(), gettingStarted(), gameCatalog(names))
}
