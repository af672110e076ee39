// Package jericho runs a Z-machine game through a Jericho bridge process.
//
// Jericho is a Python library that embeds the Frotz interpreter and exposes
// step/score/valid-action APIs over Z-machine story files. This package
// spawns the bridge script shipped in scripts/jericho_bridge.py (or any
// compatible command) and speaks a JSON-lines protocol over its stdin and
// stdout: one request object per line in, one response object per line out.
// The bridge is strictly synchronous, so there is never more than one
// request in flight.
package jericho

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/llm-course/text-adventure-go/internal/engine"
)

// maxResponseLine bounds a single bridge response. Dictionary dumps for
// large story files run to a few hundred kilobytes.
const maxResponseLine = 4 << 20

// request is one JSON line sent to the bridge.
type request struct {
	Op     string `json:"op"`
	Action string `json:"action,omitempty"`
	State  string `json:"state,omitempty"`
}

// response is one JSON line read back from the bridge.
type response struct {
	OK         bool               `json:"ok"`
	Error      string             `json:"error,omitempty"`
	Transition *engine.Transition `json:"transition,omitempty"`
	Actions    []string           `json:"actions,omitempty"`
	Words      []string           `json:"words,omitempty"`
	State      string             `json:"state,omitempty"`
}

// Env is an engine.Engine backed by a Jericho bridge process.
type Env struct {
	mu   sync.Mutex
	in   io.Writer
	out  *bufio.Scanner
	proc *exec.Cmd
}

var _ engine.Engine = (*Env)(nil)

// Start launches the bridge command and returns an engine bound to it. The
// command's stderr is passed through to this process's stderr so interpreter
// diagnostics stay visible without corrupting the protocol stream.
func Start(command []string) (*Env, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("bridge command is required")
	}
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start bridge %q: %w", command[0], err)
	}

	env := newEnv(stdin, stdout)
	env.proc = cmd
	return env, nil
}

// newEnv binds an engine to an already-open protocol stream. Tests use it to
// drive the codec without a real process.
func newEnv(in io.Writer, out io.Reader) *Env {
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 64<<10), maxResponseLine)
	return &Env{in: in, out: scanner}
}

// roundTrip sends one request and decodes the matching response line.
func (e *Env) roundTrip(ctx context.Context, req request) (response, error) {
	if err := ctx.Err(); err != nil {
		return response{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	line, err := json.Marshal(req)
	if err != nil {
		return response{}, fmt.Errorf("encode bridge request: %w", err)
	}
	line = append(line, '\n')
	if _, err := e.in.Write(line); err != nil {
		return response{}, fmt.Errorf("write to bridge: %w", err)
	}

	if !e.out.Scan() {
		if err := e.out.Err(); err != nil {
			return response{}, fmt.Errorf("read from bridge: %w", err)
		}
		return response{}, fmt.Errorf("bridge closed its output stream")
	}

	var resp response
	if err := json.Unmarshal(e.out.Bytes(), &resp); err != nil {
		return response{}, fmt.Errorf("decode bridge response: %w", err)
	}
	if !resp.OK {
		if resp.Error == "" {
			resp.Error = "bridge reported an unspecified error"
		}
		return response{}, fmt.Errorf("bridge %s: %s", req.Op, resp.Error)
	}
	return resp, nil
}

// transition unwraps the transition payload of a response.
func (resp response) transition(op string) (engine.Transition, error) {
	if resp.Transition == nil {
		return engine.Transition{}, fmt.Errorf("bridge %s: response is missing a transition", op)
	}
	return *resp.Transition, nil
}

// Reset starts the game over and returns the opening transition.
func (e *Env) Reset(ctx context.Context) (engine.Transition, error) {
	resp, err := e.roundTrip(ctx, request{Op: "reset"})
	if err != nil {
		return engine.Transition{}, err
	}
	return resp.transition("reset")
}

// Step executes one player command.
func (e *Env) Step(ctx context.Context, action string) (engine.Transition, error) {
	resp, err := e.roundTrip(ctx, request{Op: "step", Action: action})
	if err != nil {
		return engine.Transition{}, err
	}
	return resp.transition("step")
}

// ValidActions lists commands Jericho considers valid in the current state.
func (e *Env) ValidActions(ctx context.Context) ([]string, error) {
	resp, err := e.roundTrip(ctx, request{Op: "valid_actions"})
	if err != nil {
		return nil, err
	}
	return resp.Actions, nil
}

// Dictionary returns the story file's vocabulary tokens.
func (e *Env) Dictionary(ctx context.Context) ([]string, error) {
	resp, err := e.roundTrip(ctx, request{Op: "dictionary"})
	if err != nil {
		return nil, err
	}
	return resp.Words, nil
}

// Snapshot captures the interpreter state. The payload is whatever the
// bridge emitted, carried verbatim.
func (e *Env) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	resp, err := e.roundTrip(ctx, request{Op: "get_state"})
	if err != nil {
		return nil, err
	}
	if resp.State == "" {
		return nil, fmt.Errorf("bridge get_state: response is missing state")
	}
	return engine.Snapshot(resp.State), nil
}

// Restore replays a snapshot previously returned by Snapshot.
func (e *Env) Restore(ctx context.Context, snap engine.Snapshot) error {
	_, err := e.roundTrip(ctx, request{Op: "set_state", State: string(snap)})
	return err
}

// Close shuts the bridge process down.
func (e *Env) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if closer, ok := e.in.(io.Closer); ok {
		_ = closer.Close()
	}
	if e.proc == nil {
		return nil
	}
	if err := e.proc.Wait(); err != nil {
		return fmt.Errorf("bridge exit: %w", err)
	}
	return nil
}
