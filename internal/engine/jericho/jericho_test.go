package jericho

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// fakeBridge scripts responses keyed by op and records decoded requests.
// Writing a request appends the matching scripted response to the output
// buffer the Env reads from, mimicking the synchronous bridge process.
type fakeBridge struct {
	t         *testing.T
	requests  []request
	responses map[string]string
	out       bytes.Buffer
}

func (f *fakeBridge) Write(p []byte) (int, error) {
	var req request
	if err := json.Unmarshal(bytes.TrimSpace(p), &req); err != nil {
		f.t.Fatalf("bridge received malformed request %q: %v", p, err)
	}
	f.requests = append(f.requests, req)
	resp, ok := f.responses[req.Op]
	if !ok {
		f.t.Fatalf("bridge received unscripted op %q", req.Op)
	}
	f.out.WriteString(resp + "\n")
	return len(p), nil
}

func newTestEnv(t *testing.T, responses map[string]string) (*Env, *fakeBridge) {
	t.Helper()
	f := &fakeBridge{t: t, responses: responses}
	return newEnv(f, &f.out), f
}

func TestStepDecodesTransition(t *testing.T) {
	env, bridge := newTestEnv(t, map[string]string{
		"step": `{"ok":true,"transition":{"observation":"Kitchen\nA table seems to have been used recently.","score":10,"moves":4,"reward":10,"done":false,"inventory":["a brass lantern"]}}`,
	})

	got, err := env.Step(context.Background(), "east")
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if got.Score != 10 || got.Moves != 4 || got.Reward != 10 || got.Done {
		t.Fatalf("unexpected transition: %+v", got)
	}
	if !strings.HasPrefix(got.Observation, "Kitchen") {
		t.Fatalf("unexpected observation: %q", got.Observation)
	}
	if len(bridge.requests) != 1 || bridge.requests[0].Action != "east" {
		t.Fatalf("unexpected requests: %+v", bridge.requests)
	}
}

func TestStepBridgeError(t *testing.T) {
	env, _ := newTestEnv(t, map[string]string{
		"step": `{"ok":false,"error":"interpreter crashed"}`,
	})

	_, err := env.Step(context.Background(), "east")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "interpreter crashed") {
		t.Fatalf("expected bridge error to surface, got %v", err)
	}
}

func TestStepMissingTransition(t *testing.T) {
	env, _ := newTestEnv(t, map[string]string{
		"step": `{"ok":true}`,
	})

	if _, err := env.Step(context.Background(), "east"); err == nil {
		t.Fatal("expected error for missing transition")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	env, bridge := newTestEnv(t, map[string]string{
		"get_state": `{"ok":true,"state":"b64-opaque-blob"}`,
		"set_state": `{"ok":true}`,
	})

	snap, err := env.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if string(snap) != "b64-opaque-blob" {
		t.Fatalf("snapshot not carried verbatim: %q", snap)
	}
	if err := env.Restore(context.Background(), snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	last := bridge.requests[len(bridge.requests)-1]
	if last.Op != "set_state" || last.State != "b64-opaque-blob" {
		t.Fatalf("restore sent %+v", last)
	}
}

func TestDictionaryAndValidActions(t *testing.T) {
	env, _ := newTestEnv(t, map[string]string{
		"dictionary":    `{"ok":true,"words":["north","lanter","mailbo"]}`,
		"valid_actions": `{"ok":true,"actions":["open mailbox","north"]}`,
	})

	words, err := env.Dictionary(context.Background())
	if err != nil {
		t.Fatalf("dictionary: %v", err)
	}
	if len(words) != 3 || words[1] != "lanter" {
		t.Fatalf("unexpected words: %v", words)
	}

	actions, err := env.ValidActions(context.Background())
	if err != nil {
		t.Fatalf("valid actions: %v", err)
	}
	if len(actions) != 2 || actions[0] != "open mailbox" {
		t.Fatalf("unexpected actions: %v", actions)
	}
}

func TestRoundTripHonorsCancelledContext(t *testing.T) {
	env, _ := newTestEnv(t, map[string]string{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := env.Step(ctx, "east"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestStartRejectsEmptyCommand(t *testing.T) {
	if _, err := Start(nil); err == nil {
		t.Fatal("expected error for empty command")
	}
}
