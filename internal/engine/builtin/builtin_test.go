package builtin

import (
	"context"
	"strings"
	"testing"
)

const testWorld = `
return {
  name = "Test Hut",
  start = "hut",
  rooms = {
    hut = {
      name = "Tiny Hut",
      description = "Four walls and not much else.",
      exits = { north = "yard" },
      items = { "tin key" },
    },
    yard = {
      name = "Muddy Yard",
      description = "Mud as far as the fence.",
      exits = { south = "hut" },
      items = { "gold ring" },
    },
  },
  treasures = { ["gold ring"] = 25 },
}
`

func newTestWorld(t *testing.T) *Env {
	t.Helper()
	env, err := Load(testWorld)
	if err != nil {
		t.Fatalf("load world: %v", err)
	}
	return env
}

func TestLoadRejectsBrokenWorlds(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"not a table", `return 7`},
		{"no rooms", `return { start = "x", rooms = {} }`},
		{"missing start", `return { start = "x", rooms = { y = { name = "Y" } } }`},
		{"dangling exit", `return { start = "a", rooms = { a = { name = "A", exits = { north = "nowhere" } } } }`},
		{"bad exit word", `return { start = "a", rooms = { a = { name = "A", exits = { sideways = "a" } } } }`},
		{"unplaced treasure", `return { start = "a", rooms = { a = { name = "A" } }, treasures = { ghost = 5 } }`},
		{"syntax error", `return {`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.src); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestResetDescribesStartRoom(t *testing.T) {
	env := newTestWorld(t)
	tr, err := env.Reset(context.Background())
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.HasPrefix(tr.Observation, "Tiny Hut") {
		t.Fatalf("observation should open with the room name: %q", tr.Observation)
	}
	if !strings.Contains(tr.Observation, "There is a tin key here.") {
		t.Fatalf("observation should list room items: %q", tr.Observation)
	}
	if tr.Score != 0 || tr.Moves != 0 || tr.Done {
		t.Fatalf("unexpected opening transition: %+v", tr)
	}
}

func TestMovementAndBlockedExit(t *testing.T) {
	env := newTestWorld(t)
	ctx := context.Background()

	tr, err := env.Step(ctx, "north")
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !strings.HasPrefix(tr.Observation, "Muddy Yard") {
		t.Fatalf("expected to reach the yard, got %q", tr.Observation)
	}
	if tr.Moves != 1 {
		t.Fatalf("expected 1 move, got %d", tr.Moves)
	}

	tr, err = env.Step(ctx, "east")
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if tr.Observation != "You can't go that way." {
		t.Fatalf("expected blocked exit message, got %q", tr.Observation)
	}

	// Abbreviations resolve to the same exits.
	tr, err = env.Step(ctx, "s")
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !strings.HasPrefix(tr.Observation, "Tiny Hut") {
		t.Fatalf("expected to be back in the hut, got %q", tr.Observation)
	}
}

func TestTreasureScoringAndWin(t *testing.T) {
	env := newTestWorld(t)
	ctx := context.Background()

	if _, err := env.Step(ctx, "north"); err != nil {
		t.Fatalf("step: %v", err)
	}
	tr, err := env.Step(ctx, "take gold ring")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if tr.Reward != 25 || tr.Score != 25 {
		t.Fatalf("expected 25 points, got reward=%d score=%d", tr.Reward, tr.Score)
	}
	if !tr.Done {
		t.Fatal("collecting the only treasure should win the game")
	}
	if !strings.Contains(tr.Observation, "You have won") {
		t.Fatalf("expected win message, got %q", tr.Observation)
	}
	if len(tr.Inventory) != 1 || tr.Inventory[0] != "gold ring" {
		t.Fatalf("unexpected inventory: %v", tr.Inventory)
	}

	// Dropping and retaking must not award the points twice.
	if _, err := env.Step(ctx, "drop gold ring"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	tr, err = env.Step(ctx, "take gold ring")
	if err != nil {
		t.Fatalf("retake: %v", err)
	}
	if tr.Reward != 0 || tr.Score != 25 {
		t.Fatalf("treasure points awarded twice: reward=%d score=%d", tr.Reward, tr.Score)
	}

	// The engine keeps responding after the game is done.
	tr, err = env.Step(ctx, "look")
	if err != nil {
		t.Fatalf("post-win step: %v", err)
	}
	if !tr.Done {
		t.Fatal("done flag should persist after the win")
	}
}

func TestSnapshotRestore(t *testing.T) {
	env := newTestWorld(t)
	ctx := context.Background()

	if _, err := env.Step(ctx, "take tin key"); err != nil {
		t.Fatalf("take: %v", err)
	}
	snap, err := env.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if _, err := env.Step(ctx, "drop tin key"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := env.Restore(ctx, snap); err != nil {
		t.Fatalf("restore: %v", err)
	}

	tr, err := env.Step(ctx, "inventory")
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(tr.Inventory) != 1 || tr.Inventory[0] != "tin key" {
		t.Fatalf("restore did not bring the key back: %v", tr.Inventory)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	env := newTestWorld(t)
	if err := env.Restore(context.Background(), []byte("not json")); err == nil {
		t.Fatal("expected error for garbage snapshot")
	}
	if err := env.Restore(context.Background(), []byte(`{"room":"nowhere"}`)); err == nil {
		t.Fatal("expected error for unknown room")
	}
}

func TestValidActions(t *testing.T) {
	env := newTestWorld(t)
	actions, err := env.ValidActions(context.Background())
	if err != nil {
		t.Fatalf("valid actions: %v", err)
	}
	want := map[string]bool{"north": true, "take tin key": true, "look": true, "inventory": true}
	for _, a := range actions {
		delete(want, a)
	}
	if len(want) != 0 {
		t.Fatalf("missing actions %v in %v", want, actions)
	}
}

func TestDictionaryTruncatesToSixCharacters(t *testing.T) {
	env := newTestWorld(t)
	words, err := env.Dictionary(context.Background())
	if err != nil {
		t.Fatalf("dictionary: %v", err)
	}
	seen := map[string]bool{}
	for _, w := range words {
		if len(w) > 6 {
			t.Fatalf("dictionary word %q longer than six characters", w)
		}
		seen[w] = true
	}
	// "inventory" and "northeast" are stored truncated.
	for _, w := range []string{"invent", "northe", "take", "ring"} {
		if !seen[w] {
			t.Fatalf("expected %q in dictionary %v", w, words)
		}
	}
}

func TestOpenEmbeddedWorld(t *testing.T) {
	env, err := Open("cellar")
	if err != nil {
		t.Fatalf("open cellar: %v", err)
	}
	tr, err := env.Reset(context.Background())
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.HasPrefix(tr.Observation, "Stone Landing") {
		t.Fatalf("unexpected opening room: %q", tr.Observation)
	}

	if _, err := Open("no-such-world"); err == nil {
		t.Fatal("expected error for unknown world")
	}
}
