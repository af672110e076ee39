// Package engine defines the contract between the session layer and a
// game-stepping engine.
//
// An engine interprets player commands against full game rules and reports
// each step as a Transition. The session layer never looks inside game
// semantics: it treats observations as text, inventories as opaque item
// descriptors, and snapshots as byte blobs to be replayed verbatim.
package engine

import "context"

// Transition is the result of a single engine step. It is replaced wholesale
// on every step and never mutated afterwards.
type Transition struct {
	// Observation is the narrative text the game printed for this step.
	Observation string `json:"observation"`
	// Score is the cumulative game score after the step.
	Score int `json:"score"`
	// Moves is the number of moves taken so far.
	Moves int `json:"moves"`
	// Reward is the score delta produced by this step.
	Reward int `json:"reward"`
	// Done reports whether the game has ended.
	Done bool `json:"done"`
	// Inventory holds engine-specific item descriptors for carried items.
	Inventory []string `json:"inventory"`
}

// Snapshot is an opaque serialized engine state. Callers store and replay it
// verbatim; its contents must never be inspected, diffed, or merged.
type Snapshot []byte

// Engine is a synchronous game-stepping engine. Implementations are not
// required to be safe for concurrent use; the session layer serializes all
// calls.
type Engine interface {
	// Reset starts (or restarts) the game and returns the opening transition.
	Reset(ctx context.Context) (Transition, error)
	// Step executes one player command.
	Step(ctx context.Context, action string) (Transition, error)
	// ValidActions lists commands the engine considers valid right now.
	ValidActions(ctx context.Context) ([]string, error)
	// Dictionary returns the engine's known vocabulary tokens. Z-machine
	// dictionaries truncate words to a fixed prefix length, so tokens may be
	// shorter than the words players type.
	Dictionary(ctx context.Context) ([]string, error)
	// Snapshot captures the full engine state.
	Snapshot(ctx context.Context) (Snapshot, error)
	// Restore replaces the engine state with a previously captured snapshot.
	Restore(ctx context.Context, snap Snapshot) error
	// Close releases any resources held by the engine.
	Close() error
}
