// Package enginetest provides a scripted engine for unit tests.
package enginetest

import (
	"context"
	"fmt"

	"github.com/llm-course/text-adventure-go/internal/engine"
)

// Fake is an engine.Engine whose transitions are scripted by the test.
//
// Reset returns Opening. Step pops the next queued transition, or keeps
// returning the last one when the queue runs dry, so long action sequences
// do not need one script entry per action. Any method can be forced to fail
// by setting the corresponding error field.
type Fake struct {
	Opening engine.Transition
	Queue   []engine.Transition

	Actions  []string // commands received by Step, in order
	Words    []string
	Valid    []string
	State    engine.Snapshot // state returned by Snapshot
	Restored []engine.Snapshot

	StepErr     error
	ResetErr    error
	ValidErr    error
	DictErr     error
	SnapshotErr error
	RestoreErr  error

	last engine.Transition
}

var _ engine.Engine = (*Fake)(nil)

// Reset returns the scripted opening transition.
func (f *Fake) Reset(ctx context.Context) (engine.Transition, error) {
	if f.ResetErr != nil {
		return engine.Transition{}, f.ResetErr
	}
	f.last = f.Opening
	return f.Opening, nil
}

// Step records the action and pops the next scripted transition.
func (f *Fake) Step(ctx context.Context, action string) (engine.Transition, error) {
	if f.StepErr != nil {
		return engine.Transition{}, f.StepErr
	}
	f.Actions = append(f.Actions, action)
	if len(f.Queue) > 0 {
		f.last = f.Queue[0]
		f.Queue = f.Queue[1:]
	}
	return f.last, nil
}

// ValidActions returns the scripted action list.
func (f *Fake) ValidActions(ctx context.Context) ([]string, error) {
	if f.ValidErr != nil {
		return nil, f.ValidErr
	}
	return f.Valid, nil
}

// Dictionary returns the scripted vocabulary.
func (f *Fake) Dictionary(ctx context.Context) ([]string, error) {
	if f.DictErr != nil {
		return nil, f.DictErr
	}
	return f.Words, nil
}

// Snapshot returns the scripted state blob.
func (f *Fake) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	if f.SnapshotErr != nil {
		return nil, f.SnapshotErr
	}
	if f.State == nil {
		return nil, fmt.Errorf("no scripted state")
	}
	return f.State, nil
}

// Restore records the snapshot it was asked to replay.
func (f *Fake) Restore(ctx context.Context, snap engine.Snapshot) error {
	if f.RestoreErr != nil {
		return f.RestoreErr
	}
	f.Restored = append(f.Restored, snap)
	return nil
}

// Close is a no-op.
func (f *Fake) Close() error { return nil }
