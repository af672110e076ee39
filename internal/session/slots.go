package session

import "github.com/llm-course/text-adventure-go/internal/engine"

// Slots holds named engine snapshots for the lifetime of the process. Saving
// to an existing name overwrites it. Nothing is written to durable storage;
// every slot is gone when the process exits.
type Slots struct {
	snaps map[string]engine.Snapshot
}

// Put stores a snapshot under name, replacing any previous one.
func (s *Slots) Put(name string, snap engine.Snapshot) {
	if s.snaps == nil {
		s.snaps = make(map[string]engine.Snapshot)
	}
	s.snaps[name] = snap
}

// Get returns the snapshot stored under name.
func (s *Slots) Get(name string) (engine.Snapshot, bool) {
	snap, ok := s.snaps[name]
	return snap, ok
}
