// Package session orchestrates one live text-adventure game.
//
// A Session owns its engine handle exclusively and converts the engine's raw
// transitions into queryable telemetry: a bounded action history, a map of
// explored locations, parsed inventory names, vocabulary answers, and named
// in-memory save slots. It is the single point of truth for "where are we
// now"; everything above it is formatting and transport.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/llm-course/text-adventure-go/internal/engine"
)

// movementActions are the commands that update the exploration map: the
// eight compass directions, up/down, enter/exit, and their abbreviations.
var movementActions = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"northeast": true, "northwest": true, "southeast": true, "southwest": true,
	"up": true, "down": true, "enter": true, "exit": true,
	"n": true, "s": true, "e": true, "w": true,
	"ne": true, "nw": true, "se": true, "sw": true,
	"u": true, "d": true,
}

// Recorder observes committed steps. Recording failures are logged, never
// allowed to interfere with play.
type Recorder interface {
	RecordStep(ctx context.Context, action string, tr engine.Transition) error
}

// Session wraps one engine instance plus derived telemetry. All methods are
// safe for concurrent use; a single mutex serializes every operation because
// the cached transition, history, map, and slots are mutated in place.
type Session struct {
	mu       sync.Mutex
	gameName string
	eng      engine.Engine
	recorder Recorder

	current  engine.Transition
	location string
	history  History
	explored Explored
	slots    Slots
}

// New resets the engine and wraps it in a fresh session.
func New(ctx context.Context, gameName string, eng engine.Engine) (*Session, error) {
	opening, err := eng.Reset(ctx)
	if err != nil {
		return nil, fmt.Errorf("reset engine for %q: %w", gameName, err)
	}
	return &Session{
		gameName: gameName,
		eng:      eng,
		current:  opening,
		location: extractLocation(opening.Observation),
	}, nil
}

// Observe attaches a step recorder.
func (s *Session) Observe(r Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// extractLocation derives a location name from an observation: its first
// non-empty line, trimmed. Two rooms with identical first lines collapse
// into one map node; that lossy simplification is deliberate.
func extractLocation(observation string) string {
	for _, line := range strings.Split(observation, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "Unknown"
}

// TakeAction executes one game command and returns the narrative text with a
// score/move summary appended. A step failure is session-fatal and
// propagates: the cached state would otherwise be undefined.
//
// Actions remain legal after the game reports completion; they are forwarded
// as-is and the engine decides what they mean.
func (s *Session) TakeAction(ctx context.Context, action string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, err := s.eng.Step(ctx, action)
	if err != nil {
		return "", fmt.Errorf("step %q: %w", action, err)
	}
	s.commit(ctx, action, tr)

	summary := fmt.Sprintf("\n\n[Score: %d | Moves: %d]", tr.Score, tr.Moves)
	if tr.Reward > 0 {
		summary = fmt.Sprintf("\n\n+%d points! (Total: %d)", tr.Reward, tr.Score)
	}
	text := tr.Observation + summary
	if tr.Done {
		text += "\n\nGAME OVER"
	}
	return text, nil
}

// commit replaces the cached transition and updates history and the
// exploration map. Caller holds the mutex.
func (s *Session) commit(ctx context.Context, action string, tr engine.Transition) {
	s.current = tr
	s.history.Append(action, tr.Observation)

	newLocation := extractLocation(tr.Observation)
	if movementActions[action] {
		s.explored.Visit(s.location)
		if newLocation != s.location {
			s.explored.AddEdge(s.location, action, newLocation)
		}
	}
	s.location = newLocation

	if s.recorder != nil {
		if err := s.recorder.RecordStep(ctx, action, tr); err != nil {
			log.Printf("transcript record failed: %v", err)
		}
	}
}

// Memory renders a summary of the current game state: location, score,
// moves, game name, the last five actions, and the full observation.
func (s *Session) Memory() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	recentLines := "  (none yet)"
	if recent := s.history.Recent(5); len(recent) > 0 {
		var lines []string
		for _, entry := range recent {
			lines = append(lines, fmt.Sprintf("  > %s -> %s...", entry.Action, excerpt(entry.Result, 60)))
		}
		recentLines = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`Current State:
  - Location: %s
  - Score: %d points
  - Moves: %d
  - Game: %s

Recent Actions:
%s

Current Observation:
%s`, s.location, s.current.Score, s.current.Moves, s.gameName, recentLines, s.current.Observation)
}

// excerpt returns at most n runes of text with newlines flattened.
func excerpt(text string, n int) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	runes := []rune(flat)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// Map renders the exploration report.
func (s *Session) Map() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.explored.Render(s.location)
}

// Inventory renders the carried items as short display names.
func (s *Session) Inventory() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.current.Inventory) == 0 {
		return "Inventory: You are empty-handed."
	}
	names := make([]string, 0, len(s.current.Inventory))
	for _, item := range s.current.Inventory {
		names = append(names, itemDisplayName(item))
	}
	return "Inventory: " + strings.Join(names, ", ")
}

// ValidActions queries the engine for currently valid commands. Failures
// degrade to a descriptive message; this never returns an error.
func (s *Session) ValidActions(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, err := s.eng.ValidActions(ctx)
	if err != nil {
		return fmt.Sprintf("Could not retrieve valid actions: %v", err)
	}
	if len(actions) == 0 {
		return "No valid actions available."
	}
	lines := make([]string, 0, len(actions))
	for _, action := range actions {
		lines = append(lines, "  - "+action)
	}
	return "Valid Actions:\n" + strings.Join(lines, "\n")
}

// CheckVocabulary reports whether the engine understands a word, by prefix
// match against its (truncated) dictionary. Failures degrade to text.
func (s *Session) CheckVocabulary(ctx context.Context, word string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	dictionary, err := s.eng.Dictionary(ctx)
	if err != nil {
		return fmt.Sprintf("Could not check vocabulary: %v", err)
	}
	matches := vocabMatches(dictionary, word)
	if len(matches) == 0 {
		return fmt.Sprintf("No, the game does NOT understand the word '%s'. Try a different synonym.", word)
	}
	return fmt.Sprintf("Yes, the game understands '%s' (matches: %s).", word, strings.Join(matches, ", "))
}

// Save captures the engine state into a named slot. Failures degrade to
// text. Slots live in memory only and vanish with the process.
func (s *Session) Save(ctx context.Context, slotName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.eng.Snapshot(ctx)
	if err != nil {
		return fmt.Sprintf("Error saving game to slot '%s': %v", slotName, err)
	}
	s.slots.Put(slotName, snap)
	return fmt.Sprintf("Game saved successfully to slot: '%s'", slotName)
}

// Load restores the engine from a named slot and refreshes the cached state
// with a synchronizing "look". A missing slot is reported as text; a restore
// or refresh failure propagates as session-fatal.
//
// History and the exploration map are not rewound: they keep accumulating
// across loads, so recorded history can disagree with the restored game
// state. That inconsistency is a documented property, not a bug to fix here.
func (s *Session) Load(ctx context.Context, slotName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.slots.Get(slotName)
	if !ok {
		return fmt.Sprintf("Error: No save found in slot '%s'", slotName), nil
	}
	if err := s.eng.Restore(ctx, snap); err != nil {
		return "", fmt.Errorf("restore slot %q: %w", slotName, err)
	}
	tr, err := s.eng.Step(ctx, "look")
	if err != nil {
		return "", fmt.Errorf("refresh after loading slot %q: %w", slotName, err)
	}
	s.current = tr
	s.location = extractLocation(tr.Observation)
	return fmt.Sprintf("Game loaded from slot: '%s'.\nCurrent location: %s", slotName, tr.Observation), nil
}

// GameName returns the identifier of the game being played.
func (s *Session) GameName() string { return s.gameName }

// Location returns the currently derived location name.
func (s *Session) Location() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// Current returns the most recent transition.
func (s *Session) Current() engine.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// HistoryLen reports how many history entries are held.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}
