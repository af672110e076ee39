// Package builtin implements a small self-contained adventure engine whose
// world is defined by a Lua script. It exists so the server can be exercised
// end to end (demos, tests, CI) without a Z-machine interpreter installed.
//
// A world script returns a single table: rooms with exits and items, a
// starting room, and a treasure table mapping item names to point values.
// The game is won when every treasure is carried at once.
package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	lua "github.com/Shopify/go-lua"
	"github.com/llm-course/text-adventure-go/internal/engine"
)

type room struct {
	name        string
	description string
	exits       map[string]string
	items       []string
}

type world struct {
	name      string
	start     string
	rooms     map[string]*room
	treasures map[string]int
}

// runState is the mutable part of a game. It is what Snapshot serializes.
type runState struct {
	Room      string              `json:"room"`
	Carried   []string            `json:"carried"`
	RoomItems map[string][]string `json:"room_items"`
	Awarded   map[string]bool     `json:"awarded"`
	Score     int                 `json:"score"`
	Moves     int                 `json:"moves"`
	Done      bool                `json:"done"`
}

// Env is an engine.Engine over a Lua-defined world.
type Env struct {
	world *world
	state runState
}

var _ engine.Engine = (*Env)(nil)

// directions maps every accepted movement word to its canonical exit name.
var directions = map[string]string{
	"north": "north", "n": "north",
	"south": "south", "s": "south",
	"east": "east", "e": "east",
	"west": "west", "w": "west",
	"northeast": "northeast", "ne": "northeast",
	"northwest": "northwest", "nw": "northwest",
	"southeast": "southeast", "se": "southeast",
	"southwest": "southwest", "sw": "southwest",
	"up": "up", "u": "up",
	"down": "down", "d": "down",
	"enter": "enter", "exit": "exit",
}

// Open loads one of the embedded worlds by name.
func Open(name string) (*Env, error) {
	src, ok := worlds[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin world %q (available: %s)", name, strings.Join(worldNames(), ", "))
	}
	return Load(src)
}

// Load builds an engine from Lua world source.
func Load(src string) (*Env, error) {
	w, err := loadWorld(src)
	if err != nil {
		return nil, err
	}
	env := &Env{world: w}
	env.reset()
	return env, nil
}

func (e *Env) reset() {
	items := make(map[string][]string, len(e.world.rooms))
	for id, r := range e.world.rooms {
		items[id] = append([]string(nil), r.items...)
	}
	e.state = runState{
		Room:      e.world.start,
		RoomItems: items,
		Awarded:   map[string]bool{},
	}
}

// Reset restarts the world and returns the opening transition.
func (e *Env) Reset(ctx context.Context) (engine.Transition, error) {
	if err := ctx.Err(); err != nil {
		return engine.Transition{}, err
	}
	e.reset()
	return e.transition(e.describeRoom(), 0), nil
}

// Step executes one command. Commands stay valid after the game is done;
// the world simply keeps responding.
func (e *Env) Step(ctx context.Context, action string) (engine.Transition, error) {
	if err := ctx.Err(); err != nil {
		return engine.Transition{}, err
	}
	e.state.Moves++
	words := strings.Fields(strings.ToLower(strings.TrimSpace(action)))
	if len(words) == 0 {
		return e.transition("Beg pardon?", 0), nil
	}

	verb := words[0]
	rest := strings.Join(words[1:], " ")

	if dir, ok := directions[verb]; ok && rest == "" {
		return e.move(dir), nil
	}

	switch verb {
	case "look", "l":
		return e.transition(e.describeRoom(), 0), nil
	case "inventory", "i":
		return e.transition(e.inventoryText(), 0), nil
	case "score":
		text := fmt.Sprintf("Your score is %d in %d moves.", e.state.Score, e.state.Moves)
		return e.transition(text, 0), nil
	case "take", "get":
		return e.take(rest), nil
	case "drop":
		return e.drop(rest), nil
	case "go":
		if dir, ok := directions[rest]; ok {
			return e.move(dir), nil
		}
	}
	return e.transition("That sentence isn't one I recognise.", 0), nil
}

func (e *Env) move(dir string) engine.Transition {
	here := e.world.rooms[e.state.Room]
	dest, ok := here.exits[dir]
	if !ok {
		return e.transition("You can't go that way.", 0)
	}
	e.state.Room = dest
	return e.transition(e.describeRoom(), 0)
}

func (e *Env) take(item string) engine.Transition {
	if item == "" {
		return e.transition("Take what?", 0)
	}
	items := e.state.RoomItems[e.state.Room]
	for i, candidate := range items {
		if candidate != item {
			continue
		}
		e.state.RoomItems[e.state.Room] = append(items[:i:i], items[i+1:]...)
		e.state.Carried = append(e.state.Carried, item)
		sort.Strings(e.state.Carried)

		reward := 0
		if points, isTreasure := e.world.treasures[item]; isTreasure && !e.state.Awarded[item] {
			e.state.Awarded[item] = true
			e.state.Score += points
			reward = points
		}
		text := "Taken."
		if e.allTreasuresCarried() && !e.state.Done {
			e.state.Done = true
			text += "\n\nThe last treasure is yours and the vault seals behind you.\n*** You have won ***"
		}
		return e.transition(text, reward)
	}
	return e.transition("You can't see any such thing.", 0)
}

func (e *Env) drop(item string) engine.Transition {
	if item == "" {
		return e.transition("Drop what?", 0)
	}
	for i, candidate := range e.state.Carried {
		if candidate != item {
			continue
		}
		e.state.Carried = append(e.state.Carried[:i:i], e.state.Carried[i+1:]...)
		e.state.RoomItems[e.state.Room] = append(e.state.RoomItems[e.state.Room], item)
		return e.transition("Dropped.", 0)
	}
	return e.transition("You aren't carrying that.", 0)
}

func (e *Env) allTreasuresCarried() bool {
	if len(e.world.treasures) == 0 {
		return false
	}
	carried := make(map[string]bool, len(e.state.Carried))
	for _, item := range e.state.Carried {
		carried[item] = true
	}
	for treasure := range e.world.treasures {
		if !carried[treasure] {
			return false
		}
	}
	return true
}

func (e *Env) describeRoom() string {
	r := e.world.rooms[e.state.Room]
	var b strings.Builder
	b.WriteString(r.name)
	b.WriteString("\n")
	b.WriteString(r.description)
	for _, item := range e.state.RoomItems[e.state.Room] {
		fmt.Fprintf(&b, "\nThere is a %s here.", item)
	}
	return b.String()
}

func (e *Env) inventoryText() string {
	if len(e.state.Carried) == 0 {
		return "You are empty-handed."
	}
	var b strings.Builder
	b.WriteString("You are carrying:")
	for _, item := range e.state.Carried {
		fmt.Fprintf(&b, "\n  a %s", item)
	}
	return b.String()
}

func (e *Env) transition(observation string, reward int) engine.Transition {
	return engine.Transition{
		Observation: observation,
		Score:       e.state.Score,
		Moves:       e.state.Moves,
		Reward:      reward,
		Done:        e.state.Done,
		Inventory:   append([]string(nil), e.state.Carried...),
	}
}

// ValidActions lists the commands that would do something in the current room.
func (e *Env) ValidActions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := e.world.rooms[e.state.Room]
	var actions []string
	for dir := range r.exits {
		actions = append(actions, dir)
	}
	for _, item := range e.state.RoomItems[e.state.Room] {
		actions = append(actions, "take "+item)
	}
	for _, item := range e.state.Carried {
		actions = append(actions, "drop "+item)
	}
	actions = append(actions, "look", "inventory")
	sort.Strings(actions)
	return actions, nil
}

// Dictionary returns every word the world understands, truncated to six
// characters the way Z-machine dictionaries store them.
func (e *Env) Dictionary(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	add := func(words ...string) {
		for _, w := range words {
			w = strings.ToLower(w)
			if len(w) > 6 {
				w = w[:6]
			}
			if w != "" {
				seen[w] = true
			}
		}
	}
	add("look", "l", "inventory", "i", "take", "get", "drop", "go", "score")
	for word := range directions {
		add(word)
	}
	for _, r := range e.world.rooms {
		for _, item := range r.items {
			add(strings.Fields(item)...)
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words, nil
}

// Snapshot serializes the mutable game state.
func (e *Env) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := json.Marshal(e.state)
	if err != nil {
		return nil, fmt.Errorf("marshal world state: %w", err)
	}
	return engine.Snapshot(blob), nil
}

// Restore replaces the mutable game state from a snapshot.
func (e *Env) Restore(ctx context.Context, snap engine.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var restored runState
	if err := json.Unmarshal([]byte(snap), &restored); err != nil {
		return fmt.Errorf("unmarshal world state: %w", err)
	}
	if _, ok := e.world.rooms[restored.Room]; !ok {
		return fmt.Errorf("snapshot references unknown room %q", restored.Room)
	}
	if restored.Awarded == nil {
		restored.Awarded = map[string]bool{}
	}
	if restored.RoomItems == nil {
		restored.RoomItems = map[string][]string{}
	}
	e.state = restored
	return nil
}

// Close is a no-op; the world lives entirely in memory.
func (e *Env) Close() error { return nil }

// loadWorld runs a world script and walks the returned table.
func loadWorld(src string) (*world, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)

	if err := l.Load(strings.NewReader(src), "world", ""); err != nil {
		return nil, fmt.Errorf("load world script: %w", err)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run world script: %w", err)
	}
	if !l.IsTable(-1) {
		return nil, fmt.Errorf("world script must return a table")
	}

	w := &world{rooms: map[string]*room{}, treasures: map[string]int{}}
	w.name = tableString(l, "name")
	w.start = tableString(l, "start")

	l.Field(-1, "rooms")
	if !l.IsTable(-1) {
		return nil, fmt.Errorf("world table is missing rooms")
	}
	l.PushNil()
	for l.Next(-2) {
		id, ok := l.ToString(-2)
		if !ok {
			return nil, fmt.Errorf("room keys must be strings")
		}
		r, err := parseRoom(l)
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", id, err)
		}
		w.rooms[id] = r
		l.Pop(1)
	}
	l.Pop(1)

	l.Field(-1, "treasures")
	if l.IsTable(-1) {
		l.PushNil()
		for l.Next(-2) {
			item, _ := l.ToString(-2)
			points, ok := l.ToInteger(-1)
			if !ok || points <= 0 {
				return nil, fmt.Errorf("treasure %q must have a positive point value", item)
			}
			w.treasures[item] = points
			l.Pop(1)
		}
	}
	l.Pop(1)

	return w, validateWorld(w)
}

// parseRoom reads the room table currently on top of the stack.
func parseRoom(l *lua.State) (*room, error) {
	if !l.IsTable(-1) {
		return nil, fmt.Errorf("room must be a table")
	}
	r := &room{
		name:        tableString(l, "name"),
		description: tableString(l, "description"),
		exits:       map[string]string{},
	}
	if r.name == "" {
		return nil, fmt.Errorf("room has no name")
	}

	l.Field(-1, "exits")
	if l.IsTable(-1) {
		l.PushNil()
		for l.Next(-2) {
			dir, _ := l.ToString(-2)
			dest, _ := l.ToString(-1)
			if _, ok := directions[dir]; !ok {
				return nil, fmt.Errorf("exit %q is not a movement word", dir)
			}
			r.exits[dir] = dest
			l.Pop(1)
		}
	}
	l.Pop(1)

	l.Field(-1, "items")
	if l.IsTable(-1) {
		l.PushNil()
		for l.Next(-2) {
			item, _ := l.ToString(-1)
			if item != "" {
				r.items = append(r.items, item)
			}
			l.Pop(1)
		}
	}
	l.Pop(1)

	return r, nil
}

// tableString reads a string field from the table on top of the stack.
func tableString(l *lua.State, name string) string {
	l.Field(-1, name)
	s, _ := l.ToString(-1)
	l.Pop(1)
	return s
}

func validateWorld(w *world) error {
	if len(w.rooms) == 0 {
		return fmt.Errorf("world has no rooms")
	}
	if _, ok := w.rooms[w.start]; !ok {
		return fmt.Errorf("start room %q does not exist", w.start)
	}
	for id, r := range w.rooms {
		for dir, dest := range r.exits {
			if _, ok := w.rooms[dest]; !ok {
				return fmt.Errorf("room %q exit %q leads to unknown room %q", id, dir, dest)
			}
		}
	}
	for treasure := range w.treasures {
		found := false
		for _, r := range w.rooms {
			for _, item := range r.items {
				if item == treasure {
					found = true
				}
			}
		}
		if !found {
			return fmt.Errorf("treasure %q is not placed in any room", treasure)
		}
	}
	return nil
}
