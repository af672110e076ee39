package session

import (
	"fmt"
	"sort"
	"strings"
)

// Explored accumulates the map of visited locations and the movement edges
// between them. Locations and edges are only ever added, never removed.
type Explored struct {
	edges map[string]map[string]struct{}
}

// Visit records a location node, with or without outgoing edges.
func (x *Explored) Visit(location string) {
	if x.edges == nil {
		x.edges = make(map[string]map[string]struct{})
	}
	if _, ok := x.edges[location]; !ok {
		x.edges[location] = make(map[string]struct{})
	}
}

// AddEdge records that taking action in from led to destination. Repeated
// identical edges collapse into one.
func (x *Explored) AddEdge(from, action, destination string) {
	x.Visit(from)
	x.edges[from][fmt.Sprintf("%s -> %s", action, destination)] = struct{}{}
}

// Empty reports whether nothing has been explored yet.
func (x *Explored) Empty() bool { return len(x.edges) == 0 }

// Render formats the exploration report: each location in lexical order with
// its outgoing edges in lexical order, ending with the current location.
func (x *Explored) Render(current string) string {
	if x.Empty() {
		return "Map: No locations explored yet. Try moving around!"
	}

	locations := make([]string, 0, len(x.edges))
	for location := range x.edges {
		locations = append(locations, location)
	}
	sort.Strings(locations)

	lines := []string{"Explored Locations and Exits:"}
	for _, location := range locations {
		lines = append(lines, fmt.Sprintf("\n* %s", location))
		exits := make([]string, 0, len(x.edges[location]))
		for exit := range x.edges[location] {
			exits = append(exits, exit)
		}
		sort.Strings(exits)
		for _, exit := range exits {
			lines = append(lines, fmt.Sprintf("    -> %s", exit))
		}
	}
	lines = append(lines, fmt.Sprintf("\n[Current] %s", current))
	return strings.Join(lines, "\n")
}
