package session

import (
	"strings"
	"testing"
)

func TestExploredRenderEmpty(t *testing.T) {
	var x Explored
	got := x.Render("West of House")
	if got != "Map: No locations explored yet. Try moving around!" {
		t.Fatalf("unexpected empty map message: %q", got)
	}
}

func TestExploredEdgesAreDeduplicatedAndSorted(t *testing.T) {
	var x Explored
	x.AddEdge("West of House", "north", "North of House")
	x.AddEdge("West of House", "north", "North of House")
	x.AddEdge("West of House", "east", "Behind House")
	x.AddEdge("Behind House", "west", "West of House")

	got := x.Render("Behind House")
	if strings.Count(got, "north -> North of House") != 1 {
		t.Fatalf("duplicate edge rendered:\n%s", got)
	}
	// Locations sort lexically, so Behind House renders first.
	if !strings.Contains(got, "* Behind House") || strings.Index(got, "* Behind House") > strings.Index(got, "* West of House") {
		t.Fatalf("locations not in lexical order:\n%s", got)
	}
	// Within a location, edges sort lexically: east before north.
	if strings.Index(got, "east -> Behind House") > strings.Index(got, "north -> North of House") {
		t.Fatalf("edges not in lexical order:\n%s", got)
	}
	if !strings.HasSuffix(got, "[Current] Behind House") {
		t.Fatalf("missing current marker:\n%s", got)
	}
}

func TestExploredVisitWithoutEdges(t *testing.T) {
	var x Explored
	x.Visit("Dark Cave")
	got := x.Render("Dark Cave")
	if !strings.Contains(got, "* Dark Cave") {
		t.Fatalf("visited location missing from map:\n%s", got)
	}
}
