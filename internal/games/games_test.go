package games

import (
	"sort"
	"testing"
)

func TestDefaultGameIsSupported(t *testing.T) {
	if !IsSupported(DefaultGame) {
		t.Fatalf("default game %q is not in the catalog", DefaultGame)
	}
}

func TestIsSupported(t *testing.T) {
	for _, name := range []string{"zork1", "zork3", "lostpig", "trinity"} {
		if !IsSupported(name) {
			t.Errorf("IsSupported(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "zork4", "ZORK1", "doom"} {
		if IsSupported(name) {
			t.Errorf("IsSupported(%q) = true, want false", name)
		}
	}
}

func TestAvailableIsSortedAndComplete(t *testing.T) {
	names := Available()
	if len(names) != len(catalog) {
		t.Fatalf("Available returned %d names, catalog has %d", len(names), len(catalog))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Available is not sorted: %v", names)
	}
	for _, name := range names {
		if !catalog[name] {
			t.Errorf("Available returned %q, which is not in the catalog", name)
		}
	}
}
