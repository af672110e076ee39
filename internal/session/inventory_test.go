package session

import "testing"

func TestItemDisplayName(t *testing.T) {
	cases := []struct {
		name string
		item string
		want string
	}{
		// The "parent" and colon rules combine: text before "parent", then
		// text after the colon inside that prefix.
		{"parent and colon", "lamp:Object#123 parent:room", "Object#123"},
		{"parent only", "brass lantern parent:adventurer", "brass lantern"},
		{"colon only", "obj12:a jewel-encrusted egg", "a jewel-encrusted egg"},
		{"plain descriptor", "a leaflet", "a leaflet"},
		{"uppercase parent still matches", "sword PARENT:troll", "sword"},
		{"surrounding whitespace", "  rope  ", "rope"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := itemDisplayName(tc.item); got != tc.want {
				t.Fatalf("itemDisplayName(%q) = %q, want %q", tc.item, got, tc.want)
			}
		})
	}
}
