package session

import (
	"reflect"
	"testing"
)

func TestVocabMatches(t *testing.T) {
	dictionary := []string{"xyzzy", "lanter", "lamp", "mailbo", "open"}

	cases := []struct {
		name string
		word string
		want []string
	}{
		// "xyzzyqq" shares its six-character prefix with nothing.
		{"no match", "xyzzyqq", nil},
		// "xyzzy" is shorter than the prefix length and matches itself.
		{"short word", "xyzzy", []string{"xyzzy"}},
		// "lantern" is longer than the stored token but the truncated
		// prefix still matches.
		{"truncated dictionary token", "lantern", []string{"lanter"}},
		{"case folded", "LAMP", []string{"lamp"}},
		{"multiple matches", "la", []string{"lanter", "lamp"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := vocabMatches(dictionary, tc.word)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("vocabMatches(%q) = %v, want %v", tc.word, got, tc.want)
			}
		})
	}
}
