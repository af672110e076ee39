package session

import "strings"

// vocabPrefixLen is how much of a word is compared against dictionary
// tokens. Z-machine dictionaries truncate entries to roughly this many
// characters, so an exact-match test would reject perfectly valid words.
const vocabPrefixLen = 6

// vocabMatches returns every dictionary token that starts with the first six
// characters of the lower-cased word (fewer when the word is shorter).
func vocabMatches(dictionary []string, word string) []string {
	prefix := strings.ToLower(word)
	if len(prefix) > vocabPrefixLen {
		prefix = prefix[:vocabPrefixLen]
	}
	var matches []string
	for _, token := range dictionary {
		if strings.HasPrefix(token, prefix) {
			matches = append(matches, token)
		}
	}
	return matches
}
