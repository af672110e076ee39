package session

import "strings"

// itemDisplayName reduces an engine item descriptor to a short display name.
//
// Jericho renders inventory objects in shapes like "lamp:Object#123
// parent:adventurer". This is a best-effort heuristic over that string form,
// not a structured field: descriptors that match none of the shapes pass
// through unchanged.
func itemDisplayName(item string) string {
	trimmed := strings.TrimSpace(item)
	lower := strings.ToLower(trimmed)

	if idx := strings.Index(lower, "parent"); idx >= 0 {
		name := strings.TrimSpace(trimmed[:idx])
		if colon := strings.Index(name, ":"); colon >= 0 {
			name = strings.TrimSpace(name[colon+1:])
		}
		return name
	}
	if colon := strings.Index(trimmed, ":"); colon >= 0 {
		return strings.TrimSpace(trimmed[colon+1:])
	}
	return trimmed
}
