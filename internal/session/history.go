package session

// historyLimit is the number of most recent entries kept.
const historyLimit = 50

// HistoryEntry is one recorded (action, result) pair.
type HistoryEntry struct {
	Action string
	Result string
}

// History is a bounded, ordered record of actions and their results. Older
// entries are discarded first once the limit is reached.
type History struct {
	entries []HistoryEntry
}

// Append records one entry, discarding the oldest when over the limit.
func (h *History) Append(action, result string) {
	h.entries = append(h.entries, HistoryEntry{Action: action, Result: result})
	if len(h.entries) > historyLimit {
		h.entries = h.entries[len(h.entries)-historyLimit:]
	}
}

// Len reports how many entries are currently held.
func (h *History) Len() int { return len(h.entries) }

// Recent returns up to n of the most recent entries, oldest first.
func (h *History) Recent(n int) []HistoryEntry {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	return h.entries[len(h.entries)-n:]
}
