// Package games holds the catalog of playable Z-machine games.
package games

import "sort"

// DefaultGame is played when no game is configured.
const DefaultGame = "zork1"

// catalog lists every Z-machine story the Jericho engine ships with. The
// builtin engine has its own worlds and does not consult this list.
var catalog = map[string]bool{
	"905":           true,
	"acorncourt":    true,
	"advent":        true,
	"adventureland": true,
	"afflicted":     true,
	"anchor":        true,
	"awaken":        true,
	"balances":      true,
	"ballyhoo":      true,
	"curses":        true,
	"cutthroat":     true,
	"deephome":      true,
	"detective":     true,
	"dragon":        true,
	"enchanter":     true,
	"enter":         true,
	"gold":          true,
	"hhgg":          true,
	"hollywood":     true,
	"huntdark":      true,
	"infidel":       true,
	"inhumane":      true,
	"jewel":         true,
	"karn":          true,
	"lgop":          true,
	"library":       true,
	"loose":         true,
	"lostpig":       true,
	"ludicorp":      true,
	"lurking":       true,
	"moonlit":       true,
	"murdac":        true,
	"night":         true,
	"omniquest":     true,
	"partyfoul":     true,
	"pentari":       true,
	"planetfall":    true,
	"plundered":     true,
	"reverb":        true,
	"seastalker":    true,
	"sherlock":      true,
	"snacktime":     true,
	"sorcerer":      true,
	"spellbrkr":     true,
	"spirit":        true,
	"temple":        true,
	"trinity":       true,
	"tryst205":      true,
	"weapon":        true,
	"wishbringer":   true,
	"yomomma":       true,
	"zenon":         true,
	"zork1":         true,
	"zork2":         true,
	"zork3":         true,
	"ztuu":          true,
}

// IsSupported reports whether the named game is in the catalog.
func IsSupported(name string) bool {
	return catalog[name]
}

// Available returns all catalog entries in sorted order.
func Available() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
