package builtin

import (
	_ "embed"
	"sort"
)

//go:embed worlds/cellar.lua
var cellarWorld string

// worlds indexes the embedded world scripts by the name callers pass to Open.
var worlds = map[string]string{
	"cellar": cellarWorld,
}

func worldNames() []string {
	names := make([]string, 0, len(worlds))
	for name := range worlds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
