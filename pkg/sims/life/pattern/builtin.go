package pattern

import (
	"sort"
	"strings"
)

// Built-in patterns.
var (
	Blinker    = MustParseRLE("Blinker", "3o!")
	Block      = MustParseRLE("Block", "2o$2o!")
	Glider     = MustParseRLE("Glider", "bo$2bo$3o!")
	RPentomino = MustParseRLE("R-pentomino", "b2o$2o$bo!")
	Acorn      = MustParseRLE("Acorn", "bo5b$3bo3b$2o2b3o!")
	GliderGun  = MustParseRLE("Gosper glider gun", `x = 36, y = 9, rule = B3/S23
24bo11b$22bobo11b$12b2o6b2o12b2o$11bo3bo4b2o12b2o$2o8bo5bo3b2o14b$2o8b
o3bob2o4bobo11b$10bo5bo7bo11b$11bo3bo20b$12b2o22b!`)
)

var builtins = map[string]Pattern{
	"blinker":     Blinker,
	"block":       Block,
	"glider":      Glider,
	"r-pentomino": RPentomino,
	"acorn":       Acorn,
	"glider-gun":  GliderGun,
}

// Lookup returns the built-in pattern registered under name, ignoring case.
func Lookup(name string) (Pattern, bool) {
	p, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names lists the built-in pattern keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
