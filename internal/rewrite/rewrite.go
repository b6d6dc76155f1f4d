// Package rewrite holds the mechanical source transform applied before each
// correction-round retry. It is a fixed, deterministic placeholder hook, not
// a static-analysis-driven repair engine.
package rewrite

import "strings"

// marker is prepended once so downstream tooling can tell a rewritten
// attempt from the original source.
const marker = "// prismc: mechanical rewrite applied\n"

// toggler swaps declaration keywords in a single pass, so `const` and `let`
// trade places rather than collapsing into one.
var toggler = strings.NewReplacer("const ", "let ", "let ", "const ")

// Mechanical applies the keyword toggle to src. Applying it twice restores
// the original declarations; the transform is intentionally simplistic and
// not guaranteed to fix any given error.
func Mechanical(src []byte) []byte {
	out := toggler.Replace(string(src))
	if !strings.HasPrefix(out, marker) {
		out = marker + out
	}
	return []byte(out)
}
