package session

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the Combining Diacritical Marks block.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// NormalizeRole folds a role name for comparison: canonical decomposition,
// combining diacritical marks (U+0300–U+036F) removed, lower case.
// "Técnico", "TECNICO" and "tecnico" all normalize to "tecnico".
func NormalizeRole(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacritics)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(stripped)
}
