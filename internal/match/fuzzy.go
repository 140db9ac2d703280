package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents removes combining marks so "Hồ Chí Minh" folds to "ho chi minh".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and accent-folds s for comparison.
func Fold(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// FuzzySkill reports whether two skill strings match under bidirectional
// substring containment, case- and accent-insensitively. "React.js" matches
// "React", but short tokens over-match ("Go" matches "Django"). That fuzziness
// is load-bearing: tightening it changes which jobs candidates see as
// matches, so it stays as-is.
func FuzzySkill(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	if fa == "" || fb == "" {
		return false
	}
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}

// AnyFuzzy reports whether skill fuzzily matches any entry of set.
func AnyFuzzy(skill string, set []string) bool {
	for _, s := range set {
		if FuzzySkill(skill, s) {
			return true
		}
	}
	return false
}

// EqualsFold is a whole-string case/accent-insensitive comparison used for
// the binary filter categories (location, industry, work type, experience).
func EqualsFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
