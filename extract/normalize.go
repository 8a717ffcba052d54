package extract

import (
	"regexp"
	"strings"
	"unicode"

	textrunes "golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9\s]+`)
	spaces   = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes header text: lower case, ASCII folded, with every
// run of punctuation and whitespace collapsed to a single space.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ToLower(foldASCII(s))
	s = nonAlnum.ReplaceAllString(s, " ")
	s = spaces.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// foldASCII applies a compatibility decomposition and drops whatever has no
// ASCII form, so "Résumé" becomes "Resume" and "μm" becomes "m".
func foldASCII(s string) string {
	t := transform.Chain(
		norm.NFKD,
		textrunes.Remove(textrunes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)

	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}

	return out
}
