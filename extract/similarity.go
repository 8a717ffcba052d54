package extract

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the matching ratio of the normalized forms of a and b,
// in [0, 1]. The ratio is 2*M/T where M is the number of characters in the
// matching blocks and T is the total length of both strings.
//
// Operands are put in a fixed order before matching so the result does not
// depend on argument order.
func Similarity(a, b string) float64 {
	return ratio(Normalize(a), Normalize(b))
}

func ratio(a, b string) float64 {
	if a > b {
		a, b = b, a
	}

	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	rs := make([]string, 0, len(s))
	for _, r := range s {
		rs = append(rs, string(r))
	}
	return rs
}
