package extract

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.nownabe.dev/fleetloader/workbook"
)

// Policy decides what a numeric field holds when its value is not a number.
type Policy int

const (
	// ZeroDefault is for feed and load style metrics where a missing reading
	// means zero.
	ZeroDefault Policy = iota

	// NullDefault is for condition-monitoring metrics where "not measured"
	// must stay distinguishable from a true zero.
	NullDefault
)

// Coerce returns copies of records with every listed field converted to a
// float64, or to the field's policy default when conversion fails. Other
// fields pass through unchanged.
func Coerce(records []Record, numeric map[string]Policy) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		c := r.clone()
		for name, p := range numeric {
			c[name] = CoerceValue(r[name], p)
		}
		out[i] = c
	}
	return out
}

// CoerceValue converts v to a finite float64, or returns the policy default:
// 0.0 for ZeroDefault and nil for NullDefault.
func CoerceValue(v any, p Policy) any {
	if f, ok := Number(v); ok {
		return f
	}
	if p == ZeroDefault {
		return 0.0
	}
	return nil
}

// Number parses v as a finite number. Text has all whitespace removed
// first, and a lone dash counts as missing.
func Number(v any) (float64, bool) {
	var f float64

	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case workbook.Cell:
		return Number(x.Value())
	case string:
		s := stripSpace(x)
		if s == "" || s == "-" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func cellText(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return workbook.Cell{Kind: workbook.Bool, Flag: x}.String()
	case time.Time:
		return x.Format(isoDate)
	default:
		return workbook.CellOf(v).String()
	}
}
