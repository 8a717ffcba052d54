package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.nownabe.dev/fleetloader/workbook"
)

const (
	// DefaultThreshold is the minimum Similarity for a fuzzy header match.
	DefaultThreshold = 0.60

	// MaxHeaderColumns bounds the header scan on sheets with runaway extents.
	MaxHeaderColumns = 100
)

// Target is a field name searched for in a header row.
type Target struct {
	Name string

	// Exact requires the normalized header to equal the normalized name.
	Exact bool
}

// Fuzzy builds targets matched by Similarity.
func Fuzzy(names ...string) []Target {
	ts := make([]Target, len(names))
	for i, n := range names {
		ts[i] = Target{Name: n}
	}
	return ts
}

// Exact builds targets matched by normalized equality.
func Exact(names ...string) []Target {
	ts := make([]Target, len(names))
	for i, n := range names {
		ts[i] = Target{Name: n, Exact: true}
	}
	return ts
}

// Series expands a per-unit name format such as "Fe magnetic %d" for units
// from..to inclusive.
func Series(format string, from, to int) []string {
	var names []string
	for n := from; n <= to; n++ {
		names = append(names, fmt.Sprintf(format, n))
	}
	return names
}

// HeaderCell is one cell of a header row.
type HeaderCell struct {
	Index int
	Text  string
}

// HeaderCells reads a header row, at most maxCols cells wide.
func HeaderCells(s workbook.Sheet, row, maxCols int) []HeaderCell {
	cells := workbook.Row(s, row, maxCols)

	hs := make([]HeaderCell, len(cells))
	for i, c := range cells {
		hs[i] = HeaderCell{Index: i, Text: strings.TrimSpace(c.String())}
	}

	return hs
}

// HeaderMap maps a target name to the column it was found in.
type HeaderMap map[string]int

// Column returns the column of the first resolved name.
func (m HeaderMap) Column(names ...string) (int, bool) {
	for _, n := range names {
		if c, ok := m[n]; ok {
			return c, true
		}
	}
	return 0, false
}

var trailingInt = regexp.MustCompile(`(\d+)$`)

// MaxUnit returns the largest trailing integer among resolved names, or 0.
func (m HeaderMap) MaxUnit() int {
	max := 0
	for name := range m {
		match := trailingInt.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}

// ResolveHeaders scans a header row left to right and assigns each target the
// first column whose text matches it. Only the first MaxHeaderColumns cells
// are considered.
//
// Every cell is compared against every still unresolved target in the order
// the targets are given, so one cell may resolve several fuzzy targets. An
// exact match claims the cell: later targets are not compared against it.
// A resolved target is never reassigned. The result is empty when nothing
// resolves, which callers treat as "skip this sheet".
func ResolveHeaders(header []HeaderCell, targets []Target, threshold float64) HeaderMap {
	normalized := make([]string, len(targets))
	for i, t := range targets {
		normalized[i] = Normalize(t.Name)
	}

	m := HeaderMap{}
	for pos, cell := range header {
		if pos >= MaxHeaderColumns {
			break
		}

		text := Normalize(cell.Text)
		if text == "" {
			continue
		}

		for i, t := range targets {
			if _, done := m[t.Name]; done {
				continue
			}

			if t.Exact {
				if normalized[i] == text {
					m[t.Name] = cell.Index
					break
				}
				continue
			}

			if ratio(text, normalized[i]) >= threshold {
				m[t.Name] = cell.Index
			}
		}
	}

	return m
}
