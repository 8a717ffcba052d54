package fleetloader

import (
	"math"

	"go.nownabe.dev/fleetloader/extract"
)

// DefaultBatchSize is the number of rows delivered per request by sinks
// that deliver in batches.
const DefaultBatchSize = 10000

// Table is the output of a Dataset: named columns and positional rows.
// Values are nil, string or float64.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any

	// Skips lists sheets which contributed nothing.
	Skips []extract.SheetSkip

	// Errors lists items which failed without failing the whole table.
	Errors []string
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Records returns rows as maps keyed by column name, renamed through rename
// when it has an entry for the column. NaN and infinite numbers become nil.
func (t *Table) Records(rename map[string]string) []map[string]any {
	keys := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = c
		if n, ok := rename[c]; ok {
			keys[i] = n
		}
	}

	out := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]any, len(keys))
		for j, k := range keys {
			var v any
			if j < len(row) {
				v = Finite(row[j])
			}
			m[k] = v
		}
		out[i] = m
	}

	return out
}

// Finite returns nil for NaN and infinite floats and v otherwise.
func Finite(v any) any {
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	case *float64:
		if f == nil {
			return nil
		}
		return Finite(*f)
	}
	return v
}

// Batches splits n items into consecutive [start, end) ranges of at most size.
func Batches(n, size int) [][2]int {
	if size <= 0 {
		size = DefaultBatchSize
	}

	var bs [][2]int
	for i := 0; i < n; i += size {
		bs = append(bs, [2]int{i, min(i+size, n)})
	}
	return bs
}
