package extract

import (
	"math"
	"strconv"
	"strings"

	"go.nownabe.dev/fleetloader/workbook"
)

// EntityKey identifies a sheet in the index: an integer when the raw key
// parses as one, the trimmed text otherwise.
type EntityKey struct {
	num   int64
	str   string
	isNum bool
}

// IntKey returns an integer key.
func IntKey(n int64) EntityKey {
	return EntityKey{num: n, isNum: true}
}

// StringKey returns a text key.
func StringKey(s string) EntityKey {
	return EntityKey{str: s}
}

// KeyOf coerces a cell into a key. Numbers are truncated to integers and
// booleans count as 1 or 0.
func KeyOf(c workbook.Cell) EntityKey {
	switch c.Kind {
	case workbook.Number:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return StringKey(c.String())
		}
		return IntKey(int64(c.Num))
	case workbook.Bool:
		if c.Flag {
			return IntKey(1)
		}
		return IntKey(0)
	}

	s := strings.TrimSpace(c.String())
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntKey(n)
	}

	return StringKey(s)
}

// SheetKey coerces a sheet name the same way index keys are coerced.
func SheetKey(name string) EntityKey {
	return KeyOf(workbook.TextCell(name))
}

func (k EntityKey) String() string {
	if k.isNum {
		return strconv.FormatInt(k.num, 10)
	}
	return k.str
}

// EntityMap maps index keys to entity names.
type EntityMap map[EntityKey]string

// Lookup finds the entity owning the named sheet.
func (m EntityMap) Lookup(sheet string) (string, bool) {
	name, ok := m[SheetKey(sheet)]
	return name, ok && name != ""
}

// EntityIndex locates the key and name columns of an index sheet.
type EntityIndex struct {
	Sheet      string
	FirstRow   int
	LastRow    int
	KeyColumn  int
	NameColumn int
}

// DefaultEntityIndex reads rows 2..150 of "Overview": keys in column E,
// names in column D.
func DefaultEntityIndex() EntityIndex {
	return EntityIndex{
		Sheet:      "Overview",
		FirstRow:   2,
		LastRow:    150,
		KeyColumn:  4,
		NameColumn: 3,
	}
}

// BuildEntityMap reads an index sheet. Rows missing either a key or a name
// are ignored, and later rows overwrite earlier ones.
func BuildEntityMap(s workbook.Sheet, idx EntityIndex) EntityMap {
	m := EntityMap{}

	last := idx.LastRow
	if max := s.MaxRow(); last <= 0 || last > max {
		last = max
	}

	for r := idx.FirstRow; r <= last; r++ {
		key, name := s.Cell(r, idx.KeyColumn), s.Cell(r, idx.NameColumn)
		if key.IsEmpty() || name.IsEmpty() {
			continue
		}

		m[KeyOf(key)] = strings.TrimSpace(name.String())
	}

	return m
}
