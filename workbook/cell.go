package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind is the scalar type held by a Cell.
type Kind int

// Cell kinds.
const (
	Empty Kind = iota
	Text
	Number
	Date
	Bool
)

// Cell is a single scalar value read from a sheet.
type Cell struct {
	Kind Kind
	Str  string
	Num  float64
	Time time.Time
	Flag bool
}

// TextCell returns a Text cell, or an Empty cell when s is empty.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: Text, Str: s}
}

// NumberCell returns a Number cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: Number, Num: f}
}

// DateCell returns a Date cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: Date, Time: t}
}

// CellOf converts a Go value into a Cell. Unsupported types are stringified.
func CellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{}
	case Cell:
		return x
	case string:
		return TextCell(x)
	case float64:
		return NumberCell(x)
	case float32:
		return NumberCell(float64(x))
	case int:
		return NumberCell(float64(x))
	case int64:
		return NumberCell(float64(x))
	case time.Time:
		return DateCell(x)
	case bool:
		return Cell{Kind: Bool, Flag: x}
	default:
		return TextCell(strings.TrimSpace(fmt.Sprint(x)))
	}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// String renders the cell the way a spreadsheet user would read it.
// Integral numbers render without a decimal part.
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case Date:
		return c.Time.Format("2006-01-02 15:04:05")
	case Bool:
		if c.Flag {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value: nil, string, float64, time.Time or bool.
func (c Cell) Value() any {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return c.Num
	case Date:
		return c.Time
	case Bool:
		return c.Flag
	default:
		return nil
	}
}
