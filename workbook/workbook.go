// Package workbook provides a read-only view over spreadsheet workbooks.
//
// Rows are 1-indexed like spreadsheet row numbers, columns are 0-indexed
// like positions in a row. Reading outside a sheet's extent yields an Empty
// cell rather than an error.
package workbook

import (
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"
)

// ErrSheetNotFound is returned when a workbook has no sheet with the given name.
var ErrSheetNotFound = xerrors.New("sheet not found")

// Workbook is a set of named sheets.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (Sheet, error)
}

// Sheet is an ordered grid of cells.
type Sheet interface {
	Name() string
	// MaxRow is the last row number holding data.
	MaxRow() int
	// Cols returns the number of columns present in the given row.
	Cols(row int) int
	Cell(row, col int) Cell
}

// Opener builds a Workbook from raw bytes.
type Opener func(io.Reader) (Workbook, error)

// OpenerFor picks an Opener from a file name's extension. Anything that is
// not ".xls" is treated as an OOXML workbook.
func OpenerFor(name string) Opener {
	if strings.EqualFold(filepath.Ext(name), ".xls") {
		return OpenXLS
	}
	return OpenXLSX
}

// Row returns the first n cells of a row, or all of them when n <= 0.
func Row(s Sheet, row, n int) []Cell {
	cols := s.Cols(row)
	if n > 0 && cols > n {
		cols = n
	}

	cells := make([]Cell, cols)
	for c := range cells {
		cells[c] = s.Cell(row, c)
	}

	return cells
}
