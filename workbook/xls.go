package workbook

import (
	"io"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"gitlab.com/osaki-lab/iowrapper"
	"golang.org/x/xerrors"
)

// OpenXLS opens a legacy BIFF (.xls) workbook. The whole workbook is read
// into memory because the underlying reader only exposes formatted strings.
func OpenXLS(r io.Reader) (Workbook, error) {
	wb, err := xls.OpenReader(iowrapper.NewSeeker(r), "utf-8")
	if err != nil {
		return nil, xerrors.Errorf("failed to open xls workbook: %w", err)
	}

	g := NewGrid()
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		s := &gridSheet{name: ws.Name}
		for r := 0; r <= int(ws.MaxRow); r++ {
			row, ok := xlsRow(ws, r)
			if !ok || row == nil {
				s.rows = append(s.rows, nil)
				continue
			}

			cells := make([]Cell, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				if c < row.FirstCol() {
					cells = append(cells, Cell{})
					continue
				}
				cells = append(cells, xlsCell(row.Col(c)))
			}
			s.rows = append(s.rows, cells)
		}

		if _, ok := g.sheets[s.name]; !ok {
			g.names = append(g.names, s.name)
		}
		g.sheets[s.name] = s
	}

	return g, nil
}

// xlsRow guards against the reader panicking on sparse sheets.
func xlsRow(sheet *xls.WorkSheet, i int) (r *xls.Row, ok bool) {
	defer func() {
		if recover() != nil {
			r, ok = nil, false
		}
	}()

	return sheet.Row(i), true
}

func xlsCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{}
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberCell(n)
	}

	if t, ok := parseISOTime(s); ok {
		return DateCell(t)
	}

	return TextCell(s)
}
