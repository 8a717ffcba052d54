package workbook_test

import (
	"reflect"
	"testing"

	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader/workbook"
)

func TestGrid(t *testing.T) {
	t.Parallel()

	g := workbook.NewGrid().
		AddSheet("Overview", [][]any{{"a", "b"}, {}, {nil, 3}}).
		AddSheet("1", nil).
		AddSheet("Overview", [][]any{{"replaced"}})

	if names := g.SheetNames(); !reflect.DeepEqual(names, []string{"Overview", "1"}) {
		t.Errorf("Expected sheet names in insertion order but %v", names)
	}

	s, err := g.Sheet("Overview")
	if err != nil {
		t.Fatal(err)
	}
	if s.MaxRow() != 1 || s.Cell(1, 0).String() != "replaced" {
		t.Errorf("Expected replaced sheet but max row %d, A1 %q", s.MaxRow(), s.Cell(1, 0))
	}
	if !s.Cell(0, 0).IsEmpty() || !s.Cell(5, 5).IsEmpty() || !s.Cell(1, -1).IsEmpty() {
		t.Errorf("Expected out of range cells to be empty")
	}

	if _, err := g.Sheet("missing"); !xerrors.Is(err, workbook.ErrSheetNotFound) {
		t.Errorf("Expected ErrSheetNotFound but %v", err)
	}
}

func TestRow(t *testing.T) {
	t.Parallel()

	s, _ := workbook.NewGrid().AddSheet("s", [][]any{{"a", "b", "c"}}).Sheet("s")

	if row := workbook.Row(s, 1, 2); len(row) != 2 || row[1].String() != "b" {
		t.Errorf("Expected first two cells but %v", row)
	}
	if row := workbook.Row(s, 1, 0); len(row) != 3 {
		t.Errorf("Expected all cells but %v", row)
	}
	if row := workbook.Row(s, 2, 0); len(row) != 0 {
		t.Errorf("Expected no cells past the last row but %v", row)
	}
}

func TestOpenerFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		expect workbook.Opener
	}{
		{name: "feedrate.xlsx", expect: workbook.OpenXLSX},
		{name: "legacy/TBN.XLS", expect: workbook.OpenXLS},
		{name: "macro.xlsm", expect: workbook.OpenXLSX},
		{name: "noext", expect: workbook.OpenXLSX},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			actual := workbook.OpenerFor(c.name)
			if reflect.ValueOf(actual).Pointer() != reflect.ValueOf(c.expect).Pointer() {
				t.Errorf("Unexpected opener for %s", c.name)
			}
		})
	}
}
