package workbook

import "golang.org/x/xerrors"

// Grid is an in-memory Workbook. It is handy for tests and for sources that
// already hold tabular data.
type Grid struct {
	names  []string
	sheets map[string]*gridSheet
}

// NewGrid returns an empty Grid.
func NewGrid() *Grid {
	return &Grid{sheets: map[string]*gridSheet{}}
}

// AddSheet appends a sheet. rows[0] is row 1. Values are converted with CellOf.
func (g *Grid) AddSheet(name string, rows [][]any) *Grid {
	s := &gridSheet{name: name, rows: make([][]Cell, len(rows))}
	for i, r := range rows {
		s.rows[i] = make([]Cell, len(r))
		for j, v := range r {
			s.rows[i][j] = CellOf(v)
		}
	}

	if _, ok := g.sheets[name]; !ok {
		g.names = append(g.names, name)
	}
	g.sheets[name] = s

	return g
}

// SheetNames returns sheet names in insertion order.
func (g *Grid) SheetNames() []string {
	return append([]string(nil), g.names...)
}

// Sheet returns the named sheet.
func (g *Grid) Sheet(name string) (Sheet, error) {
	s, ok := g.sheets[name]
	if !ok {
		return nil, xerrors.Errorf("%q: %w", name, ErrSheetNotFound)
	}
	return s, nil
}

type gridSheet struct {
	name string
	rows [][]Cell
}

func (s *gridSheet) Name() string { return s.name }

func (s *gridSheet) MaxRow() int { return len(s.rows) }

func (s *gridSheet) Cols(row int) int {
	if row < 1 || row > len(s.rows) {
		return 0
	}
	return len(s.rows[row-1])
}

func (s *gridSheet) Cell(row, col int) Cell {
	if row < 1 || row > len(s.rows) || col < 0 || col >= len(s.rows[row-1]) {
		return Cell{}
	}
	return s.rows[row-1][col]
}
