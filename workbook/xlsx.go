package workbook

import (
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/xerrors"
)

type xlsxBook struct {
	f        *excelize.File
	date1904 bool

	mu     sync.Mutex
	sheets map[string]*xlsxSheet
	styles map[int]bool
}

// OpenXLSX opens an OOXML workbook. Sheets are read lazily on first access.
func OpenXLSX(r io.Reader) (Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, xerrors.Errorf("failed to open xlsx workbook: %w", err)
	}

	b := &xlsxBook{
		f:      f,
		sheets: map[string]*xlsxSheet{},
		styles: map[int]bool{},
	}

	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		b.date1904 = *props.Date1904
	}

	return b, nil
}

func (b *xlsxBook) SheetNames() []string {
	return b.f.GetSheetList()
}

func (b *xlsxBook) Sheet(name string) (Sheet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sheets[name]; ok {
		return s, nil
	}

	for _, n := range b.f.GetSheetList() {
		if n == name {
			s := &xlsxSheet{book: b, name: name}
			b.sheets[name] = s
			return s, nil
		}
	}

	return nil, xerrors.Errorf("%q: %w", name, ErrSheetNotFound)
}

func (b *xlsxBook) isDateStyle(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.styles[id]; ok {
		return v
	}

	v := false
	if st, err := b.f.GetStyle(id); err == nil && st != nil {
		if st.CustomNumFmt != nil {
			v = isDateFormatCode(*st.CustomNumFmt)
		} else {
			v = isBuiltinDateFormat(st.NumFmt)
		}
	}
	b.styles[id] = v

	return v
}

type xlsxSheet struct {
	book *xlsxBook
	name string

	once sync.Once
	rows [][]Cell
}

func (s *xlsxSheet) Name() string { return s.name }

func (s *xlsxSheet) MaxRow() int {
	s.load()
	return len(s.rows)
}

func (s *xlsxSheet) Cols(row int) int {
	s.load()
	if row < 1 || row > len(s.rows) {
		return 0
	}
	return len(s.rows[row-1])
}

func (s *xlsxSheet) Cell(row, col int) Cell {
	s.load()
	if row < 1 || row > len(s.rows) || col < 0 || col >= len(s.rows[row-1]) {
		return Cell{}
	}
	return s.rows[row-1][col]
}

// load reads raw values once and types every non-empty cell. A sheet that
// cannot be read behaves as an empty sheet.
func (s *xlsxSheet) load() {
	s.once.Do(func() {
		raw, err := s.book.f.GetRows(s.name, excelize.Options{RawCellValue: true})
		if err != nil {
			return
		}

		s.rows = make([][]Cell, len(raw))
		for r, values := range raw {
			s.rows[r] = make([]Cell, len(values))
			for c, v := range values {
				s.rows[r][c] = s.typed(r+1, c, v)
			}
		}
	})
}

func (s *xlsxSheet) typed(row, col int, raw string) Cell {
	if raw == "" {
		return Cell{}
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return TextCell(raw)
	}

	f := s.book.f
	typ, err := f.GetCellType(s.name, axis)
	if err != nil {
		return TextCell(raw)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return TextCell(raw)
	case excelize.CellTypeBool:
		return Cell{Kind: Bool, Flag: raw == "1" || strings.EqualFold(raw, "true")}
	case excelize.CellTypeDate:
		if t, ok := parseISOTime(raw); ok {
			return DateCell(t)
		}
		return TextCell(raw)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return TextCell(raw)
	}

	if id, err := f.GetCellStyle(s.name, axis); err == nil && id > 0 && s.book.isDateStyle(id) {
		if t, err := excelize.ExcelDateToTime(n, s.book.date1904); err == nil {
			return DateCell(t)
		}
	}

	return NumberCell(n)
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseISOTime(s string) (time.Time, bool) {
	for _, l := range isoLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom number format renders a date.
// Quoted literals, bracketed sections and escaped characters are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false

	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			inQuote = ch != '"'
			continue
		case inBracket:
			inBracket = ch != ']'
			continue
		case ch == '"':
			inQuote = true
			continue
		case ch == '[':
			inBracket = true
			continue
		case ch == '\\' || ch == '_' || ch == '*':
			i++
			continue
		}
		b.WriteByte(ch)
	}

	s := strings.ToLower(b.String())
	if strings.ContainsAny(s, "dy") {
		return true
	}

	return strings.Contains(s, "m") && !strings.ContainsAny(s, "0#?")
}
