// Package schedules polls a carrier's vessel-schedule API for a list of
// tracked vessels and turns the port calls into a fleetloader table.
package schedules

import (
	"strings"

	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader/workbook"
)

// Vessel is one tracked vessel.
type Vessel struct {
	IMO     string
	Class   string
	Project string

	// Row is the vessel's row number in the tracking sheet.
	Row int
}

// ReadTracked reads tracked vessels from the first sheet of wb. Row 1 is a
// header naming the IMO, CLASS and PROJECT columns in any order.
func ReadTracked(wb workbook.Workbook) ([]Vessel, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, xerrors.New("tracked vessel workbook has no sheets")
	}

	s, err := wb.Sheet(names[0])
	if err != nil {
		return nil, xerrors.Errorf("failed to read tracked vessels: %w", err)
	}

	cols := map[string]int{}
	for i, c := range workbook.Row(s, 1, 0) {
		cols[strings.ToUpper(strings.TrimSpace(c.String()))] = i
	}

	imo, ok := cols["IMO"]
	if !ok {
		return nil, xerrors.Errorf("sheet %q has no IMO column", s.Name())
	}

	text := func(row int, name string) string {
		c, ok := cols[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(s.Cell(row, c).String())
	}

	var vs []Vessel
	for r := 2; r <= s.MaxRow(); r++ {
		id := strings.TrimSpace(s.Cell(r, imo).String())
		if id == "" {
			continue
		}
		vs = append(vs, Vessel{
			IMO:     id,
			Class:   text(r, "CLASS"),
			Project: text(r, "PROJECT"),
			Row:     r,
		})
	}

	return vs, nil
}

// ValidIMO reports whether s is a seven digit IMO number.
func ValidIMO(s string) bool {
	if len(s) != 7 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
