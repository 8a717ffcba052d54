package extract

import (
	"regexp"
	"strconv"
	"time"

	"go.nownabe.dev/fleetloader/workbook"
)

const isoDate = "2006-01-02"

var dayFirst = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)

// ParseDate renders a date cell as YYYY-MM-DD. Date cells are formatted
// directly. Anything else is read as day, month, year separated by "/", "-"
// or ".", with two-digit years taken as 20YY. It reports false for empty
// cells, text that does not match, and impossible calendar dates.
func ParseDate(c workbook.Cell) (string, bool) {
	switch c.Kind {
	case workbook.Empty:
		return "", false
	case workbook.Date:
		return c.Time.Format(isoDate), true
	}

	match := dayFirst.FindStringSubmatch(c.String())
	if match == nil {
		return "", false
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])

	year := match[3]
	switch len(year) {
	case 2:
		year = "20" + year
	case 3:
		return "", false
	}
	y, _ := strconv.Atoi(year)

	t := time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if y < 1 || t.Day() != day || int(t.Month()) != month || t.Year() != y {
		return "", false
	}

	return t.Format(isoDate), true
}
