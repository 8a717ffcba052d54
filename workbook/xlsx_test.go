package workbook_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"go.nownabe.dev/fleetloader/workbook"
)

func buildXLSX(t *testing.T) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Overview"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("12"); err != nil {
		t.Fatal(err)
	}

	set := func(sheet, axis string, v any) {
		if err := f.SetCellValue(sheet, axis, v); err != nil {
			t.Fatal(err)
		}
	}

	set("Overview", "D2", "MV Example")
	set("Overview", "E2", 12)

	set("12", "A4", "Date")
	set("12", "B4", "ME load")
	set("12", "A6", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	set("12", "B6", 42.5)
	set("12", "C6", true)
	set("12", "A7", "05/03/24")

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		t.Fatal(err)
	}
	set("12", "D6", 45000)
	if err := f.SetCellStyle("12", "D6", "D6", style); err != nil {
		t.Fatal(err)
	}

	custom := "dd.mm.yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	if err != nil {
		t.Fatal(err)
	}
	set("12", "E6", 45000)
	if err := f.SetCellStyle("12", "E6", "E6", dateStyle); err != nil {
		t.Fatal(err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestOpenXLSX(t *testing.T) {
	t.Parallel()

	wb, err := workbook.OpenXLSX(buildXLSX(t))
	if err != nil {
		t.Fatal(err)
	}

	if names := wb.SheetNames(); len(names) != 2 || names[0] != "Overview" || names[1] != "12" {
		t.Fatalf("Unexpected sheet names %v", names)
	}

	s, err := wb.Sheet("12")
	if err != nil {
		t.Fatal(err)
	}

	if c := s.Cell(4, 1); c.Kind != workbook.Text || c.Str != "ME load" {
		t.Errorf("Expected header text but %+v", c)
	}

	if c := s.Cell(6, 0); c.Kind != workbook.Date || c.Time.Format("2006-01-02") != "2023-01-01" {
		t.Errorf("Expected native date but %+v", c)
	}

	if c := s.Cell(6, 1); c.Kind != workbook.Number || c.Num != 42.5 {
		t.Errorf("Expected number but %+v", c)
	}

	if c := s.Cell(6, 2); c.Kind != workbook.Bool || !c.Flag {
		t.Errorf("Expected bool but %+v", c)
	}

	if c := s.Cell(6, 3); c.Kind != workbook.Number || c.Num != 45000 {
		t.Errorf("Expected number with non-date style but %+v", c)
	}

	if c := s.Cell(6, 4); c.Kind != workbook.Date || c.Time.Format("2006-01-02") != "2023-03-15" {
		t.Errorf("Expected custom date format to give a date but %+v", c)
	}

	if c := s.Cell(7, 0); c.Kind != workbook.Text || c.Str != "05/03/24" {
		t.Errorf("Expected date text to stay text but %+v", c)
	}

	if c := s.Cell(100, 100); !c.IsEmpty() {
		t.Errorf("Expected empty cell but %+v", c)
	}

	o, err := wb.Sheet("Overview")
	if err != nil {
		t.Fatal(err)
	}
	if c := o.Cell(2, 4); c.Kind != workbook.Number || c.Num != 12 {
		t.Errorf("Expected index key 12 but %+v", c)
	}
}

func TestOpenXLSX_invalid(t *testing.T) {
	t.Parallel()

	if _, err := workbook.OpenXLSX(bytes.NewBufferString("not a workbook")); err == nil {
		t.Errorf("Expected error")
	}
}
