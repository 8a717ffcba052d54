package datasets_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"go.nownabe.dev/fleetloader/contrib/datasets"
	"go.nownabe.dev/fleetloader/extract"
	"go.nownabe.dev/fleetloader/workbook"
)

func header(cols ...any) [][]any {
	return [][]any{{}, {}, {}, cols, {}}
}

func openXLSX(t *testing.T, sheets map[string]map[string]any, order []string) workbook.Workbook {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}

		for axis, v := range sheets[name] {
			if err := f.SetCellValue(name, axis, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	wb, err := workbook.OpenXLSX(buf)
	if err != nil {
		t.Fatal(err)
	}
	return wb
}

func TestFeedrate(t *testing.T) {
	t.Parallel()

	feed := func(date string, load, rate any) map[string]any {
		return map[string]any{
			"A4": "Date", "B4": "ME load", "C4": "Cylinder oil feedrate", "D4": "ME rh",
			"A6": date, "B6": load, "C6": rate,
		}
	}

	wb := openXLSX(t, map[string]map[string]any{
		"Overview": {
			"D1": "Vessel", "E1": "Sheet",
			"D2": "Vessel A", "E2": 1,
			"D3": "Vessel B", "E3": 2,
		},
		"1":         feed("05/03/24", 50, 1.2),
		"2":         feed("n/a", 10, 1),
		"Dashboard": feed("05/03/24", 99, 9),
	}, []string{"Overview", "1", "2", "Dashboard"})

	tbl, err := datasets.Feedrate().Extract(context.Background(), wb)
	if err != nil {
		t.Fatal(err)
	}

	expectColumns := []string{"VesselID", "Date", "ME_Load", "CylinderOilFeedrate", "ME_RH"}
	if !reflect.DeepEqual(tbl.Columns, expectColumns) {
		t.Errorf("Expected columns %v but %v", expectColumns, tbl.Columns)
	}

	expect := [][]any{{"Vessel A", "2024-03-05", 50.0, 1.2, 0.0}}
	if !reflect.DeepEqual(tbl.Rows, expect) {
		t.Errorf("Expected %v but %v", expect, tbl.Rows)
	}

	if len(tbl.Skips) != 0 {
		t.Errorf("Expected no skipped sheets but %v", tbl.Skips)
	}
}

func TestFeedrate_indexMissing(t *testing.T) {
	t.Parallel()

	wb := workbook.NewGrid().AddSheet("1", header("Date", "ME load"))

	if _, err := datasets.Feedrate().Extract(context.Background(), wb); err == nil {
		t.Errorf("Expected error without Overview sheet")
	}
}

func TestTBNFe(t *testing.T) {
	t.Parallel()

	rows := header("Date", "ME load", "Fe magnetic 1", "Fe magnetic 2", "Fe total 1", "Unit 1", "TBN of blended oil fed to engine", "ME rh", "Fuel Sulphur Content")
	rows = append(rows,
		[]any{"05/03/24", 75, 12, "-", " 30 ", 1000, 70, 5000, 0.5},
		[]any{"bad", 1, 1, 1, 1, 1, 1, 1, 1},
	)

	wb := workbook.NewGrid().
		AddSheet("Overview", [][]any{{}, {nil, nil, nil, "MV Example", "12"}}).
		AddSheet("12", rows)

	tbl, err := datasets.TBNFe().Extract(context.Background(), wb)
	if err != nil {
		t.Fatal(err)
	}

	if tbl.Len() != 4 {
		t.Fatalf("Expected 2 cylinders + 2 aggregates but %d rows: %v", tbl.Len(), tbl.Rows)
	}

	col := func(name string) int {
		for i, c := range tbl.Columns {
			if c == name {
				return i
			}
		}
		t.Fatalf("no column %s", name)
		return -1
	}

	cases := []struct {
		row    int
		column string
		expect any
	}{
		{0, "VesselID", "MV Example"},
		{0, "Cylinder", "Cyl. 1"},
		{0, "Fe_Magnet", 12.0},
		{0, "Fe_Total", 30.0},
		{0, "Unit_RH", 1000.0},
		{0, "ME_RH", 5000.0},
		{0, "Fuel_Sulph", 0.5},
		{0, "TBN_Fed", nil},
		{1, "Cylinder", "Cyl. 2"},
		{1, "Fe_Magnet", nil},
		{1, "Fe_Total", nil},
		{2, "Cylinder", "TBN Fed"},
		{2, "TBN_Fed", 70.0},
		{2, "Fe_Magnet", nil},
		{2, "ME_RH", 5000.0},
		{3, "Cylinder", "ME Load"},
		{3, "ME_Load", 75.0},
		{3, "TBN_Fed", nil},
	}

	for _, c := range cases {
		if actual := tbl.Rows[c.row][col(c.column)]; actual != c.expect {
			t.Errorf("row %d %s: Expected %v but %v", c.row, c.column, c.expect, actual)
		}
	}
}

func TestMESysOil(t *testing.T) {
	t.Parallel()

	rows := header("Date", "Viscosity @ 40C", "Viscosity @ 100C", "Base number", "Oil on label", "Iso code",
		"Particle count > 4 [μm/ml]", "Particle count > 6 [μm/ml]", "Particle count > 14 [μm/ml]")
	rows = append(rows, []any{"01.02.2024", 120, 11.5, "-", "SAE 30", "18/16/13", 1500, 400, 20})

	wb := workbook.NewGrid().
		AddSheet("Overview", header("Date", "Viscosity @ 40C")).
		AddSheet("Ocean Star", rows).
		AddSheet("Dashboard table", [][]any{})

	tbl, err := datasets.MESysOil().Extract(context.Background(), wb)
	if err != nil {
		t.Fatal(err)
	}

	if tbl.Len() != 1 {
		t.Fatalf("Expected 1 row but %d", tbl.Len())
	}

	actual := map[string]any{}
	for i, c := range tbl.Columns {
		actual[c] = tbl.Rows[0][i]
	}

	expect := map[string]any{
		"VesselID":    "Ocean Star",
		"Date":        "2024-02-01",
		"KVisc40":     120.0,
		"KVisc100":    11.5,
		"BN":          nil,
		"WaterLevel":  nil,
		"TopUPVolume": nil,
		"Vanadium":    nil,
		"PQIndex":     nil,
		"OilOnLabel":  "SAE 30",
		"ISOCode":     "18/16/13",
		"PartCount4":  1500.0,
		"PartCount6":  400.0,
		"PartCount14": 20.0,
	}

	if !reflect.DeepEqual(actual, expect) {
		t.Errorf("Expected %v\nbut %v", expect, actual)
	}
}

func TestDataset_DisplayNames(t *testing.T) {
	t.Parallel()

	names := datasets.Feedrate().DisplayNames()
	if names["ME_Load"] != "ME Load" || names["VesselID"] != "Vessel" {
		t.Errorf("unexpected display names %v", names)
	}
}

func TestTBNFe_skips(t *testing.T) {
	t.Parallel()

	wb := workbook.NewGrid().
		AddSheet("Overview", [][]any{{}, {nil, nil, nil, "MV Example", 12}}).
		AddSheet("13", header("Date", "Fe magnetic 1")).
		AddSheet("Notes", [][]any{{"n/a"}})

	tbl, err := datasets.TBNFe().Extract(context.Background(), wb)
	if err != nil {
		t.Fatal(err)
	}

	expect := []extract.SheetSkip{
		{Sheet: "13", Reason: extract.ReasonNoEntity},
		{Sheet: "Notes", Reason: extract.ReasonNoHeaders},
	}
	if !reflect.DeepEqual(tbl.Skips, expect) {
		t.Errorf("Expected %v but %v", expect, tbl.Skips)
	}
}

func TestDataset_Validate(t *testing.T) {
	t.Parallel()

	for _, d := range []*datasets.Dataset{datasets.Feedrate(), datasets.TBNFe(), datasets.MESysOil()} {
		if err := d.Validate(); err != nil {
			t.Errorf("%s: Expected every column to be produced but %v", d.Name, err)
		}
	}

	d := datasets.Feedrate()
	d.Columns = append(d.Columns, datasets.Column{Name: "ME_Lod", Kind: datasets.Zero})

	if err := d.Validate(); err == nil {
		t.Errorf("Expected error for a misspelled column but nil")
	}

	if _, err := d.Extract(context.Background(), workbook.NewGrid()); err == nil {
		t.Errorf("Expected Extract to refuse a misspelled column")
	}
}
