package extract_test

import (
	"reflect"
	"testing"

	"go.nownabe.dev/fleetloader/extract"
	"go.nownabe.dev/fleetloader/workbook"
)

func unitSheet(t *testing.T) workbook.Sheet {
	t.Helper()

	rows := [][]any{
		{"Vessel report"},
		{},
		{},
		{"Date", "ME load", "Fe magnetic 1", "Fe magnetic 2", "Residual TBN 1", "TBN of blended oil fed to engine"},
		{"dd/mm/yy"},
		{"05/03/24", 75, 12, 15, 40, 70},
		{"not a date", 80, 1, 1, 1, 1},
		{"06/03/24", 76, "-", 16, nil, 71},
		{"07/03/24", 77, 13, 17, 41, 72},
	}

	s, err := workbook.NewGrid().AddSheet("12", rows).Sheet("12")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func unitSpec(maxRow int) (extract.RowSpec, []extract.Target) {
	spec := extract.RowSpec{
		EntityField: "VesselID",
		DateField:   "Date",
		DateColumn:  0,
		StartRow:    6,
		MaxRow:      maxRow,
		Values: []extract.Field{
			{Name: "TBN_Fed", Targets: []string{"TBN of blended oil fed to engine"}},
			{Name: "ME_Load", Fallback: extract.Col(1)},
		},
		Units: &extract.Units{
			LabelField: "Cylinder",
			Label:      "Cyl. %d",
			Fields: []extract.UnitField{
				{Name: "Fe_Magnet", Target: "Fe magnetic %d"},
				{Name: "Residual_TBN", Target: "Residual TBN %d"},
			},
		},
		Aggregates: []extract.Aggregate{
			{Label: "TBN Fed", Fields: []string{"TBN_Fed"}},
			{Label: "ME Load", Fields: []string{"ME_Load"}},
		},
	}

	targets := append(extract.Exact(extract.Series("Fe magnetic %d", 1, 2)...), extract.Exact(extract.Series("Residual TBN %d", 1, 2)...)...)
	targets = append(targets, extract.Fuzzy("TBN of blended oil fed to engine")...)

	return spec, targets
}

func TestExtractRows_units(t *testing.T) {
	t.Parallel()

	s := unitSheet(t)
	spec, targets := unitSpec(0)
	hm := extract.ResolveHeaders(extract.HeaderCells(s, 4, extract.MaxHeaderColumns), targets, extract.DefaultThreshold)

	records := extract.ExtractRows(s, hm, "MV Example", spec)

	if len(records) != 12 {
		t.Fatalf("Expected 4 records for each of 3 dated rows but %d", len(records))
	}

	expect := []extract.Record{
		{"VesselID": "MV Example", "Date": "2024-03-05", "Cylinder": "Cyl. 1", "Fe_Magnet": 12.0, "Residual_TBN": 40.0, "TBN_Fed": nil, "ME_Load": nil},
		{"VesselID": "MV Example", "Date": "2024-03-05", "Cylinder": "Cyl. 2", "Fe_Magnet": 15.0, "Residual_TBN": nil, "TBN_Fed": nil, "ME_Load": nil},
		{"VesselID": "MV Example", "Date": "2024-03-05", "Cylinder": "TBN Fed", "Fe_Magnet": nil, "Residual_TBN": nil, "TBN_Fed": 70.0, "ME_Load": nil},
		{"VesselID": "MV Example", "Date": "2024-03-05", "Cylinder": "ME Load", "Fe_Magnet": nil, "Residual_TBN": nil, "TBN_Fed": nil, "ME_Load": 75.0},
		{"VesselID": "MV Example", "Date": "2024-03-06", "Cylinder": "Cyl. 1", "Fe_Magnet": "-", "Residual_TBN": nil, "TBN_Fed": nil, "ME_Load": nil},
	}

	for i, e := range expect {
		if !reflect.DeepEqual(records[i], e) {
			t.Errorf("record %d:\nExpected %v\nbut      %v", i, e, records[i])
		}
	}
}

func TestExtractRows_maxRow(t *testing.T) {
	t.Parallel()

	s := unitSheet(t)
	spec, targets := unitSpec(7)
	hm := extract.ResolveHeaders(extract.HeaderCells(s, 4, extract.MaxHeaderColumns), targets, extract.DefaultThreshold)

	records := extract.ExtractRows(s, hm, "MV Example", spec)
	if len(records) != 4 {
		t.Errorf("Expected rows after the cap to be ignored but got %d records", len(records))
	}
}

func TestExtractRows_flat(t *testing.T) {
	t.Parallel()

	rows := [][]any{
		{}, {}, {},
		{"Date", "ME load", "Cylinder oil feedrate", "ME rh"},
		{},
		{"01/02/2024", 50, 1.2, 10},
		{"", 51, 1.3, 11},
		{"02/02/2024", "", " 1.4 ", nil},
	}
	s, err := workbook.NewGrid().AddSheet("1", rows).Sheet("1")
	if err != nil {
		t.Fatal(err)
	}

	hm := extract.ResolveHeaders(
		extract.HeaderCells(s, 4, extract.MaxHeaderColumns),
		extract.Fuzzy("ME load", "Cylinder oil feedrate", "ME rh"),
		extract.DefaultThreshold,
	)

	spec := extract.RowSpec{
		EntityField: "VesselID",
		DateField:   "Date",
		StartRow:    6,
		Shared: []extract.Field{
			{Name: "ME_Load", Targets: []string{"ME load"}, Fallback: extract.Col(1)},
			{Name: "CylinderOilFeedrate", Targets: []string{"Cylinder oil feedrate"}},
			{Name: "ME_RH", Targets: []string{"ME rh", "ME"}},
			{Name: "Unresolved", Targets: []string{"Nowhere"}},
		},
	}

	actual := extract.ExtractRows(s, hm, "Vessel A", spec)
	expect := []extract.Record{
		{"VesselID": "Vessel A", "Date": "2024-02-01", "ME_Load": 50.0, "CylinderOilFeedrate": 1.2, "ME_RH": 10.0, "Unresolved": nil},
		{"VesselID": "Vessel A", "Date": "2024-02-02", "ME_Load": nil, "CylinderOilFeedrate": " 1.4 ", "ME_RH": nil, "Unresolved": nil},
	}

	if !reflect.DeepEqual(actual, expect) {
		t.Errorf("Expected %v\nbut %v", expect, actual)
	}
}

func TestRowSpec_FieldNames(t *testing.T) {
	t.Parallel()

	spec, _ := unitSpec(0)
	expect := []string{"VesselID", "Date", "Cylinder", "Fe_Magnet", "Residual_TBN", "TBN_Fed", "ME_Load"}
	if actual := spec.FieldNames(); !reflect.DeepEqual(actual, expect) {
		t.Errorf("Expected %v but %v", expect, actual)
	}

	spec.Units = nil
	expect = []string{"VesselID", "Date"}
	if actual := spec.FieldNames(); !reflect.DeepEqual(actual, expect) {
		t.Errorf("Expected %v but %v", expect, actual)
	}
}
