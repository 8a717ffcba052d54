package datasets

import "go.nownabe.dev/fleetloader/extract"

// Feedrate is the main engine load and cylinder oil feedrate layout: one
// record per dated row, vessels resolved through the Overview sheet.
func Feedrate() *Dataset {
	return &Dataset{
		Name: "feedrate",
		Plan: extract.Plan{
			Index:     overviewIndex(),
			Excluded:  dashboardSheets,
			HeaderRow: 4,
			Threshold: extract.DefaultThreshold,
			Targets:   extract.Fuzzy("ME load", "Cylinder oil feedrate", "ME rh", "ME"),
			Rows: extract.RowSpec{
				EntityField: "VesselID",
				DateField:   "Date",
				DateColumn:  0,
				StartRow:    6,
				MaxRow:      170,
				Shared: []extract.Field{
					{Name: "ME_Load", Targets: []string{"ME load"}, Fallback: extract.Col(1)},
					{Name: "CylinderOilFeedrate", Targets: []string{"Cylinder oil feedrate"}},
					{Name: "ME_RH", Targets: []string{"ME rh", "ME"}},
				},
			},
		},
		Columns: []Column{
			{Name: "VesselID", Display: "Vessel", Kind: Text},
			{Name: "Date", Display: "Date", Kind: Text},
			{Name: "ME_Load", Display: "ME Load", Kind: Zero},
			{Name: "CylinderOilFeedrate", Display: "Cylinder Oil Feedrate", Kind: Zero},
			{Name: "ME_RH", Display: "ME Running Hours", Kind: Zero},
		},
	}
}
