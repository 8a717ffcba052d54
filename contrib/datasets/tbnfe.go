package datasets

import "go.nownabe.dev/fleetloader/extract"

// MaxCylinders is the highest unit number looked for in unit columns.
const MaxCylinders = 12

// TBNFe is the cylinder drain oil layout. Every dated row becomes one record
// per cylinder found in the header, then a "TBN Fed" and an "ME Load"
// record. Unit columns are matched exactly so "Fe total 1" never resolves
// to "Fe total 11".
func TBNFe() *Dataset {
	units := []extract.UnitField{
		{Name: "Fe_Magnet", Target: "Fe magnetic %d"},
		{Name: "Fe_Corrosion", Target: "Fe corrosive %d"},
		{Name: "Fe_Total", Target: "Fe total %d"},
		{Name: "Residual_TBN", Target: "Residual TBN %d"},
		{Name: "Unit_RH", Target: "Unit %d"},
	}

	var targets []extract.Target
	for _, u := range units {
		targets = append(targets, extract.Exact(extract.Series(u.Target, 1, MaxCylinders)...)...)
	}
	targets = append(targets, extract.Fuzzy("ME rh", "ME", "TBN of blended oil fed to engine", "Fuel Sulphur Content")...)

	return &Dataset{
		Name: "tbn-fe",
		Plan: extract.Plan{
			Index:     overviewIndex(),
			Excluded:  dashboardSheets,
			HeaderRow: 4,
			Threshold: extract.DefaultThreshold,
			Targets:   targets,
			Rows: extract.RowSpec{
				EntityField: "VesselID",
				DateField:   "Date",
				DateColumn:  0,
				StartRow:    6,
				Shared: []extract.Field{
					{Name: "ME_RH", Targets: []string{"ME rh", "ME"}},
					{Name: "Fuel_Sulph", Targets: []string{"Fuel Sulphur Content"}},
				},
				Values: []extract.Field{
					{Name: "TBN_Fed", Targets: []string{"TBN of blended oil fed to engine"}},
					{Name: "ME_Load", Fallback: extract.Col(1)},
				},
				Units: &extract.Units{
					LabelField: "Cylinder",
					Label:      "Cyl. %d",
					Fields:     units,
				},
				Aggregates: []extract.Aggregate{
					{Label: "TBN Fed", Fields: []string{"TBN_Fed"}},
					{Label: "ME Load", Fields: []string{"ME_Load"}},
				},
			},
		},
		Columns: []Column{
			{Name: "VesselID", Display: "Vessel", Kind: Text},
			{Name: "Date", Display: "Date", Kind: Text},
			{Name: "ME_RH", Display: "ME Running Hours", Kind: Null},
			{Name: "Cylinder", Display: "Cylinder", Kind: Text},
			{Name: "Fe_Magnet", Display: "Fe Magnetic", Kind: Null},
			{Name: "Fe_Corrosion", Display: "Fe Corrosive", Kind: Null},
			{Name: "Fe_Total", Display: "Fe Total", Kind: Null},
			{Name: "Residual_TBN", Display: "Residual TBN", Kind: Null},
			{Name: "Unit_RH", Display: "Unit Running Hours", Kind: Null},
			{Name: "TBN_Fed", Display: "TBN Fed", Kind: Null},
			{Name: "Fuel_Sulph", Display: "Fuel Sulphur Content", Kind: Null},
			{Name: "ME_Load", Display: "ME Load", Kind: Null},
		},
	}
}
