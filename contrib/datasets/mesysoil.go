package datasets

import "go.nownabe.dev/fleetloader/extract"

// MESysOil is the main engine system oil analysis layout. Sheets are named
// after vessels, so there is no index lookup.
//
// Headers differing only by a number are matched exactly: the two
// viscosities and the three particle counts are too similar for fuzzy
// matching to tell apart.
func MESysOil() *Dataset {
	targets := extract.Exact(
		"Viscosity @ 40C",
		"Viscosity @ 100C",
		"Particle count > 4 [μm/ml]",
		"Particle count > 6 [μm/ml]",
		"Particle count > 14 [μm/ml]",
	)
	targets = append(targets, extract.Fuzzy(
		"Base Number",
		"Water Level",
		"Top up volume",
		"PQ Index",
		"Oil on label",
		"Iso Code",
		"Vanadium",
	)...)

	field := func(name, target string) extract.Field {
		return extract.Field{Name: name, Targets: []string{target}}
	}

	return &Dataset{
		Name: "me-sys-oil",
		Plan: extract.Plan{
			Excluded:  append([]string{"Overview"}, dashboardSheets...),
			HeaderRow: 4,
			Threshold: extract.DefaultThreshold,
			Targets:   targets,
			Rows: extract.RowSpec{
				EntityField: "VesselID",
				DateField:   "Date",
				DateColumn:  0,
				StartRow:    6,
				Shared: []extract.Field{
					field("KVisc40", "Viscosity @ 40C"),
					field("KVisc100", "Viscosity @ 100C"),
					field("BN", "Base Number"),
					field("WaterLevel", "Water Level"),
					field("TopUPVolume", "Top up volume"),
					field("Vanadium", "Vanadium"),
					field("PQIndex", "PQ Index"),
					field("OilOnLabel", "Oil on label"),
					field("ISOCode", "Iso Code"),
					field("PartCount4", "Particle count > 4 [μm/ml]"),
					field("PartCount6", "Particle count > 6 [μm/ml]"),
					field("PartCount14", "Particle count > 14 [μm/ml]"),
				},
			},
		},
		Columns: []Column{
			{Name: "VesselID", Display: "Vessel", Kind: Text},
			{Name: "Date", Display: "Date", Kind: Text},
			{Name: "KVisc40", Display: "Viscosity @ 40C", Kind: Null},
			{Name: "KVisc100", Display: "Viscosity @ 100C", Kind: Null},
			{Name: "BN", Display: "Base Number", Kind: Null},
			{Name: "WaterLevel", Display: "Water Level", Kind: Null},
			{Name: "TopUPVolume", Display: "Top Up Volume", Kind: Null},
			{Name: "Vanadium", Display: "Vanadium", Kind: Null},
			{Name: "PQIndex", Display: "PQ Index", Kind: Null},
			{Name: "OilOnLabel", Display: "Oil On Label", Kind: Text},
			{Name: "ISOCode", Display: "ISO Code", Kind: Text},
			{Name: "PartCount4", Display: "Particle Count > 4", Kind: Null},
			{Name: "PartCount6", Display: "Particle Count > 6", Kind: Null},
			{Name: "PartCount14", Display: "Particle Count > 14", Kind: Null},
		},
	}
}
