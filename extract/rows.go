package extract

import (
	"fmt"

	"go.nownabe.dev/fleetloader/workbook"
)

// Field reads one row-level value from the first resolved target, or from
// a fixed fallback column when none of the targets resolved.
type Field struct {
	Name     string
	Targets  []string
	Fallback *int
}

// Col returns a fallback column for Field.
func Col(i int) *int {
	return &i
}

func (f Field) column(hm HeaderMap) (int, bool) {
	if c, ok := hm.Column(f.Targets...); ok {
		return c, true
	}
	if f.Fallback != nil {
		return *f.Fallback, true
	}
	return 0, false
}

// UnitField is a per-unit column family, e.g. Target "Fe magnetic %d".
type UnitField struct {
	Name   string
	Target string
}

// Units describes repeated per-unit column families.
type Units struct {
	// LabelField receives Label formatted with the unit number, or the
	// aggregate's label.
	LabelField string
	Label      string
	Fields     []UnitField
}

// Aggregate is a fixed-role sibling record carrying row-level Values.
type Aggregate struct {
	Label  string
	Fields []string
}

// RowSpec describes how data rows become records.
type RowSpec struct {
	EntityField string
	DateField   string
	DateColumn  int

	// StartRow is the first data row. MaxRow caps the scan when positive.
	StartRow int
	MaxRow   int

	// Shared fields are copied into every record of a row.
	Shared []Field

	// Values are row-level fields carried only by aggregates. They are
	// ignored when Units is nil.
	Values []Field

	Units      *Units
	Aggregates []Aggregate
}

// FieldNames lists every field a record built from s can carry.
func (s RowSpec) FieldNames() []string {
	names := []string{s.EntityField, s.DateField}
	for _, f := range s.Shared {
		names = append(names, f.Name)
	}
	if s.Units == nil {
		return names
	}

	names = append(names, s.Units.LabelField)
	for _, f := range s.Units.Fields {
		names = append(names, f.Name)
	}
	for _, f := range s.Values {
		names = append(names, f.Name)
	}
	return names
}

// ExtractRows turns data rows into records. Rows whose date cell does not
// parse are skipped.
//
// Without Units, each row gives one record. With Units, each row gives one
// record per unit up to the highest unit number in hm, followed by one record
// per aggregate. All sibling records carry the same entity, date and shared
// fields and the full set of unit and value field names; only the fields
// owned by the record's role are non-nil.
func ExtractRows(s workbook.Sheet, hm HeaderMap, entity string, spec RowSpec) []Record {
	last := s.MaxRow()
	if spec.MaxRow > 0 && spec.MaxRow < last {
		last = spec.MaxRow
	}

	maxUnit := 0
	if spec.Units != nil {
		maxUnit = hm.MaxUnit()
	}

	var records []Record
	for r := spec.StartRow; r <= last; r++ {
		date, ok := ParseDate(s.Cell(r, spec.DateColumn))
		if !ok {
			continue
		}

		shared := Record{spec.EntityField: entity, spec.DateField: date}
		for _, f := range spec.Shared {
			shared[f.Name] = fieldValue(s, r, hm, f)
		}

		if spec.Units == nil {
			records = append(records, shared)
			continue
		}

		for _, f := range spec.Units.Fields {
			shared[f.Name] = nil
		}
		values := make(map[string]any, len(spec.Values))
		for _, f := range spec.Values {
			shared[f.Name] = nil
			values[f.Name] = fieldValue(s, r, hm, f)
		}

		for n := 1; n <= maxUnit; n++ {
			rec := shared.clone()
			rec[spec.Units.LabelField] = fmt.Sprintf(spec.Units.Label, n)
			for _, f := range spec.Units.Fields {
				if c, ok := hm[fmt.Sprintf(f.Target, n)]; ok {
					rec[f.Name] = s.Cell(r, c).Value()
				}
			}
			records = append(records, rec)
		}

		for _, a := range spec.Aggregates {
			rec := shared.clone()
			rec[spec.Units.LabelField] = a.Label
			for _, name := range a.Fields {
				rec[name] = values[name]
			}
			records = append(records, rec)
		}
	}

	return records
}

func fieldValue(s workbook.Sheet, row int, hm HeaderMap, f Field) any {
	c, ok := f.column(hm)
	if !ok {
		return nil
	}
	return s.Cell(row, c).Value()
}
