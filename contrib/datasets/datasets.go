// Package datasets provides the vessel workbook layouts known to
// fleetloader, ready to be used as fleetloader.Dataset.
package datasets

import (
	"context"
	"regexp"

	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader"
	"go.nownabe.dev/fleetloader/extract"
	"go.nownabe.dev/fleetloader/workbook"
)

// Sheets never scanned for data.
var dashboardSheets = []string{"Dashboard", "Dashboard table"}

// Kind is how a column's values are coerced.
type Kind int

// Column kinds.
const (
	// Text columns pass through, nil becoming "".
	Text Kind = iota
	// Zero columns are numbers defaulting to 0.
	Zero
	// Null columns are numbers defaulting to nil.
	Null
)

// Column is one output column.
type Column struct {
	// Name is the record field and the relational column name.
	Name string
	// Display is the business-friendly name used by BI sinks.
	Display string
	Kind    Kind
}

// Dataset extracts one workbook layout into a table.
type Dataset struct {
	Name    string
	Plan    extract.Plan
	Columns []Column
}

var _ fleetloader.Dataset = (*Dataset)(nil)

// Extract runs the plan over wb and shapes the records into a table. The
// Plan's concurrency is taken from ctx.
func (d *Dataset) Extract(ctx context.Context, wb workbook.Workbook) (*fleetloader.Table, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	plan := d.Plan
	plan.Concurrency = fleetloader.ConcurrencyFrom(ctx)

	ex, err := extract.Run(ctx, wb, plan)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", d.Name, err)
	}

	records := extract.Coerce(ex.Records, d.policies())

	t := &fleetloader.Table{
		Name:    d.Name,
		Columns: make([]string, len(d.Columns)),
		Rows:    make([][]any, len(records)),
		Skips:   ex.Skips,
	}
	for i, c := range d.Columns {
		t.Columns[i] = c.Name
	}

	for i, r := range records {
		row := make([]any, len(d.Columns))
		for j, c := range d.Columns {
			if c.Kind == Text {
				row[j] = r.Text(c.Name)
			} else {
				row[j] = r[c.Name]
			}
		}
		t.Rows[i] = row
	}

	return t, nil
}

// Validate reports columns that no record of the plan can carry.
func (d *Dataset) Validate() error {
	known := map[string]bool{}
	for _, n := range d.Plan.Rows.FieldNames() {
		known[n] = true
	}

	for _, c := range d.Columns {
		if !known[c.Name] {
			return xerrors.Errorf("%s: column %q is not produced by the plan", d.Name, c.Name)
		}
	}

	return nil
}

// DisplayNames maps column names to display names.
func (d *Dataset) DisplayNames() map[string]string {
	m := make(map[string]string, len(d.Columns))
	for _, c := range d.Columns {
		if c.Display != "" {
			m[c.Name] = c.Display
		}
	}
	return m
}

func (d *Dataset) policies() map[string]extract.Policy {
	m := map[string]extract.Policy{}
	for _, c := range d.Columns {
		switch c.Kind {
		case Zero:
			m[c.Name] = extract.ZeroDefault
		case Null:
			m[c.Name] = extract.NullDefault
		}
	}
	return m
}

// Job builds a job loading objects matching pattern with d.
func Job(name, pattern string, d *Dataset, sinks []fleetloader.Sink, n fleetloader.Notifier) *fleetloader.Job {
	return &fleetloader.Job{
		Name:     name,
		Pattern:  regexp.MustCompile(pattern),
		Dataset:  d,
		Sinks:    sinks,
		Notifier: n,
	}
}

func overviewIndex() *extract.EntityIndex {
	idx := extract.DefaultEntityIndex()
	return &idx
}
