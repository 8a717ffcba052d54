package schedules

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader"
	"go.nownabe.dev/fleetloader/workbook"
)

// DefaultDateRange is the ISO 8601 duration requested when none is set.
const DefaultDateRange = "P90D"

// Columns of the schedule table.
var Columns = []string{
	"vessel_name",
	"vessel_IMO",
	"port_name",
	"port_UN_location_code",
	"country_name",
	"ARR",
	"DEP",
	"class",
	"project",
}

// Dataset turns a tracked-vessel workbook into one row per port call.
type Dataset struct {
	Client    *Client
	StartDate string
	DateRange string
}

var _ fleetloader.Dataset = (*Dataset)(nil)

// Extract polls every tracked vessel in sheet order. Invalid IMO numbers
// and non-200 responses are recorded in the table's Errors and skipped.
func (d *Dataset) Extract(ctx context.Context, wb workbook.Workbook) (*fleetloader.Table, error) {
	l := log.Ctx(ctx)

	vessels, err := ReadTracked(wb)
	if err != nil {
		return nil, err
	}

	dateRange := d.DateRange
	if dateRange == "" {
		dateRange = DefaultDateRange
	}

	t := &fleetloader.Table{Name: "schedules", Columns: Columns}

	for _, v := range vessels {
		if !ValidIMO(v.IMO) {
			msg := fmt.Sprintf("%s in row %d is not a valid IMO-number.", v.IMO, v.Row)
			l.Warn().Str("imo", v.IMO).Int("row", v.Row).Msg("invalid IMO number")
			t.Errors = append(t.Errors, msg)
			continue
		}

		s, err := d.Client.VesselSchedule(ctx, v.IMO, d.StartDate, dateRange)
		var se *StatusError
		if xerrors.As(err, &se) {
			l.Warn().Str("imo", v.IMO).Int("status", se.StatusCode).Msg("failed to retrieve vessel")
			t.Errors = append(t.Errors, se.Error())
			continue
		}
		if err != nil {
			return nil, xerrors.Errorf("failed to retrieve vessel %s: %w", v.IMO, err)
		}

		for _, c := range s.Calls {
			t.Rows = append(t.Rows, []any{
				s.Vessel.Name,
				s.Vessel.IMO,
				c.Facility.PortName,
				c.Facility.UNLocationCode,
				c.Facility.CountryName,
				c.Arrival(),
				c.Departure(),
				v.Class,
				v.Project,
			})
		}
		l.Info().Str("imo", v.IMO).Int("calls", len(s.Calls)).Msg("vessel retrieved")
	}

	return t, nil
}
