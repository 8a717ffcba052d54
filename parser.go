package fleetloader

import (
	"context"
	"io"

	"go.nownabe.dev/fleetloader/workbook"
)

// Parser opens a source as a workbook. name is the source object name.
type Parser func(ctx context.Context, name string, r io.Reader) (workbook.Workbook, error)

// SpreadsheetParser provides a parser which picks the xls or xlsx reader
// from the object name's extension.
func SpreadsheetParser() Parser {
	return func(_ context.Context, name string, r io.Reader) (workbook.Workbook, error) {
		return workbook.OpenerFor(name)(r)
	}
}
