package fleetloader

import (
	"bytes"
	"context"
	"encoding/json"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// Sink replaces the contents of a destination with a table.
type Sink interface {
	Replace(context.Context, *Table) error
}

// BigQuerySink loads tables into a BigQuery table, truncating it in the
// same load job.
type BigQuerySink struct {
	table *bigquery.Table
}

// NewBigQuerySink builds a BigQuerySink. The destination table must exist.
func NewBigQuerySink(ctx context.Context, project, dataset, table string) (*BigQuerySink, error) {
	bq, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, xerrors.Errorf("failed to build bigquery client for %s: %w", project, err)
	}

	return &BigQuerySink{table: bq.Dataset(dataset).Table(table)}, nil
}

// Replace runs a WRITE_TRUNCATE load job with newline-delimited JSON.
func (s *BigQuerySink) Replace(ctx context.Context, t *Table) error {
	l := log.Ctx(ctx)

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	for _, r := range t.Records(nil) {
		if err := enc.Encode(r); err != nil {
			return xerrors.Errorf("failed to encode row: %w", err)
		}
	}

	src := bigquery.NewReaderSource(buf)
	src.SourceFormat = bigquery.JSON

	ld := s.table.LoaderFrom(src)
	ld.WriteDisposition = bigquery.WriteTruncate
	ld.CreateDisposition = bigquery.CreateNever

	job, err := ld.Run(ctx)
	if err != nil {
		return xerrors.Errorf("failed to run bigquery load job: %w", err)
	}
	l.Debug().Str("bigquery_job", job.ID()).Msg("load job started")

	status, err := job.Wait(ctx)
	if err != nil {
		return xerrors.Errorf("failed to wait load job %s: %w", job.ID(), err)
	}

	if err := status.Err(); err != nil {
		return xerrors.Errorf("load job %s failed (%v): %w", job.ID(), status.Errors, err)
	}

	l.Info().Str("table", s.table.FullyQualifiedName()).Int("rows", t.Len()).Msg("sink replaced")

	return nil
}
