package fleetloader

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader/workbook"
)

// Dataset turns a workbook into a table.
type Dataset interface {
	Extract(context.Context, workbook.Workbook) (*Table, error)
}

// Job defines how to handle events which match specified pattern.
type Job struct {
	// Name is the job's name used in logs and notifications.
	Name string

	Pattern *regexp.Regexp
	Parser  Parser
	Dataset Dataset
	Source  Source

	// Sinks receive the table in order. The first failure stops delivery.
	Sinks    []Sink
	Notifier Notifier

	// Project, DatasetID and Table configure a BigQuery sink when Sinks is
	// empty.
	Project   string
	DatasetID string
	Table     string
}

func (j *Job) match(name string) bool {
	return j.Pattern != nil && j.Pattern.MatchString(name)
}

func (j *Job) handle(ctx context.Context, e Event) error {
	t, err := j.run(ctx, e)

	if j.Notifier != nil {
		if nerr := j.Notifier.Notify(ctx, &Result{Event: e, Job: j, Table: t, Error: err}); nerr != nil {
			log.Ctx(ctx).Error().Err(nerr).Msg("failed to notify")
		}
	}

	return err
}

func (j *Job) run(ctx context.Context, e Event) (*Table, error) {
	l := log.Ctx(ctx)

	r, closer, err := j.Source.Open(ctx, e)
	if err != nil {
		return nil, xerrors.Errorf("failed to open source: %w", err)
	}
	defer closer()

	wb, err := j.Parser(ctx, e.Name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w: %w", e.FullPath(), ErrSourceUnavailable, err)
	}

	t, err := j.Dataset.Extract(ctx, wb)
	if err != nil {
		return nil, xerrors.Errorf("failed to extract: %w", err)
	}
	l.Info().Int("rows", t.Len()).Int("skipped_sheets", len(t.Skips)).Msg("extracted")

	for i, s := range j.Sinks {
		if err := s.Replace(ctx, t); err != nil {
			return t, fmt.Errorf("sink %d: %w: %w", i, ErrSinkDelivery, err)
		}
	}

	return t, nil
}
