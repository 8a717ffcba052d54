package main

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader"
	"go.nownabe.dev/fleetloader/contrib/datasets"
	"go.nownabe.dev/fleetloader/contrib/schedules"
	"go.nownabe.dev/fleetloader/contrib/sinks"
)

// Job names, also used as subcommand names.
const (
	jobFeedrate  = "feedrate"
	jobTBNFe     = "tbn-fe"
	jobMESysOil  = "me-sys-oil"
	jobSchedules = "schedules"
)

func exactName(name string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(name) + "$")
}

func (c config) source(ctx context.Context) (fleetloader.Source, error) {
	if c.SourceDir != "" {
		return &fleetloader.FileSource{Dir: c.SourceDir}, nil
	}
	return fleetloader.NewStorageSource(ctx)
}

func (c config) notifier() fleetloader.Notifier {
	if c.SlackToken == "" || c.SlackChannel == "" {
		return nil
	}
	return &fleetloader.SlackNotifier{
		Token:    c.SlackToken,
		Channel:  c.SlackChannel,
		Username: "fleetload",
	}
}

// sinks builds every sink configured for a dataset, in the order relational,
// BigQuery, Power BI.
func (c config) sinks(ctx context.Context, d *datasets.Dataset, t target) ([]fleetloader.Sink, error) {
	var ss []fleetloader.Sink

	if c.DBDSN != "" {
		s, err := sinks.NewSQLSink(c.DBDriver, c.DBDSN, t.DBTable)
		if err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}

	if c.BQDataset != "" && t.BQTable != "" {
		s, err := fleetloader.NewBigQuerySink(ctx, c.GCPProject, c.BQDataset, t.BQTable)
		if err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}

	if c.PBIToken != "" && t.PBIDatasetID != "" {
		ss = append(ss, &sinks.PowerBISink{
			WorkspaceID: c.PBIWorkspaceID,
			DatasetID:   t.PBIDatasetID,
			Table:       t.PBITable,
			Token:       c.PBIToken,
			Rename:      d.DisplayNames(),
			BatchSize:   c.BatchSize,
		})
	}

	if len(ss) == 0 {
		return nil, xerrors.Errorf("no sink configured for %s", d.Name)
	}

	return ss, nil
}

func (c config) datasetJob(ctx context.Context, name string, d *datasets.Dataset, t target, src fleetloader.Source) (*fleetloader.Job, error) {
	ss, err := c.sinks(ctx, d, t)
	if err != nil {
		return nil, err
	}

	j := datasets.Job(name, exactName(t.Object).String(), d, ss, c.notifier())
	j.Source = src

	return j, nil
}

func (c config) schedulesJob(ctx context.Context) (*fleetloader.Job, error) {
	if c.MongoURI == "" {
		return nil, xerrors.New("MONGO_URI is required for schedules")
	}

	s, err := sinks.NewMongoSink(ctx, c.MongoURI, c.MongoDatabase, c.MongoCollection)
	if err != nil {
		return nil, err
	}

	return &fleetloader.Job{
		Name:    jobSchedules,
		Pattern: exactName(filepath.Base(c.TrackedVesselsFile)),
		Source:  &fleetloader.FileSource{Dir: filepath.Dir(c.TrackedVesselsFile)},
		Dataset: &schedules.Dataset{
			Client:    schedules.NewClient(c.CarrierAPIKey, c.CarrierCode),
			StartDate: c.ScheduleStartDate,
			DateRange: c.ScheduleDateRange,
		},
		Sinks:    []fleetloader.Sink{s},
		Notifier: c.notifier(),
	}, nil
}

// jobs builds the named jobs.
func (c config) jobs(ctx context.Context, names ...string) ([]*fleetloader.Job, error) {
	var src fleetloader.Source

	var js []*fleetloader.Job
	for _, n := range names {
		if n == jobSchedules {
			j, err := c.schedulesJob(ctx)
			if err != nil {
				return nil, err
			}
			js = append(js, j)
			continue
		}

		if src == nil {
			s, err := c.source(ctx)
			if err != nil {
				return nil, err
			}
			src = s
		}

		var (
			d *datasets.Dataset
			t target
		)
		switch n {
		case jobFeedrate:
			d, t = datasets.Feedrate(), c.Feedrate
		case jobTBNFe:
			d, t = datasets.TBNFe(), c.TBNFe
		case jobMESysOil:
			d, t = datasets.MESysOil(), c.MESysOil
		default:
			return nil, xerrors.Errorf("unknown job %q", n)
		}

		j, err := c.datasetJob(ctx, n, d, t, src)
		if err != nil {
			return nil, xerrors.Errorf("%s: %w", n, err)
		}
		js = append(js, j)
	}

	return js, nil
}

func (c config) loader(pretty bool) (fleetloader.Loader, error) {
	opts := []fleetloader.Option{
		fleetloader.WithLogLevel(c.LogLevel),
		fleetloader.WithConcurrency(max(1, c.Concurrency)),
	}
	if pretty {
		opts = append(opts, fleetloader.WithPrettyLogging())
	}

	return fleetloader.New(opts...)
}

// load builds a loader running the named jobs.
func (c config) load(ctx context.Context, pretty bool, names ...string) (fleetloader.Loader, []*fleetloader.Job, error) {
	l, err := c.loader(pretty)
	if err != nil {
		return nil, nil, err
	}

	js, err := c.jobs(ctx, names...)
	if err != nil {
		return nil, nil, err
	}

	for _, j := range js {
		if err := l.AddJob(ctx, j); err != nil {
			return nil, nil, xerrors.Errorf("failed to add job %s: %w", j.Name, err)
		}
		log.Debug().Str("job", j.Name).Str("pattern", j.Pattern.String()).Msg("job added")
	}

	return l, js, nil
}

// withObject points the named dataset job at object.
func (c config) withObject(name, object string) config {
	switch name {
	case jobFeedrate:
		c.Feedrate.Object = object
	case jobTBNFe:
		c.TBNFe.Object = object
	case jobMESysOil:
		c.MESysOil.Object = object
	}
	return c
}

func matched(js []*fleetloader.Job, name string) bool {
	for _, j := range js {
		if j.Pattern.MatchString(name) {
			return true
		}
	}
	return false
}
