package fleetloader

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

var (
	// ErrSourceUnavailable is returned when a source workbook cannot be
	// fetched or opened.
	ErrSourceUnavailable = xerrors.New("source unavailable")

	// ErrSinkDelivery is returned when a sink rejects a table. Data already
	// delivered is not rolled back.
	ErrSinkDelivery = xerrors.New("sink delivery failed")
)

// Loader loads vessel workbooks into sinks.
type Loader interface {
	AddJob(context.Context, *Job) error
	Handle(context.Context, Event) error
	MustAddJob(context.Context, *Job)
}

// New builds a new Loader.
func New(opts ...Option) (Loader, error) {
	l := &loader{
		jobs:        []*Job{},
		mu:          sync.RWMutex{},
		concurrency: 1,
		logLevel:    zerolog.InfoLevel,
	}

	for _, o := range opts {
		if err := o.apply(l); err != nil {
			return nil, xerrors.Errorf("failed to apply option: %w", err)
		}
	}

	if l.prettyLogging {
		l.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(l.logLevel).With().Timestamp().Logger()
	} else {
		l.logger = zerolog.New(os.Stderr).Level(l.logLevel).With().Timestamp().Logger()
	}

	return l, nil
}

type loader struct {
	jobs []*Job
	mu   sync.RWMutex

	concurrency   int
	logLevel      zerolog.Level
	prettyLogging bool
	logger        zerolog.Logger
}

func (l *loader) AddJob(ctx context.Context, j *Job) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if j.Dataset == nil {
		return xerrors.Errorf("job %q has no dataset", j.Name)
	}

	if j.Parser == nil {
		j.Parser = SpreadsheetParser()
	}

	if j.Source == nil {
		src, err := NewStorageSource(ctx)
		if err != nil {
			return err
		}
		j.Source = src
	}

	if len(j.Sinks) == 0 && j.Table != "" {
		s, err := NewBigQuerySink(ctx, j.Project, j.DatasetID, j.Table)
		if err != nil {
			return err
		}
		j.Sinks = append(j.Sinks, s)
	}

	l.jobs = append(l.jobs, j)

	return nil
}

func (l *loader) MustAddJob(ctx context.Context, j *Job) {
	if err := l.AddJob(ctx, j); err != nil {
		panic(err)
	}
}

func (l *loader) Handle(ctx context.Context, e Event) error {
	ctx = withStartedTime(ctx)
	ctx = withConcurrency(ctx, l.concurrency)
	ctx = l.logger.With().
		Str("run_id", uuid.NewString()).
		Str("object", e.FullPath()).
		Logger().WithContext(ctx)

	lg := log.Ctx(ctx)
	lg.Info().Msg("loader started")
	defer func() {
		ev := lg.Info()
		if t, ok := startedTimeFrom(ctx); ok {
			ev = ev.Dur("elapsed", time.Since(t))
		}
		ev.Msg("loader finished")
	}()

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, j := range l.jobs {
		if !j.match(e.Name) {
			continue
		}

		jctx := lg.With().Str("job", j.Name).Logger().WithContext(ctx)
		log.Ctx(jctx).Info().Msg("job matched")

		if err := j.handle(jctx, e); err != nil {
			log.Ctx(jctx).Error().Err(err).Msg("job failed")
			return err
		}
	}

	return nil
}
