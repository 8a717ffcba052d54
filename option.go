package fleetloader

import (
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Option configures Loader.
type Option interface {
	apply(*loader) error
}

type optionFunc func(*loader) error

func (f optionFunc) apply(l *loader) error {
	return f(l)
}

// WithPrettyLogging configures Loader to print human friendly logs.
func WithPrettyLogging() Option {
	return optionFunc(func(l *loader) error {
		l.prettyLogging = true
		return nil
	})
}

// WithLogLevel sets the log level, e.g. "debug" or "warn".
func WithLogLevel(level string) Option {
	return optionFunc(func(l *loader) error {
		lv, err := zerolog.ParseLevel(level)
		if err != nil {
			return xerrors.Errorf("invalid log level %q: %w", level, err)
		}
		l.logLevel = lv
		return nil
	})
}

// WithConcurrency sets how many sheets of a workbook are extracted at once.
func WithConcurrency(n int) Option {
	return optionFunc(func(l *loader) error {
		if n < 1 {
			return xerrors.Errorf("concurrency must be positive: %d", n)
		}
		l.concurrency = n
		return nil
	})
}
