// Command fleetload loads vessel workbooks into the configured sinks.
//
// Configuration is read from the environment, optionally seeded from a
// .env file.
package main

import (
	"context"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader"
)

var errNoJobMatched = xerrors.New("no job matched")

var (
	envFile  string
	logLevel string
	pretty   bool
	bucket   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("fleetload failed")
		return 1
	}

	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fleetload",
		Short:         "Load vessel workbooks into databases and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
					return xerrors.Errorf("failed to load %s: %w", envFile, err)
				}
			}
			setupLogger()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides LOG_LEVEL")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "human readable logs")

	for _, name := range []string{jobFeedrate, jobTBNFe, jobMESysOil} {
		root.AddCommand(newLoadCmd(name))
	}
	root.AddCommand(newSchedulesCmd(), newMigrateCmd(), newServeCmd())

	return root
}

func setupLogger() {
	lvl := logLevel
	if lvl == "" {
		lvl = getEnv("LOG_LEVEL", "info")
	}
	if l, err := zerolog.ParseLevel(lvl); err == nil {
		zerolog.SetGlobalLevel(l)
	}
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func (c config) withFlags() config {
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	return c
}

func newLoadCmd(name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [object]",
		Short: "Load the " + name + " workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := loadConfig().withFlags()

			if len(args) > 0 {
				c = c.withObject(name, args[0])
			}

			e := eventFor(c, c.targetOf(name).Object, args)
			return runJobs(ctx, c, e, name)
		},
	}
	cmd.Flags().StringVar(&bucket, "bucket", "", "bucket holding the object, overrides SOURCE_BUCKET")
	return cmd
}

func newSchedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   jobSchedules,
		Short: "Fetch carrier schedules for the tracked vessels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loadConfig().withFlags()
			e := fleetloader.Event{Name: path.Base(c.TrackedVesselsFile)}
			return runJobs(cmd.Context(), c, e, jobSchedules)
		},
	}
}

func eventFor(c config, object string, args []string) fleetloader.Event {
	if len(args) > 0 {
		object = args[0]
	}
	b := c.SourceBucket
	if bucket != "" {
		b = bucket
	}
	if c.SourceDir != "" {
		b = ""
	}
	return fleetloader.Event{Name: object, Bucket: b}
}

func (c config) targetOf(name string) target {
	switch name {
	case jobTBNFe:
		return c.TBNFe
	case jobMESysOil:
		return c.MESysOil
	default:
		return c.Feedrate
	}
}

func runJobs(ctx context.Context, c config, e fleetloader.Event, names ...string) error {
	l, js, err := c.load(ctx, pretty, names...)
	if err != nil {
		return err
	}

	if !matched(js, e.Name) {
		return xerrors.Errorf("no job matches %s: %w", e.FullPath(), errNoJobMatched)
	}

	return l.Handle(ctx, e)
}
