package main

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader/contrib/sinks"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the relational tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loadConfig().withFlags()
			if c.DBDSN == "" {
				return xerrors.New("DB_DSN is required")
			}

			db, err := sqlx.Open(c.DBDriver, c.DBDSN)
			if err != nil {
				return xerrors.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := sinks.Migrate(cmd.Context(), db); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return err
			}

			log.Info().Str("driver", c.DBDriver).Msg("migrated")
			return nil
		},
	}
}
