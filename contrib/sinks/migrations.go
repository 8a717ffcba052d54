package sinks

import (
	"context"
	"embed"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"golang.org/x/xerrors"
)

//go:embed migrations
var migrations embed.FS

// Migrate creates or upgrades the feedrate, tbn_fe and me_sys_oil tables.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dialect, dir := "postgres", "migrations/postgres"
	if db.DriverName() == "mysql" {
		dialect, dir = "mysql", "migrations/mysql"
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return xerrors.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return xerrors.Errorf("failed to migrate: %w", err)
	}

	return nil
}
