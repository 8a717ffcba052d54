package sinks

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader"
)

// DefaultInsertBatchSize is the number of rows per INSERT statement.
const DefaultInsertBatchSize = 500

// SQLSink replaces a MySQL or PostgreSQL table.
//
// On MySQL the rows are written to a staging copy of the table, which is
// then swapped in with a single RENAME TABLE. Elsewhere the table is
// truncated, identity reset, and refilled inside one transaction.
type SQLSink struct {
	DB    *sqlx.DB
	Table string

	// BatchSize is rows per INSERT. Zero means DefaultInsertBatchSize.
	BatchSize int
}

var _ fleetloader.Sink = (*SQLSink)(nil)

// NewSQLSink opens a database. driver is "mysql" or "pgx".
func NewSQLSink(driver, dsn, table string) (*SQLSink, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, xerrors.Errorf("failed to open %s database: %w", driver, err)
	}

	return &SQLSink{DB: db, Table: table}, nil
}

// Replace replaces all rows of the table with t.
func (s *SQLSink) Replace(ctx context.Context, t *fleetloader.Table) error {
	var err error
	if s.DB.DriverName() == "mysql" {
		err = s.swap(ctx, t)
	} else {
		err = s.refill(ctx, t)
	}
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().Str("table", s.Table).Int("rows", t.Len()).Msg("sink replaced")

	return nil
}

func (s *SQLSink) swap(ctx context.Context, t *fleetloader.Table) error {
	q := quoter(s.DB.DriverName())
	staging, old := s.Table+"_staging", s.Table+"_old"

	for _, stmt := range []string{
		"DROP TABLE IF EXISTS " + q(staging),
		"DROP TABLE IF EXISTS " + q(old),
		fmt.Sprintf("CREATE TABLE %s LIKE %s", q(staging), q(s.Table)),
	} {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return xerrors.Errorf("failed to prepare staging table: %w", err)
		}
	}

	if err := s.insert(ctx, s.DB, staging, t); err != nil {
		if _, derr := s.DB.ExecContext(ctx, "DROP TABLE IF EXISTS "+q(staging)); derr != nil {
			log.Ctx(ctx).Warn().Err(derr).Str("table", staging).Msg("failed to drop staging table")
		}
		return err
	}

	rename := fmt.Sprintf("RENAME TABLE %s TO %s, %s TO %s", q(s.Table), q(old), q(staging), q(s.Table))
	if _, err := s.DB.ExecContext(ctx, rename); err != nil {
		return xerrors.Errorf("failed to swap %s: %w", s.Table, err)
	}

	if _, err := s.DB.ExecContext(ctx, "DROP TABLE "+q(old)); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("table", old).Msg("failed to drop previous table")
	}

	return nil
}

func (s *SQLSink) refill(ctx context.Context, t *fleetloader.Table) (err error) {
	q := quoter(s.DB.DriverName())

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return xerrors.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt := "TRUNCATE TABLE " + q(s.Table) + " RESTART IDENTITY"
	if s.DB.DriverName() != "pgx" && s.DB.DriverName() != "postgres" {
		stmt = "DELETE FROM " + q(s.Table)
	}
	if _, err = tx.ExecContext(ctx, stmt); err != nil {
		return xerrors.Errorf("failed to clear %s: %w", s.Table, err)
	}

	if err = s.insert(ctx, tx, s.Table, t); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return xerrors.Errorf("failed to commit: %w", err)
	}

	return nil
}

func (s *SQLSink) insert(ctx context.Context, db sqlx.ExtContext, table string, t *fleetloader.Table) error {
	stmts := insertStatements(db.DriverName(), table, t, s.BatchSize)
	for i, st := range stmts {
		if _, err := db.ExecContext(ctx, st.query, st.args...); err != nil {
			return xerrors.Errorf("failed to insert batch %d into %s: %w", i+1, table, err)
		}
		log.Ctx(ctx).Debug().Int("batch", i+1).Int("args", len(st.args)).Msg("batch inserted")
	}
	return nil
}

type statement struct {
	query string
	args  []any
}

// insertStatements builds multi-row INSERTs bound for the driver.
func insertStatements(driver, table string, t *fleetloader.Table, size int) []statement {
	if size <= 0 {
		size = DefaultInsertBatchSize
	}

	q := quoter(driver)
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = q(c)
	}

	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", q(table), strings.Join(cols, ", "))

	var stmts []statement
	for _, b := range fleetloader.Batches(len(t.Rows), size) {
		rows := t.Rows[b[0]:b[1]]

		tuples := make([]string, len(rows))
		args := make([]any, 0, len(rows)*len(cols))
		for i, r := range rows {
			tuples[i] = tuple
			for j := range cols {
				var v any
				if j < len(r) {
					v = fleetloader.Finite(r[j])
				}
				args = append(args, v)
			}
		}

		stmts = append(stmts, statement{
			query: sqlx.Rebind(sqlx.BindType(driver), prefix+strings.Join(tuples, ", ")),
			args:  args,
		})
	}

	return stmts
}

func quoter(driver string) func(string) string {
	if driver == "mysql" {
		return func(s string) string { return "`" + strings.ReplaceAll(s, "`", "``") + "`" }
	}
	return func(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }
}
