// Package storage persists cleaned sales records to PostgreSQL.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mayank1ahuja/da-walmart-project/internal/etl"
)

// salesColumns lists the sink table columns in Record field order.
var salesColumns = []string{
	"branch", "city", "category", "unit_price", "quantity",
	"date", "time", "payment_method", "rating", "profit_margin", "total",
}

// ExpectedColumns returns the sink table's column names in schema order.
// Callers compare this against Columns to verify the table shape after a
// load.
func ExpectedColumns() []string {
	return append([]string(nil), salesColumns...)
}

// Store writes cleaned records to a named PostgreSQL table, replacing any
// prior contents on each load. It also keeps a load_runs audit trail with
// one row per pipeline run.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// New creates a Store targeting the given table.
func New(pool *pgxpool.Pool, table string) *Store {
	return &Store{pool: pool, table: table}
}

// EnsureSchema creates the sales table and the load_runs audit table if they
// do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	salesDDL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			branch         TEXT          NOT NULL,
			city           TEXT          NOT NULL,
			category       TEXT          NOT NULL,
			unit_price     NUMERIC(10,2) NOT NULL CHECK (unit_price >= 0),
			quantity       INTEGER       NOT NULL CHECK (quantity >= 0),
			date           DATE          NOT NULL,
			time           TIME          NOT NULL,
			payment_method TEXT          NOT NULL,
			rating         NUMERIC(4,2)  NOT NULL,
			profit_margin  NUMERIC(6,4)  NOT NULL,
			total          NUMERIC(12,2) NOT NULL
		)`, s.ident())

	if _, err := s.pool.Exec(ctx, salesDDL); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}

	const runsDDL = `
		CREATE TABLE IF NOT EXISTS load_runs (
			id                 UUID        PRIMARY KEY,
			target_table       TEXT        NOT NULL,
			source_file        TEXT        NOT NULL,
			rows_in            INTEGER     NOT NULL,
			rows_out           INTEGER     NOT NULL,
			duplicates_dropped INTEGER     NOT NULL,
			incomplete_dropped INTEGER     NOT NULL,
			invalid_dropped    INTEGER     NOT NULL,
			loaded_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	if _, err := s.pool.Exec(ctx, runsDDL); err != nil {
		return fmt.Errorf("create table load_runs: %w", err)
	}

	return nil
}

// Replace truncates the sales table and bulk-inserts the records via the
// COPY protocol, all inside one transaction. A failed load rolls back and
// leaves the prior contents untouched; re-running the same input yields the
// same final table.
func (s *Store) Replace(ctx context.Context, sourceFile string, report etl.CleanReport, recs []etl.Record) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE %s", s.ident())); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", s.table, err)
	}

	written, err := tx.CopyFrom(ctx,
		pgx.Identifier{s.table},
		salesColumns,
		pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
			r := recs[i]
			return []any{
				r.Branch, r.City, r.Category, r.UnitPrice, r.Quantity,
				r.Date, r.Time, r.PaymentMethod, r.Rating, r.ProfitMargin, r.Total,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", s.table, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO load_runs (id, target_table, source_file, rows_in, rows_out,
			duplicates_dropped, incomplete_dropped, invalid_dropped)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New().String(), s.table, sourceFile,
		report.Input, report.Output,
		report.Duplicates, report.Incomplete, report.Invalid,
	)
	if err != nil {
		return 0, fmt.Errorf("record load run: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return written, nil
}

// Count returns the number of rows currently in the sales table.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.ident())).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	return n, nil
}

// Columns returns the column names of the sales table in ordinal order.
// Used for round-trip verification after a load.
func (s *Store) Columns(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position`, s.table)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", s.table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// LoadRun is one audit entry from the load_runs table.
type LoadRun struct {
	ID         string
	SourceFile string
	RowsIn     int
	RowsOut    int
	LoadedAt   time.Time
}

// LastRun returns the most recent load_runs entry for the sales table.
func (s *Store) LastRun(ctx context.Context) (*LoadRun, error) {
	var run LoadRun
	err := s.pool.QueryRow(ctx, `
		SELECT id, source_file, rows_in, rows_out, loaded_at
		FROM load_runs WHERE target_table = $1
		ORDER BY loaded_at DESC LIMIT 1`, s.table).
		Scan(&run.ID, &run.SourceFile, &run.RowsIn, &run.RowsOut, &run.LoadedAt)
	if err != nil {
		return nil, fmt.Errorf("last load run: %w", err)
	}
	return &run, nil
}

// ident returns the sink table as a safely quoted SQL identifier.
func (s *Store) ident() string {
	return pgx.Identifier{s.table}.Sanitize()
}
