package ioload

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/faersetl/faersetl/internal/ioschema"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/db"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/jackc/pgx/v5"
)

type sqliteLoader struct {
	db     *sql.DB
	schema db.SchemaManager
	cfg    config.WarehouseConfig
}

// NewSQLite creates a Loader that inserts rows into a SQLite database.
// Close closes sqlDB.
func NewSQLite(sqlDB *sql.DB, cfg config.WarehouseConfig) etl.Loader {
	return &sqliteLoader{
		db:     sqlDB,
		schema: ioschema.NewSQLiteManager(sqlDB, cfg),
		cfg:    cfg,
	}
}

// EnsureSchema implements etl.Loader.
func (l *sqliteLoader) EnsureSchema(ctx context.Context) error {
	return l.schema.Create(ctx)
}

// Load implements etl.Loader. A row rejected by an INSERT is skipped,
// the rest of the load continues.
func (l *sqliteLoader) Load(ctx context.Context, st etl.Stager) ([]etl.LoadStats, error) {
	tables, err := readAll(ctx, st, l.cfg)
	if err != nil {
		return nil, err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, BeginError(err)
	}
	defer tx.Rollback()

	res := make([]etl.LoadStats, 0, len(tables))
	for _, s := range tables {
		stats, err := l.loadTable(ctx, tx, s)
		if err != nil {
			return nil, err
		}
		logLoaded(stats)
		res = append(res, stats)
	}

	if err = tx.Commit(); err != nil {
		return nil, CommitError(err)
	}
	return res, nil
}

func (l *sqliteLoader) loadTable(
	ctx context.Context,
	tx *sql.Tx,
	s *staged,
) (etl.LoadStats, error) {
	var res etl.LoadStats
	ident := pgx.Identifier{s.name}.Sanitize()
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+ident); err != nil {
		return res, TruncateError(s.name, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(ident, s.table))
	if err != nil {
		return res, CopyError(s.name, err)
	}
	defer stmt.Close()

	bar := newBar(s)
	defer bar.Finish()

	var loaded int
	for i, row := range s.rows {
		bar.Increment()
		if _, err = stmt.ExecContext(ctx, sqliteArgs(row)...); err != nil {
			if ctx.Err() != nil {
				return res, CopyError(s.name, ctx.Err())
			}
			s.skip(&RowError{Table: s.name, Line: s.lines[i], Err: err})
			continue
		}
		loaded++
	}
	return s.stats(loaded), nil
}

// Close implements etl.Loader.
func (l *sqliteLoader) Close() error {
	return l.db.Close()
}

func insertSQL(ident string, t faers.Table) string {
	cols := make([]string, len(t.Columns))
	for i, v := range t.Columns {
		cols[i] = pgx.Identifier{v.Name}.Sanitize()
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident, strings.Join(cols, ", "), marks)
}

// sqliteArgs keeps dates as ISO text.
func sqliteArgs(row []any) []any {
	res := make([]any, len(row))
	for i, v := range row {
		if d, ok := v.(time.Time); ok {
			res[i] = d.Format(faers.DateLayout)
			continue
		}
		res[i] = v
	}
	return res
}
