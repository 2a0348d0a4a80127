package ioload

import (
	"context"

	"github.com/faersetl/faersetl/internal/iodb"
	"github.com/faersetl/faersetl/internal/ioschema"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/db"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/jackc/pgx/v5"
)

type pgLoader struct {
	operator db.Operator
	schema   db.SchemaManager
	cfg      config.WarehouseConfig
}

// NewPostgres creates a Loader that copies rows into PostgreSQL through
// a connected operator. Close closes the operator.
func NewPostgres(op db.Operator, cfg config.WarehouseConfig) etl.Loader {
	return &pgLoader{
		operator: op,
		schema:   ioschema.NewManager(op, cfg),
		cfg:      cfg,
	}
}

// EnsureSchema implements etl.Loader.
func (l *pgLoader) EnsureSchema(ctx context.Context) error {
	return l.schema.Create(ctx)
}

// Load implements etl.Loader.
func (l *pgLoader) Load(ctx context.Context, st etl.Stager) ([]etl.LoadStats, error) {
	pool := l.operator.Pool()
	if pool == nil {
		return nil, iodb.NotConnectedError()
	}

	tables, err := readAll(ctx, st, l.cfg)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, BeginError(err)
	}
	defer tx.Rollback(ctx)

	res := make([]etl.LoadStats, 0, len(tables))
	for _, s := range tables {
		ident := pgx.Identifier{s.name}
		if _, err = tx.Exec(ctx, "TRUNCATE TABLE "+ident.Sanitize()); err != nil {
			return nil, TruncateError(s.name, err)
		}

		bar := newBar(s)
		var i int
		src := pgx.CopyFromFunc(func() ([]any, error) {
			if i == len(s.rows) {
				return nil, nil
			}
			i++
			bar.Increment()
			return s.rows[i-1], nil
		})
		n, err := tx.CopyFrom(ctx, ident, s.table.Header(), src)
		bar.Finish()
		if err != nil {
			return nil, CopyError(s.name, err)
		}

		stats := s.stats(int(n))
		logLoaded(stats)
		res = append(res, stats)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, CommitError(err)
	}
	return res, nil
}

// Close implements etl.Loader.
func (l *pgLoader) Close() error {
	return l.operator.Close()
}
