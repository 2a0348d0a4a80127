// Package ioload bulk-loads staged tables into the warehouse. Every load
// replaces the previous content of the four tables in one transaction.
// Rows the warehouse cannot accept are skipped and counted.
package ioload

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/faersetl/faersetl/internal/iodb"
	"github.com/faersetl/faersetl/internal/iofs"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/faers"
	_ "modernc.org/sqlite"
)

// New creates a Loader for the warehouse driver set in the config and
// connects to the warehouse.
func New(ctx context.Context, cfg *config.Config) (etl.Loader, error) {
	switch cfg.Warehouse.Driver {
	case "postgres":
		op := iodb.NewPgxOperator()
		if err := op.Connect(ctx, cfg.Warehouse); err != nil {
			return nil, err
		}
		return NewPostgres(op, cfg.Warehouse), nil
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath(), cfg.Warehouse)
	}
	return nil, iodb.UnsupportedDriverError(cfg.Warehouse.Driver)
}

// OpenSQLite opens or creates the SQLite warehouse file.
func OpenSQLite(path string, cfg config.WarehouseConfig) (etl.Loader, error) {
	if err := iofs.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, SQLiteOpenError(path, err)
	}
	// one writer is all SQLite allows
	sqlDB.SetMaxOpenConns(1)
	if err = sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, SQLiteOpenError(path, err)
	}
	return NewSQLite(sqlDB, cfg), nil
}

// readAll reads staged tables in load order. Nothing is written to the
// warehouse until every table is read.
func readAll(
	ctx context.Context,
	st etl.Stager,
	cfg config.WarehouseConfig,
) ([]*staged, error) {
	var res []*staged
	for _, t := range faers.Tables() {
		s, err := readStaged(ctx, st, t, cfg.TableName(t.ID))
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

func newBar(s *staged) *pb.ProgressBar {
	bar := pb.Full.Start(len(s.rows))
	bar.Set("prefix", "Loading "+s.name+": ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

func logLoaded(st etl.LoadStats) {
	slog.Info("Table loaded",
		"table", st.Table,
		"loaded", humanize.Comma(int64(st.Loaded)),
		"skipped", humanize.Comma(int64(st.Skipped)),
	)
}
