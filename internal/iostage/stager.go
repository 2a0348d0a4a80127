package iostage

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/faers"
)

type stager struct {
	store Store
	cfg   config.StageConfig
}

// NewStager creates an etl.Stager that keeps CSV files in store at
// the keys configured in cfg.
func NewStager(store Store, cfg config.StageConfig) etl.Stager {
	return &stager{store: store, cfg: cfg}
}

// StageRaw implements etl.Stager.
func (s *stager) StageRaw(ctx context.Context, raws []faers.RawReport) error {
	uri := s.store.URI(s.cfg.RawKey)
	var buf bytes.Buffer
	if err := WriteRaw(&buf, raws); err != nil {
		return EncodeError(uri, err)
	}
	if err := s.put(ctx, s.cfg.RawKey, &buf); err != nil {
		return err
	}
	slog.Info("Raw reports staged",
		"uri", uri,
		"records", len(raws),
	)
	return nil
}

// LoadRaw implements etl.Stager.
func (s *stager) LoadRaw(ctx context.Context) ([]faers.RawReport, error) {
	uri := s.store.URI(s.cfg.RawKey)
	rc, err := s.store.Get(ctx, s.cfg.RawKey)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	res, err := ReadRaw(rc)
	if err != nil {
		return nil, DecodeError(uri, err)
	}
	slog.Info("Raw reports read", "uri", uri, "records", len(res))
	return res, nil
}

// StageBatch implements etl.Stager.
func (s *stager) StageBatch(ctx context.Context, b *faers.Batch) error {
	for _, t := range faers.Tables() {
		key := s.cfg.TableKey(t.ID)
		uri := s.store.URI(key)
		rows := b.Rows(t.ID)

		var buf bytes.Buffer
		if err := WriteTable(&buf, t, rows); err != nil {
			return EncodeError(uri, err)
		}
		if err := s.put(ctx, key, &buf); err != nil {
			return err
		}
		slog.Info("Table staged",
			"table", t.ID,
			"uri", uri,
			"rows", len(rows),
		)
	}
	return nil
}

// OpenTable implements etl.Stager.
func (s *stager) OpenTable(
	ctx context.Context,
	t faers.Table,
) (io.ReadCloser, error) {
	return s.store.Get(ctx, s.cfg.TableKey(t.ID))
}

func (s *stager) put(ctx context.Context, key string, buf *bytes.Buffer) error {
	size := buf.Len()
	if err := s.store.Put(ctx, key, buf); err != nil {
		return err
	}
	slog.Debug("Object written",
		"uri", s.store.URI(key),
		"size", humanize.Bytes(uint64(size)),
	)
	return nil
}
