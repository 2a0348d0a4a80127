package iopipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/faersetl/faersetl/internal/iostage"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const report = `{
  "safetyreportid": "123",
  "safetyreportversion": "1",
  "receiptdate": "20210304",
  "serious": "2",
  "patient": {
    "reaction": [{"reactionmeddrapt": "Nausea"}, {"reactionmeddrapt": "Rash"}],
    "drug": [{"drugcharacterization": "1", "medicinalproduct": "Aspirin"}]
  }
}`

type fakeExtractor struct {
	calls   []string
	pingErr error
	err     error
	raws    []faers.RawReport
}

func (f *fakeExtractor) Extract(
	_ context.Context,
	query string,
	pageSize, target int,
) ([]faers.RawReport, error) {
	f.calls = append(f.calls, "extract")
	if f.err != nil {
		return nil, f.err
	}
	return f.raws[:min(target, len(f.raws))], nil
}

func (f *fakeExtractor) Ping(context.Context) error {
	f.calls = append(f.calls, "ping")
	return f.pingErr
}

// fakeLoader counts staged rows instead of loading them.
type fakeLoader struct {
	calls  []string
	counts map[string]int
	err    error
}

func (f *fakeLoader) EnsureSchema(context.Context) error {
	f.calls = append(f.calls, "schema")
	return nil
}

func (f *fakeLoader) Load(ctx context.Context, st etl.Stager) ([]etl.LoadStats, error) {
	f.calls = append(f.calls, "load")
	if f.err != nil {
		return nil, f.err
	}
	var res []etl.LoadStats
	f.counts = make(map[string]int)
	for _, t := range faers.Tables() {
		rc, err := st.OpenTable(ctx, t)
		if err != nil {
			return nil, err
		}
		rows, err := iostage.ReadTable(rc, t)
		rc.Close()
		if err != nil {
			return nil, err
		}
		f.counts[string(t.ID)] = len(rows)
		res = append(res, etl.LoadStats{Table: string(t.ID), Loaded: len(rows)})
	}
	return res, nil
}

func (f *fakeLoader) Close() error {
	f.calls = append(f.calls, "close")
	return nil
}

func setup(t *testing.T, n int) (*fakeExtractor, *fakeLoader, etl.Pipeline) {
	var raw faers.RawReport
	require.NoError(t, json.Unmarshal([]byte(report), &raw))
	ex := &fakeExtractor{}
	for range n {
		ex.raws = append(ex.raws, raw)
	}

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptExtractTargetCount(n),
	})
	store, err := iostage.NewFileStore(cfg.StageRoot())
	require.NoError(t, err)

	l := &fakeLoader{}
	p := New(cfg,
		WithExtractor(ex),
		WithStager(iostage.NewStager(store, cfg.Stage)),
		WithLoader(func(context.Context, *config.Config) (etl.Loader, error) {
			return l, nil
		}),
	)
	return ex, l, p
}

func TestRun(t *testing.T) {
	ex, l, p := setup(t, 3)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []string{"ping", "extract"}, ex.calls)
	assert.Equal(t, []string{"schema", "load", "close"}, l.calls)
	assert.Equal(t, map[string]int{
		"reports": 3, "patients": 3, "symptoms": 6, "drugs": 3,
	}, l.counts)
	assert.NotEmpty(t, p.(*pipeline).runID)
}

func TestRunPhases(t *testing.T) {
	ctx := context.Background()
	_, l, p := setup(t, 2)

	// nothing is staged yet
	require.Error(t, p.RunTransform(ctx))

	require.NoError(t, p.RunExtract(ctx))
	require.NoError(t, p.RunTransform(ctx))
	require.NoError(t, p.RunLoad(ctx))
	assert.Equal(t, 2, l.counts["reports"])
}

func TestRunErrors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		msg     string
		prepare func(*fakeExtractor, *fakeLoader)
		exCalls []string
		lCalls  []string
	}{
		{
			"api not ready",
			func(e *fakeExtractor, _ *fakeLoader) { e.pingErr = cause },
			[]string{"ping"},
			nil,
		},
		{
			"extract fails",
			func(e *fakeExtractor, _ *fakeLoader) { e.err = cause },
			[]string{"ping", "extract"},
			nil,
		},
		{
			"load fails",
			func(_ *fakeExtractor, l *fakeLoader) { l.err = cause },
			[]string{"ping", "extract"},
			[]string{"schema", "load", "close"},
		},
	}

	for _, v := range tests {
		ex, l, p := setup(t, 2)
		v.prepare(ex, l)
		err := p.Run(context.Background())
		assert.ErrorIs(t, err, cause, v.msg)
		assert.Equal(t, v.exCalls, ex.calls, v.msg)
		assert.Equal(t, v.lCalls, l.calls, v.msg)
	}
}

func TestRunMalformedRecord(t *testing.T) {
	ex, l, p := setup(t, 2)
	ex.raws[1].ReceiptDate = faers.S("2021-03-04")

	err := p.Run(context.Background())
	var ge *gn.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, errcode.NormalizeMalformedRecordError, ge.Code)
	assert.Nil(t, l.calls)
}

func TestRunCancelled(t *testing.T) {
	ex, _, p := setup(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx)
	var ge *gn.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, errcode.PipelineCancelledError, ge.Code)
	assert.Nil(t, ex.calls)
}
