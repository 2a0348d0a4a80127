package iostage_test

import (
	"context"
	"testing"

	"github.com/faersetl/faersetl/internal/iostage"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/faersetl/faersetl/pkg/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStager(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}
	ctx := context.Background()
	cfg := config.New()
	store, err := iostage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	st := iostage.NewStager(store, cfg.Stage)

	raws := testRaws(t)
	require.NoError(t, st.StageRaw(ctx, raws))
	got, err := st.LoadRaw(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(raws))

	b, err := normalize.New().Normalize(got)
	require.NoError(t, err)
	require.NoError(t, st.StageBatch(ctx, b))

	for _, tbl := range faers.Tables() {
		rc, err := st.OpenTable(ctx, tbl)
		require.NoError(t, err, string(tbl.ID))
		rows, err := iostage.ReadTable(rc, tbl)
		rc.Close()
		require.NoError(t, err, string(tbl.ID))
		assert.Equal(t, b.Rows(tbl.ID), rows, string(tbl.ID))
	}
}

func TestStagerMissingRaw(t *testing.T) {
	ctx := context.Background()
	store, err := iostage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	st := iostage.NewStager(store, config.New().Stage)
	_, err = st.LoadRaw(ctx)
	assert.Error(t, err)
}
