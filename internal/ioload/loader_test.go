package ioload

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/faersetl/faersetl/internal/iotesting"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportsCSV = `safetyreportversion,safetyreportid,reportcountry,reportdate,eventoutcome,seriousnessother,seriousnessdeath
1,123,US,2021-03-04,The adverse event resulted in a life threatening condition,YES,NOT MENTIONED
1,abc,US,2021-03-04,x,YES,NO
2,124,US,2021-03-05,x,NO,NO
`

const symptomsCSV = `symptomid,symptomname,symptomoutcome
123,Nausea,Recovered
123,"Head"ache,UNKNOWN
124,Rash
124,Rash,Fatal
`

// fakeStager serves staged tables from memory. Tables without content
// have only a header row.
type fakeStager struct {
	tables map[faers.TableID]string
	err    error
}

func (f *fakeStager) StageRaw(context.Context, []faers.RawReport) error { return nil }

func (f *fakeStager) LoadRaw(context.Context) ([]faers.RawReport, error) {
	return nil, nil
}

func (f *fakeStager) StageBatch(context.Context, *faers.Batch) error { return nil }

func (f *fakeStager) OpenTable(
	_ context.Context,
	t faers.Table,
) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.tables[t.ID]
	if !ok {
		body = strings.Join(t.Header(), ",") + "\n"
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func newFakeStager() *fakeStager {
	return &fakeStager{tables: map[faers.TableID]string{
		faers.ReportsID:  reportsCSV,
		faers.SymptomsID: symptomsCSV,
	}}
}

func statsByTable(stats []etl.LoadStats) map[string]etl.LoadStats {
	res := make(map[string]etl.LoadStats)
	for _, v := range stats {
		res[v.Table] = v
	}
	return res
}

func TestConvert(t *testing.T) {
	tests := []struct {
		msg   string
		table faers.Table
		rec   []string
		res   []any
		isErr bool
	}{
		{
			"report",
			faers.ReportsTable,
			[]string{"1", "123", "US", "2021-03-04", "x", "YES", "NO"},
			[]any{int64(1), int64(123), "US",
				time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), "x", "YES", "NO"},
			false,
		},
		{"symptom", faers.SymptomsTable, []string{"5", "Rash", "Fatal"},
			[]any{int64(5), "Rash", "Fatal"}, false},
		{"short row", faers.SymptomsTable, []string{"5", "Rash"}, nil, true},
		{"long row", faers.SymptomsTable, []string{"5", "a", "b", "c"}, nil, true},
		{"bad int", faers.SymptomsTable, []string{"5.5", "a", "b"}, nil, true},
		{
			"bad date",
			faers.ReportsTable,
			[]string{"1", "123", "US", "20210304", "x", "YES", "NO"},
			nil,
			true,
		},
	}

	for _, v := range tests {
		res, err := convert(v.table, v.rec)
		if v.isErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestReadStaged(t *testing.T) {
	st := newFakeStager()
	s, err := readStaged(context.Background(), st, faers.SymptomsTable, "s")
	require.NoError(t, err)
	assert.Len(t, s.rows, 2)
	assert.Equal(t, []int{2, 5}, s.lines)
	assert.Equal(t, 2, s.skipped)
	assert.Equal(t, etl.LoadStats{Table: "s", Loaded: 2, Skipped: 2}, s.stats(2))

	s, err = readStaged(context.Background(), st, faers.DrugsTable, "d")
	require.NoError(t, err)
	assert.Empty(t, s.rows)
	assert.Zero(t, s.skipped)
}

func TestReadStagedErrors(t *testing.T) {
	ctx := context.Background()
	st := &fakeStager{tables: map[faers.TableID]string{
		faers.DrugsID: "a,b,c\n",
	}}
	_, err := readStaged(ctx, st, faers.DrugsTable, "d")
	var ge *gn.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, errcode.LoadReadStageError, ge.Code)

	cause := errors.New("no object")
	st = &fakeStager{err: cause}
	_, err = readStaged(ctx, st, faers.DrugsTable, "d")
	assert.ErrorIs(t, err, cause)
}

func TestInsertSQL(t *testing.T) {
	res := insertSQL(`"s"`, faers.SymptomsTable)
	assert.Equal(t,
		`INSERT INTO "s" ("symptomid", "symptomname", "symptomoutcome") VALUES (?, ?, ?)`,
		res)
}

func TestSQLiteLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping SQLite test in short mode")
	}
	ctx := context.Background()
	cfg := config.New().Warehouse
	l, err := OpenSQLite(filepath.Join(t.TempDir(), "w", "fda.sqlite"), cfg)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.EnsureSchema(ctx))

	// loading twice replaces data
	for range 2 {
		stats, err := l.Load(ctx, newFakeStager())
		require.NoError(t, err)
		require.Len(t, stats, 4)
		byTable := statsByTable(stats)
		assert.Equal(t, etl.LoadStats{Table: cfg.ReportsTable, Loaded: 2, Skipped: 1},
			byTable[cfg.ReportsTable])
		assert.Equal(t, etl.LoadStats{Table: cfg.SymptomsTable, Loaded: 2, Skipped: 2},
			byTable[cfg.SymptomsTable])
		assert.Zero(t, byTable[cfg.DrugsTable].Loaded)
	}

	sqlDB := l.(*sqliteLoader).db
	var n int
	var date string
	err = sqlDB.QueryRow(`SELECT count(*), max(reportdate) FROM fda_reports`).
		Scan(&n, &date)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "2021-03-05", date)

	err = sqlDB.QueryRow(`SELECT count(*) FROM fda_symptoms WHERE symptomid = 124`).
		Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func expectTable(mock sqlmock.Sqlmock, name string) *sqlmock.ExpectedPrepare {
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "` + name + `"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	return mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO "` + name + `"`))
}

func TestSQLiteLoadRowRejected(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	cfg := config.New().Warehouse

	mock.ExpectBegin()
	prep := expectTable(mock, cfg.ReportsTable)
	prep.ExpectExec().WillReturnError(errors.New("constraint failed"))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	expectTable(mock, cfg.PatientsTable)
	prep = expectTable(mock, cfg.SymptomsTable)
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	expectTable(mock, cfg.DrugsTable)
	mock.ExpectCommit()

	l := NewSQLite(sqlDB, cfg)
	stats, err := l.Load(context.Background(), newFakeStager())
	require.NoError(t, err)
	byTable := statsByTable(stats)
	assert.Equal(t, 1, byTable[cfg.ReportsTable].Loaded)
	assert.Equal(t, 2, byTable[cfg.ReportsTable].Skipped)
	assert.Equal(t, 2, byTable[cfg.SymptomsTable].Loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteLoadFailures(t *testing.T) {
	cfg := config.New().Warehouse
	tests := []struct {
		msg    string
		expect func(sqlmock.Sqlmock)
		code   gn.ErrorCode
	}{
		{
			"begin",
			func(m sqlmock.Sqlmock) {
				m.ExpectBegin().WillReturnError(errors.New("locked"))
			},
			errcode.LoadBeginError,
		},
		{
			"delete",
			func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec("DELETE FROM").WillReturnError(errors.New("locked"))
				m.ExpectRollback()
			},
			errcode.LoadTruncateError,
		},
		{
			"prepare",
			func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 0))
				m.ExpectPrepare("INSERT INTO").WillReturnError(errors.New("no table"))
				m.ExpectRollback()
			},
			errcode.LoadCopyError,
		},
		{
			"commit",
			func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				for _, id := range []faers.TableID{
					faers.ReportsID, faers.PatientsID, faers.SymptomsID, faers.DrugsID,
				} {
					expectTable(m, cfg.TableName(id))
				}
				m.ExpectCommit().WillReturnError(errors.New("disk full"))
			},
			errcode.LoadCommitError,
		},
	}

	for _, v := range tests {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err, v.msg)
		v.expect(mock)

		st := &fakeStager{}
		_, err = NewSQLite(sqlDB, cfg).Load(context.Background(), st)
		var ge *gn.Error
		require.True(t, errors.As(err, &ge), v.msg)
		assert.Equal(t, v.code, ge.Code, v.msg)
		assert.NoError(t, mock.ExpectationsWereMet(), v.msg)
		sqlDB.Close()
	}
}

func TestNewUnsupportedDriver(t *testing.T) {
	cfg := config.New()
	cfg.Warehouse.Driver = "oracle"
	_, err := New(context.Background(), cfg)
	var ge *gn.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, errcode.DBUnsupportedDriverError, ge.Code)
}

func TestPostgresLoad(t *testing.T) {
	op := iotesting.Postgres(t)
	cfg := iotesting.WarehouseConfig()
	cfg.ReportsTable = "load_test_reports"
	cfg.PatientsTable = "load_test_patients"
	cfg.SymptomsTable = "load_test_symptoms"
	cfg.DrugsTable = "load_test_drugs"

	ctx := context.Background()
	l := NewPostgres(op, cfg)
	require.NoError(t, l.EnsureSchema(ctx))

	for range 2 {
		stats, err := l.Load(ctx, newFakeStager())
		require.NoError(t, err)
		byTable := statsByTable(stats)
		assert.Equal(t, 2, byTable[cfg.ReportsTable].Loaded)
		assert.Equal(t, 1, byTable[cfg.ReportsTable].Skipped)
	}

	var n int
	var date time.Time
	err := op.Pool().QueryRow(ctx,
		`SELECT count(*), max(reportdate) FROM load_test_reports`).Scan(&n, &date)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "2021-03-05", date.Format(faers.DateLayout))

	// a failed load keeps previous rows
	_, err = l.Load(ctx, &fakeStager{err: errors.New("no object")})
	require.Error(t, err)
	err = op.Pool().QueryRow(ctx, `SELECT count(*) FROM load_test_reports`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
