package ioload

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/faersetl/faersetl/internal/iostage"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/faers"
)

// staged holds converted rows of one table together with their line
// numbers in the staged CSV.
type staged struct {
	table   faers.Table
	name    string
	rows    [][]any
	lines   []int
	skipped int
}

// convert turns a staged record into typed values according to the
// column kinds of the table. Dates become time.Time.
func convert(t faers.Table, rec []string) ([]any, error) {
	if len(rec) != len(t.Columns) {
		return nil, fmt.Errorf("%d fields, expected %d", len(rec), len(t.Columns))
	}
	res := make([]any, len(rec))
	for i, col := range t.Columns {
		switch col.Kind {
		case faers.KindInt:
			v, err := strconv.ParseInt(rec[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name, err)
			}
			res[i] = v
		case faers.KindDate:
			v, err := time.Parse(faers.DateLayout, rec[i])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name, err)
			}
			res[i] = v
		default:
			res[i] = rec[i]
		}
	}
	return res, nil
}

// readStaged reads the staged CSV of a table. Rows that are not valid
// CSV or cannot be converted are skipped.
func readStaged(
	ctx context.Context,
	st etl.Stager,
	t faers.Table,
	name string,
) (*staged, error) {
	rc, err := st.OpenTable(ctx, t)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	tr, err := iostage.NewTableReader(rc, t)
	if err != nil {
		return nil, ReadStageError(name, err)
	}

	res := &staged{table: t, name: name}
	for {
		rec, line, err := tr.Read()
		if err == io.EOF {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			res.skip(&RowError{Table: name, Line: line, Err: err})
			continue
		}
		if err != nil {
			return nil, ReadStageError(name, err)
		}

		row, err := convert(t, rec)
		if err != nil {
			res.skip(&RowError{Table: name, Line: line, Err: err})
			continue
		}
		res.rows = append(res.rows, row)
		res.lines = append(res.lines, line)
	}
	return res, nil
}

func (s *staged) skip(err *RowError) {
	s.skipped++
	slog.Warn("Row skipped", "table", err.Table, "line", err.Line, "error", err.Err)
}

func (s *staged) stats(loaded int) etl.LoadStats {
	return etl.LoadStats{Table: s.name, Loaded: loaded, Skipped: s.skipped}
}
