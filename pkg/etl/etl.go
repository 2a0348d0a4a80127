// Package etl defines contracts of the components that move adverse
// event reports from the openFDA API to the warehouse. Implementations
// live in internal/io* packages (impure) and pkg/normalize (pure).
package etl

import (
	"context"
	"io"

	"github.com/faersetl/faersetl/pkg/faers"
)

// Extractor fetches raw reports from a paged HTTP JSON API.
type Extractor interface {
	// Extract returns at most targetCount records matching query, in the
	// order the API served them. Pages of pageSize records are requested
	// sequentially, following the `rel="next"` link of every response.
	Extract(
		ctx context.Context,
		query string,
		pageSize, targetCount int,
	) ([]faers.RawReport, error)

	// Ping checks that the API answers requests.
	Ping(ctx context.Context) error
}

// Normalizer reshapes raw reports into the four derived tables.
// Implementations must be pure: the same input gives the same output.
type Normalizer interface {
	Normalize(raws []faers.RawReport) (*faers.Batch, error)
}

// Stager persists raw and normalized data in object storage.
type Stager interface {
	// StageRaw writes extracted reports to the raw stage.
	StageRaw(ctx context.Context, raws []faers.RawReport) error

	// LoadRaw reads reports back from the raw stage.
	LoadRaw(ctx context.Context) ([]faers.RawReport, error)

	// StageBatch writes the four derived tables.
	StageBatch(ctx context.Context, b *faers.Batch) error

	// OpenTable opens the staged CSV of a derived table.
	OpenTable(ctx context.Context, t faers.Table) (io.ReadCloser, error)
}

// LoadStats summarizes the load of one table.
type LoadStats struct {
	Table   string
	Loaded  int
	Skipped int
}

// Loader bulk-loads staged tables into the warehouse, replacing
// previous content. Rows the warehouse cannot accept are skipped.
type Loader interface {
	// EnsureSchema creates missing warehouse tables.
	EnsureSchema(ctx context.Context) error

	// Load replaces the content of all four tables with staged data.
	Load(ctx context.Context, st Stager) ([]LoadStats, error)

	Close() error
}

// Pipeline runs the extract, transform and load phases.
type Pipeline interface {
	// RunExtract checks the API, extracts reports and stages them.
	RunExtract(ctx context.Context) error

	// RunTransform normalizes staged raw reports and stages the tables.
	RunTransform(ctx context.Context) error

	// RunLoad loads the staged tables into the warehouse.
	RunLoad(ctx context.Context) error

	// Run executes all phases in order.
	Run(ctx context.Context) error
}
