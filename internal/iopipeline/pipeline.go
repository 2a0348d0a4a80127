// Package iopipeline drives the extract, transform and load phases.
// Phases run strictly one after another, every phase reads what the
// previous one staged.
package iopipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/faersetl/faersetl/internal/ioextract"
	"github.com/faersetl/faersetl/internal/ioload"
	"github.com/faersetl/faersetl/internal/iostage"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/normalize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

// LoaderFunc creates a connected warehouse loader.
type LoaderFunc func(context.Context, *config.Config) (etl.Loader, error)

type pipeline struct {
	cfg        *config.Config
	runID      string
	log        *slog.Logger
	extractor  etl.Extractor
	normalizer etl.Normalizer
	stager     etl.Stager
	newLoader  LoaderFunc

	bar *pb.ProgressBar
}

// Option modifies the pipeline created by New.
type Option func(*pipeline)

// WithExtractor replaces the openFDA extractor.
func WithExtractor(e etl.Extractor) Option {
	return func(p *pipeline) {
		p.extractor = e
	}
}

// WithStager replaces the stager built from the stage config.
func WithStager(st etl.Stager) Option {
	return func(p *pipeline) {
		p.stager = st
	}
}

// WithLoader replaces the function that connects to the warehouse.
func WithLoader(fn LoaderFunc) Option {
	return func(p *pipeline) {
		p.newLoader = fn
	}
}

// New creates a Pipeline. Every pipeline gets its own run id, which is
// attached to its log records.
func New(cfg *config.Config, opts ...Option) etl.Pipeline {
	runID := uuid.NewString()
	res := &pipeline{
		cfg:        cfg,
		runID:      runID,
		log:        slog.Default().With("run_id", runID),
		normalizer: normalize.New(),
		newLoader:  ioload.New,
	}
	res.extractor = ioextract.New(cfg.Extract, ioextract.WithPageHook(res.onPage))
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Run implements etl.Pipeline.
func (p *pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.log.Info("Starting pipeline run")

	phases := []struct {
		name string
		run  func(context.Context) error
	}{
		{"extract", p.RunExtract},
		{"transform", p.RunTransform},
		{"load", p.RunLoad},
	}
	for _, v := range phases {
		if err := ctx.Err(); err != nil {
			return CancelledError(v.name, err)
		}
		if err := v.run(ctx); err != nil {
			p.log.Error("Pipeline run failed", "phase", v.name, "error", err)
			return err
		}
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	p.log.Info("Pipeline run complete", "duration", dur)
	gn.Info("Pipeline run complete. Elapsed time: <em>%s</em>", dur)
	return nil
}

// RunExtract implements etl.Pipeline.
func (p *pipeline) RunExtract(ctx context.Context) error {
	st, err := p.stage(ctx)
	if err != nil {
		return err
	}

	gn.Info("(1/5) Checking openFDA API...")
	if err = p.extractor.Ping(ctx); err != nil {
		return err
	}

	cfg := p.cfg.Extract
	gn.Info("(2/5) Extracting up to <em>%s</em> reports...",
		humanize.Comma(int64(cfg.TargetCount)))
	p.startBar(cfg.TargetCount)
	raws, err := p.extractor.Extract(ctx, cfg.Search, cfg.PageSize, cfg.TargetCount)
	p.finishBar()
	if err != nil {
		return err
	}
	p.log.Info("Reports extracted", "records", len(raws), "search", cfg.Search)

	if err = st.StageRaw(ctx, raws); err != nil {
		return err
	}
	gn.Message("<em>Staged %s raw reports</em>", humanize.Comma(int64(len(raws))))
	return nil
}

// RunTransform implements etl.Pipeline.
func (p *pipeline) RunTransform(ctx context.Context) error {
	st, err := p.stage(ctx)
	if err != nil {
		return err
	}

	gn.Info("(3/5) Normalizing raw reports...")
	raws, err := st.LoadRaw(ctx)
	if err != nil {
		return err
	}
	b, err := p.normalizer.Normalize(raws)
	if err != nil {
		return err
	}
	p.log.Info("Reports normalized",
		"reports", len(b.Reports),
		"patients", len(b.Patients),
		"symptoms", len(b.Symptoms),
		"drugs", len(b.Drugs),
	)

	gn.Info("(4/5) Staging tables...")
	if err = st.StageBatch(ctx, b); err != nil {
		return err
	}
	gn.Message(
		"<em>Staged %s reports, %s symptoms, %s suspect drugs</em>",
		humanize.Comma(int64(len(b.Reports))),
		humanize.Comma(int64(len(b.Symptoms))),
		humanize.Comma(int64(len(b.Drugs))),
	)
	return nil
}

// RunLoad implements etl.Pipeline.
func (p *pipeline) RunLoad(ctx context.Context) error {
	st, err := p.stage(ctx)
	if err != nil {
		return err
	}

	gn.Info("(5/5) Loading warehouse...")
	l, err := p.newLoader(ctx, p.cfg)
	if err != nil {
		return err
	}
	defer l.Close()

	if err = l.EnsureSchema(ctx); err != nil {
		return err
	}
	stats, err := l.Load(ctx, st)
	if err != nil {
		return err
	}

	var skipped int
	for _, v := range stats {
		skipped += v.Skipped
		gn.Message("<em>%s</em>: loaded %s rows, skipped %s",
			v.Table,
			humanize.Comma(int64(v.Loaded)),
			humanize.Comma(int64(v.Skipped)),
		)
	}
	if skipped > 0 {
		p.log.Warn("Some rows were not loaded", "skipped", skipped)
	}
	return nil
}

func (p *pipeline) stage(ctx context.Context) (etl.Stager, error) {
	if p.stager != nil {
		return p.stager, nil
	}
	store, err := iostage.New(ctx, p.cfg)
	if err != nil {
		return nil, err
	}
	p.stager = iostage.NewStager(store, p.cfg.Stage)
	return p.stager, nil
}

func (p *pipeline) startBar(total int) {
	p.bar = pb.Full.Start(total)
	p.bar.Set("prefix", "Fetching reports: ")
	p.bar.Set(pb.CleanOnFinish, true)
}

func (p *pipeline) onPage(fetched int) {
	if p.bar != nil {
		p.bar.SetCurrent(int64(fetched))
	}
}

func (p *pipeline) finishBar() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
