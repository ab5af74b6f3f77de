package engine

import (
	"context"

	"carloansim/types"
)

// PriceStore supplies the daily close series from some read-only storage.
type PriceStore interface {
	DailyCloses(ctx context.Context) (*types.PriceSeries, error)
}

type Engine struct {
	store  PriceStore
	cfg    ScenarioConfig
	opts   SweepOptions
	series *types.PriceSeries
}

func NewEngine(store PriceStore, cfg ScenarioConfig, opts SweepOptions) *Engine {
	return &Engine{
		store: store,
		cfg:   cfg,
		opts:  opts,
	}
}

// Run loads the data, sweeps every valid start date and aggregates the
// outcome distribution. A series shorter than one loan term produces an
// empty (Count == 0) summary, not an error.
func (e *Engine) Run(ctx context.Context) (*types.ComparisonStats, []types.ScenarioResult, error) {
	if err := e.loadData(ctx); err != nil {
		return nil, nil, err
	}
	sim, err := NewSimulator(e.series, e.cfg)
	if err != nil {
		return nil, nil, err
	}
	results := sweep(sim, e.opts)
	stats := ComputeComparisonStats(results)
	return &stats, results, nil
}

func (e *Engine) loadData(ctx context.Context) error {
	series, err := e.store.DailyCloses(ctx)
	if err != nil {
		return err
	}
	e.series = series
	return nil
}
