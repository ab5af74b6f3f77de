package engine

import (
	"runtime"

	"carloansim/types"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// sweep runs the simulator for every valid start date. Scenarios are pure
// functions of the shared series, so they fan out across workers; results
// land in a slot per start date and the later aggregation is a reduction
// over an unordered set, keeping parallel and sequential runs identical.
// Start dates that run out of trailing data are skipped, never fatal.
func sweep(sim *Simulator, opts SweepOptions) []types.ScenarioResult {
	starts := sim.ValidStartDates()
	slots := make([]*types.ScenarioResult, len(starts))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = initProgressBar(len(starts))
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, start := range starts {
		g.Go(func() error {
			if res, err := sim.Run(start); err == nil {
				slots[i] = &res
			}
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	results := make([]types.ScenarioResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
