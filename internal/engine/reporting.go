package engine

import (
	"fmt"
	"math"
	"sort"

	"carloansim/types"

	"github.com/shopspring/decimal"
)

// ComputeSummaryStats aggregates the advantage distribution of one invest
// mode across scenario results. Every statistic is a commutative reduction,
// so the result does not depend on the order results were collected in.
func ComputeSummaryStats(results []types.ScenarioResult, mode types.InvestMode) types.SummaryStats {
	stats := types.SummaryStats{Count: len(results)}
	if len(results) == 0 {
		return stats
	}

	diffs := make([]decimal.Decimal, len(results))
	sum := decimal.Zero
	wins := 0
	bestIdx, worstIdx := 0, 0
	for i, r := range results {
		d := r.Advantage(mode)
		diffs[i] = d
		sum = sum.Add(d)
		if d.IsPositive() {
			wins++
		}
		if i == 0 || d.GreaterThan(diffs[bestIdx]) {
			bestIdx = i
		}
		if i == 0 || d.LessThan(diffs[worstIdx]) {
			worstIdx = i
		}
	}

	n := decimal.NewFromInt(int64(len(results)))
	stats.WinRate = decimal.NewFromInt(int64(wins)).Div(n)
	stats.Mean = sum.Div(n)
	stats.Std = sampleStd(diffs)

	sorted := append([]decimal.Decimal(nil), diffs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	stats.Median = percentile(sorted, 50)
	stats.P5 = percentile(sorted, 5)
	stats.P25 = percentile(sorted, 25)
	stats.P75 = percentile(sorted, 75)
	stats.P95 = percentile(sorted, 95)

	best, worst := results[bestIdx], results[worstIdx]
	stats.Best = &best
	stats.Worst = &worst
	return stats
}

// ComputeComparisonStats summarizes both loan deployment variants plus how
// often the lump sum beats the weekly DCA on the same window.
func ComputeComparisonStats(results []types.ScenarioResult) types.ComparisonStats {
	stats := types.ComparisonStats{
		LumpSum:   ComputeSummaryStats(results, types.InvestModeLumpSum),
		DCAWeekly: ComputeSummaryStats(results, types.InvestModeDCAWeekly),
	}
	if len(results) == 0 {
		return stats
	}
	beats := 0
	for _, r := range results {
		if r.DiffLump.GreaterThan(r.DiffDCA) {
			beats++
		}
	}
	stats.LumpBeatsDCARate = decimal.NewFromInt(int64(beats)).Div(decimal.NewFromInt(int64(len(results))))
	return stats
}

// WorstScenarios returns the n scenarios with the lowest advantage for the
// given mode, worst first.
func WorstScenarios(results []types.ScenarioResult, n int, mode types.InvestMode) []types.ScenarioResult {
	sorted := append([]types.ScenarioResult(nil), results...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Advantage(mode).LessThan(sorted[j].Advantage(mode))
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Advantages extracts the per-scenario advantage for one mode, e.g. to feed
// a histogram.
func Advantages(results []types.ScenarioResult, mode types.InvestMode) []decimal.Decimal {
	out := make([]decimal.Decimal, len(results))
	for i, r := range results {
		out[i] = r.Advantage(mode)
	}
	return out
}

// percentile interpolates linearly between the two nearest ranks of an
// ascending slice, the conventional linear-interpolation definition. The
// rank is computed in decimal so exact inputs give exact outputs.
func percentile(sorted []decimal.Decimal, p int64) decimal.Decimal {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := decimal.NewFromInt(p).
		Mul(decimal.NewFromInt(int64(len(sorted) - 1))).
		Div(decimal.NewFromInt(100))
	lo := rank.IntPart()
	frac := rank.Sub(decimal.NewFromInt(lo))
	if frac.IsZero() {
		return sorted[lo]
	}
	return sorted[lo].Add(sorted[lo+1].Sub(sorted[lo]).Mul(frac))
}

// sampleStd is the n-1 denominator standard deviation, in float math since
// decimal gains nothing on a dispersion estimate.
func sampleStd(diffs []decimal.Decimal) decimal.Decimal {
	if len(diffs) < 2 {
		return decimal.Zero
	}
	var sum float64
	vals := make([]float64, len(diffs))
	for i, d := range diffs {
		vals[i] = d.InexactFloat64()
		sum += vals[i]
	}
	mean := sum / float64(len(vals))
	var varianceSum float64
	for _, v := range vals {
		diff := v - mean
		varianceSum += diff * diff
	}
	return decimal.NewFromFloat(math.Sqrt(varianceSum / float64(len(vals)-1)))
}

// PrintReport writes the sweep summary in a console block.
func PrintReport(stats *types.ComparisonStats) {
	fmt.Println("===== Backtest Report =====")
	printSummaryBlock("Loan + lump sum vs cash", stats.LumpSum)
	printSummaryBlock("Loan + weekly DCA vs cash", stats.DCAWeekly)
	fmt.Println("\n-- Head to Head --")
	fmt.Printf("Lump beats DCA rate:   %s\n", stats.LumpBeatsDCARate)
	fmt.Println("===========================")
}

func printSummaryBlock(title string, s types.SummaryStats) {
	fmt.Printf("\n-- %s --\n", title)
	fmt.Printf("Scenarios:             %d\n", s.Count)
	if s.Count == 0 {
		fmt.Println("No valid start dates: series is shorter than one loan term")
		return
	}
	fmt.Printf("Win Rate:              %s\n", s.WinRate)
	fmt.Printf("Mean Advantage:        %s\n", s.Mean.StringFixed(2))
	fmt.Printf("Median Advantage:      %s\n", s.Median.StringFixed(2))
	fmt.Printf("Std Dev:               %s\n", s.Std.StringFixed(2))
	fmt.Printf("Min / Max:             %s / %s\n", s.Min.StringFixed(2), s.Max.StringFixed(2))
	fmt.Printf("P5 / P25 / P75 / P95:  %s / %s / %s / %s\n",
		s.P5.StringFixed(2), s.P25.StringFixed(2), s.P75.StringFixed(2), s.P95.StringFixed(2))
	if s.Worst != nil {
		fmt.Printf("Worst Start:           %s\n", s.Worst.StartDate.Format("2006-01-02"))
	}
	if s.Best != nil {
		fmt.Printf("Best Start:            %s\n", s.Best.StartDate.Format("2006-01-02"))
	}
}
