package chart

import (
	"errors"
	"fmt"
	"math"

	"carloansim/types"

	"github.com/shopspring/decimal"
	charts "github.com/vicanso/go-charts/v2"
)

var ErrNoData = errors.New("no data to chart")

// Histogram renders the advantage distribution as a PNG bar chart.
func Histogram(diffs []decimal.Decimal, bins int, title string) ([]byte, error) {
	if len(diffs) == 0 {
		return nil, ErrNoData
	}
	if bins <= 0 {
		bins = 50
	}

	min, max := diffs[0].InexactFloat64(), diffs[0].InexactFloat64()
	vals := make([]float64, len(diffs))
	for i, d := range diffs {
		v := d.InexactFloat64()
		vals[i] = v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		// Degenerate distribution, one bucket holds everything.
		bins = 1
	}

	width := (max - min) / float64(bins)
	counts := make([]float64, bins)
	labels := make([]string, bins)
	for _, v := range vals {
		b := bins - 1
		if width > 0 {
			b = int(math.Floor((v - min) / width))
			if b >= bins {
				b = bins - 1
			}
		}
		counts[b]++
	}
	for b := range labels {
		labels[b] = fmt.Sprintf("%.0f", min+width*(float64(b)+0.5))
	}

	painter, err := charts.BarRender([][]float64{counts},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, SplitNumber: 10}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// NetWorthTimeline renders the month-by-month net worth of both strategies
// for one detailed scenario run.
func NetWorthTimeline(records []types.MonthRecord, title string) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	cash := make([]float64, len(records))
	loan := make([]float64, len(records))
	labels := make([]string, len(records))
	for i, r := range records {
		cash[i] = r.NetWorthCash.InexactFloat64()
		loan[i] = r.NetWorthLoan.InexactFloat64()
		labels[i] = r.Date.Format("2006-01")
	}

	painter, err := charts.LineRender([][]float64{cash, loan},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{"cash + invest", "loan + invest"}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
