package engine

import (
	"math"
	"testing"
	"time"

	"carloansim/types"

	"github.com/shopspring/decimal"
)

// buildSeries makes a weekday-only series of `days` trading days starting at
// start, with closes produced by fn(i).
func buildSeries(t *testing.T, start time.Time, days int, fn func(i int) decimal.Decimal) *types.PriceSeries {
	t.Helper()
	points := make([]types.PricePoint, 0, days)
	d := start
	for i := 0; i < days; {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			points = append(points, types.PricePoint{Date: d, Close: fn(i)})
			i++
		}
		d = d.AddDate(0, 0, 1)
	}
	series, err := types.NewPriceSeries(points)
	if err != nil {
		t.Fatalf("building series: %v", err)
	}
	return series
}

func flatSeries(t *testing.T, start time.Time, days int, price int64) *types.PriceSeries {
	t.Helper()
	close := decimal.NewFromInt(price)
	return buildSeries(t, start, days, func(int) decimal.Decimal { return close })
}

func risingSeries(t *testing.T, start time.Time, days int, dailyGrowth float64) *types.PriceSeries {
	t.Helper()
	return buildSeries(t, start, days, func(i int) decimal.Decimal {
		return decimal.NewFromFloat(100 * math.Pow(1+dailyGrowth, float64(i)))
	})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func decimalsClose(a, b decimal.Decimal, tol float64) bool {
	return a.Sub(b).Abs().LessThanOrEqual(decimal.NewFromFloat(tol))
}
