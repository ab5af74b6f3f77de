package engine

import (
	"testing"
	"time"

	"carloansim/types"

	"github.com/shopspring/decimal"
)

func TestPortfolio_GrowAndContribute(t *testing.T) {
	p := newPortfolio()

	got := p.GrowAndContribute(one, decimal.NewFromInt(1000))
	if !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("balance after seed = %s, want 1000", got)
	}

	// 10% growth, then a 100 top-up.
	got = p.GrowAndContribute(decimal.NewFromFloat(1.1), decimal.NewFromInt(100))
	if !got.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("balance = %s, want 1200", got)
	}
	if !p.Contributed().Equal(decimal.NewFromInt(1100)) {
		t.Errorf("contributed = %s, want 1100", p.Contributed())
	}
}

func TestBuildContributionSchedule_LumpSum(t *testing.T) {
	series := flatSeries(t, day(2020, time.January, 6), 100, 100)
	total := decimal.NewFromInt(24000)

	sched := buildContributionSchedule(series, types.InvestModeLumpSum, total, day(2020, time.January, 6), 52)
	if len(sched) != 1 {
		t.Fatalf("schedule length = %d, want 1", len(sched))
	}
	if !sched[0].amount.Equal(total) {
		t.Errorf("installment = %s, want %s", sched[0].amount, total)
	}
	if !sched[0].date.Equal(day(2020, time.January, 6)) {
		t.Errorf("installment date = %s, want t0", sched[0].date)
	}
}

func TestBuildContributionSchedule_DCASumsToTotal(t *testing.T) {
	series := flatSeries(t, day(2020, time.January, 6), 600, 100)

	tests := []struct {
		name  string
		total decimal.Decimal
		weeks int
	}{
		{"standard year", decimal.NewFromInt(24000), 52},
		{"non-divisible total", decimal.NewFromInt(1000), 7},
		{"single installment", decimal.NewFromInt(500), 1},
		{"many weeks", decimal.NewFromFloat(9999.99), 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := buildContributionSchedule(series, types.InvestModeDCAWeekly, tt.total, day(2020, time.January, 6), tt.weeks)
			if len(sched) != tt.weeks {
				t.Fatalf("schedule length = %d, want %d", len(sched), tt.weeks)
			}
			sum := decimal.Zero
			for _, c := range sched {
				sum = sum.Add(c.amount)
			}
			if !sum.Equal(tt.total) {
				t.Errorf("installments sum = %s, want exactly %s", sum, tt.total)
			}
		})
	}
}

func TestBuildContributionSchedule_DCATruncatedByDataEnd(t *testing.T) {
	// 20 trading days is exactly 4 weeks of coverage.
	series := flatSeries(t, day(2020, time.January, 6), 20, 100)

	sched := buildContributionSchedule(series, types.InvestModeDCAWeekly, decimal.NewFromInt(5200), day(2020, time.January, 6), 52)
	if len(sched) >= 52 {
		t.Fatalf("schedule length = %d, want truncation below 52", len(sched))
	}
	if len(sched) == 0 {
		t.Fatal("schedule empty, want at least the first installment")
	}
	// Dropped installments mean the sum falls short of the total.
	sum := decimal.Zero
	for _, c := range sched {
		sum = sum.Add(c.amount)
	}
	if !sum.LessThan(decimal.NewFromInt(5200)) {
		t.Errorf("installments sum = %s, want less than total after truncation", sum)
	}
}

func TestPortfolio_AdvanceAppliesGrowthBetweenDates(t *testing.T) {
	// Closes double between the two axis dates.
	points := []types.PricePoint{
		{Date: day(2020, time.January, 6), Close: decimal.NewFromInt(100)},
		{Date: day(2020, time.January, 7), Close: decimal.NewFromInt(200)},
	}
	series, err := types.NewPriceSeries(points)
	if err != nil {
		t.Fatalf("NewPriceSeries() error = %v", err)
	}

	p := newPortfolio()
	axis := []time.Time{day(2020, time.January, 6), day(2020, time.January, 7)}
	sched := []contribution{{date: day(2020, time.January, 6), amount: decimal.NewFromInt(1000)}}
	if err := p.advance(series, axis, sched); err != nil {
		t.Fatalf("advance() error = %v", err)
	}
	if !p.Balance().Equal(decimal.NewFromInt(2000)) {
		t.Errorf("balance = %s, want 2000", p.Balance())
	}
}
