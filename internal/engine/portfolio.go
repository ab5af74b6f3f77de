package engine

import (
	"time"

	"carloansim/types"

	"github.com/shopspring/decimal"
)

// portfolio models one strategy's invested balance. Each period the balance
// grows by the close-to-close factor and then receives that period's
// contribution, if any. A portfolio lives for a single simulation run.
type portfolio struct {
	balance     decimal.Decimal
	contributed decimal.Decimal
}

func newPortfolio() *portfolio {
	return &portfolio{}
}

// GrowAndContribute applies one period: balance = balance*factor + contribution.
func (p *portfolio) GrowAndContribute(factor, contribution decimal.Decimal) decimal.Decimal {
	p.balance = p.balance.Mul(factor).Add(contribution)
	p.contributed = p.contributed.Add(contribution)
	return p.balance
}

func (p *portfolio) Balance() decimal.Decimal     { return p.balance }
func (p *portfolio) Contributed() decimal.Decimal { return p.contributed }

// advance walks the portfolio over an ascending date axis. axis[0] anchors
// the first growth factor (factor 1); every later step grows by the ratio of
// closes between consecutive axis dates. Scheduled contributions land on the
// first axis date at or after their own date.
func (p *portfolio) advance(series *types.PriceSeries, axis []time.Time, sched []contribution) error {
	si := 0
	var prevClose decimal.Decimal
	for i, d := range axis {
		close, err := series.CloseAt(d)
		if err != nil {
			return err
		}
		factor := one
		if i > 0 {
			factor = close.Div(prevClose)
		}
		contrib := decimal.Zero
		for si < len(sched) && !sched[si].date.After(d) {
			contrib = contrib.Add(sched[si].amount)
			si++
		}
		p.GrowAndContribute(factor, contrib)
		prevClose = close
	}
	return nil
}

// contribution is one scheduled installment.
type contribution struct {
	date   time.Time
	amount decimal.Decimal
}

// clampSchedule drops installments scheduled after the window end so every
// strategy is valued on the same closing date.
func clampSchedule(sched []contribution, end time.Time) []contribution {
	for i, c := range sched {
		if c.date.After(end) {
			return sched[:i]
		}
	}
	return sched
}

func scheduleDates(sched []contribution) []time.Time {
	dates := make([]time.Time, len(sched))
	for i, c := range sched {
		dates[i] = c.date
	}
	return dates
}

// buildContributionSchedule spreads total over trading days according to the
// invest mode. Lump sum is a single installment at t0. DCA divides total
// evenly across weekly installments starting at t0; the last planned
// installment absorbs the division remainder so the installments sum to
// total exactly. Installments whose trading day would fall past the end of
// the series are dropped, as the data simply is not there to invest into.
func buildContributionSchedule(series *types.PriceSeries, mode types.InvestMode, total decimal.Decimal, t0 time.Time, dcaWeeks int) []contribution {
	if mode == types.InvestModeLumpSum {
		return []contribution{{date: t0, amount: total}}
	}

	installment := total.Div(decimal.NewFromInt(int64(dcaWeeks)))
	sched := make([]contribution, 0, dcaWeeks)
	for week := 0; week < dcaWeeks; week++ {
		date, err := series.NextTradingDay(t0.AddDate(0, 0, 7*week))
		if err != nil {
			break
		}
		amount := installment
		if week == dcaWeeks-1 {
			amount = total.Sub(installment.Mul(decimal.NewFromInt(int64(dcaWeeks - 1))))
		}
		sched = append(sched, contribution{date: date, amount: amount})
	}
	return sched
}
