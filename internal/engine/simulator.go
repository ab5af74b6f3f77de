package engine

import (
	"errors"
	"fmt"
	"time"

	"carloansim/types"

	"github.com/shopspring/decimal"
)

// ErrInsufficientHistory marks a start date whose loan term would run past
// the end of the available price data. Sweeps skip such dates instead of
// aborting.
var ErrInsufficientHistory = errors.New("price history ends before the loan term completes")

// Simulator runs scenarios against a shared read-only price series. Each run
// owns its portfolios, so runs are independent and safe to execute in
// parallel.
type Simulator struct {
	series     *types.PriceSeries
	cfg        ScenarioConfig
	loanAmount decimal.Decimal
	payment    decimal.Decimal
}

func NewSimulator(series *types.PriceSeries, cfg ScenarioConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	terms := cfg.LoanTerms()
	payment, err := MonthlyPayment(terms.Principal, terms.APR, terms.TermMonths)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		series:     series,
		cfg:        cfg,
		loanAmount: terms.Principal,
		payment:    payment,
	}, nil
}

// MonthlyPayment is the fixed loan payment shared by every scenario.
func (s *Simulator) MonthlyPayment() decimal.Decimal { return s.payment }

// Run simulates one start date and reports the ending balances of the cash
// strategy and both loan deployment variants.
//
// Cash strategy: the car is paid upfront, and when CashInvestMonthly is set
// the loan's monthly payment is invested every month, so both strategies
// have the same total cash outflow by construction.
//
// Loan strategy: the freed-up loan amount is invested at t0 (lump sum or
// weekly DCA) and nothing afterwards, since the monthly cash stream goes to
// loan payments instead.
func (s *Simulator) Run(startDate time.Time) (types.ScenarioResult, error) {
	t0, err := s.series.NextTradingDay(startDate)
	if err != nil {
		return types.ScenarioResult{}, fmt.Errorf("start %s: %w", startDate.Format("2006-01-02"), ErrInsufficientHistory)
	}
	monthly, err := s.monthlyDates(t0)
	if err != nil {
		return types.ScenarioResult{}, err
	}

	cash := newPortfolio()
	if err := cash.advance(s.series, monthly, s.cashSchedule(monthly)); err != nil {
		return types.ScenarioResult{}, err
	}

	lump := newPortfolio()
	lumpSched := buildContributionSchedule(s.series, types.InvestModeLumpSum, s.loanAmount, t0, s.cfg.DCAWeeks)
	if err := lump.advance(s.series, monthly, lumpSched); err != nil {
		return types.ScenarioResult{}, err
	}

	dca := newPortfolio()
	dcaSched := clampSchedule(
		buildContributionSchedule(s.series, types.InvestModeDCAWeekly, s.loanAmount, t0, s.cfg.DCAWeeks),
		monthly[len(monthly)-1])
	axis := mergeDates(monthly, scheduleDates(dcaSched))
	if err := dca.advance(s.series, axis, dcaSched); err != nil {
		return types.ScenarioResult{}, err
	}

	res := types.ScenarioResult{
		StartDate:   t0,
		CashEnd:     cash.Balance(),
		LoanLumpEnd: lump.Balance(),
		LoanDCAEnd:  dca.Balance(),
	}
	res.DiffLump = res.LoanLumpEnd.Sub(res.CashEnd)
	res.DiffDCA = res.LoanDCAEnd.Sub(res.CashEnd)
	return res, nil
}

// RunDetailed simulates one start date month by month, tracking portfolio
// values, the outstanding loan balance and the running net worth of both
// strategies. It returns termMonths+1 records (month 0 included); a window
// that outruns the data is cut short at the last trading day rather than
// failing, so partial histories still chart.
func (s *Simulator) RunDetailed(startDate time.Time) ([]types.MonthRecord, error) {
	t0, err := s.series.NextTradingDay(startDate)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", startDate.Format("2006-01-02"), ErrInsufficientHistory)
	}
	_, schedule, err := Amortize(s.loanAmount, s.cfg.LoanAPR, s.cfg.TermMonths)
	if err != nil {
		return nil, err
	}

	monthly := s.detailedMonthlyDates(t0)
	loanSched := clampSchedule(
		buildContributionSchedule(s.series, s.cfg.InvestMode, s.loanAmount, t0, s.cfg.DCAWeeks),
		monthly[len(monthly)-1])
	axis := mergeDates(monthly, scheduleDates(loanSched))

	cash := newPortfolio()
	loan := newPortfolio()
	records := make([]types.MonthRecord, 0, len(monthly))

	si := 0
	monthIdx := 0
	var prevClose decimal.Decimal
	for i, d := range axis {
		close, err := s.series.CloseAt(d)
		if err != nil {
			return nil, err
		}
		factor := one
		if i > 0 {
			factor = close.Div(prevClose)
		}

		loanContrib := decimal.Zero
		for si < len(loanSched) && !loanSched[si].date.After(d) {
			loanContrib = loanContrib.Add(loanSched[si].amount)
			si++
		}
		loan.GrowAndContribute(factor, loanContrib)

		isMonthly := monthIdx < len(monthly) && monthly[monthIdx].Equal(d)
		cashContrib := decimal.Zero
		if isMonthly && monthIdx > 0 && s.cfg.CashInvestMonthly {
			cashContrib = s.payment
		}
		cash.GrowAndContribute(factor, cashContrib)

		if isMonthly {
			balance := s.loanAmount
			switch {
			case monthIdx == 0:
			case monthIdx <= len(schedule):
				balance = schedule[monthIdx-1].Balance
			default:
				balance = decimal.Zero
			}
			nwCash := cash.Balance()
			nwLoan := loan.Balance().Sub(balance)
			records = append(records, types.MonthRecord{
				Date:          d,
				Month:         monthIdx,
				PortfolioCash: cash.Balance(),
				PortfolioLoan: loan.Balance(),
				LoanBalance:   balance,
				NetWorthCash:  nwCash,
				NetWorthLoan:  nwLoan,
				Diff:          nwLoan.Sub(nwCash),
			})
			monthIdx++
		}
		prevClose = close
	}
	return records, nil
}

// ValidStartDates lists every series date from which a full term of history
// remains.
func (s *Simulator) ValidStartDates() []time.Time {
	threshold := addMonths(s.series.Last().Date, -s.cfg.TermMonths)
	var out []time.Time
	for _, d := range s.series.Dates() {
		if d.After(threshold) {
			break
		}
		out = append(out, d)
	}
	return out
}

// monthlyDates maps t0 and each of the term's month marks to trading days.
// The window must fit entirely inside the series.
func (s *Simulator) monthlyDates(t0 time.Time) ([]time.Time, error) {
	dates := make([]time.Time, 0, s.cfg.TermMonths+1)
	dates = append(dates, t0)
	for m := 1; m <= s.cfg.TermMonths; m++ {
		d, err := s.series.NextTradingDay(addMonths(t0, m))
		if err != nil {
			return nil, fmt.Errorf("month %d from %s: %w", m, t0.Format("2006-01-02"), ErrInsufficientHistory)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// detailedMonthlyDates is the tolerant variant used by RunDetailed: when a
// month mark falls past the data it pins the last trading day and stops.
func (s *Simulator) detailedMonthlyDates(t0 time.Time) []time.Time {
	dates := make([]time.Time, 0, s.cfg.TermMonths+1)
	dates = append(dates, t0)
	for m := 1; m <= s.cfg.TermMonths; m++ {
		d, err := s.series.NextTradingDay(addMonths(t0, m))
		if err != nil {
			last := s.series.Last().Date
			if !last.Equal(dates[len(dates)-1]) {
				dates = append(dates, last)
			}
			break
		}
		dates = append(dates, d)
	}
	return dates
}

func (s *Simulator) cashSchedule(monthly []time.Time) []contribution {
	if !s.cfg.CashInvestMonthly {
		return nil
	}
	sched := make([]contribution, 0, len(monthly)-1)
	for _, d := range monthly[1:] {
		sched = append(sched, contribution{date: d, amount: s.payment})
	}
	return sched
}
