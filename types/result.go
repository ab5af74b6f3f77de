package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScenarioResult holds the ending balances of one backtested scenario. Both
// loan variants are computed per start date so the lump-sum/DCA comparison
// comes for free. Immutable once produced.
type ScenarioResult struct {
	StartDate   time.Time       `json:"startDate"`
	CashEnd     decimal.Decimal `json:"nwCashEnd"`
	LoanLumpEnd decimal.Decimal `json:"nwLoanLumpEnd"`
	LoanDCAEnd  decimal.Decimal `json:"nwLoanDcaWeeklyEnd"`
	DiffLump    decimal.Decimal `json:"diffLoanLump"`
	DiffDCA     decimal.Decimal `json:"diffLoanDcaWeekly"`
}

// Advantage is the ending-balance edge of the loan strategy over the cash
// strategy for the given invest mode.
func (r ScenarioResult) Advantage(mode InvestMode) decimal.Decimal {
	if mode == InvestModeDCAWeekly {
		return r.DiffDCA
	}
	return r.DiffLump
}

// MonthRecord is one month of a detailed single-scenario run, including the
// outstanding loan balance and the per-month net worth of both strategies.
type MonthRecord struct {
	Date          time.Time       `json:"date"`
	Month         int             `json:"month"`
	PortfolioCash decimal.Decimal `json:"portfolioCash"`
	PortfolioLoan decimal.Decimal `json:"portfolioLoan"`
	LoanBalance   decimal.Decimal `json:"balanceLoan"`
	NetWorthCash  decimal.Decimal `json:"networthCash"`
	NetWorthLoan  decimal.Decimal `json:"networthLoan"`
	Diff          decimal.Decimal `json:"diff"`
}

// SummaryStats is the outcome distribution of one sweep for one invest mode.
// A sweep over a series shorter than the loan term yields Count == 0 with
// zero-valued stats rather than an error.
type SummaryStats struct {
	Count   int             `json:"count"`
	WinRate decimal.Decimal `json:"winRate"`
	Mean    decimal.Decimal `json:"mean"`
	Median  decimal.Decimal `json:"median"`
	Std     decimal.Decimal `json:"std"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	P5      decimal.Decimal `json:"percentile5"`
	P25     decimal.Decimal `json:"percentile25"`
	P75     decimal.Decimal `json:"percentile75"`
	P95     decimal.Decimal `json:"percentile95"`

	// Scenarios achieving Min and Max.
	Worst *ScenarioResult `json:"worst,omitempty"`
	Best  *ScenarioResult `json:"best,omitempty"`
}

// ComparisonStats puts the two loan deployment variants side by side.
type ComparisonStats struct {
	LumpSum          SummaryStats    `json:"lumpSum"`
	DCAWeekly        SummaryStats    `json:"dcaWeekly"`
	LumpBeatsDCARate decimal.Decimal `json:"lumpBeatsDcaRate"`
}
