package engine

import (
	"errors"

	"carloansim/types"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCarPrice    = errors.New("car price must be positive")
	ErrInvalidDownPayment = errors.New("down payment must be non-negative and below the car price")
	ErrInvalidInvestMode  = errors.New("unknown invest mode")
	ErrInvalidDCAWeeks    = errors.New("dca weeks must be positive")
)

// ScenarioConfig is the immutable parameter set shared by every scenario in
// a sweep. It is validated once at sweep start; an invalid configuration
// aborts the whole sweep since it would invalidate every scenario alike.
type ScenarioConfig struct {
	CarPrice          decimal.Decimal
	DownPayment       decimal.Decimal
	LoanAPR           decimal.Decimal
	TermMonths        int
	CashInvestMonthly bool
	InvestMode        types.InvestMode
	DCAWeeks          int
}

func (c ScenarioConfig) Validate() error {
	if !c.CarPrice.IsPositive() {
		return ErrInvalidCarPrice
	}
	if c.DownPayment.IsNegative() || c.DownPayment.GreaterThanOrEqual(c.CarPrice) {
		return ErrInvalidDownPayment
	}
	if c.LoanAPR.IsNegative() {
		return ErrNegativeAPR
	}
	if c.TermMonths <= 0 {
		return ErrInvalidTerm
	}
	if !c.InvestMode.Valid() {
		return ErrInvalidInvestMode
	}
	// The sweep always computes the DCA variant alongside the lump sum.
	if c.DCAWeeks <= 0 {
		return ErrInvalidDCAWeeks
	}
	return nil
}

// LoanTerms derives the loan backing the scenario: the financed amount is
// the car price minus the down payment.
func (c ScenarioConfig) LoanTerms() types.LoanTerms {
	return types.LoanTerms{
		Principal:  c.CarPrice.Sub(c.DownPayment),
		APR:        c.LoanAPR,
		TermMonths: c.TermMonths,
	}
}

// SweepOptions tune sweep execution without affecting its result.
type SweepOptions struct {
	Workers  int  // parallel scenario workers, 0 means GOMAXPROCS
	Progress bool // render a progress bar on stdout
}
