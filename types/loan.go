package types

import "github.com/shopspring/decimal"

// LoanTerms describes a fixed-rate loan.
type LoanTerms struct {
	Principal  decimal.Decimal `json:"principal"`
	APR        decimal.Decimal `json:"apr"`
	TermMonths int             `json:"termMonths"`
}

// AmortizationEntry is one month of an amortization schedule. Entries are
// generated once per LoanTerms and immutable afterwards.
type AmortizationEntry struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}
