package engine

import (
	"errors"

	"carloansim/types"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrincipal = errors.New("loan principal must be positive")
	ErrInvalidTerm      = errors.New("loan term must be a positive number of months")
	ErrNegativeAPR      = errors.New("loan apr cannot be negative")
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// MonthlyPayment returns the fixed payment for a loan using the standard
// amortization formula M = P*r*(1+r)^n / ((1+r)^n - 1) with r = apr/12.
// A zero-rate loan simply divides the principal over the term.
func MonthlyPayment(principal, apr decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if err := validateLoan(principal, apr, termMonths); err != nil {
		return decimal.Zero, err
	}
	n := decimal.NewFromInt(int64(termMonths))
	if apr.IsZero() {
		return principal.Div(n), nil
	}
	r := apr.Div(twelve)
	compound := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(compound).Div(compound.Sub(one)), nil
}

// Amortize produces the fixed monthly payment and the full schedule. The
// final month settles the exact remaining balance, so its payment differs
// from the fixed one by the accumulated rounding. The balance strictly
// decreases and ends clamped at zero.
func Amortize(principal, apr decimal.Decimal, termMonths int) (decimal.Decimal, []types.AmortizationEntry, error) {
	payment, err := MonthlyPayment(principal, apr, termMonths)
	if err != nil {
		return decimal.Zero, nil, err
	}
	r := decimal.Zero
	if !apr.IsZero() {
		r = apr.Div(twelve)
	}

	schedule := make([]types.AmortizationEntry, 0, termMonths)
	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := balance.Mul(r)
		principalPart := payment.Sub(interest)
		actual := payment
		if month == termMonths {
			principalPart = balance
			actual = interest.Add(principalPart)
		}
		balance = balance.Sub(principalPart)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		schedule = append(schedule, types.AmortizationEntry{
			Month:     month,
			Payment:   actual,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})
	}
	return payment, schedule, nil
}

func validateLoan(principal, apr decimal.Decimal, termMonths int) error {
	if !principal.IsPositive() {
		return ErrInvalidPrincipal
	}
	if termMonths <= 0 {
		return ErrInvalidTerm
	}
	if apr.IsNegative() {
		return ErrNegativeAPR
	}
	return nil
}
