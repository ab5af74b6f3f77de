package types

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrEmptySeries      = errors.New("price series is empty")
	ErrUnsortedSeries   = errors.New("price series dates are not sorted ascending")
	ErrDuplicateDate    = errors.New("duplicate date in price series")
	ErrNonPositiveClose = errors.New("non-positive close in price series")
	ErrAfterLastDate    = errors.New("date is after the last trading day in the series")
	ErrBeforeFirstDate  = errors.New("date is before the first trading day in the series")
)

// PricePoint is one daily close of the market index.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// PriceSeries is a date-sorted sequence of daily closes. It is loaded once
// and shared read-only by every simulation, so it is never mutated after
// construction.
type PriceSeries struct {
	points []PricePoint
}

// NewPriceSeries builds a series from points, rejecting empty input,
// non-positive closes, duplicate dates and out-of-order dates.
func NewPriceSeries(points []PricePoint) (*PriceSeries, error) {
	if len(points) == 0 {
		return nil, ErrEmptySeries
	}
	for i, p := range points {
		if !p.Close.IsPositive() {
			return nil, fmt.Errorf("%s: %w", p.Date.Format("2006-01-02"), ErrNonPositiveClose)
		}
		if i == 0 {
			continue
		}
		prev := points[i-1].Date
		if p.Date.Equal(prev) {
			return nil, fmt.Errorf("%s: %w", p.Date.Format("2006-01-02"), ErrDuplicateDate)
		}
		if p.Date.Before(prev) {
			return nil, ErrUnsortedSeries
		}
	}
	return &PriceSeries{points: points}, nil
}

func (s *PriceSeries) Len() int            { return len(s.points) }
func (s *PriceSeries) At(i int) PricePoint { return s.points[i] }
func (s *PriceSeries) First() PricePoint   { return s.points[0] }
func (s *PriceSeries) Last() PricePoint    { return s.points[len(s.points)-1] }

// Dates returns a copy of the trading days, ascending.
func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.points))
	for i, p := range s.points {
		dates[i] = p.Date
	}
	return dates
}

// NextTradingDay returns the first trading day on or after ts.
func (s *PriceSeries) NextTradingDay(ts time.Time) (time.Time, error) {
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Date.Before(ts)
	})
	if i >= len(s.points) {
		return time.Time{}, fmt.Errorf("%s: %w", ts.Format("2006-01-02"), ErrAfterLastDate)
	}
	return s.points[i].Date, nil
}

// CloseOn returns the close for an exact trading day.
func (s *PriceSeries) CloseOn(date time.Time) (decimal.Decimal, bool) {
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Date.Before(date)
	})
	if i < len(s.points) && s.points[i].Date.Equal(date) {
		return s.points[i].Close, true
	}
	return decimal.Zero, false
}

// CloseAt returns the close on date, falling back to the nearest prior
// trading day when date itself has no data point. The fallback is the
// documented missing-data policy: simulations never interpolate, they reuse
// the last known close.
func (s *PriceSeries) CloseAt(date time.Time) (decimal.Decimal, error) {
	i := sort.Search(len(s.points), func(i int) bool {
		return s.points[i].Date.After(date)
	})
	if i == 0 {
		return decimal.Zero, fmt.Errorf("%s: %w", date.Format("2006-01-02"), ErrBeforeFirstDate)
	}
	return s.points[i-1].Close, nil
}
