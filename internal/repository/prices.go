package repository

import (
	"context"
	"fmt"
	"time"

	"carloansim/types"

	"github.com/shopspring/decimal"
)

const dailyClosesQuery = `SELECT date, close FROM sp500_daily_close ORDER BY date ASC`

// DailyCloses reads the full daily close series, sorted ascending by date.
func (s *PostgresStore) DailyCloses(ctx context.Context) (*types.PriceSeries, error) {
	rows, err := s.q.Query(ctx, dailyClosesQuery)
	if err != nil {
		return nil, fmt.Errorf("query daily closes: %w", err)
	}
	defer rows.Close()

	var points []types.PricePoint
	for rows.Next() {
		var date time.Time
		var close decimal.Decimal
		if err := rows.Scan(&date, &close); err != nil {
			return nil, fmt.Errorf("scan daily close: %w", err)
		}
		points = append(points, types.PricePoint{Date: date, Close: close})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoPrices
	}

	series, err := types.NewPriceSeries(points)
	if err != nil {
		return nil, fmt.Errorf("daily closes: %w", err)
	}
	return series, nil
}
