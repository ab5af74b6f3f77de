package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"carloansim/types"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/shopspring/decimal"
)

// SQLiteStore reads the provisioned daily close database file, the same
// sp500_daily_close table the Postgres store serves.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database file at path. A missing file is a data
// error up front rather than a failure on the first query.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DailyCloses reads the full daily close series, sorted ascending by date.
func (s *SQLiteStore) DailyCloses(ctx context.Context) (*types.PriceSeries, error) {
	rows, err := s.db.QueryContext(ctx, dailyClosesQuery)
	if err != nil {
		return nil, fmt.Errorf("query daily closes: %w", err)
	}
	defer rows.Close()

	var points []types.PricePoint
	for rows.Next() {
		var dateStr string
		var close float64
		if err := rows.Scan(&dateStr, &close); err != nil {
			return nil, fmt.Errorf("scan daily close: %w", err)
		}
		date, err := parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		points = append(points, types.PricePoint{Date: date, Close: decimal.NewFromFloat(close)})
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

// parseDate accepts the date column either as a plain day or with a time
// suffix, since sqlite stores whatever string the provisioning step wrote.
func parseDate(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return date, nil
}
