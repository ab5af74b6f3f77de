package config

import (
	"os"
	"path/filepath"
	"testing"

	"carloansim/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const validConfig = `
storage:
  driver: sqlite
  sqlite_path: sp500_daily_close.db
scenario:
  car_price: 30000
  down_payment: 6000
  loan_apr: 0.06
  term_months: 60
  cash_invest_monthly_payment: true
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "sp500_daily_close.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 30000.0, cfg.Scenario.CarPrice)
	assert.Equal(t, 6000.0, cfg.Scenario.DownPayment)
	assert.Equal(t, 60, cfg.Scenario.TermMonths)
	assert.True(t, cfg.Scenario.CashInvestMonthly)

	// Defaults fill the gaps.
	assert.Equal(t, DefaultInvestMode, cfg.Scenario.InvestMode)
	assert.Equal(t, DefaultDCAWeeks, cfg.Scenario.DCAWeeks)
	assert.Equal(t, "backtest_results.csv", cfg.Output.ResultsCSV)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			"unknown driver",
			`
storage:
  driver: redis
scenario:
  car_price: 30000
  down_payment: 6000
  loan_apr: 0.06
  term_months: 60
`,
		},
		{
			"sqlite without path",
			`
storage:
  driver: sqlite
  sqlite_path: ""
scenario:
  car_price: 30000
  down_payment: 6000
  loan_apr: 0.06
  term_months: 60
`,
		},
		{
			"postgres without url",
			`
storage:
  driver: postgres
scenario:
  car_price: 30000
  down_payment: 6000
  loan_apr: 0.06
  term_months: 60
`,
		},
		{
			"zero car price",
			`
storage:
  driver: sqlite
  sqlite_path: db.db
scenario:
  car_price: 0
  down_payment: 0
  loan_apr: 0.06
  term_months: 60
`,
		},
		{
			"down payment exceeds price",
			`
storage:
  driver: sqlite
  sqlite_path: db.db
scenario:
  car_price: 30000
  down_payment: 30000
  loan_apr: 0.06
  term_months: 60
`,
		},
		{
			"negative apr",
			`
storage:
  driver: sqlite
  sqlite_path: db.db
scenario:
  car_price: 30000
  down_payment: 6000
  loan_apr: -0.01
  term_months: 60
`,
		},
		{
			"zero term",
			`
storage:
  driver: sqlite
  sqlite_path: db.db
scenario:
  car_price: 30000
  down_payment: 6000
  loan_apr: 0.06
  term_months: 0
`,
		},
		{
			"bad invest mode",
			`
storage:
  driver: sqlite
  sqlite_path: db.db
scenario:
  car_price: 30000
  down_payment: 6000
  loan_apr: 0.06
  term_months: 60
  invest_mode: weekly
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestScenario_Engine(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	sc := cfg.Scenario.Engine()
	assert.True(t, sc.CarPrice.Equal(decimal.NewFromInt(30000)))
	assert.True(t, sc.DownPayment.Equal(decimal.NewFromInt(6000)))
	assert.True(t, sc.LoanAPR.Equal(decimal.NewFromFloat(0.06)))
	assert.Equal(t, types.InvestModeLumpSum, sc.InvestMode)
	assert.Equal(t, 52, sc.DCAWeeks)
	require.NoError(t, sc.Validate())
}
