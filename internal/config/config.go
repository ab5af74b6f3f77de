package config

import (
	"errors"

	"carloansim/internal/engine"
	"carloansim/types"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Storage  Storage  `mapstructure:"storage"`
	Scenario Scenario `mapstructure:"scenario"`
	Output   Output   `mapstructure:"output"`
}

type Storage struct {
	Driver      string `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresURL string `mapstructure:"postgres_url"`
}

type Scenario struct {
	CarPrice          float64 `mapstructure:"car_price"`
	DownPayment       float64 `mapstructure:"down_payment"`
	LoanAPR           float64 `mapstructure:"loan_apr"`
	TermMonths        int     `mapstructure:"term_months"`
	CashInvestMonthly bool    `mapstructure:"cash_invest_monthly_payment"`
	InvestMode        string  `mapstructure:"invest_mode"`
	DCAWeeks          int     `mapstructure:"dca_weeks"`
}

type Output struct {
	ResultsCSV   string `mapstructure:"results_csv"`
	HistogramPNG string `mapstructure:"histogram_png"`
	TimelinePNG  string `mapstructure:"timeline_png"`
}

const (
	DefaultDCAWeeks   = 52
	DefaultInvestMode = "lump_sum"
	DefaultDriver     = "sqlite"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"storage.driver":       DefaultDriver,
		"scenario.invest_mode": DefaultInvestMode,
		"scenario.dca_weeks":   DefaultDCAWeeks,
		"output.results_csv":   "backtest_results.csv",
		"output.histogram_png": "advantage_histogram.png",
		"output.timeline_png":  "networth_timeline.png",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	switch cfg.Storage.Driver {
	case "sqlite":
		if cfg.Storage.SQLitePath == "" {
			return errors.New("missing sqlite_path in configuration")
		}
	case "postgres":
		if cfg.Storage.PostgresURL == "" {
			return errors.New("missing postgres_url in configuration")
		}
	default:
		return errors.New("storage driver must be sqlite or postgres")
	}
	if cfg.Scenario.CarPrice <= 0 {
		return errors.New("invalid car_price")
	}
	if cfg.Scenario.DownPayment < 0 || cfg.Scenario.DownPayment >= cfg.Scenario.CarPrice {
		return errors.New("invalid down_payment")
	}
	if cfg.Scenario.LoanAPR < 0 {
		return errors.New("invalid loan_apr")
	}
	if cfg.Scenario.TermMonths <= 0 {
		return errors.New("invalid term_months")
	}
	if _, ok := types.ConvertInvestMode[cfg.Scenario.InvestMode]; !ok {
		return errors.New("invest_mode must be lump_sum or dca_weekly")
	}
	if cfg.Scenario.DCAWeeks <= 0 {
		return errors.New("invalid dca_weeks")
	}
	return nil
}

// Engine converts the file scenario into the engine's decimal-typed config.
func (s Scenario) Engine() engine.ScenarioConfig {
	return engine.ScenarioConfig{
		CarPrice:          decimal.NewFromFloat(s.CarPrice),
		DownPayment:       decimal.NewFromFloat(s.DownPayment),
		LoanAPR:           decimal.NewFromFloat(s.LoanAPR),
		TermMonths:        s.TermMonths,
		CashInvestMonthly: s.CashInvestMonthly,
		InvestMode:        types.ConvertInvestMode[s.InvestMode],
		DCAWeeks:          s.DCAWeeks,
	}
}
