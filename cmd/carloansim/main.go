package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"carloansim/internal/chart"
	"carloansim/internal/config"
	"carloansim/internal/engine"
	"carloansim/internal/repository"

	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config file")
		mode       = flag.String("mode", "sweep", "sweep (all start dates) or one (single detailed scenario)")
		start      = flag.String("start", "", "start date YYYY-MM-DD, required for -mode one")
	)
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.String("path", *configPath), zap.Error(err))
	}

	store, closeStore, err := openStore(cfg.Storage)
	if err != nil {
		logger.Fatal("open price store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()

	ctx := context.Background()
	switch *mode {
	case "sweep":
		runSweep(ctx, logger, cfg, store)
	case "one":
		runOne(ctx, logger, cfg, store, *start)
	default:
		logger.Fatal("unknown mode", zap.String("mode", *mode))
	}
}

func runSweep(ctx context.Context, logger *zap.Logger, cfg *config.Config, store engine.PriceStore) {
	eng := engine.NewEngine(store, cfg.Scenario.Engine(), engine.SweepOptions{Progress: true})
	stats, results, err := eng.Run(ctx)
	if err != nil {
		logger.Fatal("run backtest", zap.Error(err))
	}
	fmt.Println()
	engine.PrintReport(stats)

	if len(results) == 0 {
		return
	}
	if err := engine.WriteResultsCSVFile(cfg.Output.ResultsCSV, results); err != nil {
		logger.Fatal("write results csv", zap.Error(err))
	}
	logger.Info("wrote results", zap.String("path", cfg.Output.ResultsCSV), zap.Int("scenarios", len(results)))

	mode := cfg.Scenario.Engine().InvestMode
	img, err := chart.Histogram(engine.Advantages(results, mode), 50, "Loan vs cash advantage by start date")
	if err != nil {
		logger.Fatal("render histogram", zap.Error(err))
	}
	if err := os.WriteFile(cfg.Output.HistogramPNG, img, 0o644); err != nil {
		logger.Fatal("write histogram", zap.Error(err))
	}
	logger.Info("wrote histogram", zap.String("path", cfg.Output.HistogramPNG))
}

func runOne(ctx context.Context, logger *zap.Logger, cfg *config.Config, store engine.PriceStore, start string) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		logger.Fatal("parse -start date", zap.String("start", start), zap.Error(err))
	}

	series, err := store.DailyCloses(ctx)
	if err != nil {
		logger.Fatal("load price series", zap.Error(err))
	}
	logger.Info("loaded price series",
		zap.Int("points", series.Len()),
		zap.Time("first", series.First().Date),
		zap.Time("last", series.Last().Date))

	sim, err := engine.NewSimulator(series, cfg.Scenario.Engine())
	if err != nil {
		logger.Fatal("build simulator", zap.Error(err))
	}
	records, err := sim.RunDetailed(startDate)
	if err != nil {
		logger.Fatal("run scenario", zap.Error(err))
	}

	last := records[len(records)-1]
	fmt.Println("===== Scenario Result =====")
	fmt.Printf("Start Date:            %s\n", records[0].Date.Format("2006-01-02"))
	fmt.Printf("End Date:              %s\n", last.Date.Format("2006-01-02"))
	fmt.Printf("Monthly Payment:       %s\n", sim.MonthlyPayment().StringFixed(2))
	fmt.Printf("Net Worth (cash):      %s\n", last.NetWorthCash.StringFixed(2))
	fmt.Printf("Net Worth (loan):      %s\n", last.NetWorthLoan.StringFixed(2))
	fmt.Printf("Advantage:             %s\n", last.Diff.StringFixed(2))
	fmt.Println("===========================")

	img, err := chart.NetWorthTimeline(records, "Net worth from "+records[0].Date.Format("2006-01-02"))
	if err != nil {
		logger.Fatal("render timeline", zap.Error(err))
	}
	if err := os.WriteFile(cfg.Output.TimelinePNG, img, 0o644); err != nil {
		logger.Fatal("write timeline", zap.Error(err))
	}
	logger.Info("wrote timeline", zap.String("path", cfg.Output.TimelinePNG))
}

func openStore(storage config.Storage) (engine.PriceStore, func(), error) {
	switch storage.Driver {
	case "sqlite":
		store, err := repository.OpenSQLite(storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "postgres":
		store, err := repository.NewPostgresStore(storage.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, errors.New("unknown storage driver " + storage.Driver)
	}
}
