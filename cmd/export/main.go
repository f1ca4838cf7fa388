// Command export runs one dashboard pass and writes the analytics table as CSV.
//
//	go run ./cmd/export -pair ETH-USD -days 7 -sampling 5min -out eth.csv
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"crypto_dashboard/internal/app/di"
	"crypto_dashboard/internal/feature/analytics/domain/entity"
	analyticsusecase "crypto_dashboard/internal/feature/analytics/usecase"
	candle "crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/platform/config"
	"crypto_dashboard/internal/platform/logger"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
		pair       = flag.String("pair", "BTC-USD", "trading pair")
		days       = flag.Int("days", 1, "lookback window in days (1, 3, 7 or 30)")
		sampling   = flag.String("sampling", "raw", "raw, 1min or 5min")
		threshold  = flag.Float64("threshold", entity.DefaultThreshold, "z-score alert threshold")
		out        = flag.String("out", "", "output file (stdout when empty)")
	)
	flag.Parse()

	if err := run(*configPath, *pair, *days, *sampling, *threshold, *out); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, pair string, days int, sampling string, threshold float64, out string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// stdout may carry the CSV, so logs go to stderr
	logger.InitTo(os.Stderr, "crypto-dashboard-export", cfg.SlogLevel(), cfg.Log.Format)

	g, err := candle.ParseGranularity(sampling)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg.Metrics.Enabled = false
	app, err := di.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	table, err := app.Dashboard.Export(ctx, entity.Query{Pair: pair, Days: days, Sampling: g, Threshold: threshold})
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := analyticsusecase.WriteCSV(bw, table); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	slog.Info("export ok", "pair", pair, "rows", len(table.Rows), "out", out)
	return nil
}
