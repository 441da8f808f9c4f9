// cmd/inboxgen/main.go
package main

import (
	"os"
	"sort"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"inboxgen/internal/common/config"
	"inboxgen/internal/common/logger"
	"inboxgen/internal/common/metrics"
	"inboxgen/internal/generator"
	"inboxgen/internal/sink"
)

const sampleFiles = 8

func main() {
	flags := pflag.NewFlagSet("inboxgen", pflag.ExitOnError)
	configFile := flags.String("config", "", "path to a YAML config file")
	flags.String("output-dir", "./inbox", "destination directory for the generated files")
	flags.String("start-date", "2025-10-01", "first batch date (YYYY-MM-DD)")
	flags.Int("num-days", 10, "number of daily batches to generate")
	flags.Int("num-merchants", 50, "size of the merchant pool")
	flags.Int("apps-per-day", 120, "applications generated per day before noise")
	flags.Float64("disb-rate", 0.55, "fraction of approved applications disbursed")
	flags.Int("pays-per-disb", 5, "payments per disbursement")
	flags.Int("no-header-every-n-days", 3, "header-omission period (0 disables)")
	flags.Float64("duplicate-rate", 0.03, "per-file duplicate row probability")
	flags.Float64("invalid-rate", 0.01, "per-file malformed row probability")
	flags.Float64("broken-ref-rate", 0.01, "per-row broken reference probability")
	flags.Float64("late-arrival-rate", 0.08, "backdated event probability")
	flags.Int64("seed", 42, "random source seed")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags, *configFile)
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	startDate, err := cfg.BatchStartDate()
	if err != nil {
		zapLog.Fatal("invalid start_date", zap.String("start_date", cfg.StartDate), zap.Error(err))
	}

	fileSink, err := sink.NewFileSink(cfg.OutputDir)
	if err != nil {
		zapLog.Fatal("output directory unavailable", zap.Error(err))
	}

	run := metrics.NewRun()
	gen := generator.New(generator.Config{
		StartDate:        startDate,
		NumDays:          cfg.NumDays,
		NumMerchants:     cfg.NumMerchants,
		AppsPerDay:       cfg.AppsPerDay,
		DisbRate:         cfg.DisbRate,
		PaysPerDisb:      cfg.PaysPerDisb,
		HeaderOmitPeriod: cfg.NoHeaderEveryNDays,
		DuplicateRate:    cfg.DuplicateRate,
		InvalidRate:      cfg.InvalidRate,
		BrokenRefRate:    cfg.BrokenRefRate,
		LateArrivalRate:  cfg.LateArrivalRate,
		Seed:             cfg.Seed,
	}, fileSink, log, run)

	if err := gen.Run(); err != nil {
		zapLog.Fatal("generation failed", zap.Error(err))
	}

	files := fileSink.Files()
	sort.Strings(files)
	sample := files
	if len(sample) > sampleFiles {
		sample = sample[:sampleFiles]
	}

	snap := run.Snapshot()
	zapLog.Info("generation complete",
		zap.String("outputDir", cfg.OutputDir),
		zap.Int("days", cfg.NumDays),
		zap.Int("files", len(files)),
		zap.Strings("sample", sample),
		zap.Any("rows", snap.Rows),
		zap.Any("defects", snap.Defects),
	)
}
