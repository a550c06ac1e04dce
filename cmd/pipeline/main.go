package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/pipeline"
	"github.com/stitts-dev/nfl-fantasy-pipeline/pkg/config"
	"github.com/stitts-dev/nfl-fantasy-pipeline/pkg/logger"
)

func main() {
	v := viper.New()
	fs := pflag.NewFlagSet("pipeline", pflag.ExitOnError)
	if err := config.BindFlags(v, fs); err != nil {
		logrus.Fatalf("Failed to bind flags: %v", err)
	}
	_ = fs.Parse(os.Args[1:])

	// pipeline <data-path> works like --data-path
	if fs.NArg() > 0 && !fs.Changed("data-path") {
		v.Set("DATA_PATH", fs.Arg(0))
	}

	cfg, err := config.LoadConfig(v)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("nfl-fantasy-pipeline").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"data_path":   cfg.DataPath,
		"output_dir":  cfg.OutputDir,
		"positions":   cfg.Positions,
	}).Info("Starting fantasy season pipeline")

	if _, err := os.Stat(cfg.DataPath); err != nil {
		structuredLogger.Fatalf("Data path does not exist: %v", err)
	}

	runner, err := pipeline.NewRunner(cfg, structuredLogger)
	if err != nil {
		structuredLogger.Fatalf("Failed to initialize pipeline: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx)
	if err != nil {
		entry := structuredLogger.WithError(err)
		if report != nil {
			entry = entry.WithField("completed_positions", len(report.Results))
		}
		entry.Error("Pipeline failed")
		stop()
		os.Exit(1)
	}

	for _, res := range report.Results {
		structuredLogger.WithFields(logrus.Fields{
			"position":  res.Position,
			"summaries": res.Summaries,
			"files":     res.Files,
		}).Info("Wrote position tables")
	}
}
