package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"loadavg-service/internal/config"
	"loadavg-service/internal/router"
	"loadavg-service/internal/sampler"
	"loadavg-service/internal/util"
)

func LoggerInitialize(cfg config.Config) (*util.ServiceLogger, error) {

	level, err := util.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	util.SetLoggerPath(cfg.LogDir)
	if err := util.CheckAndCreateLogFolder(cfg.LogDir); err != nil {
		return nil, err
	}
	util.SetCommonLoggerAttributes(level, cfg.LogToStderr)

	serviceLogger := &util.ServiceLogger{}
	if err := serviceLogger.Init(cfg.LogFile, false); err != nil {
		return nil, err
	}

	serviceLogger.LogEvent(util.LOG_LEVEL_INFO, "Service started with strategy", cfg.Strategy, "fallback", cfg.Fallback)

	currentTime := time.Now().Format(time.RFC3339)
	fmt.Fprintf(os.Stderr, "\n%s: LoadAvg service started \n", currentTime)

	return serviceLogger, nil
}

func run(configPath string) (err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := LoggerInitialize(cfg)
	if err != nil {
		return fmt.Errorf("error while initializing the logger: %w", err)
	}
	defer func() {
		err = multierr.Append(err, logger.DeInit())
	}()

	loadSampler, err := sampler.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return router.Run(ctx, cfg, loadSampler, logger)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "loadavg:", err)
		os.Exit(1)
	}
}
