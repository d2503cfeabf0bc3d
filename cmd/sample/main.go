package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"loadavg-service/internal/config"
	"loadavg-service/internal/endpoints"
	"loadavg-service/internal/sampler"
)

// sample takes one load average reading with the configured strategy and
// prints it in the same shape GET /loadavg serves.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	strategy := flag.String("strategy", "", "override the sampling strategy")
	flag.Parse()

	if err := takeSample(*configPath, *strategy); err != nil {
		fmt.Fprintln(os.Stderr, "sample:", err)
		os.Exit(1)
	}
}

func takeSample(configPath, strategy string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if strategy != "" {
		cfg.Strategy = strategy
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	s, err := sampler.New(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sample, err := s.Sample(ctx)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(endpoints.ToLoadAvgResponse(sample))
}
