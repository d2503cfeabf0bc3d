package sampler

import (
	"errors"
	"fmt"

	"loadavg-service/internal/config"
	"loadavg-service/internal/domain"
	"loadavg-service/internal/util"
)

var ErrUnknownStrategy = errors.New("unknown sampling strategy")

// New builds the sampler selected by cfg.Strategy. With cfg.Fallback set, the
// placeholder values are served when the host cannot report load averages.
func New(cfg config.Config, logger *util.ServiceLogger) (domain.Sampler, error) {
	placeholder := NewPlaceholder(cfg.Placeholder.Sample())

	var primary domain.Sampler
	switch cfg.Strategy {
	case config.StrategyPlaceholder:
		return placeholder, nil
	case config.StrategySyscall:
		primary = NewSyscall()
	case config.StrategyGopsutil:
		primary = NewGopsutil()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
	}

	if !cfg.Fallback {
		return primary, nil
	}
	return NewFallback(primary, placeholder, logger), nil
}
