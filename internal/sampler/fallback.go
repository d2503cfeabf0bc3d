package sampler

import (
	"context"
	"errors"

	"loadavg-service/internal/domain"
	"loadavg-service/internal/util"
)

// Fallback serves the secondary sampler whenever the primary reports that the
// platform has no load average. Any other error is returned unchanged.
type Fallback struct {
	primary   domain.Sampler
	secondary domain.Sampler
	logger    *util.ServiceLogger
}

func NewFallback(primary, secondary domain.Sampler, logger *util.ServiceLogger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, logger: logger}
}

func (f *Fallback) Sample(ctx context.Context) (domain.LoadSample, error) {
	sample, err := f.primary.Sample(ctx)
	if err == nil {
		return sample, nil
	}
	if !errors.Is(err, domain.ErrPlatformUnsupported) {
		return domain.LoadSample{}, err
	}

	f.logger.LogEvent(util.LOG_LEVEL_WARN, "Serving placeholder load average. Err -", err)
	return f.secondary.Sample(ctx)
}
