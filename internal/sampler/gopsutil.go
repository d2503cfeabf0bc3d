package sampler

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/shirou/gopsutil/v3/load"

	"loadavg-service/internal/domain"
)

// Gopsutil queries the host through gopsutil, which knows how to read load
// averages on Linux, Darwin, the BSDs and Windows.
type Gopsutil struct {
	avg func(ctx context.Context) (*load.AvgStat, error)
}

func NewGopsutil() *Gopsutil {
	return &Gopsutil{avg: load.AvgWithContext}
}

func (g *Gopsutil) Sample(ctx context.Context) (sample domain.LoadSample, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			sample = domain.LoadSample{}
			err = fmt.Errorf("%w: panic in gopsutil sampler: %v\nStack: %s", domain.ErrPlatformUnsupported, panicErr, debug.Stack())
		}
	}()

	stat, err := g.avg(ctx)
	if err != nil {
		return domain.LoadSample{}, fmt.Errorf("%w: %v", domain.ErrPlatformUnsupported, err)
	}
	if stat == nil {
		return domain.LoadSample{}, fmt.Errorf("%w: empty load statistics", domain.ErrPlatformUnsupported)
	}

	sample = domain.FromBuffer([3]float64{stat.Load1, stat.Load5, stat.Load15})
	if err := sample.Validate(); err != nil {
		return domain.LoadSample{}, fmt.Errorf("gopsutil sampler: %w", err)
	}
	return sample, nil
}
