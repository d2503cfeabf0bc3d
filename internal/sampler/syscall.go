package sampler

import (
	"context"
	"fmt"

	"loadavg-service/internal/domain"
)

// Syscall reads the load averages straight from the kernel. Each call fills
// its own three slot buffer, so the triple always comes from one query.
type Syscall struct{}

func NewSyscall() *Syscall {
	return &Syscall{}
}

func (s *Syscall) Sample(ctx context.Context) (domain.LoadSample, error) {
	var buf [3]float64
	if err := readLoadAverages(&buf); err != nil {
		return domain.LoadSample{}, err
	}

	sample := domain.FromBuffer(buf)
	if err := sample.Validate(); err != nil {
		return domain.LoadSample{}, fmt.Errorf("syscall sampler: %w", err)
	}
	return sample, nil
}
