package sampler

import (
	"context"

	"loadavg-service/internal/domain"
)

// Placeholder returns the same configured sample on every call.
type Placeholder struct {
	sample domain.LoadSample
}

func NewPlaceholder(sample domain.LoadSample) *Placeholder {
	return &Placeholder{sample: sample}
}

func (p *Placeholder) Sample(ctx context.Context) (domain.LoadSample, error) {
	if err := p.sample.Validate(); err != nil {
		return domain.LoadSample{}, err
	}
	return p.sample, nil
}
