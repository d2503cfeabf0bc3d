package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	ErrPlatformUnsupported = errors.New("load average is not available on this platform")
	ErrInvalidSample       = errors.New("load average sample is not a finite non-negative number")
)

// LoadSample holds the 1, 5 and 15 minute load averages taken from a single
// sampling call. Values are never mixed across calls.
type LoadSample struct {
	Last   float64
	Last5  float64
	Last15 float64
}

func NewLoadSample(last, last5, last15 float64) LoadSample {
	return LoadSample{Last: last, Last5: last5, Last15: last15}
}

// FromBuffer copies slot 0, 1 and 2 into Last, Last5 and Last15.
func FromBuffer(buf [3]float64) LoadSample {
	return LoadSample{Last: buf[0], Last5: buf[1], Last15: buf[2]}
}

func (s LoadSample) Validate() error {
	for i, v := range [3]float64{s.Last, s.Last5, s.Last15} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: slot %d = %v", ErrInvalidSample, i, v)
		}
	}
	return nil
}

type Sampler interface {
	Sample(ctx context.Context) (LoadSample, error)
}
