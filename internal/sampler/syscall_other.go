//go:build !linux

package sampler

import (
	"fmt"
	"runtime"

	"loadavg-service/internal/domain"
)

func readLoadAverages(buf *[3]float64) error {
	return fmt.Errorf("%w: no sysinfo on %s", domain.ErrPlatformUnsupported, runtime.GOOS)
}
