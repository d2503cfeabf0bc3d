//go:build linux

package sampler

import (
	"fmt"

	"golang.org/x/sys/unix"

	"loadavg-service/internal/domain"
)

func readLoadAverages(buf *[3]float64) error {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return fmt.Errorf("%w: sysinfo: %v", domain.ErrPlatformUnsupported, err)
	}

	scale := float64(1 << unix.SI_LOAD_SHIFT)
	for i := range buf {
		buf[i] = float64(info.Loads[i]) / scale
	}
	return nil
}
