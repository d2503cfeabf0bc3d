package endpoints

import (
	"errors"

	"loadavg-service/internal/domain"
)

const (
	API_SUCCESS = iota + 303000 // 303000
	API_FAILURE                 // 303001 - Generic API failure
)

const (
	PLATFORM_UNSUPPORTED = iota + 201 // 201 - Host exposes no load average facility
	INVALID_SAMPLE                    // 202 - Host returned a NaN, infinite or negative load average
)

var ErrInternal = errors.New("internal server error")

func GetErrorCode(err error) int {
	if err == nil {
		return API_SUCCESS
	}

	switch {
	case errors.Is(err, domain.ErrPlatformUnsupported):
		return PLATFORM_UNSUPPORTED
	case errors.Is(err, domain.ErrInvalidSample):
		return INVALID_SAMPLE
	default:
		return API_FAILURE
	}
}

// PublicError reduces err to the sentinel that is safe to show a client.
func PublicError(err error) error {
	switch GetErrorCode(err) {
	case PLATFORM_UNSUPPORTED:
		return domain.ErrPlatformUnsupported
	case INVALID_SAMPLE:
		return domain.ErrInvalidSample
	default:
		return ErrInternal
	}
}
