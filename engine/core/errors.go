package core

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadFailure indicates a missing or corrupt asset. Always fatal
	// during setup; there is no partial-material fallback.
	ErrLoadFailure = errors.New("asset load failure")
	// ErrResourceExhaustion indicates an undersized descriptor or memory
	// pool. A sizing bug, not a recoverable condition.
	ErrResourceExhaustion = errors.New("resource pool exhausted")
	ErrSwapchainBooting   = errors.New("swapchain resized or recreated, booting")
	ErrUnknown            = errors.New("unknown")
)

// LoadFailure wraps ErrLoadFailure with the path that failed to load.
func LoadFailure(path string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFailure, path, cause)
	}
	return fmt.Errorf("%w: %s", ErrLoadFailure, path)
}
