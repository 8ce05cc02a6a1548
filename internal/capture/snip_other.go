//go:build !windows

package capture

import (
	"context"
	"time"
)

// InteractiveSnip is only implemented on Windows, where the OS ships an
// interactive snipping flow. Other platforms use the in-app region
// overlay instead.
func InteractiveSnip(ctx context.Context, dir string, timeout time.Duration) (string, error) {
	return "", ErrSnipUnsupported
}
