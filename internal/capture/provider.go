package capture

import (
	"context"

	"github.com/fakeyudi/rapidreporter/internal/monitor"
)

// ScreenshotProvider is the external collaborator that talks to the
// display hardware. Errors from it (no displays, permission denied) must
// surface as capture failures, never crash the session.
type ScreenshotProvider interface {
	// Monitors enumerates the screenshotable displays.
	Monitors(ctx context.Context) ([]monitor.Monitor, error)

	// CaptureMonitor grabs a full frame of the given display and returns
	// the path of the written image file.
	CaptureMonitor(ctx context.Context, id int) (string, error)
}

// Cropper crops an already-captured frame. The rectangle is in
// monitor-local logical units; implementations scale it by the selection's
// device pixel ratio before cutting against the physical-pixel image.
type Cropper interface {
	Crop(ctx context.Context, imagePath string, local monitor.RegionSelection) (string, error)
}
