package capture

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/fakeyudi/rapidreporter/internal/monitor"
)

// DisplayProvider is the production ScreenshotProvider, backed by the OS
// display APIs. Captured frames are written as PNG files under Dir.
type DisplayProvider struct {
	Dir string // frame output directory; falls back to the OS temp dir
}

// NewDisplayProvider returns a provider writing frames into dir. An empty
// dir selects <tmp>/rapidreporter.
func NewDisplayProvider(dir string) *DisplayProvider {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "rapidreporter")
	}
	return &DisplayProvider{Dir: dir}
}

// Monitors enumerates the active displays in OS order. Display index
// doubles as the monitor ID, which is what CaptureMonitor expects back.
func (p *DisplayProvider) Monitors(ctx context.Context) ([]monitor.Monitor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, monitor.ErrNoMonitors
	}

	monitors := make([]monitor.Monitor, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		monitors = append(monitors, monitor.Monitor{
			ID:     i,
			X:      b.Min.X,
			Y:      b.Min.Y,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
	}
	return monitors, nil
}

// CaptureMonitor grabs a full frame of display id and writes it to a
// timestamped PNG file.
func (p *DisplayProvider) CaptureMonitor(ctx context.Context, id int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := screenshot.CaptureDisplay(id)
	if err != nil {
		// The display APIs report a denied screen-recording entitlement
		// the same way as any other failure; keep the error chain intact
		// so the UI can still show the OS message.
		return "", fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(p.Dir, fmt.Sprintf("screenshot-%d.png", time.Now().UnixMilli()))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
