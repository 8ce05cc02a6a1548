//go:build windows

package capture

import (
	"context"
	"os/exec"
	"time"
)

// InteractiveSnip launches the Windows snipping flow and waits for the
// captured image to land in dir. A timeout or user cancellation returns
// ("", nil); the caller must not record a note in that case.
func InteractiveSnip(ctx context.Context, dir string, timeout time.Duration) (string, error) {
	if err := launchSnippingTool(); err != nil {
		return "", err
	}
	return WaitForImage(ctx, dir, timeout)
}

// launchSnippingTool opens the ms-screenclip UI. explorer.exe handles the
// URI on stock installs; "cmd /C start" is the fallback for shells where
// the explorer association is broken.
func launchSnippingTool() error {
	if err := exec.Command("explorer.exe", "ms-screenclip:").Start(); err == nil {
		return nil
	}
	return exec.Command("cmd", "/C", "start", "", "ms-screenclip:").Start()
}
