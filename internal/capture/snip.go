package capture

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSnipTimeout bounds how long the OS-native snipping fallback waits
// for the user to finish (or give up on) the capture.
const DefaultSnipTimeout = 45 * time.Second

// WaitForImage watches dir until a new image file appears, the timeout
// elapses, or ctx ends. It returns the new file's path, or "" with a nil
// error on timeout/cancellation — walking away from the snipping tool is a
// no-op, not a failure.
func WaitForImage(ctx context.Context, dir string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultSnipTimeout
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return "", err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return "", err
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return "", nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !isImagePath(ev.Name) {
				continue
			}
			if waitUntilStable(ctx, ev.Name) {
				return ev.Name, nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return "", nil
			}
			return "", err
		case <-deadline.C:
			return "", nil
		case <-ctx.Done():
			return "", nil
		}
	}
}

func isImagePath(path string) bool {
	switch strings.ToLower(pathExt(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func pathExt(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

// waitUntilStable waits for the file's size to stop changing, so a capture
// still being flushed by the snipping tool isn't handed off half-written.
// Reports false if the file never settles within its own small budget.
func waitUntilStable(ctx context.Context, path string) bool {
	var lastSize int64 = -1
	for i := 0; i < 20; i++ {
		info, err := os.Stat(path)
		if err == nil && info.Size() > 0 && info.Size() == lastSize {
			return true
		}
		if err == nil {
			lastSize = info.Size()
		}
		select {
		case <-time.After(100 * time.Millisecond):
		case <-ctx.Done():
			return false
		}
	}
	return false
}
