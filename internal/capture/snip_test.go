package capture_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fakeyudi/rapidreporter/internal/capture"
)

func TestWaitForImageReturnsNewFile(t *testing.T) {
	dir := t.TempDir()

	got := make(chan string, 1)
	errc := make(chan error, 1)
	go func() {
		path, err := capture.WaitForImage(context.Background(), dir, 5*time.Second)
		got <- path
		errc <- err
	}()

	// Give the watcher a moment to attach, then drop a decoy and the
	// actual capture.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write decoy: %v", err)
	}
	want := filepath.Join(dir, "snip.png")
	if err := os.WriteFile(want, []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write capture: %v", err)
	}

	select {
	case path := <-got:
		if err := <-errc; err != nil {
			t.Fatalf("WaitForImage: %v", err)
		}
		if path != want {
			t.Errorf("path: got %q, want %q", path, want)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("WaitForImage did not return")
	}
}

func TestWaitForImageTimeoutIsNoOp(t *testing.T) {
	path, err := capture.WaitForImage(context.Background(), t.TempDir(), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if path != "" {
		t.Errorf("timeout must return no path, got %q", path)
	}
}

func TestWaitForImageHonoursContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	path, err := capture.WaitForImage(ctx, t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("cancellation must not be an error, got %v", err)
	}
	if path != "" {
		t.Errorf("cancellation must return no path, got %q", path)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("cancellation took far too long to unblock")
	}
}
