package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied indicates the OS refused screen-recording access.
	ErrPermissionDenied = errors.New("screen capture permission denied")

	// ErrBusy is returned when a region capture is requested while another
	// one is still in flight.
	ErrBusy = errors.New("a region capture is already in progress")

	// ErrSnipUnsupported is returned by the OS-native snipping fallback on
	// platforms that do not provide one.
	ErrSnipUnsupported = errors.New("OS-native snipping is only available on Windows")
)

// Error wraps a failure from one step of the capture pipeline so the UI can
// tell the user what exactly went wrong.
type Error struct {
	Step string // "enumerate", "resolve", "grab", "crop"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture failed during %s: %v", e.Step, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
