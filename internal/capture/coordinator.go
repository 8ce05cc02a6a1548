package capture

import (
	"context"

	"github.com/fakeyudi/rapidreporter/internal/monitor"
	"github.com/fakeyudi/rapidreporter/internal/session"
)

// State is the coordinator's position in the region-capture protocol.
type State int

const (
	// Idle: no capture in flight.
	Idle State = iota
	// AwaitingSelection: the overlay is up, waiting for the user.
	AwaitingSelection
	// Cropping: a selection was submitted; the crop pipeline is running
	// and can no longer be cancelled.
	Cropping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingSelection:
		return "awaiting-selection"
	case Cropping:
		return "cropping"
	}
	return "unknown"
}

// Coordinator is the main actor of the region-capture protocol. It owns
// the Session mutation and walks Idle → AwaitingSelection → Cropping →
// Idle for each capture attempt. The state field is the sole re-entrancy
// guard: all methods must be called from the single goroutine that owns
// the session.
type Coordinator struct {
	sess     *session.Session
	provider ScreenshotProvider
	cropper  Cropper

	state  State
	cancel context.CancelFunc
}

// NewCoordinator wires the protocol's collaborators together.
func NewCoordinator(sess *session.Session, provider ScreenshotProvider, cropper Cropper) *Coordinator {
	return &Coordinator{sess: sess, provider: provider, cropper: cropper}
}

// State reports the coordinator's current protocol state.
func (c *Coordinator) State() State {
	return c.state
}

// BeginRegionCapture runs one full capture attempt against the given
// overlay: wait for a selection, resolve the owning monitor, grab its
// frame, crop, and append a screenshot note. It returns the appended note,
// or nil when the user cancelled.
//
// Any failure leaves the session unmodified and the coordinator back at
// Idle, so the user can simply retry. Returns ErrBusy when a capture is
// already in flight.
func (c *Coordinator) BeginRegionCapture(ctx context.Context, overlay Overlay) (*session.Note, error) {
	if c.state != Idle {
		return nil, ErrBusy
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	defer func() {
		cancel()
		c.cancel = nil
		c.state = Idle
	}()

	c.state = AwaitingSelection
	msg, err := overlay.Select(ctx)
	if err != nil {
		// Context cancelled while waiting: treated like an overlay close,
		// not a failure.
		return nil, nil
	}
	if msg.Kind == Cancelled {
		return nil, nil
	}

	// Once a selection is submitted the pipeline runs to completion or
	// failure; cancellation no longer applies.
	c.state = Cropping
	path, err := c.capture(context.WithoutCancel(ctx), msg.Selection)
	if err != nil {
		return nil, err
	}

	note, err := c.sess.AddNote(session.NoteScreenshot, path)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// CancelRegionCapture aborts a pending selection. A capture that already
// passed submission keeps running.
func (c *Coordinator) CancelRegionCapture() {
	if c.state == AwaitingSelection && c.cancel != nil {
		c.cancel()
	}
}

// capture turns a submitted global-coordinate selection into a cropped
// image file.
func (c *Coordinator) capture(ctx context.Context, sel monitor.RegionSelection) (string, error) {
	monitors, err := c.provider.Monitors(ctx)
	if err != nil {
		return "", &Error{Step: "enumerate", Err: err}
	}

	res, err := monitor.Resolve(sel, monitors)
	if err != nil {
		return "", &Error{Step: "resolve", Err: err}
	}

	framePath, err := c.provider.CaptureMonitor(ctx, res.Monitor.ID)
	if err != nil {
		return "", &Error{Step: "grab", Err: err}
	}

	cropped, err := c.cropper.Crop(ctx, framePath, res.ToLocal(sel))
	if err != nil {
		return "", &Error{Step: "crop", Err: err}
	}
	return cropped, nil
}
