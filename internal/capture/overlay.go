package capture

import (
	"context"

	"github.com/fakeyudi/rapidreporter/internal/monitor"
)

// MessageKind discriminates the two signals an overlay can send back.
type MessageKind int

const (
	// Selected carries a submitted selection rectangle.
	Selected MessageKind = iota
	// Cancelled signals the user closed the overlay (Escape) without
	// selecting anything.
	Cancelled
)

// Message is one signal from the selection overlay to the main actor.
// Selection is only meaningful when Kind is Selected.
type Message struct {
	Kind      MessageKind
	Selection monitor.RegionSelection
}

// Overlay is the selection surface collaborator. Select blocks until the
// user submits a rectangle or cancels; the window chrome itself lives
// outside this package.
type Overlay interface {
	Select(ctx context.Context) (Message, error)
}

// ChannelOverlay adapts a message channel to the Overlay interface. The
// overlay surface pushes exactly one Message per capture attempt; Select
// consumes it.
type ChannelOverlay struct {
	Messages chan Message
}

// NewChannelOverlay returns a ChannelOverlay with a buffered channel so an
// overlay surface can submit without blocking on the consumer.
func NewChannelOverlay() *ChannelOverlay {
	return &ChannelOverlay{Messages: make(chan Message, 1)}
}

// Submit sends a selection into the channel.
func (o *ChannelOverlay) Submit(sel monitor.RegionSelection) {
	o.Messages <- Message{Kind: Selected, Selection: sel}
}

// Cancel sends a cancellation into the channel.
func (o *ChannelOverlay) Cancel() {
	o.Messages <- Message{Kind: Cancelled}
}

// Select waits for the overlay's message or for the context to end.
func (o *ChannelOverlay) Select(ctx context.Context) (Message, error) {
	select {
	case msg := <-o.Messages:
		return msg, nil
	case <-ctx.Done():
		return Message{Kind: Cancelled}, ctx.Err()
	}
}
