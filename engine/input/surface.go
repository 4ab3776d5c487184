package input

// Handler receives events delivered by a Surface.
type Handler func(e *Event)

// Subscription identifies a single registered handler. The zero value never identifies a live handler.
type Subscription uint64

// Surface is the capability interface an input host exposes to camera controls.
// Any host (desktop window, web canvas bridge, embedded touchscreen) can supply one.
type Surface interface {
	// Subscribe registers a handler for one event kind.
	// Handlers for the same kind are invoked in registration order.
	//
	// Parameters:
	//   - kind: the event kind to listen for
	//   - handler: the function invoked for each matching event
	//
	// Returns:
	//   - Subscription: handle used to remove the handler
	Subscribe(kind EventKind, handler Handler) Subscription

	// Unsubscribe removes a previously registered handler.
	// Unknown, zero, or already removed subscriptions are ignored.
	//
	// Parameters:
	//   - sub: the subscription returned by Subscribe
	Unsubscribe(sub Subscription)

	// Size returns the client area size in pixels.
	//
	// Returns:
	//   - width, height: client area dimensions
	Size() (width, height int)

	// SupportsTouch reports whether the host delivers native multi-touch events.
	// Hosts without native touch deliver touch contacts as individual pointer events instead.
	//
	// Returns:
	//   - bool: true if EventTouchStart/Move/End are delivered natively
	SupportsTouch() bool
}
