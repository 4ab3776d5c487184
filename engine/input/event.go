// Package input defines the host-agnostic input vocabulary consumed by camera controls.
// Hosts (a GLFW window, a browser bridge, a touchscreen driver, a test) translate their native
// events into Event values and deliver them through a Surface.
package input

// EventKind identifies the kind of an input event. Surfaces route events to subscribers by kind.
type EventKind int

const (
	EventContextMenu EventKind = iota
	EventMouseDown
	EventMouseMove
	EventMouseUp
	EventWheel
	EventKeyDown
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerOut
	EventPointerLeave
	EventPointerCancel
)

var eventKindNames = [...]string{
	EventContextMenu:   "contextmenu",
	EventMouseDown:     "mousedown",
	EventMouseMove:     "mousemove",
	EventMouseUp:       "mouseup",
	EventWheel:         "wheel",
	EventKeyDown:       "keydown",
	EventTouchStart:    "touchstart",
	EventTouchMove:     "touchmove",
	EventTouchEnd:      "touchend",
	EventPointerDown:   "pointerdown",
	EventPointerMove:   "pointermove",
	EventPointerUp:     "pointerup",
	EventPointerOut:    "pointerout",
	EventPointerLeave:  "pointerleave",
	EventPointerCancel: "pointercancel",
}

// String returns the lower-case DOM-style name of the event kind.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// MouseButton identifies a physical mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// PointerType identifies the device behind a generic pointer event.
type PointerType int

const (
	PointerTypeMouse PointerType = iota
	PointerTypePen
	PointerTypeTouch
)

// Touch is a single contact point of a touch event, in page coordinates.
type Touch struct {
	X, Y float64
}

// Event is a single normalized input event.
// Only the fields relevant to Kind are meaningful; the rest are left at their zero values.
type Event struct {
	// Kind selects which subscribers receive the event.
	Kind EventKind

	// X, Y are the client coordinates of mouse and pointer events.
	X, Y float64

	// Button is the mouse button of EventMouseDown/EventMouseUp.
	Button MouseButton

	// DeltaY is the vertical scroll amount of EventWheel. Positive scrolls down (away from the user).
	DeltaY float64

	// KeyCode is the virtual key code of EventKeyDown (see common key codes).
	KeyCode uint32

	// Touches holds every contact currently on the surface for touch events.
	Touches []Touch

	// PointerID identifies the pointer of pointer events.
	PointerID int

	// PointerType is the device type of pointer events.
	PointerType PointerType

	defaultPrevented  bool
	propagationPaused bool
}

// PreventDefault marks the event so the host skips its default action (scrolling, context menus).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops delivery of the event to subscribers registered after the current one.
func (e *Event) StopPropagation() {
	e.propagationPaused = true
}

// PropagationStopped reports whether a handler called StopPropagation.
func (e *Event) PropagationStopped() bool {
	return e.propagationPaused
}
