package input

// HubOption is a functional option for configuring a Hub.
type HubOption func(*Hub)

// WithSize sets the client area size reported by the hub.
//
// Parameters:
//   - width, height: client area dimensions in pixels
//
// Returns:
//   - HubOption: option function to apply
func WithSize(width, height int) HubOption {
	return func(h *Hub) {
		h.width = width
		h.height = height
	}
}

// WithTouch declares whether the host delivers native multi-touch events.
//
// Parameters:
//   - supported: true if touch events are delivered natively
//
// Returns:
//   - HubOption: option function to apply
func WithTouch(supported bool) HubOption {
	return func(h *Hub) {
		h.touch = supported
	}
}
