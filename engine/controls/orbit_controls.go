// Package controls converts pointer, touch, wheel, and keyboard input into orbit, dolly, and pan
// transforms of a camera around a fixed target.
//
// Orbit - left mouse / one finger drag
// Zoom  - middle mouse drag, mouse wheel / two finger pinch
// Pan   - right mouse drag, arrow keys / three finger drag
//
// The controller keeps the camera's up direction fixed. Input handlers only accumulate deltas;
// the host's animation scheduler applies them by calling Update once per frame.
package controls

import "github.com/go-gl/mathgl/mgl64"

// Camera is the camera-like object driven by the controller.
// A camera must also implement PerspectiveProjection or OrthographicProjection for dolly and pan to work.
type Camera interface {
	// Position returns the camera's world-space position.
	Position() mgl64.Vec3

	// SetPosition moves the camera without changing its orientation.
	SetPosition(p mgl64.Vec3)

	// Up returns the camera's up vector. The controller orbits around this axis.
	Up() mgl64.Vec3

	// Orientation returns the camera's world-space rotation (camera looks down local -Z).
	Orientation() mgl64.Quat

	// LookAt rotates the camera to face target.
	LookAt(target mgl64.Vec3)

	// Zoom returns the projection zoom factor.
	Zoom() float64

	// SetZoom sets the projection zoom factor.
	SetZoom(zoom float64)
}

// PerspectiveProjection is implemented by cameras with a vertical field of view.
type PerspectiveProjection interface {
	// Fov returns the vertical field of view in radians.
	Fov() float64
}

// OrthographicProjection is implemented by cameras with an axis-aligned view volume.
type OrthographicProjection interface {
	// Frustum returns the unzoomed view volume extents.
	Frustum() (left, right, top, bottom float64)
}

// OrbitControls defines the interface of the orbit camera controller.
type OrbitControls interface {
	// Update advances one tick: applies accumulated rotation, dolly, and pan to the camera,
	// decays or clears the rotation deltas, and emits a change notification if the camera moved.
	// Call once per frame from the host's animation scheduler.
	//
	// Returns:
	//   - bool: true if the view changed beyond the change epsilon
	Update() bool

	// Reset restores the target, camera position, and zoom captured at construction,
	// clears all pending deltas, and returns the gesture state to idle.
	Reset()

	// Dispose removes every listener the controller registered on its input surface,
	// including listeners scoped to an in-flight mouse gesture. Calling Dispose again is a no-op.
	Dispose()

	// PolarAngle returns the current polar angle φ in radians, measured from the up axis.
	//
	// Returns:
	//   - float64: polar angle in radians
	PolarAngle() float64

	// AzimuthalAngle returns the current azimuthal angle θ in radians around the up axis.
	//
	// Returns:
	//   - float64: azimuthal angle in radians
	AzimuthalAngle() float64

	// SphericalRadius returns the current distance from the camera to the target.
	//
	// Returns:
	//   - float64: orbit radius
	SphericalRadius() float64

	// SetSphericalRadius forces the orbit radius through a one-shot scale factor and applies it immediately.
	// The result is still clamped to the distance bounds.
	//
	// Parameters:
	//   - radius: desired distance from the target
	SetSphericalRadius(radius float64)

	// Target returns the point the camera orbits around.
	//
	// Returns:
	//   - mgl64.Vec3: world-space target
	Target() mgl64.Vec3

	// SetTarget moves the orbit target. The camera follows on the next Update.
	//
	// Parameters:
	//   - target: world-space target
	SetTarget(target mgl64.Vec3)

	// State returns the active gesture state.
	//
	// Returns:
	//   - State: the current gesture state
	State() State

	// Settings returns a copy of the current configuration.
	//
	// Returns:
	//   - Settings: the configuration
	Settings() Settings

	// SetSettings replaces the configuration. Consumed by the next input event or Update.
	//
	// Parameters:
	//   - s: the new configuration
	SetSettings(s Settings)

	// UpdateSettings edits the configuration in place under the controller lock.
	//
	// Parameters:
	//   - fn: function mutating the configuration
	UpdateSettings(fn func(s *Settings))

	// SetAutoRotate enables or disables automatic rotation around the target while idle.
	//
	// Parameters:
	//   - enabled: true to rotate automatically
	SetAutoRotate(enabled bool)

	// ToggleAutoRotate flips automatic rotation.
	//
	// Returns:
	//   - bool: the new auto-rotate value
	ToggleAutoRotate() bool

	// SetStartCallback sets the function called when a gesture begins.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetStartCallback(callback func())

	// SetEndCallback sets the function called when a gesture ends.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetEndCallback(callback func())

	// SetChangeCallback sets the function called when Update moves the camera beyond the change epsilon.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetChangeCallback(callback func())

	// SetRotateCallback sets the function called after each rotate move (mouse or touch).
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetRotateCallback(callback func())

	// SetDollyCallback sets the function called after each wheel or pinch dolly step.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetDollyCallback(callback func())
}
