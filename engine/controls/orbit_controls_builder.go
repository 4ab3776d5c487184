package controls

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitControlsOption is a functional option for configuring an OrbitControls.
type OrbitControlsOption func(*orbitControlsImpl)

// WithTarget sets the initial orbit target. Reset returns to this point.
//
// Parameters:
//   - target: world-space point to orbit around
//
// Returns:
//   - OrbitControlsOption: a function that applies the target to an orbitControlsImpl
func WithTarget(target mgl64.Vec3) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.target = target
	}
}

// WithSettings replaces the whole configuration. Options applied after it still take effect.
//
// Parameters:
//   - s: the configuration, usually derived from DefaultSettings
//
// Returns:
//   - OrbitControlsOption: a function that applies the settings to an orbitControlsImpl
func WithSettings(s Settings) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings = s
	}
}

// WithDistanceBounds limits how close and how far a perspective camera may be from the target.
//
// Parameters:
//   - minDistance: smallest orbit radius
//   - maxDistance: largest orbit radius
//
// Returns:
//   - OrbitControlsOption: a function that applies the bounds to an orbitControlsImpl
func WithDistanceBounds(minDistance, maxDistance float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.MinDistance = minDistance
		oc.settings.MaxDistance = maxDistance
	}
}

// WithZoomBounds limits the zoom of an orthographic camera.
//
// Parameters:
//   - minZoom: smallest zoom factor
//   - maxZoom: largest zoom factor
//
// Returns:
//   - OrbitControlsOption: a function that applies the bounds to an orbitControlsImpl
func WithZoomBounds(minZoom, maxZoom float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.MinZoom = minZoom
		oc.settings.MaxZoom = maxZoom
	}
}

// WithPolarBounds limits how far the camera can orbit vertically, in radians from the up axis.
//
// Parameters:
//   - minPolar: smallest polar angle, at least 0
//   - maxPolar: largest polar angle, at most π
//
// Returns:
//   - OrbitControlsOption: a function that applies the bounds to an orbitControlsImpl
func WithPolarBounds(minPolar, maxPolar float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.MinPolarAngle = minPolar
		oc.settings.MaxPolarAngle = maxPolar
	}
}

// WithAzimuthBounds limits how far the camera can orbit horizontally, in radians.
//
// Parameters:
//   - minAzimuth: smallest azimuth, or -Inf
//   - maxAzimuth: largest azimuth, or +Inf
//
// Returns:
//   - OrbitControlsOption: a function that applies the bounds to an orbitControlsImpl
func WithAzimuthBounds(minAzimuth, maxAzimuth float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.MinAzimuthAngle = minAzimuth
		oc.settings.MaxAzimuthAngle = maxAzimuth
	}
}

// WithDamping enables inertia. Each tick the remaining rotation delta is multiplied by (1 - factor).
//
// Parameters:
//   - factor: damping factor in (0, 1]
//
// Returns:
//   - OrbitControlsOption: a function that applies damping to an orbitControlsImpl
func WithDamping(factor float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.EnableDamping = true
		oc.settings.DampingFactor = factor
	}
}

// WithAutoRotate enables automatic rotation while idle.
//
// Parameters:
//   - speed: 2 is one revolution every 30 seconds at 60 ticks per second
//
// Returns:
//   - OrbitControlsOption: a function that applies auto-rotation to an orbitControlsImpl
func WithAutoRotate(speed float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.AutoRotate = true
		oc.settings.AutoRotateSpeed = speed
	}
}

// WithRotateSpeed scales rotation sensitivity.
func WithRotateSpeed(speed float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.RotateSpeed = speed
	}
}

// WithZoomSpeed scales dolly sensitivity. Each dolly step scales the radius by 0.95^speed.
func WithZoomSpeed(speed float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.ZoomSpeed = speed
	}
}

// WithKeyPanSpeed sets how many pixels one arrow key press pans.
func WithKeyPanSpeed(speed float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.KeyPanSpeed = speed
	}
}

func WithKeyBindings(keys KeyBindings) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.Keys = keys
	}
}

func WithMouseBindings(buttons MouseBindings) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.settings.MouseButtons = buttons
	}
}

// WithLogger sets the logger used for diagnostics. Defaults to log.Default().
//
// Parameters:
//   - logger: the logger to write to
//
// Returns:
//   - OrbitControlsOption: a function that applies the logger to an orbitControlsImpl
func WithLogger(logger *log.Logger) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		if logger != nil {
			oc.logger = logger
		}
	}
}

// WithZoomValidator installs a hook consulted before every dolly step.
// The hook receives the factor the step would apply to the orbit radius (below 1 moves closer)
// and returns false to reject it. By default every step is accepted.
//
// Parameters:
//   - validator: function deciding whether a dolly step is allowed
//
// Returns:
//   - OrbitControlsOption: a function that applies the validator to an orbitControlsImpl
func WithZoomValidator(validator func(scale float64) bool) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		if validator != nil {
			oc.zoomValidator = validator
		}
	}
}
