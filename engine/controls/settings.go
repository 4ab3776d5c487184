package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
)

// KeyBindings maps the four pan directions to key codes.
type KeyBindings struct {
	Left   uint32
	Up     uint32
	Right  uint32
	Bottom uint32
}

// MouseBindings maps gesture modes to mouse buttons.
type MouseBindings struct {
	Orbit input.MouseButton
	Zoom  input.MouseButton
	Pan   input.MouseButton
}

// Settings holds the mutable configuration of an OrbitControls.
// Bounds are not validated: when a minimum exceeds its maximum, clamping yields the minimum.
type Settings struct {
	// Enabled gates every input handler. Update still applies pending deltas when disabled.
	Enabled bool

	// MinDistance and MaxDistance bound the orbit radius (perspective cameras only).
	MinDistance float64
	MaxDistance float64

	// MinZoom and MaxZoom bound the projection zoom (orthographic cameras only).
	MinZoom float64
	MaxZoom float64

	// MinPolarAngle and MaxPolarAngle bound φ, in radians within [0, π].
	MinPolarAngle float64
	MaxPolarAngle float64

	// MinAzimuthAngle and MaxAzimuthAngle bound θ, in radians. Infinite bounds leave θ unbounded.
	MinAzimuthAngle float64
	MaxAzimuthAngle float64

	// EnableDamping decays rotation deltas by DampingFactor each tick instead of clearing them.
	EnableDamping bool
	DampingFactor float64

	EnableZoom       bool
	ZoomSpeed        float64
	MobileZoomFactor float64

	EnableRotate bool
	RotateSpeed  float64

	EnablePan   bool
	KeyPanSpeed float64

	// AutoRotate orbits around the target while no gesture is active.
	// AutoRotateSpeed 2 is one revolution every 30 seconds at 60 ticks per second.
	AutoRotate      bool
	AutoRotateSpeed float64

	EnableKeys bool
	Keys       KeyBindings

	MouseButtons MouseBindings
}

// DefaultSettings returns the default controller configuration.
//
// Returns:
//   - Settings: unbounded distance, zoom and azimuth, full polar range, damping and auto-rotate off
func DefaultSettings() Settings {
	return Settings{
		Enabled:          true,
		MinDistance:      0,
		MaxDistance:      math.Inf(1),
		MinZoom:          0,
		MaxZoom:          math.Inf(1),
		MinPolarAngle:    0,
		MaxPolarAngle:    math.Pi,
		MinAzimuthAngle:  math.Inf(-1),
		MaxAzimuthAngle:  math.Inf(1),
		EnableDamping:    false,
		DampingFactor:    0.25,
		EnableZoom:       true,
		ZoomSpeed:        1,
		MobileZoomFactor: 1,
		EnableRotate:     true,
		RotateSpeed:      1,
		EnablePan:        true,
		KeyPanSpeed:      7,
		AutoRotate:       false,
		AutoRotateSpeed:  2,
		EnableKeys:       true,
		Keys: KeyBindings{
			Left:   common.KeyLeft,
			Up:     common.KeyUp,
			Right:  common.KeyRight,
			Bottom: common.KeyDown,
		},
		MouseButtons: MouseBindings{
			Orbit: input.MouseButtonLeft,
			Zoom:  input.MouseButtonMiddle,
			Pan:   input.MouseButtonRight,
		},
	}
}
