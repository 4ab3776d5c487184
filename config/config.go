// Package config loads orbit controller settings from TOML files.
//
// Every field in the file is optional; absent fields keep the value of the base settings,
// normally controls.DefaultSettings(). Angles are written in degrees. Infinite bounds use TOML's inf.
//
//	[distance]
//	min = 100
//	max = 1000
//
//	[polar]
//	max_deg = 90
//
//	[damping]
//	enabled = true
//	factor = 0.25
package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Carmen-Shannon/oxy-orbit/engine/controls"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
)

// File mirrors the TOML layout. Nil pointers are fields the file did not set.
type File struct {
	Enabled    *bool           `toml:"enabled"`
	Distance   *Range          `toml:"distance"`
	Zoom       *ZoomSection    `toml:"zoom"`
	Polar      *AngleRange     `toml:"polar"`
	Azimuth    *AngleRange     `toml:"azimuth"`
	Rotate     *SpeedSection   `toml:"rotate"`
	Pan        *PanSection     `toml:"pan"`
	Damping    *DampingSection `toml:"damping"`
	AutoRotate *SpeedSection   `toml:"auto_rotate"`
	Keys       *KeySection     `toml:"keys"`
	Mouse      *MouseSection   `toml:"mouse"`
}

type Range struct {
	Min *float64 `toml:"min"`
	Max *float64 `toml:"max"`
}

type AngleRange struct {
	MinDeg *float64 `toml:"min_deg"`
	MaxDeg *float64 `toml:"max_deg"`
}

type ZoomSection struct {
	Enabled      *bool    `toml:"enabled"`
	Speed        *float64 `toml:"speed"`
	MobileFactor *float64 `toml:"mobile_factor"`
	Min          *float64 `toml:"min"`
	Max          *float64 `toml:"max"`
}

type SpeedSection struct {
	Enabled *bool    `toml:"enabled"`
	Speed   *float64 `toml:"speed"`
}

type PanSection struct {
	Enabled  *bool    `toml:"enabled"`
	KeySpeed *float64 `toml:"key_speed"`
}

type DampingSection struct {
	Enabled *bool    `toml:"enabled"`
	Factor  *float64 `toml:"factor"`
}

type KeySection struct {
	Enabled *bool   `toml:"enabled"`
	Left    *uint32 `toml:"left"`
	Up      *uint32 `toml:"up"`
	Right   *uint32 `toml:"right"`
	Bottom  *uint32 `toml:"bottom"`
}

// MouseSection binds gestures to button names: "left", "middle" or "right".
type MouseSection struct {
	Orbit *string `toml:"orbit"`
	Zoom  *string `toml:"zoom"`
	Pan   *string `toml:"pan"`
}

// Load reads a TOML file and overlays it on base.
//
// Parameters:
//   - path: the file to read
//   - base: settings used for every field the file leaves out
//
// Returns:
//   - controls.Settings: the merged settings
//   - error: error if the file cannot be read or is invalid
func Load(path string, base controls.Settings) (controls.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	s, err := Parse(data, base)
	if err != nil {
		return base, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes TOML data and overlays it on base. Unknown keys are rejected.
//
// Parameters:
//   - data: TOML document
//   - base: settings used for every field the document leaves out
//
// Returns:
//   - controls.Settings: the merged settings
//   - error: error if the document is malformed, has unknown keys or invalid values
func Parse(data []byte, base controls.Settings) (controls.Settings, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return base, fmt.Errorf("failed to decode toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return base, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return f.Apply(base)
}

// Apply overlays the fields set in f on base.
//
// Parameters:
//   - base: the settings to start from
//
// Returns:
//   - controls.Settings: the merged settings
//   - error: error if a mouse button name is unknown
func (f File) Apply(base controls.Settings) (controls.Settings, error) {
	s := base
	setBool(&s.Enabled, f.Enabled)

	if f.Distance != nil {
		setFloat(&s.MinDistance, f.Distance.Min)
		setFloat(&s.MaxDistance, f.Distance.Max)
	}
	if z := f.Zoom; z != nil {
		setBool(&s.EnableZoom, z.Enabled)
		setFloat(&s.ZoomSpeed, z.Speed)
		setFloat(&s.MobileZoomFactor, z.MobileFactor)
		setFloat(&s.MinZoom, z.Min)
		setFloat(&s.MaxZoom, z.Max)
	}
	if f.Polar != nil {
		setDegrees(&s.MinPolarAngle, f.Polar.MinDeg)
		setDegrees(&s.MaxPolarAngle, f.Polar.MaxDeg)
	}
	if f.Azimuth != nil {
		setDegrees(&s.MinAzimuthAngle, f.Azimuth.MinDeg)
		setDegrees(&s.MaxAzimuthAngle, f.Azimuth.MaxDeg)
	}
	if r := f.Rotate; r != nil {
		setBool(&s.EnableRotate, r.Enabled)
		setFloat(&s.RotateSpeed, r.Speed)
	}
	if p := f.Pan; p != nil {
		setBool(&s.EnablePan, p.Enabled)
		setFloat(&s.KeyPanSpeed, p.KeySpeed)
	}
	if d := f.Damping; d != nil {
		setBool(&s.EnableDamping, d.Enabled)
		setFloat(&s.DampingFactor, d.Factor)
	}
	if a := f.AutoRotate; a != nil {
		setBool(&s.AutoRotate, a.Enabled)
		setFloat(&s.AutoRotateSpeed, a.Speed)
	}
	if k := f.Keys; k != nil {
		setBool(&s.EnableKeys, k.Enabled)
		setKey(&s.Keys.Left, k.Left)
		setKey(&s.Keys.Up, k.Up)
		setKey(&s.Keys.Right, k.Right)
		setKey(&s.Keys.Bottom, k.Bottom)
	}
	if m := f.Mouse; m != nil {
		for _, b := range []struct {
			dst  *input.MouseButton
			name *string
			what string
		}{
			{&s.MouseButtons.Orbit, m.Orbit, "orbit"},
			{&s.MouseButtons.Zoom, m.Zoom, "zoom"},
			{&s.MouseButtons.Pan, m.Pan, "pan"},
		} {
			if b.name == nil {
				continue
			}
			button, err := ParseMouseButton(*b.name)
			if err != nil {
				return base, fmt.Errorf("mouse.%s: %w", b.what, err)
			}
			*b.dst = button
		}
	}
	return s, nil
}

// ParseMouseButton converts a button name to an input.MouseButton.
//
// Parameters:
//   - name: "left", "middle" or "right" (case-insensitive)
//
// Returns:
//   - input.MouseButton: the button
//   - error: error if the name is unknown
func ParseMouseButton(name string) (input.MouseButton, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return input.MouseButtonLeft, nil
	case "middle":
		return input.MouseButtonMiddle, nil
	case "right":
		return input.MouseButtonRight, nil
	}
	return 0, fmt.Errorf("unknown mouse button %q", name)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setKey(dst *uint32, v *uint32) {
	if v != nil {
		*dst = *v
	}
}

func setDegrees(dst *float64, v *float64) {
	if v != nil {
		*dst = *v * math.Pi / 180
	}
}
