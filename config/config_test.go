package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/engine/controls"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverlaysDefaults(t *testing.T) {
	doc := `
[distance]
min = 100
max = 1000

[polar]
max_deg = 90

[damping]
enabled = true

[auto_rotate]
enabled = true
`
	s, err := Parse([]byte(doc), controls.DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, 100.0, s.MinDistance)
	assert.Equal(t, 1000.0, s.MaxDistance)
	assert.InDelta(t, math.Pi/2, s.MaxPolarAngle, 1e-12)
	assert.True(t, s.EnableDamping)
	assert.True(t, s.AutoRotate)

	// untouched fields keep their defaults
	defaults := controls.DefaultSettings()
	assert.Equal(t, defaults.MinPolarAngle, s.MinPolarAngle)
	assert.Equal(t, defaults.DampingFactor, s.DampingFactor)
	assert.Equal(t, defaults.AutoRotateSpeed, s.AutoRotateSpeed)
	assert.Equal(t, defaults.Keys, s.Keys)
	assert.True(t, math.IsInf(s.MaxZoom, 1))
}

func TestParseEmptyDocumentKeepsBase(t *testing.T) {
	base := controls.DefaultSettings()
	base.RotateSpeed = 3

	s, err := Parse(nil, base)
	require.NoError(t, err)
	assert.Equal(t, base, s)
}

func TestParseInfiniteBounds(t *testing.T) {
	doc := `
[distance]
min = 5
max = inf

[azimuth]
min_deg = -inf
max_deg = 45
`
	s, err := Parse([]byte(doc), controls.DefaultSettings())
	require.NoError(t, err)
	assert.True(t, math.IsInf(s.MaxDistance, 1))
	assert.True(t, math.IsInf(s.MinAzimuthAngle, -1))
	assert.InDelta(t, math.Pi/4, s.MaxAzimuthAngle, 1e-12)
}

func TestParseKeysAndMouse(t *testing.T) {
	doc := `
[keys]
left = 65
right = 68

[mouse]
orbit = "Right"
pan = "left"
`
	s, err := Parse([]byte(doc), controls.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, uint32(65), s.Keys.Left)
	assert.Equal(t, uint32(68), s.Keys.Right)
	assert.Equal(t, input.MouseButtonRight, s.MouseButtons.Orbit)
	assert.Equal(t, input.MouseButtonMiddle, s.MouseButtons.Zoom)
	assert.Equal(t, input.MouseButtonLeft, s.MouseButtons.Pan)
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "unknown key", doc: "[distance]\nminimum = 3\n", want: "unknown keys: distance.minimum"},
		{name: "bad button", doc: "[mouse]\nzoom = \"thumb\"\n", want: "mouse.zoom"},
		{name: "malformed", doc: "[distance\n", want: "failed to decode toml"},
		{name: "wrong type", doc: "enabled = \"yes\"\n", want: "failed to decode toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := controls.DefaultSettings()
			s, err := Parse([]byte(tt.doc), base)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, base, s)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.toml")
	require.NoError(t, os.WriteFile(path, []byte("enabled = false\n[zoom]\nspeed = 2\n"), 0o644))

	s, err := Load(path, controls.DefaultSettings())
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.Equal(t, 2.0, s.ZoomSpeed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"), controls.DefaultSettings())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseMouseButton(t *testing.T) {
	b, err := ParseMouseButton(" MIDDLE ")
	require.NoError(t, err)
	assert.Equal(t, input.MouseButtonMiddle, b)

	_, err = ParseMouseButton("")
	assert.Error(t, err)
}
