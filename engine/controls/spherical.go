package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// makeSafeEpsilon keeps the polar angle off the poles, where azimuth is undefined.
const makeSafeEpsilon = 1e-6

// Spherical is a point in spherical coordinates in a Y-up frame.
// Phi is the polar angle from +Y, Theta the azimuth around +Y measured from +Z toward +X.
type Spherical struct {
	Radius float64
	Phi    float64
	Theta  float64
}

// SetFromVector sets the coordinates from a Cartesian offset.
//
// Parameters:
//   - v: offset from the origin
func (s *Spherical) SetFromVector(v mgl64.Vec3) {
	s.Radius = v.Len()
	if s.Radius == 0 {
		s.Theta = 0
		s.Phi = 0
		return
	}
	s.Theta = math.Atan2(v.X(), v.Z())
	s.Phi = math.Acos(clamp(v.Y()/s.Radius, -1, 1))
}

// Vector converts the coordinates back to a Cartesian offset.
//
// Returns:
//   - mgl64.Vec3: the offset from the origin
func (s Spherical) Vector() mgl64.Vec3 {
	sinPhiRadius := math.Sin(s.Phi) * s.Radius
	return mgl64.Vec3{
		sinPhiRadius * math.Sin(s.Theta),
		math.Cos(s.Phi) * s.Radius,
		sinPhiRadius * math.Cos(s.Theta),
	}
}

// MakeSafe restricts Phi to [ε, π-ε].
func (s *Spherical) MakeSafe() {
	s.Phi = math.Max(makeSafeEpsilon, math.Min(math.Pi-makeSafeEpsilon, s.Phi))
}

// clamp restricts v to [lo, hi]. When lo > hi the result is lo.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
