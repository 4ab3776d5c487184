package main

import (
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
)

// poseColor maps the camera pose to a background tint.
// Looking from above is warm, from the horizon cool; the azimuth shifts green and blue around the circle.
func poseColor(polar, azimuth float64) renderer.Color {
	elevation := 1 - math.Min(math.Max(polar/math.Pi, 0), 1)
	return renderer.Color{
		R: 0.05 + 0.35*elevation,
		G: 0.05 + 0.15*(0.5+0.5*math.Cos(azimuth)),
		B: 0.10 + 0.25*(0.5+0.5*math.Sin(azimuth)),
		A: 1,
	}
}
