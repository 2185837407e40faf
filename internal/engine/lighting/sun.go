// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sun places a directional light by compass angles in degrees. Azimuth turns
// around the Y axis from +Z (down the hole toward the green); elevation is
// measured up from the horizon.
type Sun struct {
	Azimuth   float64 `yaml:"azimuth"`
	Elevation float64 `yaml:"elevation"`
}

// DefaultSun is a late-morning sun over the left shoulder of a player on the tee.
func DefaultSun() Sun {
	return Sun{Azimuth: 200, Elevation: 55}
}

// Direction returns the normalized vector pointing towards the sun.
func (s Sun) Direction() mgl32.Vec3 {
	az := s.Azimuth * math.Pi / 180.0
	el := s.Elevation * math.Pi / 180.0

	return mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// LightDir returns the direction the light travels, as shaders expect it.
func (s Sun) LightDir() mgl32.Vec3 {
	return s.Direction().Mul(-1)
}
