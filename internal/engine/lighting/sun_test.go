package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want mgl32.Vec3
	}{
		{"overhead", Sun{Azimuth: 0, Elevation: 90}, mgl32.Vec3{0, 1, 0}},
		{"horizon toward green", Sun{Azimuth: 0, Elevation: 0}, mgl32.Vec3{0, 0, 1}},
		{"horizon east", Sun{Azimuth: 90, Elevation: 0}, mgl32.Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sun.Direction()
			if !got.ApproxEqualThreshold(tt.want, 1e-6) {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
			if l := got.Len(); l < 0.9999 || l > 1.0001 {
				t.Errorf("direction not normalized: %v", l)
			}
		})
	}
}

func TestLightDirPointsDown(t *testing.T) {
	d := DefaultSun().LightDir()
	if d[1] >= 0 {
		t.Errorf("light should travel downward, got %v", d)
	}
}
