package hole

import (
	"github.com/Faultbox/greenkeeper/internal/geometry"
	"github.com/Faultbox/greenkeeper/internal/surface"
)

// SurfaceAt returns the visible ground under (x, z): of the surfaces
// containing the point, the one with the highest layer wins, later builds
// breaking ties. Furniture and obstacles are ignored. It returns false
// outside the background.
func (h *Instance) SurfaceAt(x, z float64) (string, bool) {
	best := ""
	bestLayer := 0.0
	for _, obj := range h.objects {
		if obj.Ground == "" || obj.Mesh == nil {
			continue
		}
		layer := surface.Ground(obj.Ground).LayerHeight
		if best != "" && layer < bestLayer {
			continue
		}
		if meshContains(obj.Mesh, x, z) {
			best, bestLayer = obj.Ground, layer
		}
	}
	return best, best != ""
}

// HeightAt returns the terrain elevation the current hole is draped on,
// without layer offsets. It is 0 when no hole is loaded.
func (h *Instance) HeightAt(x, z float64) float64 {
	if h.ground == nil {
		return 0
	}
	return h.ground.HeightAt(x, z)
}

// meshContains tests (x, z) against every triangle of m projected on the ground plane.
func meshContains(m *geometry.Mesh, x, z float64) bool {
	b := m.Bounds
	if x < float64(b.Min[0]) || x > float64(b.Max[0]) || z < float64(b.Min[2]) || z > float64(b.Max[2]) {
		return false
	}
	for t := 0; t+2 < m.Indices.Len(); t += 3 {
		a := planar(m, m.Indices.At(t))
		b := planar(m, m.Indices.At(t+1))
		c := planar(m, m.Indices.At(t+2))
		if inTriangle(x, z, a, b, c) {
			return true
		}
	}
	return false
}

func planar(m *geometry.Mesh, i uint32) [2]float64 {
	return [2]float64{float64(m.Positions[i*3]), float64(m.Positions[i*3+2])}
}

// inTriangle accepts points on an edge and either winding.
func inTriangle(x, z float64, a, b, c [2]float64) bool {
	d1 := edge(x, z, a, b)
	d2 := edge(x, z, b, c)
	d3 := edge(x, z, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edge(x, z float64, a, b [2]float64) float64 {
	return (b[0]-a[0])*(z-a[1]) - (b[1]-a[1])*(x-a[0])
}
