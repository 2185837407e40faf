package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangulateSquareWithHeights(t *testing.T) {
	square := []Vertex{
		VY(0, 0, 0),
		VY(10, 0, 0),
		VY(10, 10, 5),
		VY(0, 10, 5),
	}

	mesh, err := Triangulate(square)
	require.NoError(t, err)

	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, 2, mesh.TriangleCount())

	wantUV := []float32{0, 0, 1, 0, 1, 1, 0, 1}
	assert.Equal(t, wantUV, mesh.UVs)

	// Heights land on Y.
	assert.Equal(t, float32(5), mesh.Positions[2*3+1])
	assert.Equal(t, float32(10), mesh.Positions[2*3+2])

	// Sloped toward -Z: normals tilt back but still face up.
	for i := range mesh.VertexCount() {
		assert.Greater(t, mesh.Normals[i*3+1], float32(0), "normal %d should face up", i)
		assert.Less(t, mesh.Normals[i*3+2], float32(0), "normal %d should lean toward -Z", i)
	}
}

func TestTriangulateFacesUpForEitherWinding(t *testing.T) {
	ccw := []Vertex{V(0, 0), V(4, 0), V(4, 3), V(0, 3)}
	cw := []Vertex{V(0, 3), V(4, 3), V(4, 0), V(0, 0)}

	for name, poly := range map[string][]Vertex{"ccw": ccw, "cw": cw} {
		t.Run(name, func(t *testing.T) {
			mesh, err := Triangulate(poly)
			require.NoError(t, err)
			for i := range mesh.VertexCount() {
				assert.InDelta(t, 1, mesh.Normals[i*3+1], 1e-6)
			}
		})
	}
}

func TestTriangulateTooFewVertices(t *testing.T) {
	tests := []struct {
		name  string
		input []Vertex
	}{
		{"empty", nil},
		{"one", []Vertex{V(0, 0)}},
		{"two", []Vertex{V(0, 0), V(1, 1)}},
		{"closed pair", []Vertex{V(0, 0), V(1, 1), V(0, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := Triangulate(tt.input)
			assert.Nil(t, mesh)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGeometry))

			var geomErr *InvalidGeometryError
			require.ErrorAs(t, err, &geomErr)
		})
	}
}

func TestTriangulateConcave(t *testing.T) {
	// L-shaped outline.
	poly := []Vertex{
		V(0, 0), V(6, 0), V(6, 2), V(2, 2), V(2, 6), V(0, 6),
	}
	mesh, err := Triangulate(poly)
	require.NoError(t, err)
	assertValidMesh(t, mesh, len(poly))
	assert.Equal(t, len(poly)-2, mesh.TriangleCount())

	// Every triangle centroid must lie inside the L (not in the notch).
	for tri := 0; tri < mesh.Indices.Len(); tri += 3 {
		var cx, cz float32
		for k := range 3 {
			idx := mesh.Indices.At(tri + k)
			cx += mesh.Positions[idx*3] / 3
			cz += mesh.Positions[idx*3+2] / 3
		}
		inNotch := cx > 2 && cz > 2
		assert.False(t, inNotch, "triangle %d centroid (%v,%v) is outside the outline", tri/3, cx, cz)
	}
}

func TestTriangulateClosingVertex(t *testing.T) {
	ring := []Vertex{V(0, 0), V(10, 0), V(10, 10), V(0, 10), V(0, 0)}
	mesh, err := Triangulate(ring)
	require.NoError(t, err)

	assert.Equal(t, len(ring), mesh.VertexCount())
	assert.Equal(t, 2, mesh.TriangleCount())
	for i := 0; i < mesh.Indices.Len(); i++ {
		assert.NotEqual(t, uint32(4), mesh.Indices.At(i), "closing vertex must not be clipped")
	}
	assert.Equal(t, mesh.Normals[0:3], mesh.Normals[12:15])
}

func TestTriangulateRegularPolygons(t *testing.T) {
	for _, n := range []int{3, 5, 8, 16, 33, 128} {
		poly := make([]Vertex, n)
		for i := range n {
			a := 2 * math.Pi * float64(i) / float64(n)
			poly[i] = VY(20*math.Cos(a), 12*math.Sin(a), math.Sin(3*a))
		}
		mesh, err := Triangulate(poly)
		require.NoError(t, err)
		assertValidMesh(t, mesh, n)
		assert.Equal(t, n-2, mesh.TriangleCount())
	}
}

func TestTriangulateCollinearFallsBack(t *testing.T) {
	line := []Vertex{V(0, 0), V(1, 0), V(2, 0), V(3, 0)}
	mesh, err := Triangulate(line)
	require.NoError(t, err)
	assertValidMesh(t, mesh, len(line))

	// Zero-area bounding box on Z gives zero V coordinates.
	for i := range mesh.VertexCount() {
		assert.Equal(t, float32(0), mesh.UVs[i*2+1])
	}
}

func TestDegenerateUVs(t *testing.T) {
	uvs := planarUVs([]Vertex{V(5, 5), V(5, 5), V(5, 5)})
	for _, uv := range uvs {
		assert.Equal(t, float32(0), uv)
	}
}

func TestSignedArea(t *testing.T) {
	assert.Equal(t, 100.0, SignedArea([]Vertex{V(0, 0), V(10, 0), V(10, 10), V(0, 10)}))
	assert.Equal(t, -100.0, SignedArea([]Vertex{V(0, 10), V(10, 10), V(10, 0), V(0, 0)}))
}

func assertValidMesh(t *testing.T, mesh *Mesh, inputCount int) {
	t.Helper()
	assert.Equal(t, inputCount, mesh.VertexCount())
	assert.Equal(t, 0, mesh.Indices.Len()%3)
	assert.Len(t, mesh.Normals, len(mesh.Positions))
	assert.Len(t, mesh.UVs, mesh.VertexCount()*2)
	for i := 0; i < mesh.Indices.Len(); i++ {
		assert.Less(t, int(mesh.Indices.At(i)), mesh.VertexCount())
	}
}
