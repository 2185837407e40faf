package hole

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/greenkeeper/internal/geometry"
)

func TestSurfaceMesh(t *testing.T) {
	circle := CircleSurface("background", "background", Circle{Center: geometry.V(0, 0), Radius: 10, Segments: 12})
	assert.Equal(t, KindCircle, circle.Kind)
	mesh, err := circle.Mesh()
	require.NoError(t, err)
	assert.Equal(t, 13, mesh.VertexCount())
	assert.Equal(t, 12, mesh.TriangleCount())

	square := PolygonSurface("tee", "tee", []geometry.Vertex{
		geometry.V(0, 0), geometry.V(4, 0), geometry.V(4, 3), geometry.V(0, 3),
	})
	assert.Equal(t, KindPolygon, square.Kind)
	mesh, err = square.Mesh()
	require.NoError(t, err)
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, 2, mesh.TriangleCount())
}

func TestSurfaceMeshErrors(t *testing.T) {
	_, err := PolygonSurface("green", "green", []geometry.Vertex{geometry.V(0, 0), geometry.V(1, 0)}).Mesh()
	assert.ErrorIs(t, err, geometry.ErrInvalidGeometry)

	_, err = CircleSurface("background", "background", Circle{Radius: 5, Segments: 2}).Mesh()
	assert.ErrorIs(t, err, geometry.ErrInvalidGeometry)

	_, err = Surface{Name: "odd", Kind: Kind(7)}.Mesh()
	assert.Error(t, err)
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestMemoryScene(t *testing.T) {
	scene := NewMemoryScene()
	mesh, err := geometry.Circle(geometry.V(0, 0), 1, 8)
	require.NoError(t, err)

	a := &SceneObject{Name: "a", Mesh: mesh}
	require.NoError(t, scene.Add(a))
	assert.Error(t, scene.Add(&SceneObject{Name: "a", Mesh: mesh}))
	assert.Error(t, scene.Add(&SceneObject{Name: "b"}))

	scene.SetMaterial(a, Material{Color: [4]float32{1, 0, 0, 1}})
	assert.Equal(t, float32(1), a.Material.Color[0])

	scene.Remove(&SceneObject{Name: "a", Mesh: mesh})
	assert.Equal(t, 1, scene.Len())
	scene.Remove(a)
	assert.Zero(t, scene.Len())
	assert.Equal(t, 1, scene.Removed)
	assert.Empty(t, scene.Names())
}
