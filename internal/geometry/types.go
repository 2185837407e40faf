// Package geometry turns ground outlines into render-ready triangle meshes.
//
// Outlines are triangulated in the (X, Z) plane; per-vertex heights only move the
// final positions, so a flat outline can describe a sloped or rolling surface.
package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is the sentinel matched by every InvalidGeometryError.
var ErrInvalidGeometry = errors.New("invalid geometry")

// InvalidGeometryError reports an outline or primitive that cannot produce a mesh.
type InvalidGeometryError struct {
	Count  int    // vertices (or segments) supplied
	Reason string // short human-readable cause
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s (got %d)", e.Reason, e.Count)
}

// Unwrap lets errors.Is match ErrInvalidGeometry.
func (e *InvalidGeometryError) Unwrap() error {
	return ErrInvalidGeometry
}

// Vertex is a planar outline point with optional elevation Y (zero when unset).
type Vertex struct {
	X, Z float64
	Y    float64
}

// V builds a flat vertex.
func V(x, z float64) Vertex {
	return Vertex{X: x, Z: z}
}

// VY builds a vertex with elevation.
func VY(x, z, y float64) Vertex {
	return Vertex{X: x, Z: z, Y: y}
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent on each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Mesh holds flat vertex attribute arrays ready for GPU upload.
// A mesh is not modified after it has been handed to a scene.
type Mesh struct {
	Positions []float32 // x,y,z per vertex
	Normals   []float32 // x,y,z per vertex
	UVs       []float32 // u,v per vertex
	Colors    []float32 // r,g,b,a per vertex; nil until SetColors
	Indices   IndexBuffer
	Bounds    Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.Indices.Len() / 3
}

// Translate offsets every position and the bounds.
func (m *Mesh) Translate(dx, dy, dz float32) {
	for i := 0; i < len(m.Positions); i += 3 {
		m.Positions[i] += dx
		m.Positions[i+1] += dy
		m.Positions[i+2] += dz
	}
	m.Bounds.Min[0] += dx
	m.Bounds.Min[1] += dy
	m.Bounds.Min[2] += dz
	m.Bounds.Max[0] += dx
	m.Bounds.Max[1] += dy
	m.Bounds.Max[2] += dz
}

// Drape lifts every vertex by height(x, z), then recomputes normals and bounds.
// Vertices no triangle references keep their normals.
func (m *Mesh) Drape(height func(x, z float64) float64) {
	for i := 0; i < len(m.Positions); i += 3 {
		m.Positions[i+1] += float32(height(float64(m.Positions[i]), float64(m.Positions[i+2])))
	}

	indices := m.Indices.Uint32()
	normals := accumulateNormals(m.Positions, indices)
	used := make([]bool, m.VertexCount())
	for _, idx := range indices {
		used[idx] = true
	}
	for i, ok := range used {
		if !ok && len(m.Normals) == len(normals) {
			copy(normals[i*3:i*3+3], m.Normals[i*3:i*3+3])
		}
	}
	m.Normals = normals
	m.Bounds = computeBounds(m.Positions)
}

// SetColors fills per-vertex colors from a base RGBA, scaling RGB by 1+jitter(i).
// A nil jitter gives a uniform color.
func (m *Mesh) SetColors(base [4]float32, jitter func(i int) float32) {
	n := m.VertexCount()
	m.Colors = make([]float32, n*4)
	for i := range n {
		f := float32(1)
		if jitter != nil {
			f += jitter(i)
		}
		m.Colors[i*4] = clamp01(base[0] * f)
		m.Colors[i*4+1] = clamp01(base[1] * f)
		m.Colors[i*4+2] = clamp01(base[2] * f)
		m.Colors[i*4+3] = base[3]
	}
}

// IndexBuffer stores triangle indices in 16 bits when every index fits, 32 bits otherwise.
type IndexBuffer struct {
	narrow []uint16
	wide   []uint32
}

// NewIndexBuffer picks the storage width for a mesh with vertexCount vertices.
func NewIndexBuffer(vertexCount int, indices []uint32) IndexBuffer {
	if vertexCount > 1<<16 {
		return IndexBuffer{wide: indices}
	}
	narrow := make([]uint16, len(indices))
	for i, idx := range indices {
		narrow[i] = uint16(idx)
	}
	return IndexBuffer{narrow: narrow}
}

// Len returns the number of indices.
func (b IndexBuffer) Len() int {
	if b.wide != nil {
		return len(b.wide)
	}
	return len(b.narrow)
}

// At returns index i.
func (b IndexBuffer) At(i int) uint32 {
	if b.wide != nil {
		return b.wide[i]
	}
	return uint32(b.narrow[i])
}

// Wide reports whether indices are stored as uint32.
func (b IndexBuffer) Wide() bool {
	return b.wide != nil
}

// Uint16 returns the 16-bit storage, or nil when the buffer is wide.
func (b IndexBuffer) Uint16() []uint16 {
	return b.narrow
}

// Uint32 returns the indices widened to 32 bits.
func (b IndexBuffer) Uint32() []uint32 {
	if b.wide != nil {
		return b.wide
	}
	out := make([]uint32, len(b.narrow))
	for i, idx := range b.narrow {
		out[i] = uint32(idx)
	}
	return out
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
