package geometry

import (
	"math"
	"slices"
)

// earEpsilon rejects slivers whose doubled area is numerically zero.
const earEpsilon = 1e-12

// Triangulate builds a mesh from a closed outline using ear clipping in the (X, Z)
// projection. Each output vertex keeps its input (X, Y, Z); triangles face +Y
// whatever the input winding. A trailing vertex that repeats the first one in
// (X, Z) is kept as a position but takes no part in the clipping.
func Triangulate(vertices []Vertex) (*Mesh, error) {
	n := len(vertices)
	if n < 3 {
		return nil, &InvalidGeometryError{Count: n, Reason: "polygon needs at least 3 vertices"}
	}

	ring := n
	if samePlanar(vertices[0], vertices[n-1]) {
		ring = n - 1
	}
	if ring < 3 {
		return nil, &InvalidGeometryError{Count: ring, Reason: "polygon needs at least 3 distinct vertices"}
	}

	indices := earClip(vertices[:ring])

	positions := make([]float32, n*3)
	for i, v := range vertices {
		positions[i*3] = float32(v.X)
		positions[i*3+1] = float32(v.Y)
		positions[i*3+2] = float32(v.Z)
	}

	normals := accumulateNormals(positions, indices)
	if ring < n {
		// The closing vertex is never referenced; give it the first vertex's normal.
		copy(normals[(n-1)*3:n*3], normals[0:3])
	}

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       planarUVs(vertices),
		Indices:   NewIndexBuffer(n, indices),
		Bounds:    computeBounds(positions),
	}, nil
}

// SignedArea returns the signed (X, Z) area of an outline; positive when the
// vertices run counter-clockwise with X as the first axis.
func SignedArea(vertices []Vertex) float64 {
	var sum float64
	for i := range vertices {
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		sum += a.X*b.Z - b.X*a.Z
	}
	return sum / 2
}

// earClip returns triangle indices for a simple polygon. Emitted triangles are
// ordered so their 3D normal points up.
func earClip(vs []Vertex) []uint32 {
	order := make([]int, len(vs))
	for i := range order {
		order[i] = i
	}
	if SignedArea(vs) < 0 {
		slices.Reverse(order)
	}

	out := make([]uint32, 0, (len(vs)-2)*3)
	for len(order) > 3 {
		clipped := false
		for i := range order {
			prev := order[(i+len(order)-1)%len(order)]
			cur := order[i]
			next := order[(i+1)%len(order)]
			if !isEar(vs, order, prev, cur, next) {
				continue
			}
			out = append(out, uint32(prev), uint32(next), uint32(cur))
			order = slices.Delete(order, i, i+1)
			clipped = true
			break
		}
		if !clipped {
			// Self-intersecting or fully collinear leftovers: fan so the mesh stays closed.
			for i := 1; i < len(order)-1; i++ {
				out = append(out, uint32(order[0]), uint32(order[i+1]), uint32(order[i]))
			}
			return out
		}
	}
	return append(out, uint32(order[0]), uint32(order[2]), uint32(order[1]))
}

func isEar(vs []Vertex, order []int, prev, cur, next int) bool {
	a, b, c := vs[prev], vs[cur], vs[next]
	if cross2(a, b, c) <= earEpsilon {
		return false // reflex or collinear
	}
	for _, idx := range order {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		p := vs[idx]
		if samePlanar(p, a) || samePlanar(p, b) || samePlanar(p, c) {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// cross2 is the doubled signed area of triangle abc in (X, Z).
func cross2(a, b, c Vertex) float64 {
	return (b.X-a.X)*(c.Z-a.Z) - (b.Z-a.Z)*(c.X-a.X)
}

// pointInTriangle reports whether p lies inside or on the edge of the
// counter-clockwise triangle abc.
func pointInTriangle(p, a, b, c Vertex) bool {
	return cross2(a, b, p) >= 0 && cross2(b, c, p) >= 0 && cross2(c, a, p) >= 0
}

func samePlanar(a, b Vertex) bool {
	return a.X == b.X && a.Z == b.Z
}

// accumulateNormals sums unnormalized face normals (area weighted) per vertex.
func accumulateNormals(positions []float32, indices []uint32) []float32 {
	sums := make([][3]float64, len(positions)/3)
	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		p0 := position(positions, i0)
		p1 := position(positions, i1)
		p2 := position(positions, i2)
		n := cross(sub(p1, p0), sub(p2, p0))
		for _, idx := range [3]uint32{i0, i1, i2} {
			sums[idx][0] += n[0]
			sums[idx][1] += n[1]
			sums[idx][2] += n[2]
		}
	}

	normals := make([]float32, len(positions))
	for i, s := range sums {
		n := normalize(s)
		normals[i*3] = float32(n[0])
		normals[i*3+1] = float32(n[1])
		normals[i*3+2] = float32(n[2])
	}
	return normals
}

// planarUVs projects each vertex onto the (X, Z) bounding box. A zero-width
// axis maps to 0 instead of dividing by zero.
func planarUVs(vertices []Vertex) []float32 {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, v := range vertices {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minZ = math.Min(minZ, v.Z)
		maxZ = math.Max(maxZ, v.Z)
	}
	width := maxX - minX
	depth := maxZ - minZ

	uvs := make([]float32, len(vertices)*2)
	for i, v := range vertices {
		if width > 0 {
			uvs[i*2] = float32((v.X - minX) / width)
		}
		if depth > 0 {
			uvs[i*2+1] = float32((v.Z - minZ) / depth)
		}
	}
	return uvs
}

// Helper functions

func position(positions []float32, i uint32) [3]float64 {
	return [3]float64{
		float64(positions[i*3]),
		float64(positions[i*3+1]),
		float64(positions[i*3+2]),
	}
}

func computeBounds(positions []float32) Bounds {
	b := Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for i := 0; i < len(positions); i += 3 {
		for axis := range 3 {
			p := positions[i+axis]
			if p < b.Min[axis] {
				b.Min[axis] = p
			}
			if p > b.Max[axis] {
				b.Max[axis] = p
			}
		}
	}
	return b
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l < 1e-12 {
		return [3]float64{0, 1, 0}
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}
