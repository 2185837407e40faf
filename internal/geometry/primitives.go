package geometry

import "math"

// Circle builds a flat disc as a triangle fan around center, bypassing
// triangulation. Used for circular surfaces such as the background and cup.
func Circle(center Vertex, radius float64, segments int) (*Mesh, error) {
	if segments < 3 {
		return nil, &InvalidGeometryError{Count: segments, Reason: "circle needs at least 3 segments"}
	}
	if radius <= 0 {
		return nil, &InvalidGeometryError{Count: segments, Reason: "circle radius must be positive"}
	}

	n := segments + 1
	positions := make([]float32, 0, n*3)
	normals := make([]float32, 0, n*3)
	uvs := make([]float32, 0, n*2)

	positions = append(positions, float32(center.X), float32(center.Y), float32(center.Z))
	normals = append(normals, 0, 1, 0)
	uvs = append(uvs, 0.5, 0.5)

	for i := range segments {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		cos, sin := math.Cos(angle), math.Sin(angle)
		positions = append(positions,
			float32(center.X+radius*cos),
			float32(center.Y),
			float32(center.Z+radius*sin),
		)
		normals = append(normals, 0, 1, 0)
		uvs = append(uvs, float32(0.5+0.5*cos), float32(0.5+0.5*sin))
	}

	indices := make([]uint32, 0, segments*3)
	for i := range segments {
		cur := uint32(1 + i)
		next := uint32(1 + (i+1)%segments)
		indices = append(indices, 0, next, cur)
	}

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   NewIndexBuffer(n, indices),
		Bounds:    computeBounds(positions),
	}, nil
}

// Cylinder builds an open-bottomed cylinder standing on y=0 with a top cap.
// Side vertices are duplicated per ring so side and cap normals stay sharp.
func Cylinder(radius, height float64, segments int) (*Mesh, error) {
	if segments < 3 {
		return nil, &InvalidGeometryError{Count: segments, Reason: "cylinder needs at least 3 segments"}
	}
	if radius <= 0 || height <= 0 {
		return nil, &InvalidGeometryError{Count: segments, Reason: "cylinder radius and height must be positive"}
	}

	var positions, normals, uvs []float32
	var indices []uint32

	// Side: two vertices per segment column, plus a seam column.
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		cos, sin := math.Cos(angle), math.Sin(angle)
		x, z := float32(radius*cos), float32(radius*sin)
		u := float32(i) / float32(segments)
		positions = append(positions, x, 0, z, x, float32(height), z)
		normals = append(normals, float32(cos), 0, float32(sin), float32(cos), 0, float32(sin))
		uvs = append(uvs, u, 0, u, 1)
	}
	for i := range segments {
		b0 := uint32(i * 2)
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b0 + 3
		// Outward facing with angle increasing counter-clockwise in (X, Z).
		indices = append(indices, b0, t0, b1, b1, t0, t1)
	}

	// Top cap fan.
	capCenter := uint32(len(positions) / 3)
	positions = append(positions, 0, float32(height), 0)
	normals = append(normals, 0, 1, 0)
	uvs = append(uvs, 0.5, 0.5)
	for i := range segments {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		cos, sin := math.Cos(angle), math.Sin(angle)
		positions = append(positions, float32(radius*cos), float32(height), float32(radius*sin))
		normals = append(normals, 0, 1, 0)
		uvs = append(uvs, float32(0.5+0.5*cos), float32(0.5+0.5*sin))
	}
	for i := range segments {
		cur := capCenter + 1 + uint32(i)
		next := capCenter + 1 + uint32((i+1)%segments)
		indices = append(indices, capCenter, next, cur)
	}

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   NewIndexBuffer(len(positions)/3, indices),
		Bounds:    computeBounds(positions),
	}, nil
}

// Cone builds a cone standing on y=0 with its apex at y=height.
func Cone(radius, height float64, segments int) (*Mesh, error) {
	if segments < 3 {
		return nil, &InvalidGeometryError{Count: segments, Reason: "cone needs at least 3 segments"}
	}
	if radius <= 0 || height <= 0 {
		return nil, &InvalidGeometryError{Count: segments, Reason: "cone radius and height must be positive"}
	}

	slant := math.Hypot(radius, height)
	ny := radius / slant
	nr := height / slant

	var positions, normals, uvs []float32
	var indices []uint32
	for i := range segments {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		mid := (a0 + a1) / 2

		base := uint32(len(positions) / 3)
		positions = append(positions,
			float32(radius*math.Cos(a0)), 0, float32(radius*math.Sin(a0)),
			0, float32(height), 0,
			float32(radius*math.Cos(a1)), 0, float32(radius*math.Sin(a1)),
		)
		for _, a := range [3]float64{a0, mid, a1} {
			normals = append(normals, float32(nr*math.Cos(a)), float32(ny), float32(nr*math.Sin(a)))
		}
		u0 := float32(i) / float32(segments)
		u1 := float32(i+1) / float32(segments)
		uvs = append(uvs, u0, 0, (u0+u1)/2, 1, u1, 0)
		indices = append(indices, base, base+1, base+2)
	}

	return &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   NewIndexBuffer(len(positions)/3, indices),
		Bounds:    computeBounds(positions),
	}, nil
}
