package shape

import (
	"math"

	"github.com/Faultbox/greenkeeper/internal/geometry"
)

// Kind names a surface family with its own sampling profile.
type Kind string

const (
	KindGreen   Kind = "green"
	KindFairway Kind = "fairway"
	KindWater   Kind = "water"
	KindBunker  Kind = "bunker"
	KindTee     Kind = "tee"
	KindRough   Kind = "rough"
)

// Profile controls how densely an outline is sampled and how far each
// vertex radius may stray from the base ellipse (Variation 0.1 = ±10%).
type Profile struct {
	Segments  int
	Variation float64
}

var profiles = map[Kind]Profile{
	KindGreen:   {Segments: 16, Variation: 0.10},
	KindFairway: {Segments: 32, Variation: 0.08},
	KindWater:   {Segments: 24, Variation: 0.25},
	KindBunker:  {Segments: 12, Variation: 0.15},
	KindTee:     {Segments: 8, Variation: 0.02},
	KindRough:   {Segments: 24, Variation: 0.10},
}

// ProfileFor returns the sampling profile for a surface kind. Unknown kinds get the rough profile.
func ProfileFor(kind Kind) Profile {
	if p, ok := profiles[kind]; ok {
		return p
	}
	return profiles[KindRough]
}

// Ellipse is the base shape an outline perturbs.
type Ellipse struct {
	CenterX, CenterZ float64
	RadiusX, RadiusZ float64
}

// Perturbation returns the radius scale for vertex index: 1 ± variation.
func Perturbation(seed int64, ch Channel, index int, variation float64) float64 {
	return 1 + float64(variation*Signed(seed, ch, index))
}

// Ring returns a closed organic outline of p.Segments vertices plus a closing
// vertex equal to the first. The result depends only on the arguments.
//
// Products are wrapped in float64 conversions so the compiler cannot fuse them
// into FMA instructions, which round differently on some architectures.
func Ring(seed int64, ch Channel, e Ellipse, p Profile) []geometry.Vertex {
	if p.Segments < 1 {
		return nil
	}

	ring := make([]geometry.Vertex, p.Segments+1)
	for i := range p.Segments {
		angle := float64(2*math.Pi*float64(i)) / float64(p.Segments)
		scale := Perturbation(seed, ch, i, p.Variation)
		rx := float64(e.RadiusX * scale)
		rz := float64(e.RadiusZ * scale)
		ring[i] = geometry.V(
			e.CenterX+float64(rx*math.Cos(angle)),
			e.CenterZ+float64(rz*math.Sin(angle)),
		)
	}
	ring[p.Segments] = ring[0]
	return ring
}

// Centroid returns the mean (X, Z) of an outline, ignoring a closing vertex
// that repeats the first, and the mean distance from that point to each vertex.
func Centroid(ring []geometry.Vertex) (x, z, radius float64) {
	n := len(ring)
	if n > 1 && ring[0].X == ring[n-1].X && ring[0].Z == ring[n-1].Z {
		n--
	}
	if n == 0 {
		return 0, 0, 0
	}
	for _, v := range ring[:n] {
		x += v.X
		z += v.Z
	}
	x /= float64(n)
	z /= float64(n)
	for _, v := range ring[:n] {
		radius += math.Hypot(v.X-x, v.Z-z)
	}
	radius /= float64(n)
	return x, z, radius
}

// Jitter returns a color variation in [-amount, amount) for vertex index.
func Jitter(seed int64, ch Channel, index int, amount float32) float32 {
	return amount * float32(Signed(seed, ch, index))
}
