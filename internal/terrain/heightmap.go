// Package terrain provides ground elevation for a hole: a seeded rolling
// heightmap with bilinear lookup, and a flat stand-in.
package terrain

import (
	"math"

	"github.com/Faultbox/greenkeeper/internal/shape"
)

// Heightmap samples elevation on a regular grid covering a rectangle of the ground plane.
type Heightmap struct {
	Altitudes [][]float64 // [x][z] elevation at grid points, meters
	PointsX   int
	PointsZ   int
	CellSize  float64
	OriginX   float64 // world X of grid point 0
	OriginZ   float64 // world Z of grid point 0
}

// Params controls heightmap generation.
type Params struct {
	CellSize  float64 `yaml:"cell_size"` // grid spacing, meters
	Grade     float64 `yaml:"grade"`     // maximum slope of the seeded tilt, rise over run
	Amplitude float64 `yaml:"amplitude"` // maximum height of the rolling undulation, meters
	Scale     float64 `yaml:"scale"`     // wavelength of the broad undulation, meters
}

// DefaultParams returns a gently tilted hole with no undulation. A pure tilt is
// planar, so surfaces draped on it keep their layer offsets everywhere.
func DefaultParams() Params {
	return Params{
		CellSize: 4,
		Grade:    0.03,
		Scale:    45,
	}
}

// Build samples a seeded planar tilt plus optional value noise over
// [minX,maxX] x [minZ,maxZ]. Every altitude is non-negative.
func Build(seed int64, minX, minZ, maxX, maxZ float64, p Params) *Heightmap {
	if p.CellSize <= 0 {
		p.CellSize = DefaultParams().CellSize
	}
	if p.Scale <= 0 {
		p.Scale = DefaultParams().Scale
	}

	pointsX := int(math.Ceil((maxX-minX)/p.CellSize)) + 1
	pointsZ := int(math.Ceil((maxZ-minZ)/p.CellSize)) + 1
	if pointsX < 2 {
		pointsX = 2
	}
	if pointsZ < 2 {
		pointsZ = 2
	}

	gx, gz := tilt(seed, p.Grade)
	spanX := float64(pointsX-1) * p.CellSize
	spanZ := float64(pointsZ-1) * p.CellSize
	// Lift the low corner of the tilt onto the base plane.
	base := math.Max(0, -gx*spanX) + math.Max(0, -gz*spanZ)

	altitudes := make([][]float64, pointsX)
	for ix := range pointsX {
		altitudes[ix] = make([]float64, pointsZ)
		dx := float64(float64(ix) * p.CellSize)
		wx := minX + dx
		for iz := range pointsZ {
			dz := float64(float64(iz) * p.CellSize)
			wz := minZ + dz
			alt := base + float64(gx*dx) + float64(gz*dz)
			if p.Amplitude > 0 {
				// Broad swells plus a weaker fine octave, remapped from [-1.35, 1.35] to [0, 1].
				n := valueNoise(seed, 0, wx/p.Scale, wz/p.Scale) +
					float64(0.35*valueNoise(seed, 1, wx*3/p.Scale, wz*3/p.Scale))
				alt += float64(p.Amplitude*(n/1.35+1)) / 2
			}
			altitudes[ix][iz] = alt
		}
	}

	return &Heightmap{
		Altitudes: altitudes,
		PointsX:   pointsX,
		PointsZ:   pointsZ,
		CellSize:  p.CellSize,
		OriginX:   minX,
		OriginZ:   minZ,
	}
}

// tilt returns the seeded slope along X and Z; its magnitude never exceeds grade.
func tilt(seed int64, grade float64) (float64, float64) {
	if grade <= 0 {
		return 0, 0
	}
	ch := shape.ChannelTerrain.Sub(2)
	angle := 2 * math.Pi * shape.Unit(seed, ch, 0)
	slope := grade * shape.Unit(seed, ch, 1)
	return slope * math.Cos(angle), slope * math.Sin(angle)
}

// HeightAt returns the bilinearly interpolated elevation at a world position.
// Positions outside the grid are clamped to its edge.
func (h *Heightmap) HeightAt(x, z float64) float64 {
	if h == nil || h.PointsX < 2 || h.PointsZ < 2 {
		return 0
	}

	fx := (x - h.OriginX) / h.CellSize
	fz := (z - h.OriginZ) / h.CellSize

	cellX := int(math.Floor(fx))
	cellZ := int(math.Floor(fz))

	// Clamp to valid range
	if cellX < 0 {
		cellX = 0
	}
	if cellZ < 0 {
		cellZ = 0
	}
	if cellX > h.PointsX-2 {
		cellX = h.PointsX - 2
	}
	if cellZ > h.PointsZ-2 {
		cellZ = h.PointsZ - 2
	}

	fracX := clamp(fx-float64(cellX), 0, 1)
	fracZ := clamp(fz-float64(cellZ), 0, 1)

	// South edge (lower Z) then north edge, then blend along Z.
	south := lerp(h.Altitudes[cellX][cellZ], h.Altitudes[cellX+1][cellZ], fracX)
	north := lerp(h.Altitudes[cellX][cellZ+1], h.Altitudes[cellX+1][cellZ+1], fracX)
	return lerp(south, north, fracZ)
}

// Flat is a height query that is zero everywhere.
type Flat struct{}

// HeightAt always returns 0.
func (Flat) HeightAt(x, z float64) float64 {
	return 0
}

// valueNoise returns smooth noise in [-1, 1) from hashed lattice values.
func valueNoise(seed int64, octave int, x, z float64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	tx := smoothstep(x - x0)
	tz := smoothstep(z - z0)

	ix, iz := int(x0), int(z0)
	v00 := lattice(seed, octave, ix, iz)
	v10 := lattice(seed, octave, ix+1, iz)
	v01 := lattice(seed, octave, ix, iz+1)
	v11 := lattice(seed, octave, ix+1, iz+1)

	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), tz)
}

func lattice(seed int64, octave, ix, iz int) float64 {
	key := ix*73856093 ^ iz*19349663
	return shape.Signed(seed, shape.ChannelTerrain.Sub(octave), key)
}

func smoothstep(t float64) float64 {
	return float64(t*t) * (3 - float64(2*t))
}

func lerp(a, b, t float64) float64 {
	return a + float64((b-a)*t)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
