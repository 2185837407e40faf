package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greenEllipse() Ellipse {
	return Ellipse{CenterX: 0, CenterZ: 150, RadiusX: 9, RadiusZ: 7}
}

func TestRingDeterministic(t *testing.T) {
	p := ProfileFor(KindGreen)
	a := Ring(42, ChannelGreen, greenEllipse(), p)
	b := Ring(42, ChannelGreen, greenEllipse(), p)

	require.Len(t, a, 17)
	// Exact equality, not approximate.
	assert.Equal(t, a, b)
	assert.Equal(t, a[0], a[16], "ring must close on its first vertex")
}

func TestRingSeedChangesShape(t *testing.T) {
	p := ProfileFor(KindGreen)
	a := Ring(42, ChannelGreen, greenEllipse(), p)
	b := Ring(43, ChannelGreen, greenEllipse(), p)
	assert.NotEqual(t, a, b)
}

func TestRingChannelsIndependent(t *testing.T) {
	p := Profile{Segments: 16, Variation: 0.2}
	e := greenEllipse()
	green := Ring(7, ChannelGreen, e, p)
	water := Ring(7, ChannelWater, e, p)
	bunker0 := Ring(7, ChannelBunker.Sub(0), e, p)
	bunker1 := Ring(7, ChannelBunker.Sub(1), e, p)

	assert.NotEqual(t, green, water)
	assert.NotEqual(t, bunker0, bunker1)
}

func TestRingVariationBounds(t *testing.T) {
	e := Ellipse{RadiusX: 10, RadiusZ: 10}
	for _, kind := range []Kind{KindGreen, KindFairway, KindWater, KindBunker, KindTee, KindRough} {
		p := ProfileFor(kind)
		for seed := int64(0); seed < 50; seed++ {
			ring := Ring(seed, ChannelGreen, e, p)
			for i, v := range ring {
				r := math.Hypot(v.X, v.Z)
				assert.GreaterOrEqual(t, r, 10*(1-p.Variation)-1e-9, "%s seed %d vertex %d", kind, seed, i)
				assert.LessOrEqual(t, r, 10*(1+p.Variation)+1e-9, "%s seed %d vertex %d", kind, seed, i)
			}
		}
	}
}

func TestRingZeroVariationIsEllipse(t *testing.T) {
	ring := Ring(99, ChannelTee, Ellipse{CenterX: 1, CenterZ: 2, RadiusX: 4, RadiusZ: 2}, Profile{Segments: 4})
	require.Len(t, ring, 5)
	assert.InDelta(t, 5, ring[0].X, 1e-12)
	assert.InDelta(t, 2, ring[0].Z, 1e-12)
	assert.InDelta(t, 4, ring[1].Z, 1e-12)
}

func TestRingNoSegments(t *testing.T) {
	assert.Nil(t, Ring(1, ChannelGreen, greenEllipse(), Profile{}))
}

func TestProfiles(t *testing.T) {
	assert.Greater(t, ProfileFor(KindWater).Segments, ProfileFor(KindTee).Segments)
	assert.Greater(t, ProfileFor(KindWater).Variation, ProfileFor(KindTee).Variation)
	assert.Equal(t, ProfileFor(KindRough), ProfileFor(Kind("unknown")))
}

func TestHashPure(t *testing.T) {
	assert.Equal(t, Hash(42, ChannelGreen, 3), Hash(42, ChannelGreen, 3))
	assert.NotEqual(t, Hash(42, ChannelGreen, 3), Hash(42, ChannelGreen, 4))
	assert.NotEqual(t, Hash(42, ChannelGreen, 3), Hash(42, ChannelFairway, 3))

	for i := range 1000 {
		u := Unit(5, ChannelColor, i)
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}

func TestRandRepeatable(t *testing.T) {
	a := NewRand(42, ChannelObstacles)
	b := NewRand(42, ChannelObstacles)
	for range 100 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.Equal(t, 100, a.Drawn())
}

func TestRandRanges(t *testing.T) {
	r := NewRand(1, ChannelLayout)
	for range 500 {
		v := r.Range(-3, 7)
		assert.GreaterOrEqual(t, v, -3.0)
		assert.Less(t, v, 7.0)

		n := r.IntRange(12, 24)
		assert.GreaterOrEqual(t, n, 12)
		assert.LessOrEqual(t, n, 24)

		s := r.Sign()
		assert.True(t, s == 1 || s == -1)
	}
	assert.Equal(t, 0, r.IntN(0))
	assert.Equal(t, 5, r.IntRange(5, 5))
}

func TestCentroid(t *testing.T) {
	ring := Ring(3, ChannelGreen, Ellipse{CenterX: 10, CenterZ: 20, RadiusX: 5, RadiusZ: 5}, Profile{Segments: 8})
	x, z, r := Centroid(ring)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, z, 1e-9)
	assert.InDelta(t, 5, r, 1e-9)

	x, z, r = Centroid(nil)
	assert.Zero(t, x)
	assert.Zero(t, z)
	assert.Zero(t, r)
}

func TestJitter(t *testing.T) {
	for i := range 200 {
		j := Jitter(8, ChannelColor, i, 0.05)
		assert.GreaterOrEqual(t, j, float32(-0.05))
		assert.LessOrEqual(t, j, float32(0.05))
	}
}
