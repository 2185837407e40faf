package scoring

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/greenkeeper/internal/hole"
	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/internal/terrain"
	"github.com/Faultbox/greenkeeper/pkg/math"
)

type fixedFlag struct {
	pos math.Vec3
	ok  bool
}

func (f fixedFlag) FlagPosition() (math.Vec3, bool) {
	return f.pos, f.ok
}

func TestRecordShotAgainstFlag(t *testing.T) {
	s := New(fixedFlag{pos: math.Vec3{X: 0, Z: 150}, ok: true}, nil)
	s.Initialize(150)
	require.Equal(t, Active, s.State())

	r, ok := s.RecordShot(math.Vec3{X: 2, Z: 151}, surface.Fairway)
	require.True(t, ok)
	assert.InDelta(t, gomath.Sqrt(5), r.Distance, 1e-9)
	assert.InDelta(t, 2.236, r.Distance, 1e-3)
	assert.False(t, r.IsPenalty)
	assert.True(t, r.Best)
	assert.Equal(t, 1, s.Shots())
	assert.Equal(t, r.Distance, s.BestDistance())
	assert.Equal(t, Scored, s.State())
}

func TestRecordShotIgnoresElevation(t *testing.T) {
	s := New(fixedFlag{pos: math.Vec3{X: 0, Y: 0.5, Z: 100}, ok: true}, nil)
	s.Initialize(100)
	r, _ := s.RecordShot(math.Vec3{X: 3, Y: 4, Z: 96}, surface.Green)
	assert.InDelta(t, 5, r.Distance, 1e-12)
}

func TestIdleShotIsNoop(t *testing.T) {
	s := New(fixedFlag{pos: math.Vec3{Z: 150}, ok: true}, nil)

	_, ok := s.RecordShot(math.Vec3{Z: 140}, surface.Fairway)
	assert.False(t, ok)
	assert.Zero(t, s.Shots())
	assert.True(t, gomath.IsInf(s.BestDistance(), 1))
	assert.Equal(t, Idle, s.State())

	s.Initialize(150)
	s.RecordShot(math.Vec3{Z: 140}, surface.Fairway)
	s.Terminate()
	best := s.BestDistance()

	_, ok = s.RecordShot(math.Vec3{Z: 150}, surface.Green)
	assert.False(t, ok)
	assert.Equal(t, best, s.BestDistance())
	assert.Equal(t, 1, s.Shots())
}

func TestBestDistanceOnlyImproves(t *testing.T) {
	s := New(fixedFlag{pos: math.Vec3{Z: 200}, ok: true}, nil)
	s.Initialize(200)

	shots := []struct {
		z    float64
		best bool
	}{
		{150, true},
		{120, false},
		{190, true},
		{185, false},
	}
	for i, shot := range shots {
		r, ok := s.RecordShot(math.Vec3{Z: shot.z}, surface.Fairway)
		require.True(t, ok)
		assert.Equal(t, i+1, r.Shot)
		assert.Equal(t, shot.best, r.Best, "shot %d", i+1)
	}
	assert.Equal(t, 10.0, s.BestDistance())
	assert.Equal(t, 4, s.Shots())
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 15.0, last.Distance)
}

func TestPenaltySurfaces(t *testing.T) {
	s := New(fixedFlag{pos: math.Vec3{Z: 150}, ok: true}, nil)
	s.Initialize(150)

	tests := []struct {
		surface string
		penalty bool
	}{
		{surface.Water, true},
		{surface.OutOfBounds, true},
		{surface.Bunker, false},
		{surface.Green, false},
		{"parking_lot", false},
	}
	for _, tt := range tests {
		r, _ := s.RecordShot(math.Vec3{Z: 100}, tt.surface)
		assert.Equal(t, tt.penalty, r.IsPenalty, tt.surface)
	}
}

func TestFallbackWithoutFlag(t *testing.T) {
	for _, anchors := range []AnchorSource{nil, fixedFlag{}} {
		s := New(anchors, nil)
		s.Initialize(150)
		r, ok := s.RecordShot(math.Vec3{X: 4, Z: 147}, surface.Rough)
		require.True(t, ok)
		assert.InDelta(t, 5, r.Distance, 1e-12)
	}
}

func TestInitializeResets(t *testing.T) {
	s := New(nil, nil)
	s.Initialize(100)
	s.RecordShot(math.Vec3{Z: 90}, surface.Fairway)
	s.Initialize(120)

	assert.Zero(t, s.Shots())
	assert.True(t, gomath.IsInf(s.BestDistance(), 1))
	_, ok := s.Last()
	assert.False(t, ok)
	assert.Equal(t, Active, s.State())
}

func TestScoresAgainstAssembledHole(t *testing.T) {
	h := hole.New(hole.NewMemoryScene(), terrain.Flat{}, nil)
	cfg := hole.Config{TargetDistance: 150, GreenWidth: 18, GreenDepth: 14, ShapeSeed: 42}
	_, err := h.Load(cfg)
	require.NoError(t, err)
	flag, ok := h.FlagPosition()
	require.True(t, ok)

	s := New(h, nil)
	s.Initialize(cfg.TargetDistance)
	r, ok := s.RecordShot(math.Vec3{X: flag.X + 3, Z: flag.Z - 4}, surface.Green)
	require.True(t, ok)
	assert.InDelta(t, 5, r.Distance, 1e-9)

	h.Clear()
	r, _ = s.RecordShot(math.Vec3{X: 0, Z: 140}, surface.Fairway)
	assert.InDelta(t, 10, r.Distance, 1e-12)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "scored", Scored.String())
	assert.Equal(t, "unknown", State(9).String())
}
