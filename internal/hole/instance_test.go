package hole

import (
	"context"
	"errors"
	"image"
	gomath "math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/greenkeeper/internal/geometry"
	"github.com/Faultbox/greenkeeper/internal/placement"
	"github.com/Faultbox/greenkeeper/internal/shape"
	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/internal/terrain"
	"github.com/Faultbox/greenkeeper/pkg/math"
)

func testConfig() Config {
	return Config{
		TargetDistance: 150,
		GreenWidth:     18,
		GreenDepth:     14,
		ShapeSeed:      42,
		FairwayWidth:   30,
		WaterHazard:    &Hazard{CenterX: 0, CenterZ: 70, Width: 40, Depth: 12},
		Bunkers:        []Hazard{{CenterX: 14, CenterZ: 152, Width: 6, Depth: 5}},
	}
}

func newTestInstance(t *testing.T, opts ...Option) (*Instance, *MemoryScene) {
	t.Helper()
	scene := NewMemoryScene()
	return New(scene, terrain.Flat{}, nil, opts...), scene
}

func TestLoadBuildOrder(t *testing.T) {
	h, scene := newTestInstance(t)
	report, err := h.Load(testConfig())
	require.NoError(t, err)

	want := []string{
		"background",
		"rough/deep_rough", "rough/rough", "rough/first_cut",
		"water",
		"bunker/0",
		"fairway",
		"green",
		"tee",
		"cup",
		"flagstick",
	}
	names := scene.Names()
	require.Greater(t, len(names), len(want))
	assert.Equal(t, want, names[:len(want)])
	for _, name := range names[len(want):] {
		assert.Regexp(t, `^obstacle/\d+/(trunk|canopy)$`, name)
	}

	assert.Equal(t, 9, report.Surfaces)
	assert.Equal(t, len(h.Obstacles()), report.Obstacles)
	assert.Equal(t, h.Generation(), report.Generation)
	assert.Len(t, h.Objects(), scene.Len())
}

func TestLoadCategoriesAndColors(t *testing.T) {
	h, scene := newTestInstance(t)
	_, err := h.Load(testConfig())
	require.NoError(t, err)

	rough, ok := scene.Get("rough/rough")
	require.True(t, ok)
	assert.Equal(t, CategoryRough, rough.Category)
	assert.Equal(t, surface.Rough, rough.Ground)

	for _, obj := range h.Objects() {
		assert.True(t, obj.Attached(), obj.Name)
		require.NotNil(t, obj.Mesh, obj.Name)
		assert.Len(t, obj.Mesh.Colors, obj.Mesh.VertexCount()*4, obj.Name)
		assert.False(t, obj.Material.Textured, obj.Name)
	}
}

func TestLoadLayerHeights(t *testing.T) {
	h, scene := newTestInstance(t)
	_, err := h.Load(testConfig())
	require.NoError(t, err)

	for _, name := range []string{"background", "rough/deep_rough", "water", "bunker/0", "fairway", "green", "tee"} {
		obj, ok := scene.Get(name)
		require.True(t, ok, name)
		want := float32(surface.Ground(obj.Ground).LayerHeight)
		assert.Equal(t, want, obj.Mesh.Bounds.Min[1], name)
		assert.Equal(t, want, obj.Mesh.Bounds.Max[1], name)
	}
}

func TestAnchors(t *testing.T) {
	h, _ := newTestInstance(t)
	cfg := testConfig()
	_, err := h.Load(cfg)
	require.NoError(t, err)

	center, ok := h.GreenCenter()
	require.True(t, ok)
	assert.InDelta(t, cfg.GreenOffset, center.X, 1.5)
	assert.InDelta(t, cfg.TargetDistance, center.Z, 1.5)

	radius, ok := h.GreenRadius()
	require.True(t, ok)
	assert.InDelta(t, (cfg.GreenWidth+cfg.GreenDepth)/4, radius, 1.5)

	ring := shape.Ring(cfg.ShapeSeed, shape.ChannelGreen, greenEllipse(cfg), shape.ProfileFor(shape.KindGreen))
	gx, gz, gr := shape.Centroid(ring)
	assert.Equal(t, gx, center.X)
	assert.Equal(t, gz, center.Z)
	assert.Equal(t, gr, radius)

	flag, ok := h.FlagPosition()
	require.True(t, ok)
	assert.Equal(t, center.X, flag.X)
	assert.Equal(t, center.Z, flag.Z)
	assert.Equal(t, surface.Ground(surface.Green).LayerHeight, flag.Y)
}

func TestFlagFollowsHolePosition(t *testing.T) {
	h, scene := newTestInstance(t)
	cfg := testConfig()
	cfg.HolePositionX = 2
	cfg.HolePositionY = -3
	_, err := h.Load(cfg)
	require.NoError(t, err)

	center, _ := h.GreenCenter()
	flag, ok := h.FlagPosition()
	require.True(t, ok)
	assert.InDelta(t, center.X+2, flag.X, 1e-9)
	assert.InDelta(t, center.Z-3, flag.Z, 1e-9)

	cup, ok := scene.Get("cup")
	require.True(t, ok)
	assert.InDelta(t, flag.X, float64(cup.Mesh.Bounds.Min[0]+cup.Mesh.Bounds.Max[0])/2, 1e-3)
	assert.Greater(t, cup.Mesh.Bounds.Min[1], float32(flag.Y))

	stick, ok := scene.Get("flagstick")
	require.True(t, ok)
	assert.InDelta(t, flag.Y, float64(stick.Mesh.Bounds.Min[1]), 1e-5)
	assert.InDelta(t, flag.Y+flagstickHeight, float64(stick.Mesh.Bounds.Max[1]), 1e-5)
}

func TestFlagClampedInsideGreen(t *testing.T) {
	h, _ := newTestInstance(t)
	cfg := testConfig()
	cfg.HolePositionX = 40
	_, err := h.Load(cfg)
	require.NoError(t, err)

	center, _ := h.GreenCenter()
	flag, _ := h.FlagPosition()
	assert.InDelta(t, cupInset*cfg.GreenWidth/2, flag.X-center.X, 1e-9)
	assert.InDelta(t, center.Z, flag.Z, 1e-9)
}

func TestFlagOnTerrain(t *testing.T) {
	scene := NewMemoryScene()
	h := New(scene, nil, nil)
	cfg := testConfig()
	_, err := h.Load(cfg)
	require.NoError(t, err)

	flag, ok := h.FlagPosition()
	require.True(t, ok)

	cx, cz, r := backgroundCircle(cfg)
	hm := terrain.Build(cfg.ShapeSeed, cx-r, cz-r, cx+r, cz+r, terrain.DefaultParams())
	assert.Equal(t, surface.Ground(surface.Green).LayerHeight+hm.HeightAt(flag.X, flag.Z), flag.Y)
}

type tiltedPlane struct{}

func (tiltedPlane) HeightAt(x, z float64) float64 {
	return 0.5 + 0.02*x + 0.01*z
}

// meshHeightAt interpolates the height of m under (x, z).
func meshHeightAt(m *geometry.Mesh, x, z float64) (float64, bool) {
	for t := 0; t+2 < m.Indices.Len(); t += 3 {
		i0, i1, i2 := m.Indices.At(t), m.Indices.At(t+1), m.Indices.At(t+2)
		a, b, c := planar(m, i0), planar(m, i1), planar(m, i2)
		area := edge(c[0], c[1], a, b)
		if gomath.Abs(area) < 1e-9 || !inTriangle(x, z, a, b, c) {
			continue
		}
		wa := edge(x, z, b, c) / area
		wb := edge(x, z, c, a) / area
		wc := 1 - wa - wb
		return wa*float64(m.Positions[i0*3+1]) +
			wb*float64(m.Positions[i1*3+1]) +
			wc*float64(m.Positions[i2*3+1]), true
	}
	return 0, false
}

func TestSurfacesShareTerrain(t *testing.T) {
	tests := []struct {
		name    string
		heights HeightQuery
	}{
		{"seeded terrain", nil},
		{"tilted plane", tiltedPlane{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := NewMemoryScene()
			h := New(scene, tt.heights, nil)
			_, err := h.Load(Generate(300, 7))
			require.NoError(t, err)

			green, ok := scene.Get(surface.Green)
			require.True(t, ok)
			greenLayer := surface.Ground(surface.Green).LayerHeight

			for i := 0; i < green.Mesh.VertexCount(); i++ {
				x := float64(green.Mesh.Positions[i*3])
				y := float64(green.Mesh.Positions[i*3+1])
				z := float64(green.Mesh.Positions[i*3+2])
				assert.InDelta(t, greenLayer+h.HeightAt(x, z), y, 1e-4)

				var under int
				for _, obj := range h.Objects() {
					if obj.Ground == "" || obj == green {
						continue
					}
					below, ok := meshHeightAt(obj.Mesh, x, z)
					if !ok {
						continue
					}
					under++
					gap := greenLayer - surface.Ground(obj.Ground).LayerHeight
					assert.InDelta(t, gap, y-below, 1e-3, "green vertex %d over %s", i, obj.Name)
				}
				assert.Positive(t, under, "green vertex %d floats over nothing", i)
			}

			for _, obj := range h.Objects() {
				if obj.Category != CategoryObstacle {
					continue
				}
				assert.InDelta(t, h.HeightAt(obj.Position.X, obj.Position.Z), obj.Position.Y, 1e-9, obj.Name)
				assert.GreaterOrEqual(t, float64(obj.Mesh.Bounds.Min[1]), obj.Position.Y-1e-4, obj.Name)
			}

			flag, ok := h.FlagPosition()
			require.True(t, ok)
			onGreen, ok := meshHeightAt(green.Mesh, flag.X, flag.Z)
			require.True(t, ok)
			assert.InDelta(t, onGreen, flag.Y, 1e-3)

			h.Clear()
			assert.Zero(t, h.HeightAt(flag.X, flag.Z))
		})
	}
}

func TestObstacleColorsUseOwnChannel(t *testing.T) {
	h, scene := newTestInstance(t)
	cfg := testConfig()
	cfg.Obstacles = make([]placement.Placement, 0, 130)
	for i := range 130 {
		cfg.Obstacles = append(cfg.Obstacles, placement.Placement{Type: surface.Bush, Size: surface.Small, X: float64(40 + i), Z: 20})
	}
	_, err := h.Load(cfg)
	require.NoError(t, err)
	require.Len(t, h.Obstacles(), 130)

	foliage := h.Obstacles()[128].Properties.FoliageColor
	canopy, ok := scene.Get("obstacle/128/canopy")
	require.True(t, ok)

	// The 129th obstacle must not replay the background's color draws.
	var shared int
	n := canopy.Mesh.VertexCount()
	for i := range n {
		drawn := canopy.Mesh.Colors[i*4+1]/foliage[1] - 1
		if gomath.Abs(float64(drawn-shape.Jitter(cfg.ShapeSeed, shape.ChannelColor, i, 0.08))) < 1e-5 {
			shared++
		}
	}
	assert.Less(t, shared, n)
}

func TestGeneratedObstaclesStayInRough(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		h, _ := newTestInstance(t)
		_, err := h.Load(Generate(300, seed))
		require.NoError(t, err)

		for _, o := range h.Obstacles() {
			ground, ok := h.SurfaceAt(o.X, o.Z)
			require.True(t, ok, "seed %d obstacle at (%.1f, %.1f) off the hole", seed, o.X, o.Z)
			assert.NotEqual(t, surface.Background, ground, "seed %d obstacle at (%.1f, %.1f)", seed, o.X, o.Z)
			assert.NotEqual(t, surface.Fairway, ground, "seed %d obstacle at (%.1f, %.1f)", seed, o.X, o.Z)
		}
	}
}

func TestGeneratedObstaclesRespectExclusion(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		h, _ := newTestInstance(t)
		cfg := Generate(220, seed)
		_, err := h.Load(cfg)
		require.NoError(t, err)

		center, ok := h.GreenCenter()
		require.True(t, ok)
		radius, _ := h.GreenRadius()
		margin := placement.DefaultParams().SafetyMargin
		for _, o := range h.Obstacles() {
			d := math.Vec2{X: o.X, Z: o.Z}.Distance(center.XZ())
			assert.GreaterOrEqual(t, d, radius+margin, "seed %d", seed)
		}
	}
}

func TestLoadDeterministic(t *testing.T) {
	a, sceneA := newTestInstance(t)
	b, sceneB := newTestInstance(t)
	_, err := a.Load(testConfig())
	require.NoError(t, err)
	_, err = b.Load(testConfig())
	require.NoError(t, err)

	assert.Equal(t, a.Obstacles(), b.Obstacles())
	assert.Equal(t, sceneA.Names(), sceneB.Names())
	for _, name := range sceneA.Names() {
		oa, _ := sceneA.Get(name)
		ob, _ := sceneB.Get(name)
		assert.Equal(t, oa.Mesh.Positions, ob.Mesh.Positions, name)
		assert.Equal(t, oa.Mesh.Colors, ob.Mesh.Colors, name)
	}
}

func TestAuthoritativeObstacles(t *testing.T) {
	h, _ := newTestInstance(t)
	cfg := testConfig()
	cfg.Obstacles = []placement.Placement{
		{Type: surface.Tree, Size: surface.Medium, X: 3, Z: 150},
		{Type: "cactus", Size: surface.Large, X: -40, Z: 80},
	}
	report, err := h.Load(cfg)
	require.NoError(t, err)

	obstacles := h.Obstacles()
	require.Len(t, obstacles, 2)
	assert.Equal(t, 3.0, obstacles[0].X)
	assert.Equal(t, surface.Lookup(surface.Tree, surface.Medium), obstacles[0].Properties)
	assert.Equal(t, surface.Lookup(surface.Bush, surface.Small), obstacles[1].Properties)
	assert.Equal(t, 2, report.Obstacles)
	assert.NoError(t, report.Warnings)

	cfg.Obstacles = []placement.Placement{}
	report, err = h.Load(cfg)
	require.NoError(t, err)
	assert.Empty(t, h.Obstacles())
	assert.Zero(t, report.Obstacles)
}

func TestMissingGreenDegrades(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h, scene := newTestInstance(t,
		WithLogger(zap.New(core)),
		WithProfile(shape.KindGreen, shape.Profile{Segments: 2}),
	)
	report, err := h.Load(testConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, report.Warnings, ErrMissingAnchor)
	assert.ErrorIs(t, report.Warnings, geometry.ErrInvalidGeometry)
	assert.Equal(t, 8, report.Surfaces)
	assert.GreaterOrEqual(t, report.Skipped, 1)

	_, ok := h.FlagPosition()
	assert.False(t, ok)
	_, ok = h.GreenCenter()
	assert.False(t, ok)
	_, ok = h.GreenRadius()
	assert.False(t, ok)

	_, ok = scene.Get("green")
	assert.False(t, ok)
	_, ok = scene.Get("cup")
	assert.False(t, ok)
	_, ok = scene.Get("tee")
	assert.True(t, ok)

	assert.NotEmpty(t, h.Obstacles())
	assert.NotZero(t, logs.FilterMessage("hole has no green").Len())
	assert.NotZero(t, logs.FilterMessage("skipping hole element").Len())
}

func TestExhaustedPlacementIsReported(t *testing.T) {
	params := placement.DefaultParams()
	params.MinCount, params.MaxCount = 4, 4
	params.SafetyMargin = 10000
	params.MaxAttempts = 3
	h, _ := newTestInstance(t, WithPlacement(params))

	report, err := h.Load(testConfig())
	require.NoError(t, err)
	assert.Empty(t, h.Obstacles())
	assert.ErrorIs(t, report.Warnings, placement.ErrExclusionRetryExhausted)
	assert.Equal(t, 4, report.Skipped)
}

func TestClearReleasesEverything(t *testing.T) {
	h, scene := newTestInstance(t)
	_, err := h.Load(testConfig())
	require.NoError(t, err)

	objects := h.Objects()
	gen := h.Generation()
	h.Clear()

	assert.Zero(t, scene.Len())
	assert.Equal(t, len(objects), scene.Removed)
	assert.Empty(t, h.Objects())
	assert.Empty(t, h.Obstacles())
	assert.Equal(t, gen+1, h.Generation())
	_, ok := h.FlagPosition()
	assert.False(t, ok)
	_, ok = h.Config()
	assert.False(t, ok)
	for _, obj := range objects {
		assert.False(t, obj.Attached(), obj.Name)
	}
}

func TestReloadReplacesPreviousHole(t *testing.T) {
	h, scene := newTestInstance(t)
	for seed := int64(1); seed <= 5; seed++ {
		_, err := h.Load(Generate(180, seed))
		require.NoError(t, err)
		assert.Equal(t, len(h.Objects()), scene.Len(), "seed %d", seed)
	}
	assert.Equal(t, scene.Added-scene.Len(), scene.Removed)

	cfg, ok := h.Config()
	require.True(t, ok)
	assert.Equal(t, int64(5), cfg.ShapeSeed)
}

func TestLoadRejectsInvalidConfigWithoutClearing(t *testing.T) {
	h, scene := newTestInstance(t)
	_, err := h.Load(testConfig())
	require.NoError(t, err)
	before := scene.Len()
	gen := h.Generation()

	_, err = h.Load(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, before, scene.Len())
	assert.Equal(t, gen, h.Generation())
}

func TestRoughTierOption(t *testing.T) {
	h, scene := newTestInstance(t)
	cfg := testConfig()
	cfg.RoughTiers = 1
	_, err := h.Load(cfg)
	require.NoError(t, err)

	_, ok := scene.Get("rough/first_cut")
	assert.True(t, ok)
	_, ok = scene.Get("rough/deep_rough")
	assert.False(t, ok)
}

type fakeLoader struct {
	gate chan struct{}
	fail map[string]bool

	mu    sync.Mutex
	calls []string
}

func (l *fakeLoader) Load(path string) (*image.RGBA, error) {
	l.mu.Lock()
	l.calls = append(l.calls, path)
	l.mu.Unlock()
	if l.gate != nil {
		<-l.gate
	}
	if l.fail[path] {
		return nil, errors.New("file not found")
	}
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func TestTexturesApplied(t *testing.T) {
	loader := &fakeLoader{fail: map[string]bool{"water.png": true}}
	scene := NewMemoryScene()
	h := New(scene, terrain.Flat{}, loader)
	_, err := h.Load(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.AwaitTextures(ctx))
	assert.Zero(t, h.PendingTextures())

	for _, name := range []string{"rough/deep_rough", "rough/rough", "bunker/0", "fairway", "green"} {
		obj, _ := scene.Get(name)
		assert.True(t, obj.Material.Textured, name)
		assert.NotNil(t, obj.Material.Texture, name)
		assert.Equal(t, surface.Ground(obj.Ground).Texture, obj.Material.TexturePath, name)
	}
	for _, name := range []string{"water", "rough/first_cut", "tee", "background"} {
		obj, _ := scene.Get(name)
		assert.False(t, obj.Material.Textured, name)
		assert.Equal(t, surface.Ground(obj.Ground).Color, obj.Material.Color, name)
	}
	assert.Equal(t, 6, scene.Materials)
}

func TestPollTexturesDoesNotBlock(t *testing.T) {
	loader := &fakeLoader{gate: make(chan struct{})}
	h := New(NewMemoryScene(), terrain.Flat{}, loader)
	_, err := h.Load(testConfig())
	require.NoError(t, err)

	assert.Zero(t, h.PollTextures())
	assert.Equal(t, 6, h.PendingTextures())

	close(loader.gate)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.AwaitTextures(ctx))
	assert.Zero(t, h.PendingTextures())
}

func TestStaleTexturesDropped(t *testing.T) {
	loader := &fakeLoader{gate: make(chan struct{})}
	scene := NewMemoryScene()
	h := New(scene, terrain.Flat{}, loader)
	_, err := h.Load(testConfig())
	require.NoError(t, err)
	old := h.Objects()

	h.Clear()
	close(loader.gate)

	assert.Zero(t, h.PendingTextures())
	assert.Zero(t, h.PollTextures())
	for _, obj := range old {
		assert.False(t, obj.Material.Textured, obj.Name)
	}
	assert.Zero(t, scene.Materials)
}

func TestAwaitTexturesHonorsContext(t *testing.T) {
	loader := &fakeLoader{gate: make(chan struct{})}
	defer close(loader.gate)
	h := New(NewMemoryScene(), terrain.Flat{}, loader)
	_, err := h.Load(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.AwaitTextures(ctx), context.DeadlineExceeded)
}
