package hole

import (
	"fmt"
	gomath "math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/geometry"
	"github.com/Faultbox/greenkeeper/internal/placement"
	"github.com/Faultbox/greenkeeper/internal/shape"
	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/internal/terrain"
	"github.com/Faultbox/greenkeeper/pkg/math"
)

const (
	backgroundMargin   = 80.0 // meters of ground beyond the hole on every side
	backgroundSegments = 64

	fairwayStart = 10.0 // fairway begins this far in front of the tee

	teeRadiusX = 4.0
	teeRadiusZ = 3.0

	// The cup stays inside this fraction of the green half-extents.
	cupInset    = 0.8
	cupRadius   = 0.054
	cupSegments = 16
	cupLift     = 0.004

	flagstickRadius   = 0.03
	flagstickHeight   = 2.2
	flagstickSegments = 8

	obstacleSegments = 10
	// Foliage color draws are keyed index*obstacleColorStride + vertex.
	obstacleColorStride = 1 << 12
)

var (
	cupColor       = [4]float32{0.05, 0.05, 0.05, 1}
	flagstickColor = [4]float32{0.95, 0.95, 0.92, 1}
)

// roughMargins widens the fairway ellipse into each rough tier: {X, Z} meters.
var roughMargins = map[string][2]float64{
	surface.DeepRough: {36, 45},
	surface.Rough:     {22, 30},
	surface.FirstCut:  {6, 10},
}

// build assembles every surface and obstacle of cfg. It never fails; each
// degradation lands in the report instead.
func (h *Instance) build(cfg Config) *Report {
	report := &Report{Generation: h.generation}
	heights := h.heightsFor(cfg)
	h.ground = heights
	surfaces, green := h.layout(cfg)
	if h.loader != nil {
		// One slot per surface so abandoned loads never block.
		h.textures = make(chan textureResult, len(surfaces))
	}

	for i, s := range surfaces {
		if err := h.buildSurface(cfg.ShapeSeed, i, s, heights); err != nil {
			h.degrade(report, err)
			continue
		}
		report.Surfaces++
		if s.Name == surface.Green {
			h.recordAnchors(cfg, green, heights)
		}
	}

	if h.hasAnchor {
		h.placeFlag()
	} else {
		h.log.Warn("hole has no green", zap.Error(ErrMissingAnchor))
		report.Warnings = multierr.Append(report.Warnings, ErrMissingAnchor)
	}

	h.obstacles = h.placeObstacles(cfg, report)
	report.Obstacles = len(h.obstacles)
	for i, o := range h.obstacles {
		if err := h.buildObstacle(cfg.ShapeSeed, i, o, heights); err != nil {
			h.degrade(report, err)
		}
	}
	return report
}

// degrade logs a skipped piece and records it in the report.
func (h *Instance) degrade(report *Report, err error) {
	h.log.Warn("skipping hole element", zap.Error(err))
	report.Warnings = multierr.Append(report.Warnings, err)
	report.Skipped++
}

// heightsFor returns the elevation source for a hole.
func (h *Instance) heightsFor(cfg Config) HeightQuery {
	if h.heights != nil {
		return h.heights
	}
	cx, cz, r := backgroundCircle(cfg)
	return terrain.Build(cfg.ShapeSeed, cx-r, cz-r, cx+r, cz+r, h.terrainParams)
}

// backgroundCircle returns the center and radius of the ground disc under the hole.
func backgroundCircle(cfg Config) (cx, cz, radius float64) {
	return cfg.GreenOffset / 2, cfg.TargetDistance / 2, cfg.TargetDistance/2 + backgroundMargin
}

func fairwayEllipse(cfg Config) shape.Ellipse {
	start := gomath.Min(fairwayStart, 0.1*cfg.TargetDistance)
	return shape.Ellipse{
		CenterX: cfg.GreenOffset / 2,
		CenterZ: (start + cfg.TargetDistance) / 2,
		RadiusX: cfg.fairwayWidth() / 2,
		RadiusZ: (cfg.TargetDistance - start) / 2,
	}
}

func greenEllipse(cfg Config) shape.Ellipse {
	return shape.Ellipse{
		CenterX: cfg.GreenOffset,
		CenterZ: cfg.TargetDistance,
		RadiusX: cfg.GreenWidth / 2,
		RadiusZ: cfg.GreenDepth / 2,
	}
}

func hazardEllipse(hz Hazard) shape.Ellipse {
	return shape.Ellipse{CenterX: hz.CenterX, CenterZ: hz.CenterZ, RadiusX: hz.Width / 2, RadiusZ: hz.Depth / 2}
}

// layout lists the ground surfaces of cfg in build order, each at its layer
// height, and returns the green outline separately for the anchors.
func (h *Instance) layout(cfg Config) ([]Surface, []geometry.Vertex) {
	seed := cfg.ShapeSeed
	var surfaces []Surface

	cx, cz, r := backgroundCircle(cfg)
	surfaces = append(surfaces, CircleSurface(surface.Background, surface.Background, Circle{
		Center:   geometry.VY(cx, cz, surface.Ground(surface.Background).LayerHeight),
		Radius:   r,
		Segments: backgroundSegments,
	}))

	fairway := fairwayEllipse(cfg)
	for _, tier := range cfg.roughTiers() {
		margin := roughMargins[tier]
		e := fairway
		e.RadiusX += margin[0]
		e.RadiusZ += margin[1]
		ring := shape.Ring(seed, shape.ChannelRough.Sub(tierIndex(tier)), e, h.profile(shape.KindRough))
		surfaces = append(surfaces, PolygonSurface(CategoryRough+"/"+tier, tier, flat(ring, tier)))
	}

	if cfg.WaterHazard != nil {
		ring := shape.Ring(seed, shape.ChannelWater, hazardEllipse(*cfg.WaterHazard), h.profile(shape.KindWater))
		surfaces = append(surfaces, PolygonSurface(surface.Water, surface.Water, flat(ring, surface.Water)))
	}

	for i, b := range cfg.Bunkers {
		ring := shape.Ring(seed, shape.ChannelBunker.Sub(i), hazardEllipse(b), h.profile(shape.KindBunker))
		surfaces = append(surfaces, PolygonSurface(fmt.Sprintf("%s/%d", surface.Bunker, i), surface.Bunker, flat(ring, surface.Bunker)))
	}

	ring := shape.Ring(seed, shape.ChannelFairway, fairway, h.profile(shape.KindFairway))
	surfaces = append(surfaces, PolygonSurface(surface.Fairway, surface.Fairway, flat(ring, surface.Fairway)))

	green := shape.Ring(seed, shape.ChannelGreen, greenEllipse(cfg), h.profile(shape.KindGreen))
	surfaces = append(surfaces, PolygonSurface(surface.Green, surface.Green, flat(green, surface.Green)))

	tee := shape.Ring(seed, shape.ChannelTee, shape.Ellipse{RadiusX: teeRadiusX, RadiusZ: teeRadiusZ}, h.profile(shape.KindTee))
	surfaces = append(surfaces, PolygonSurface(surface.Tee, surface.Tee, flat(tee, surface.Tee)))

	return surfaces, green
}

func tierIndex(tier string) int {
	for i, name := range surface.RoughTiers {
		if name == tier {
			return i
		}
	}
	return 0
}

// flat lifts an outline to the layer height of its surface.
func flat(ring []geometry.Vertex, ground string) []geometry.Vertex {
	y := surface.Ground(ground).LayerHeight
	out := make([]geometry.Vertex, len(ring))
	for i, v := range ring {
		out[i] = geometry.VY(v.X, v.Z, y)
	}
	return out
}

func categoryOf(ground string) string {
	switch ground {
	case surface.DeepRough, surface.Rough, surface.FirstCut:
		return CategoryRough
	default:
		return ground
	}
}

// buildSurface meshes one surface, drapes it on the terrain, colors it and
// attaches it to the scene. Every surface shares one height query so layer
// offsets hold wherever surfaces overlap.
func (h *Instance) buildSurface(seed int64, ordinal int, s Surface, heights HeightQuery) error {
	mesh, err := s.Mesh()
	if err != nil {
		return fmt.Errorf("surface %s: %w", s.Name, err)
	}
	mesh.Drape(heights.HeightAt)

	props := surface.Ground(s.Ground)
	ch := shape.ChannelColor.Sub(ordinal)
	mesh.SetColors(props.Color, func(i int) float32 {
		return shape.Jitter(seed, ch, i, props.ColorJitter)
	})

	obj := &SceneObject{
		Name:     s.Name,
		Category: categoryOf(s.Ground),
		Ground:   s.Ground,
		Mesh:     mesh,
		Material: Material{Color: props.Color},
		Position: boundsCenter(mesh),
	}
	if err := h.attach(obj); err != nil {
		return fmt.Errorf("surface %s: %w", s.Name, err)
	}
	if props.Texture != "" {
		h.requestTexture(obj, props.Texture)
	}
	return nil
}

func boundsCenter(m *geometry.Mesh) math.Vec3 {
	return math.Vec3{
		X: float64(m.Bounds.Min[0]+m.Bounds.Max[0]) / 2,
		Y: float64(m.Bounds.Min[1]),
		Z: float64(m.Bounds.Min[2]+m.Bounds.Max[2]) / 2,
	}
}

func (h *Instance) attach(obj *SceneObject) error {
	if err := h.scene.Add(obj); err != nil {
		return err
	}
	obj.attached = true
	h.objects = append(h.objects, obj)
	return nil
}

// recordAnchors derives the green center, radius and flag position from the
// green outline.
func (h *Instance) recordAnchors(cfg Config, green []geometry.Vertex, heights HeightQuery) {
	gx, gz, radius := shape.Centroid(green)
	layer := surface.Ground(surface.Green).LayerHeight

	fx, fz := clampToEllipse(cfg.HolePositionX, cfg.HolePositionY,
		cupInset*cfg.GreenWidth/2, cupInset*cfg.GreenDepth/2)
	fx += gx
	fz += gz

	h.greenCenter = math.Vec3{X: gx, Y: layer + heights.HeightAt(gx, gz), Z: gz}
	h.greenRadius = radius
	h.flag = math.Vec3{X: fx, Y: layer + heights.HeightAt(fx, fz), Z: fz}
	h.hasAnchor = true
}

// clampToEllipse pulls (dx, dz) back onto the ellipse with radii (rx, rz) when outside it.
func clampToEllipse(dx, dz, rx, rz float64) (float64, float64) {
	if rx <= 0 || rz <= 0 {
		return 0, 0
	}
	k := gomath.Hypot(dx/rx, dz/rz)
	if k <= 1 {
		return dx, dz
	}
	return dx / k, dz / k
}

// placeFlag adds the cup and flagstick at the flag anchor.
func (h *Instance) placeFlag() {
	f := h.flag

	cup, err := geometry.Circle(geometry.VY(f.X, f.Z, f.Y+cupLift), cupRadius, cupSegments)
	if err == nil {
		cup.SetColors(cupColor, nil)
		err = h.attach(&SceneObject{
			Name: CategoryCup, Category: CategoryCup, Mesh: cup,
			Material: Material{Color: cupColor}, Position: f,
		})
	}
	if err != nil {
		h.log.Warn("cup not built", zap.Error(err))
	}

	stick, err := geometry.Cylinder(flagstickRadius, flagstickHeight, flagstickSegments)
	if err == nil {
		stick.Translate(float32(f.X), float32(f.Y), float32(f.Z))
		stick.SetColors(flagstickColor, nil)
		err = h.attach(&SceneObject{
			Name: CategoryFlagstick, Category: CategoryFlagstick, Mesh: stick,
			Material: Material{Color: flagstickColor}, Position: f,
		})
	}
	if err != nil {
		h.log.Warn("flagstick not built", zap.Error(err))
	}
}

// placeObstacles hydrates authoritative obstacles or generates them from the seed.
func (h *Instance) placeObstacles(cfg Config, report *Report) []surface.Obstacle {
	if cfg.Authoritative() {
		return h.placer.Hydrate(cfg.Obstacles)
	}

	field := placement.Field{
		TargetDistance:   cfg.TargetDistance,
		FairwayHalfWidth: cfg.fairwayWidth() / 2,
		CenterX:          fairwayEllipse(cfg).CenterX,
		Rough:            h.roughBounds(cfg),
		HasGreen:         h.hasAnchor,
		GreenCenter:      h.greenCenter.XZ(),
		GreenRadius:      h.greenRadius,
	}
	obstacles, err := h.placer.Generate(cfg.ShapeSeed, field)
	if err != nil {
		skipped := multierr.Errors(err)
		report.Skipped += len(skipped)
		report.Warnings = multierr.Append(report.Warnings, err)
	}
	return obstacles
}

// roughBounds returns the outermost rough ellipse shrunk until it fits inside
// every jittered outline the rough profile can produce.
func (h *Instance) roughBounds(cfg Config) shape.Ellipse {
	e := fairwayEllipse(cfg)
	margin := roughMargins[cfg.roughTiers()[0]]
	p := h.profile(shape.KindRough)
	if p.Segments < 3 {
		return shape.Ellipse{}
	}
	inset := (1 - p.Variation) * gomath.Cos(gomath.Pi/float64(p.Segments))
	e.RadiusX = (e.RadiusX + margin[0]) * inset
	e.RadiusZ = (e.RadiusZ + margin[1]) * inset
	return e
}

// buildObstacle adds the trunk and canopy of a tree, or the canopy of a bush.
// A failed mesh loses only the visual; the obstacle stays in the field.
func (h *Instance) buildObstacle(seed int64, index int, o surface.Obstacle, heights HeightQuery) error {
	p := o.Properties
	base := math.Vec3{X: o.X, Y: heights.HeightAt(o.X, o.Z), Z: o.Z}
	ch := shape.ChannelObstacles.Sub(1)

	if p.TrunkHeight > 0 {
		trunk, err := geometry.Cylinder(p.TrunkRadius, p.TrunkHeight, obstacleSegments)
		if err != nil {
			return fmt.Errorf("obstacle %d trunk: %w", index, err)
		}
		trunk.Translate(float32(o.X), float32(base.Y), float32(o.Z))
		trunk.SetColors(p.TrunkColor, nil)
		if err := h.attach(&SceneObject{
			Name:     fmt.Sprintf("%s/%d/trunk", CategoryObstacle, index),
			Category: CategoryObstacle,
			Mesh:     trunk,
			Material: Material{Color: p.TrunkColor},
			Position: base,
		}); err != nil {
			return fmt.Errorf("obstacle %d trunk: %w", index, err)
		}
	}

	canopy, err := geometry.Cone(p.CanopyRadius, p.CanopyHeight, obstacleSegments)
	if err != nil {
		return fmt.Errorf("obstacle %d canopy: %w", index, err)
	}
	canopy.Translate(float32(o.X), float32(base.Y+p.TrunkHeight), float32(o.Z))
	canopy.SetColors(p.FoliageColor, func(i int) float32 {
		return shape.Jitter(seed, ch, index*obstacleColorStride+i, 0.08)
	})
	if err := h.attach(&SceneObject{
		Name:     fmt.Sprintf("%s/%d/canopy", CategoryObstacle, index),
		Category: CategoryObstacle,
		Mesh:     canopy,
		Material: Material{Color: p.FoliageColor},
		Position: base,
	}); err != nil {
		return fmt.Errorf("obstacle %d canopy: %w", index, err)
	}
	return nil
}
