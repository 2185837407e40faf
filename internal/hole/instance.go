// Package hole assembles a playable golf hole from a Config: ground surfaces,
// hazards, the cup and flagstick, and the obstacle field.
//
// An Instance owns everything built for the current hole. Loading a new hole
// releases the previous one first, so scene objects, obstacles and anchors
// never outlive the hole they belong to.
package hole

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/placement"
	"github.com/Faultbox/greenkeeper/internal/shape"
	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/internal/terrain"
	"github.com/Faultbox/greenkeeper/pkg/math"
)

// HeightQuery returns ground elevation at a planar position.
type HeightQuery interface {
	HeightAt(x, z float64) float64
}

// Report summarizes one Load.
type Report struct {
	Generation uint64
	Surfaces   int // scene objects built for ground surfaces
	Obstacles  int
	Skipped    int // surfaces, furniture and obstacles that could not be built

	// Warnings combines every non-fatal degradation of the load (multierr);
	// nil when the hole was built completely.
	Warnings error
}

// Option configures an Instance.
type Option func(*Instance)

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(h *Instance) {
		if log != nil {
			h.log = log
		}
	}
}

// WithPlacement sets the generative placement parameters.
func WithPlacement(p placement.Params) Option {
	return func(h *Instance) {
		h.placementParams = p
	}
}

// WithTerrain sets the parameters of the seeded heightmap used when no
// HeightQuery was given to New.
func WithTerrain(p terrain.Params) Option {
	return func(h *Instance) {
		h.terrainParams = p
	}
}

// WithProfile overrides the sampling profile of one surface kind.
func WithProfile(kind shape.Kind, p shape.Profile) Option {
	return func(h *Instance) {
		h.profiles[kind] = p
	}
}

// Instance is the live state of one hole.
type Instance struct {
	scene   Scene
	heights HeightQuery
	loader  TextureLoader
	log     *zap.Logger

	placementParams placement.Params
	terrainParams   terrain.Params
	profiles        map[shape.Kind]shape.Profile
	placer          *placement.Engine

	generation uint64
	config     Config
	loaded     bool

	objects   []*SceneObject
	obstacles []surface.Obstacle
	ground    HeightQuery

	hasAnchor   bool
	flag        math.Vec3
	greenCenter math.Vec3
	greenRadius float64

	textures chan textureResult
	pending  int
}

// New creates an empty hole bound to a scene. A nil heights builds a seeded
// heightmap for every hole; a nil loader leaves surfaces flat colored.
func New(scene Scene, heights HeightQuery, loader TextureLoader, opts ...Option) *Instance {
	if scene == nil {
		scene = NewMemoryScene()
	}
	h := &Instance{
		scene:           scene,
		heights:         heights,
		loader:          loader,
		log:             zap.NewNop(),
		placementParams: placement.DefaultParams(),
		terrainParams:   terrain.DefaultParams(),
		profiles:        make(map[shape.Kind]shape.Profile),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.Named("hole")
	h.placer = placement.New(h.placementParams, h.log)
	return h
}

// Load replaces the current hole with one built from cfg. An invalid cfg is
// rejected before anything is released. Geometry, obstacles and anchors are
// ready when Load returns; textures arrive later through PollTextures.
func (h *Instance) Load(cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h.Clear()
	h.config = cfg
	h.loaded = true

	report := h.build(cfg)

	h.log.Info("hole loaded",
		zap.Uint64("generation", h.generation),
		zap.Int64("seed", cfg.ShapeSeed),
		zap.Float64("target_distance", cfg.TargetDistance),
		zap.Int("surfaces", report.Surfaces),
		zap.Int("obstacles", report.Obstacles),
		zap.Int("skipped", report.Skipped),
		zap.Bool("authoritative", cfg.Authoritative()),
	)
	return report, nil
}

// Clear removes every object of the current hole from the scene and forgets
// its obstacles and anchors. Texture loads still in flight are abandoned.
func (h *Instance) Clear() {
	for _, obj := range h.objects {
		h.scene.Remove(obj)
		obj.attached = false
	}
	h.objects = nil
	h.obstacles = nil
	h.ground = nil
	h.hasAnchor = false
	h.flag = math.Vec3{}
	h.greenCenter = math.Vec3{}
	h.greenRadius = 0
	h.loaded = false

	h.generation++
	h.textures = nil
	h.pending = 0
}

// Generation increments on every Clear, including the one done by Load.
func (h *Instance) Generation() uint64 {
	return h.generation
}

// Config returns the configuration of the loaded hole.
func (h *Instance) Config() (Config, bool) {
	return h.config, h.loaded
}

// FlagPosition returns the base of the flagstick.
func (h *Instance) FlagPosition() (math.Vec3, bool) {
	return h.flag, h.hasAnchor
}

// GreenCenter returns the centroid of the green outline at green height.
func (h *Instance) GreenCenter() (math.Vec3, bool) {
	return h.greenCenter, h.hasAnchor
}

// GreenRadius returns the mean distance from the green center to its outline.
func (h *Instance) GreenRadius() (float64, bool) {
	return h.greenRadius, h.hasAnchor
}

// Obstacles returns the obstacle field of the loaded hole.
func (h *Instance) Obstacles() []surface.Obstacle {
	return slices.Clone(h.obstacles)
}

// Objects returns the scene objects of the loaded hole in build order.
func (h *Instance) Objects() []*SceneObject {
	return slices.Clone(h.objects)
}

func (h *Instance) profile(kind shape.Kind) shape.Profile {
	if p, ok := h.profiles[kind]; ok {
		return p
	}
	return shape.ProfileFor(kind)
}
