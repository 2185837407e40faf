package hole

import (
	"fmt"
	"math"

	"github.com/Faultbox/greenkeeper/internal/placement"
	"github.com/Faultbox/greenkeeper/internal/shape"
	"github.com/Faultbox/greenkeeper/internal/surface"
)

// Config is the declarative description of one hole. The tee sits at the
// origin and play runs along +Z; the green is centered at
// (GreenOffset, TargetDistance). All lengths are meters.
//
// A Config received from a remote authority is trusted as sent and must be
// shared verbatim between peers; ShapeSeed drives every organic outline and,
// when Obstacles is nil, the obstacle scatter.
type Config struct {
	TargetDistance float64 `yaml:"target_distance"`

	GreenWidth  float64 `yaml:"green_width"`  // X extent of the base ellipse
	GreenDepth  float64 `yaml:"green_depth"`  // Z extent of the base ellipse
	GreenOffset float64 `yaml:"green_offset"` // lateral (X) shift of the green from the center line

	// Cup position relative to the green center; Y is the second ground axis (world Z).
	HolePositionX float64 `yaml:"hole_position_x"`
	HolePositionY float64 `yaml:"hole_position_y"`

	ShapeSeed int64 `yaml:"shape_seed"`

	FairwayWidth float64 `yaml:"fairway_width,omitempty"`

	// RoughTiers is how many rough bands surround the fairway, innermost first.
	// Zero means every tier.
	RoughTiers int `yaml:"rough_tiers,omitempty"`

	WaterHazard *Hazard  `yaml:"water_hazard,omitempty"`
	Bunkers     []Hazard `yaml:"bunkers,omitempty"`

	// Obstacles, when non-nil, is the authoritative obstacle list and disables
	// local generation. An empty non-nil list means "no obstacles".
	Obstacles []placement.Placement `yaml:"obstacles,omitempty"`
}

// Hazard is the base ellipse of a water body or bunker.
type Hazard struct {
	CenterX float64 `yaml:"center_x"`
	CenterZ float64 `yaml:"center_z"`
	Width   float64 `yaml:"width"`
	Depth   float64 `yaml:"depth"`
}

// DefaultFairwayWidth applies when a payload omits fairway_width.
const DefaultFairwayWidth = 32.0

// Validate checks the dimensions assembly depends on.
func (c Config) Validate() error {
	switch {
	case !(c.TargetDistance > 0):
		return fmt.Errorf("%w: target_distance must be positive, got %v", ErrInvalidConfig, c.TargetDistance)
	case !(c.GreenWidth > 0) || !(c.GreenDepth > 0):
		return fmt.Errorf("%w: green dimensions must be positive, got %vx%v", ErrInvalidConfig, c.GreenWidth, c.GreenDepth)
	case c.FairwayWidth < 0:
		return fmt.Errorf("%w: fairway_width must not be negative, got %v", ErrInvalidConfig, c.FairwayWidth)
	case c.RoughTiers < 0 || c.RoughTiers > len(surface.RoughTiers):
		return fmt.Errorf("%w: rough_tiers must be within 0..%d, got %d", ErrInvalidConfig, len(surface.RoughTiers), c.RoughTiers)
	}
	if c.WaterHazard != nil && (!(c.WaterHazard.Width > 0) || !(c.WaterHazard.Depth > 0)) {
		return fmt.Errorf("%w: water hazard dimensions must be positive", ErrInvalidConfig)
	}
	for i, b := range c.Bunkers {
		if !(b.Width > 0) || !(b.Depth > 0) {
			return fmt.Errorf("%w: bunker %d dimensions must be positive", ErrInvalidConfig, i)
		}
	}
	return nil
}

// fairwayWidth returns the configured width or the default.
func (c Config) fairwayWidth() float64 {
	if c.FairwayWidth > 0 {
		return c.FairwayWidth
	}
	return DefaultFairwayWidth
}

// roughTiers returns the rough surfaces to build, outermost first.
func (c Config) roughTiers() []string {
	n := c.RoughTiers
	if n <= 0 || n > len(surface.RoughTiers) {
		n = len(surface.RoughTiers)
	}
	return surface.RoughTiers[len(surface.RoughTiers)-n:]
}

// Authoritative reports whether obstacles were supplied rather than generated.
func (c Config) Authoritative() bool {
	return c.Obstacles != nil
}

// Layout tunes self-generation.
type Layout struct {
	WaterChance float64 `yaml:"water_chance"`
	MinBunkers  int     `yaml:"min_bunkers"`
	MaxBunkers  int     `yaml:"max_bunkers"`
}

// DefaultLayout returns the layout used by Generate.
func DefaultLayout() Layout {
	return Layout{
		WaterChance: 0.35,
		MinBunkers:  0,
		MaxBunkers:  2,
	}
}

// Generate builds a complete Config for a hole of the given length from a seed.
// It is used when no authoritative payload is available; peers that share the
// seed and distance derive the same Config.
func Generate(targetDistance float64, seed int64) Config {
	return GenerateWith(targetDistance, seed, DefaultLayout())
}

// GenerateWith is Generate with explicit layout settings.
func GenerateWith(targetDistance float64, seed int64, layout Layout) Config {
	rng := shape.NewRand(seed, shape.ChannelLayout)

	cfg := Config{
		TargetDistance: targetDistance,
		GreenWidth:     rng.Range(16, 26),
		GreenDepth:     rng.Range(12, 22),
		GreenOffset:    float64(rng.Range(-0.06, 0.06) * targetDistance),
		ShapeSeed:      seed,
		FairwayWidth:   rng.Range(26, 40),
	}
	cfg.HolePositionX = float64(rng.Range(-0.3, 0.3)*cfg.GreenWidth) / 2
	cfg.HolePositionY = float64(rng.Range(-0.3, 0.3)*cfg.GreenDepth) / 2

	if rng.Chance(layout.WaterChance) {
		cfg.WaterHazard = &Hazard{
			CenterX: rng.Range(-8, 8),
			CenterZ: float64(rng.Range(0.35, 0.6) * targetDistance),
			Width:   float64(cfg.FairwayWidth * rng.Range(1.2, 2.0)),
			Depth:   rng.Range(10, 20),
		}
	}

	greenRadius := (cfg.GreenWidth + cfg.GreenDepth) / 4
	for range rng.IntRange(layout.MinBunkers, layout.MaxBunkers) {
		angle := rng.Range(0, 2*math.Pi)
		dist := greenRadius + rng.Range(4, 7)
		cfg.Bunkers = append(cfg.Bunkers, Hazard{
			CenterX: cfg.GreenOffset + float64(dist*math.Cos(angle)),
			CenterZ: targetDistance + float64(dist*math.Sin(angle)),
			Width:   rng.Range(5, 9),
			Depth:   rng.Range(4, 7),
		})
	}

	return cfg
}
