// Package placement scatters trees and bushes over the rough.
//
// Placements come from one of two sources. In authoritative mode a remote peer
// supplies every position and the engine only hydrates properties. In generative
// mode the engine draws count, type, size and position from the hole seed.
package placement

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/shape"
	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/pkg/math"
)

// ErrExclusionRetryExhausted is matched by every ExhaustedError.
var ErrExclusionRetryExhausted = errors.New("exclusion retries exhausted")

// ExhaustedError reports an obstacle that was skipped because every sampled
// position fell inside the green exclusion zone or outside the rough.
type ExhaustedError struct {
	Index    int
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("obstacle %d skipped after %d attempts: %v", e.Index, e.Attempts, ErrExclusionRetryExhausted)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrExclusionRetryExhausted
}

// Placement is an authoritative obstacle position as sent by a remote peer.
type Placement struct {
	Type surface.ObstacleType `yaml:"type"`
	Size surface.Size         `yaml:"size"`
	X    float64              `yaml:"x"`
	Z    float64              `yaml:"z"`
}

// Params tunes generative placement.
type Params struct {
	MinCount int `yaml:"min_count"`
	MaxCount int `yaml:"max_count"`

	// SafetyMargin is added to the green radius to form the exclusion zone.
	SafetyMargin float64 `yaml:"safety_margin"`
	// MaxAttempts bounds re-sampling per obstacle.
	MaxAttempts int `yaml:"max_attempts"`

	// FairwayClearance is the gap kept between the fairway edge and the nearest obstacle.
	FairwayClearance float64 `yaml:"fairway_clearance"`
	// SideSpread is the lateral band width at mid-hole; it widens with distance from the tee.
	SideSpread float64 `yaml:"side_spread"`
	// TreeWeight is the probability an obstacle is a tree rather than a bush.
	TreeWeight float64 `yaml:"tree_weight"`
}

// DefaultParams returns the standard scatter settings.
func DefaultParams() Params {
	return Params{
		MinCount:         12,
		MaxCount:         24,
		SafetyMargin:     5,
		MaxAttempts:      20,
		FairwayClearance: 3,
		SideSpread:       25,
		TreeWeight:       0.6,
	}
}

// Field is the playable area obstacles are scattered around.
type Field struct {
	TargetDistance   float64
	FairwayHalfWidth float64
	// CenterX is the X of the fairway center line.
	CenterX float64
	// Rough is the outermost rough obstacles must stay inside. The zero value
	// leaves the scatter unbounded.
	Rough shape.Ellipse

	// HasGreen is false when assembly found no green; the exclusion check is then skipped.
	HasGreen    bool
	GreenCenter math.Vec2
	GreenRadius float64
}

// Excluded reports whether (x, z) falls inside the green exclusion zone.
func (f Field) Excluded(x, z, margin float64) bool {
	if !f.HasGreen {
		return false
	}
	return math.Vec2{X: x, Z: z}.Distance(f.GreenCenter) < f.GreenRadius+margin
}

// roomBeside returns the half-width of the rough at z, measured from its
// center line, and whether the field has a rough at all.
func (f Field) roomBeside(z float64) (float64, bool) {
	r := f.Rough
	if r.RadiusX <= 0 || r.RadiusZ <= 0 {
		return 0, false
	}
	dz := (z - r.CenterZ) / r.RadiusZ
	if dz*dz >= 1 {
		return 0, true
	}
	return r.RadiusX * gomath.Sqrt(1-dz*dz), true
}

// Engine places obstacles.
type Engine struct {
	params Params
	log    *zap.Logger
}

// New creates an engine. A nil logger discards output.
func New(params Params, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if params.MaxAttempts < 1 {
		params.MaxAttempts = 1
	}
	if params.MaxCount < params.MinCount {
		params.MaxCount = params.MinCount
	}
	return &Engine{params: params, log: log.Named("placement")}
}

// Params returns the engine settings after normalization.
func (e *Engine) Params() Params {
	return e.params
}

// Hydrate turns authoritative placements into obstacles. Positions are trusted
// as sent; no exclusion check and no randomness is applied.
func (e *Engine) Hydrate(placements []Placement) []surface.Obstacle {
	out := make([]surface.Obstacle, 0, len(placements))
	for _, p := range placements {
		if _, found := surface.Resolve(p.Type, p.Size); !found {
			e.log.Debug("unknown obstacle, using default properties",
				zap.String("type", string(p.Type)),
				zap.String("size", string(p.Size)),
			)
		}
		out = append(out, surface.NewObstacle(p.Type, p.Size, p.X, p.Z))
	}
	return out
}

// Generate scatters obstacles from the seed. Obstacles whose every attempt lands
// in the exclusion zone are skipped; the returned error lists them (one
// ExhaustedError each, combined with multierr) alongside the obstacles that were placed.
func (e *Engine) Generate(seed int64, f Field) ([]surface.Obstacle, error) {
	rng := shape.NewRand(seed, shape.ChannelObstacles)
	count := rng.IntRange(e.params.MinCount, e.params.MaxCount)

	out := make([]surface.Obstacle, 0, count)
	var errs error
	for i := range count {
		typ := surface.Bush
		if rng.Chance(e.params.TreeWeight) {
			typ = surface.Tree
		}
		size := surface.Sizes[rng.IntN(len(surface.Sizes))]

		placed := false
		for range e.params.MaxAttempts {
			x, z, ok := e.sample(rng, f)
			if !ok || f.Excluded(x, z, e.params.SafetyMargin) {
				continue
			}
			out = append(out, surface.NewObstacle(typ, size, x, z))
			placed = true
			break
		}
		if !placed {
			err := &ExhaustedError{Index: i, Attempts: e.params.MaxAttempts}
			e.log.Warn("skipping obstacle", zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}

	e.log.Debug("obstacles generated",
		zap.Int64("seed", seed),
		zap.Int("requested", count),
		zap.Int("placed", len(out)),
	)
	return out, errs
}

// sample proposes a position beside the fairway. Obstacles sit on either side,
// and the band they fall in widens the further they are from the tee until it
// meets the edge of the rough. It reports false when the rough leaves no room
// beside the fairway at the drawn distance.
func (e *Engine) sample(rng *shape.Rand, f Field) (x, z float64, ok bool) {
	progress := rng.Range(0.1, 1.1)
	side := rng.Sign()
	u := rng.Float64()

	z = float64(progress * f.TargetDistance)
	clearance := f.FairwayHalfWidth + e.params.FairwayClearance
	spread := e.params.SideSpread * (0.5 + progress)
	if room, bounded := f.roomBeside(z); bounded {
		if room <= clearance {
			return 0, 0, false
		}
		spread = gomath.Min(spread, room-clearance)
	}
	lateral := clearance + float64(u*spread)
	return f.CenterX + float64(side*lateral), z, true
}
