// Package scoring tracks shots on the current hole and measures each landing
// position against the flag.
package scoring

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/pkg/math"
)

// State of a Scorer.
type State int

const (
	Idle State = iota
	Active
	Scored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Scored:
		return "scored"
	default:
		return "unknown"
	}
}

// AnchorSource provides the flag position of the loaded hole.
type AnchorSource interface {
	FlagPosition() (math.Vec3, bool)
}

// Result is the outcome of one recorded shot. Distance is in meters.
type Result struct {
	Distance  float64
	IsPenalty bool
	Surface   string
	Shot      int
	Best      bool // the shot improved the best distance
}

// Scorer is a per-hole shot counter. It decides nothing about when a hole
// ends; the caller terminates it.
type Scorer struct {
	anchors AnchorSource
	log     *zap.Logger

	state          State
	targetDistance float64
	shots          int
	best           float64
	last           Result
}

// New creates an idle scorer. anchors may be nil, in which case every shot is
// measured along the hole line.
func New(anchors AnchorSource, log *zap.Logger) *Scorer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{
		anchors: anchors,
		log:     log.Named("scoring"),
		best:    gomath.Inf(1),
	}
}

// Initialize starts scoring a hole of the given length.
func (s *Scorer) Initialize(targetDistance float64) {
	s.targetDistance = targetDistance
	s.shots = 0
	s.best = gomath.Inf(1)
	s.last = Result{}
	s.state = Active
	s.log.Debug("scoring started", zap.Float64("target_distance", targetDistance))
}

// RecordShot measures a landing position. It returns false and changes
// nothing unless the scorer has been initialized.
func (s *Scorer) RecordShot(landing math.Vec3, surfaceName string) (Result, bool) {
	if s.state == Idle {
		return Result{}, false
	}

	s.shots++
	r := Result{
		Distance:  s.distance(landing),
		IsPenalty: surface.IsPenalty(surfaceName),
		Surface:   surfaceName,
		Shot:      s.shots,
	}
	if r.Distance < s.best {
		s.best = r.Distance
		r.Best = true
	}
	s.last = r
	s.state = Scored

	s.log.Debug("shot recorded",
		zap.Int("shot", r.Shot),
		zap.Float64("distance", r.Distance),
		zap.String("surface", surfaceName),
		zap.Bool("penalty", r.IsPenalty),
	)
	return r, true
}

// distance is planar to the flag, or along the hole line when no flag exists.
func (s *Scorer) distance(landing math.Vec3) float64 {
	if s.anchors != nil {
		if flag, ok := s.anchors.FlagPosition(); ok {
			return landing.PlanarDistance(flag)
		}
	}
	return gomath.Hypot(s.targetDistance-landing.Z, landing.X)
}

// Terminate returns the scorer to Idle. Counters keep their values until the
// next Initialize.
func (s *Scorer) Terminate() {
	s.state = Idle
}

// State returns the current state.
func (s *Scorer) State() State {
	return s.state
}

// Shots returns the number of shots recorded since Initialize.
func (s *Scorer) Shots() int {
	return s.shots
}

// BestDistance returns the closest approach to the flag; +Inf before the first shot.
func (s *Scorer) BestDistance() float64 {
	return s.best
}

// Last returns the most recent shot result.
func (s *Scorer) Last() (Result, bool) {
	return s.last, s.shots > 0
}
