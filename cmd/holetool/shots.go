package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/greenkeeper/internal/placement"
	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/pkg/math"
)

// shot is one -shot flag value. An empty surface is resolved from the hole.
type shot struct {
	Landing math.Vec3
	Surface string
}

// shotList collects repeated -shot flags.
type shotList []shot

func (l *shotList) String() string {
	parts := make([]string, len(*l))
	for i, s := range *l {
		parts[i] = fmt.Sprintf("%g,%g", s.Landing.X, s.Landing.Z)
		if s.Surface != "" {
			parts[i] += "," + s.Surface
		}
	}
	return strings.Join(parts, " ")
}

func (l *shotList) Set(value string) error {
	s, err := parseShot(value)
	if err != nil {
		return err
	}
	*l = append(*l, s)
	return nil
}

// parseShot reads "x,z" or "x,z,surface".
func parseShot(value string) (shot, error) {
	fields := strings.Split(value, ",")
	if len(fields) < 2 || len(fields) > 3 {
		return shot{}, fmt.Errorf("shot %q: want x,z[,surface]", value)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return shot{}, fmt.Errorf("shot %q: x: %w", value, err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return shot{}, fmt.Errorf("shot %q: z: %w", value, err)
	}
	s := shot{Landing: math.Vec3{X: x, Z: z}}
	if len(fields) == 3 {
		s.Surface = strings.ToLower(strings.TrimSpace(fields[2]))
	}
	return s, nil
}

func placementsOf(obstacles []surface.Obstacle) []placement.Placement {
	out := make([]placement.Placement, len(obstacles))
	for i, o := range obstacles {
		out[i] = placement.Placement{Type: o.Type, Size: o.Size, X: o.X, Z: o.Z}
	}
	return out
}
