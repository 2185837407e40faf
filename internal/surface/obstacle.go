// Package surface holds the static property tables shared with the ball-flight
// simulator: obstacle behavior by type and size, and ground behavior by surface name.
//
// Lookups are total. An unknown obstacle resolves to bush/small and an unknown
// surface to plain rough, so callers never handle a missing entry.
package surface

import (
	"fmt"
	"math"
	"strings"
)

// ObstacleType is the obstacle family.
type ObstacleType string

const (
	Tree ObstacleType = "tree"
	Bush ObstacleType = "bush"
)

// Size is the obstacle size class.
type Size string

const (
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
)

// ObstacleTypes lists every obstacle type in draw order.
var ObstacleTypes = []ObstacleType{Tree, Bush}

// Sizes lists every size class in draw order.
var Sizes = []Size{Small, Medium, Large}

// ParseType parses an obstacle type name (case-insensitive).
func ParseType(s string) (ObstacleType, error) {
	switch ObstacleType(strings.ToLower(strings.TrimSpace(s))) {
	case Tree:
		return Tree, nil
	case Bush:
		return Bush, nil
	}
	return "", fmt.Errorf("unknown obstacle type %q", s)
}

// ParseSize parses a size class name (case-insensitive).
func ParseSize(s string) (Size, error) {
	switch Size(strings.ToLower(strings.TrimSpace(s))) {
	case Small:
		return Small, nil
	case Medium:
		return Medium, nil
	case Large:
		return Large, nil
	}
	return "", fmt.Errorf("unknown obstacle size %q", s)
}

// ObstacleProperties describes how an obstacle affects a ball and how it is drawn.
//
// The simulator multiplies post-impact velocity by SlowdownFactor, rolls
// DeflectionChance, and on success turns the heading by a uniform angle in
// [0, MaxDeflectionAngle].
type ObstacleProperties struct {
	SlowdownFactor     float64 // velocity multiplier after impact, 0..1
	DeflectionChance   float64 // probability 0..1
	MaxDeflectionAngle float64 // radians
	CollisionRadius    float64 // meters, planar

	TrunkHeight  float64 // meters; zero for bushes
	TrunkRadius  float64
	CanopyHeight float64
	CanopyRadius float64
	TrunkColor   [4]float32
	FoliageColor [4]float32
}

type obstacleKey struct {
	Type ObstacleType
	Size Size
}

var (
	trunkBrown = [4]float32{0.40, 0.26, 0.13, 1}
	treeGreen  = [4]float32{0.13, 0.42, 0.16, 1}
	bushGreen  = [4]float32{0.20, 0.50, 0.18, 1}
)

func deg(d float64) float64 {
	return d * math.Pi / 180
}

var defaultObstacle = obstacleKey{Bush, Small}

var obstacles = map[obstacleKey]ObstacleProperties{
	{Tree, Small}: {
		SlowdownFactor: 0.55, DeflectionChance: 0.50, MaxDeflectionAngle: deg(35), CollisionRadius: 1.5,
		TrunkHeight: 2.0, TrunkRadius: 0.15, CanopyHeight: 3.0, CanopyRadius: 1.5,
		TrunkColor: trunkBrown, FoliageColor: treeGreen,
	},
	{Tree, Medium}: {
		SlowdownFactor: 0.40, DeflectionChance: 0.65, MaxDeflectionAngle: deg(50), CollisionRadius: 2.5,
		TrunkHeight: 3.5, TrunkRadius: 0.25, CanopyHeight: 5.0, CanopyRadius: 2.5,
		TrunkColor: trunkBrown, FoliageColor: treeGreen,
	},
	{Tree, Large}: {
		SlowdownFactor: 0.25, DeflectionChance: 0.80, MaxDeflectionAngle: deg(70), CollisionRadius: 4.0,
		TrunkHeight: 5.0, TrunkRadius: 0.40, CanopyHeight: 8.0, CanopyRadius: 4.0,
		TrunkColor: trunkBrown, FoliageColor: treeGreen,
	},
	{Bush, Small}: {
		SlowdownFactor: 0.80, DeflectionChance: 0.20, MaxDeflectionAngle: deg(15), CollisionRadius: 0.6,
		CanopyHeight: 0.8, CanopyRadius: 0.6,
		FoliageColor: bushGreen,
	},
	{Bush, Medium}: {
		SlowdownFactor: 0.70, DeflectionChance: 0.30, MaxDeflectionAngle: deg(25), CollisionRadius: 1.0,
		CanopyHeight: 1.2, CanopyRadius: 1.0,
		FoliageColor: bushGreen,
	},
	{Bush, Large}: {
		SlowdownFactor: 0.60, DeflectionChance: 0.40, MaxDeflectionAngle: deg(30), CollisionRadius: 1.6,
		CanopyHeight: 1.8, CanopyRadius: 1.6,
		FoliageColor: bushGreen,
	},
}

// Lookup returns the properties for (type, size), or the bush/small entry when
// the pair is not in the table.
func Lookup(t ObstacleType, s Size) ObstacleProperties {
	props, _ := Resolve(t, s)
	return props
}

// Resolve is Lookup that also reports whether the pair was found rather than defaulted.
func Resolve(t ObstacleType, s Size) (ObstacleProperties, bool) {
	if props, ok := obstacles[obstacleKey{t, s}]; ok {
		return props, true
	}
	return obstacles[defaultObstacle], false
}

// Obstacle is one placed obstacle instance. It is not modified after creation.
type Obstacle struct {
	Type       ObstacleType
	Size       Size
	X, Z       float64
	Properties ObstacleProperties
}

// NewObstacle hydrates an obstacle from the registry.
func NewObstacle(t ObstacleType, s Size, x, z float64) Obstacle {
	return Obstacle{Type: t, Size: s, X: x, Z: z, Properties: Lookup(t, s)}
}

// Height returns the total drawn height.
func (o Obstacle) Height() float64 {
	return o.Properties.TrunkHeight + o.Properties.CanopyHeight
}
