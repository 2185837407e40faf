package hole

import (
	"fmt"

	"github.com/Faultbox/greenkeeper/internal/geometry"
)

// Kind discriminates the Surface variant.
type Kind int

const (
	KindPolygon Kind = iota
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindCircle:
		return "circle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Circle is a flat disc built directly as a fan.
type Circle struct {
	Center   geometry.Vertex
	Radius   float64
	Segments int
}

// Polygon is an outline handed to the triangulator.
type Polygon struct {
	Vertices []geometry.Vertex
}

// Surface is one named ground surface of a hole. Exactly one of Circle and
// Polygon is meaningful, selected by Kind.
type Surface struct {
	Name    string // unique object name, e.g. "bunker/1"
	Ground  string // surface registry name
	Kind    Kind
	Circle  Circle
	Polygon Polygon
}

// CircleSurface builds a circular surface.
func CircleSurface(name, ground string, c Circle) Surface {
	return Surface{Name: name, Ground: ground, Kind: KindCircle, Circle: c}
}

// PolygonSurface builds an outline surface.
func PolygonSurface(name, ground string, vertices []geometry.Vertex) Surface {
	return Surface{Name: name, Ground: ground, Kind: KindPolygon, Polygon: Polygon{Vertices: vertices}}
}

// Mesh builds the render geometry for the surface.
func (s Surface) Mesh() (*geometry.Mesh, error) {
	switch s.Kind {
	case KindCircle:
		return geometry.Circle(s.Circle.Center, s.Circle.Radius, s.Circle.Segments)
	case KindPolygon:
		return geometry.Triangulate(s.Polygon.Vertices)
	default:
		return nil, fmt.Errorf("surface %s: unknown kind %v", s.Name, s.Kind)
	}
}
