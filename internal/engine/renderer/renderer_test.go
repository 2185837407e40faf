package renderer

import (
	"testing"

	"github.com/Faultbox/greenkeeper/internal/geometry"
	"github.com/Faultbox/greenkeeper/internal/hole"
)

func TestUVScale(t *testing.T) {
	got := uvScale(geometry.Bounds{Min: [3]float32{-16, 0, 0}, Max: [3]float32{16, 0.5, 40}})
	if got != [2]float32{4, 5} {
		t.Errorf("uvScale = %v, want [4 5]", got)
	}

	flat := uvScale(geometry.Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{0, 3, 0}})
	if flat != [2]float32{1, 1} {
		t.Errorf("degenerate bounds should keep unit scale, got %v", flat)
	}
}

func TestVertexColors(t *testing.T) {
	m, err := geometry.Circle(geometry.V(0, 0), 1, 6)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	base := [4]float32{0.2, 0.6, 0.2, 1}

	got := vertexColors(m, base)
	if len(got) != m.VertexCount()*4 {
		t.Fatalf("expected %d floats, got %d", m.VertexCount()*4, len(got))
	}
	for i := 0; i < len(got); i += 4 {
		if [4]float32(got[i:i+4]) != base {
			t.Fatalf("vertex %d color %v, want %v", i/4, got[i:i+4], base)
		}
	}

	m.SetColors([4]float32{1, 0, 0, 1}, nil)
	if got := vertexColors(m, base); &got[0] != &m.Colors[0] {
		t.Error("expected mesh colors to be used directly")
	}
}

func TestPartition(t *testing.T) {
	objs := []*hole.SceneObject{
		{Name: "background", Material: hole.Material{Color: [4]float32{0, 1, 0, 1}}},
		{Name: "water", Material: hole.Material{Color: [4]float32{0, 0, 1, 0.8}}},
		{Name: "green", Material: hole.Material{Color: [4]float32{0, 1, 0, 1}}},
	}
	opaque, translucent := partition(objs)
	if len(opaque) != 2 || opaque[0].Name != "background" || opaque[1].Name != "green" {
		t.Errorf("unexpected opaque order %v", opaque)
	}
	if len(translucent) != 1 || translucent[0].Name != "water" {
		t.Errorf("unexpected translucent set %v", translucent)
	}
}
