package hole

import (
	"fmt"
	"image"

	"github.com/Faultbox/greenkeeper/internal/geometry"
	"github.com/Faultbox/greenkeeper/pkg/math"
)

// Object categories, one per surface family plus the hole furniture.
const (
	CategoryBackground = "background"
	CategoryRough      = "rough"
	CategoryWater      = "water"
	CategoryBunker     = "bunker"
	CategoryFairway    = "fairway"
	CategoryGreen      = "green"
	CategoryTee        = "tee"
	CategoryCup        = "cup"
	CategoryFlagstick  = "flagstick"
	CategoryObstacle   = "obstacle"
)

// Material is what a scene object is drawn with. Until its texture resolves
// every surface is drawn with a flat Color.
type Material struct {
	Color       [4]float32
	Texture     *image.RGBA
	TexturePath string
	Textured    bool
}

// SceneObject is one mesh handed to a Scene. The mesh is in world coordinates;
// Position is the object's ground anchor for picking and labels.
type SceneObject struct {
	Name     string
	Category string
	Ground   string // surface registry name; empty for furniture and obstacles
	Mesh     *geometry.Mesh
	Material Material
	Position math.Vec3

	attached bool
}

// Attached reports whether the object is currently in its scene.
func (o *SceneObject) Attached() bool {
	return o.attached
}

// Scene receives the geometry of the current hole. Implementations own any
// GPU resources and release them on Remove. All calls come from one goroutine.
type Scene interface {
	Add(obj *SceneObject) error
	Remove(obj *SceneObject)
	SetMaterial(obj *SceneObject, m Material)
}

// TextureLoader resolves a texture path. Load is called from background
// goroutines and must be safe for concurrent use.
type TextureLoader interface {
	Load(path string) (*image.RGBA, error)
}

// MemoryScene is a Scene that only keeps references. It backs headless tools and tests.
type MemoryScene struct {
	objects map[string]*SceneObject
	order   []string

	Added     int
	Removed   int
	Materials int
}

// NewMemoryScene creates an empty scene.
func NewMemoryScene() *MemoryScene {
	return &MemoryScene{objects: make(map[string]*SceneObject)}
}

// Add stores obj. Names must be unique within the scene.
func (s *MemoryScene) Add(obj *SceneObject) error {
	if obj == nil || obj.Mesh == nil {
		return fmt.Errorf("scene: object without mesh")
	}
	if _, exists := s.objects[obj.Name]; exists {
		return fmt.Errorf("scene: duplicate object %q", obj.Name)
	}
	s.objects[obj.Name] = obj
	s.order = append(s.order, obj.Name)
	s.Added++
	return nil
}

// Remove drops obj if present.
func (s *MemoryScene) Remove(obj *SceneObject) {
	if obj == nil {
		return
	}
	if cur, ok := s.objects[obj.Name]; !ok || cur != obj {
		return
	}
	delete(s.objects, obj.Name)
	for i, name := range s.order {
		if name == obj.Name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.Removed++
}

// SetMaterial replaces the object's material.
func (s *MemoryScene) SetMaterial(obj *SceneObject, m Material) {
	obj.Material = m
	s.Materials++
}

// Len returns the number of objects in the scene.
func (s *MemoryScene) Len() int {
	return len(s.objects)
}

// Get returns the object with the given name.
func (s *MemoryScene) Get(name string) (*SceneObject, bool) {
	obj, ok := s.objects[name]
	return obj, ok
}

// Names returns object names in insertion order.
func (s *MemoryScene) Names() []string {
	return append([]string(nil), s.order...)
}
