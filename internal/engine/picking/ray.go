// Package picking turns cursor positions into world rays and hits on the hole.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/greenkeeper/internal/geometry"
	"github.com/Faultbox/greenkeeper/internal/hole"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// FromBounds converts mesh bounds to a box.
func FromBounds(b geometry.Bounds) AABB {
	return AABB{Min: mgl32.Vec3(b.Min), Max: mgl32.Vec3(b.Max)}
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(ndc)
	if p[3] != 0 {
		return p.Vec3().Mul(1 / p[3])
	}
	return p.Vec3()
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction[1])) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin[1]) / r.Direction[1]
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p[0], p[2], true
}

// IntersectHeight intersects a ray with a gently sloped height field by
// refining a plane hit: each pass moves the plane to the height under the
// previous hit.
func (r Ray) IntersectHeight(height func(x, z float64) float64, passes int) (x, z float32, ok bool) {
	x, z, ok = r.IntersectPlaneY(0)
	for i := 0; ok && i < passes; i++ {
		y := float32(height(float64(x), float64(z)))
		x, z, ok = r.IntersectPlaneY(y)
	}
	return x, z, ok
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// PickObject returns the nearest object in category whose bounds the ray hits.
// An empty category matches every object.
func PickObject(r Ray, objects []*hole.SceneObject, category string) (*hole.SceneObject, float32, bool) {
	var best *hole.SceneObject
	bestT := float32(gomath.MaxFloat32)
	for _, obj := range objects {
		if obj.Mesh == nil || (category != "" && obj.Category != category) {
			continue
		}
		if t, hit := r.IntersectAABB(FromBounds(obj.Mesh.Bounds)); hit && t < bestT {
			best, bestT = obj, t
		}
	}
	return best, bestT, best != nil
}
