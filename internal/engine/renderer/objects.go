package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/geometry"
	"github.com/Faultbox/greenkeeper/internal/hole"
)

// gpuObject holds the GL handles of one scene object.
type gpuObject struct {
	vao       uint32
	positions uint32
	normals   uint32
	uvs       uint32
	colors    uint32
	ebo       uint32
	texture   uint32

	indexCount int32
	indexType  uint32
	uvScale    [2]float32
}

// Add uploads obj's mesh.
func (r *Renderer) Add(obj *hole.SceneObject) error {
	if obj == nil || obj.Mesh == nil {
		return fmt.Errorf("renderer: object without mesh")
	}
	if _, exists := r.objects[obj]; exists {
		return fmt.Errorf("renderer: object %q already added", obj.Name)
	}
	m := obj.Mesh
	if m.VertexCount() == 0 || m.Indices.Len() == 0 {
		return fmt.Errorf("renderer: object %q has an empty mesh", obj.Name)
	}

	g := &gpuObject{
		indexCount: int32(m.Indices.Len()),
		uvScale:    uvScale(m.Bounds),
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	g.positions = uploadAttribute(0, 3, m.Positions)
	g.normals = uploadAttribute(1, 3, m.Normals)
	g.uvs = uploadAttribute(2, 2, m.UVs)
	g.colors = uploadAttribute(3, 4, vertexColors(m, obj.Material.Color))

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	if m.Indices.Wide() {
		idx := m.Indices.Uint32()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*4, unsafe.Pointer(&idx[0]), gl.STATIC_DRAW)
		g.indexType = gl.UNSIGNED_INT
	} else {
		idx := m.Indices.Uint16()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*2, unsafe.Pointer(&idx[0]), gl.STATIC_DRAW)
		g.indexType = gl.UNSIGNED_SHORT
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.objects[obj] = g
	r.order = append(r.order, obj)

	if obj.Material.Textured && obj.Material.Texture != nil {
		g.texture = uploadTexture(obj.Material.Texture)
	}

	r.log.Debug("object uploaded",
		zap.String("name", obj.Name),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
		zap.Bool("wide_indices", m.Indices.Wide()),
	)
	return nil
}

// Remove releases obj's GL resources.
func (r *Renderer) Remove(obj *hole.SceneObject) {
	g, ok := r.objects[obj]
	if !ok {
		return
	}
	delete(r.objects, obj)
	for i, o := range r.order {
		if o == obj {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	buffers := []uint32{g.positions, g.normals, g.uvs, g.colors, g.ebo}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteVertexArrays(1, &g.vao)
	if g.texture != 0 {
		gl.DeleteTextures(1, &g.texture)
	}
}

// SetMaterial swaps obj's texture. The flat color lives in vertex colors and
// is not re-uploaded.
func (r *Renderer) SetMaterial(obj *hole.SceneObject, m hole.Material) {
	obj.Material = m
	g, ok := r.objects[obj]
	if !ok {
		return
	}
	if g.texture != 0 {
		gl.DeleteTextures(1, &g.texture)
		g.texture = 0
	}
	if m.Textured && m.Texture != nil {
		g.texture = uploadTexture(m.Texture)
		r.log.Debug("texture applied",
			zap.String("name", obj.Name),
			zap.String("path", m.TexturePath),
		)
	}
}

// Len returns the number of uploaded objects.
func (r *Renderer) Len() int {
	return len(r.order)
}

func uploadAttribute(location uint32, size int32, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, size*4, 0)
	gl.EnableVertexAttribArray(location)
	return vbo
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)

	return texID
}

// uvScale repeats a texture once per TileSize meters across the mesh.
func uvScale(b geometry.Bounds) [2]float32 {
	size := b.Size()
	scale := [2]float32{1, 1}
	if size[0] > 0 {
		scale[0] = size[0] / TileSize
	}
	if size[2] > 0 {
		scale[1] = size[2] / TileSize
	}
	return scale
}

// vertexColors returns the mesh colors, or base repeated per vertex when the
// mesh has none.
func vertexColors(m *geometry.Mesh, base [4]float32) []float32 {
	if len(m.Colors) == m.VertexCount()*4 {
		return m.Colors
	}
	out := make([]float32, m.VertexCount()*4)
	for i := 0; i < len(out); i += 4 {
		copy(out[i:i+4], base[:])
	}
	return out
}
