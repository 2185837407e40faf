// Package renderer draws a golf hole with OpenGL. A Renderer implements
// hole.Scene, so a hole instance hands its meshes straight to the GPU.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/engine/lighting"
	"github.com/Faultbox/greenkeeper/internal/engine/renderer/shaders"
	"github.com/Faultbox/greenkeeper/internal/engine/shader"
	"github.com/Faultbox/greenkeeper/internal/hole"
)

// TileSize is the world size in meters covered by one repeat of a surface texture.
const TileSize = 8.0

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	ClearColor mgl32.Vec3
	LightDir   mgl32.Vec3 // direction the light travels
	Ambient    mgl32.Vec3
	Diffuse    mgl32.Vec3
	FogNear    float32
	FogFar     float32
}

// DefaultConfig returns the default sun over a pale sky.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		ClearColor: mgl32.Vec3{0.62, 0.76, 0.9},
		LightDir:   lighting.DefaultSun().LightDir(),
		Ambient:    mgl32.Vec3{0.45, 0.45, 0.5},
		Diffuse:    mgl32.Vec3{0.65, 0.62, 0.55},
		FogNear:    400,
		FogFar:     1400,
	}
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program uint32

	locViewProj int32
	locUVScale  int32
	locTexture  int32
	locTextured int32
	locLightDir int32
	locAmbient  int32
	locDiffuse  int32
	locFogColor int32
	locFogNear  int32
	locFogFar   int32
	locEye      int32

	objects map[*hole.SceneObject]*gpuObject
	order   []*hole.SceneObject
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:  cfg,
		log:     log.Named("renderer"),
		objects: make(map[*hole.SceneObject]*gpuObject),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.MULTISAMPLE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	program, err := shader.CompileProgram(shaders.HoleVertexShader, shaders.HoleFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("hole shader: %w", err)
	}
	r.program = program

	r.locViewProj = shader.MustGetUniform(program, "uViewProj")
	r.locUVScale = shader.GetUniform(program, "uUVScale")
	r.locTexture = shader.GetUniform(program, "uTexture")
	r.locTextured = shader.GetUniform(program, "uTextured")
	r.locLightDir = shader.GetUniform(program, "uLightDir")
	r.locAmbient = shader.GetUniform(program, "uAmbient")
	r.locDiffuse = shader.GetUniform(program, "uDiffuse")
	r.locFogColor = shader.GetUniform(program, "uFogColor")
	r.locFogNear = shader.GetUniform(program, "uFogNear")
	r.locFogFar = shader.GetUniform(program, "uFogFar")
	r.locEye = shader.GetUniform(program, "uEye")

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	r.log.Debug("hole shader ready", zap.Uint32("program", program))
	return r, nil
}

// Close releases every object and the shader program.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("objects", len(r.objects)))
	for _, obj := range append([]*hole.SceneObject(nil), r.order...) {
		r.Remove(obj)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize handles framebuffer resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Render draws every object: opaque ones in insertion order, then translucent
// ones blended without depth writes.
func (r *Renderer) Render(viewProj mgl32.Mat4, eye mgl32.Vec3) {
	if len(r.order) == 0 {
		return
	}

	gl.UseProgram(r.program)
	shader.SetMat4(r.locViewProj, viewProj)
	shader.SetVec3(r.locLightDir, r.config.LightDir)
	shader.SetVec3(r.locAmbient, r.config.Ambient)
	shader.SetVec3(r.locDiffuse, r.config.Diffuse)
	shader.SetVec3(r.locFogColor, r.config.ClearColor)
	shader.SetVec3(r.locEye, eye)
	gl.Uniform1f(r.locFogNear, r.config.FogNear)
	gl.Uniform1f(r.locFogFar, r.config.FogFar)
	gl.Uniform1i(r.locTexture, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	opaque, translucent := partition(r.order)

	gl.Disable(gl.BLEND)
	for _, obj := range opaque {
		r.draw(r.objects[obj])
	}

	if len(translucent) > 0 {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
		for _, obj := range translucent {
			r.draw(r.objects[obj])
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
}

func (r *Renderer) draw(g *gpuObject) {
	if g == nil || g.vao == 0 {
		return
	}
	if g.texture != 0 {
		gl.Uniform1i(r.locTextured, 1)
		gl.BindTexture(gl.TEXTURE_2D, g.texture)
	} else {
		gl.Uniform1i(r.locTextured, 0)
	}
	gl.Uniform2f(r.locUVScale, g.uvScale[0], g.uvScale[1])

	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, g.indexType, 0)
}

// partition splits objects by material alpha, preserving order.
func partition(objs []*hole.SceneObject) (opaque, translucent []*hole.SceneObject) {
	for _, obj := range objs {
		if obj.Material.Color[3] < 1 {
			translucent = append(translucent, obj)
		} else {
			opaque = append(opaque, obj)
		}
	}
	return opaque, translucent
}
