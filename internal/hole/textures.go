package hole

import (
	"context"
	"image"

	"go.uber.org/zap"
)

type textureResult struct {
	generation uint64
	obj        *SceneObject
	path       string
	img        *image.RGBA
	err        error
}

// requestTexture starts loading a texture for obj. The result is applied by
// PollTextures or AwaitTextures, never by the loading goroutine.
func (h *Instance) requestTexture(obj *SceneObject, path string) {
	if h.loader == nil || h.textures == nil {
		return
	}
	results := h.textures
	generation := h.generation
	loader := h.loader
	h.pending++

	go func() {
		img, err := loader.Load(path)
		results <- textureResult{generation: generation, obj: obj, path: path, img: img, err: err}
	}()
}

// PendingTextures returns how many texture loads of the current hole have not been applied.
func (h *Instance) PendingTextures() int {
	return h.pending
}

// PollTextures applies every texture load that has finished, without
// blocking, and returns how many were applied. Call it from the goroutine
// that owns the scene, e.g. once per frame.
func (h *Instance) PollTextures() int {
	applied := 0
	for h.pending > 0 {
		select {
		case r := <-h.textures:
			if h.applyTexture(r) {
				applied++
			}
		default:
			return applied
		}
	}
	return applied
}

// AwaitTextures blocks until every texture load of the current hole has been
// applied or ctx is done.
func (h *Instance) AwaitTextures(ctx context.Context) error {
	for h.pending > 0 {
		select {
		case r := <-h.textures:
			h.applyTexture(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// applyTexture swaps the material of a still attached object. Results from a
// hole that has since been cleared are dropped.
func (h *Instance) applyTexture(r textureResult) bool {
	h.pending--
	if r.generation != h.generation || !r.obj.attached {
		h.log.Debug("dropping stale texture",
			zap.String("path", r.path),
			zap.Uint64("generation", r.generation),
		)
		return false
	}

	m := Material{Color: r.obj.Material.Color}
	if r.err != nil {
		h.log.Warn("texture unavailable, keeping flat color",
			zap.String("object", r.obj.Name),
			zap.Error(&ResourceLoadError{Path: r.path, Err: r.err}),
		)
	} else {
		m.Texture = r.img
		m.TexturePath = r.path
		m.Textured = true
	}
	r.obj.Material = m
	h.scene.SetMaterial(r.obj, m)
	return true
}
