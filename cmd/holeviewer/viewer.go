package main

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/config"
	"github.com/Faultbox/greenkeeper/internal/engine/camera"
	"github.com/Faultbox/greenkeeper/internal/engine/input"
	"github.com/Faultbox/greenkeeper/internal/engine/picking"
	"github.com/Faultbox/greenkeeper/internal/engine/renderer"
	"github.com/Faultbox/greenkeeper/internal/engine/screenshot"
	"github.com/Faultbox/greenkeeper/internal/engine/window"
	"github.com/Faultbox/greenkeeper/internal/hole"
	"github.com/Faultbox/greenkeeper/internal/logger"
	"github.com/Faultbox/greenkeeper/internal/scoring"
	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/pkg/math"
	"github.com/Faultbox/greenkeeper/pkg/units"
)

// clickSlop is how far, in pixels, the cursor may travel between press and
// release for a left click to count as a shot rather than a drag.
const clickSlop = 4

// groundPasses refines a click from the base plane onto the sloped ground.
const groundPasses = 4

// viewer is the main viewer instance.
type viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	hole    *hole.Instance
	scorer  *scoring.Scorer
	current hole.Config

	pressX, pressY int
	fps            int

	screenshots       *screenshot.Capture
	screenshotPending bool
}

// newViewer opens the window and builds the configured hole.
func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:       "Greenkeeper",
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		MultiSample: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, which owns the GL context.
	w, h := v.window.DrawableSize()
	rcfg := renderer.DefaultConfig(w, h)
	rcfg.LightDir = cfg.Graphics.Sun.LightDir()
	v.renderer, err = renderer.New(rcfg, logger.Log)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()
	v.screenshots = screenshot.New(cfg.Graphics.ScreenshotDir, "hole")

	v.hole = hole.New(v.renderer, nil, cfg.TextureLoader(logger.Log),
		hole.WithLogger(logger.Log),
		hole.WithPlacement(cfg.Placement),
		hole.WithTerrain(cfg.Terrain),
	)
	v.scorer = scoring.New(v.hole, logger.Log)

	holeCfg, err := cfg.HoleConfig()
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to prepare hole: %w", err)
	}
	if err := v.load(holeCfg); err != nil {
		v.Close()
		return nil, err
	}

	v.log.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop.
func (v *viewer) Run() error {
	v.running = true

	frames := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.handleKeyboardPan()

		if n := v.hole.PollTextures(); n > 0 {
			v.log.Debug("textures applied", zap.Int("count", n), zap.Int("pending", v.hole.PendingTextures()))
		}

		v.renderer.Begin()
		v.renderer.Render(v.camera.ViewProjection(v.renderer.Aspect()), v.camera.Position())
		if v.screenshotPending {
			v.screenshotPending = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			v.fps = frames
			frames = 0
			fpsTimer = time.Now()
			if v.cfg.Graphics.ShowFPS {
				v.updateTitle()
			}
		}
	}

	return nil
}

// Close releases the hole, the renderer and the window.
func (v *viewer) Close() {
	v.log.Info("closing viewer")

	if v.hole != nil {
		v.hole.Clear()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)

		case input.EventKeyDown:
			v.handleKey(e.Key)

		case input.EventMouseMove:
			if e.ButtonHeld(sdl.BUTTON_RIGHT) || (e.ButtonHeld(sdl.BUTTON_LEFT) && !v.isClick(e.MouseX, e.MouseY)) {
				v.camera.HandleDrag(float32(e.RelX), float32(e.RelY))
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(e.WheelY)

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				v.pressX, v.pressY = e.MouseX, e.MouseY
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT && v.isClick(e.MouseX, e.MouseY) {
				v.shoot(e.MouseX, e.MouseY)
			}
		}
	}
}

func (v *viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_N:
		v.regenerate(v.current.ShapeSeed + 1)
	case sdl.SCANCODE_R:
		if err := v.load(v.current); err != nil {
			v.log.Error("reload failed", zap.Error(err))
		}
	case sdl.SCANCODE_SPACE:
		v.scorer.Initialize(v.current.TargetDistance)
		v.updateTitle()
	case sdl.SCANCODE_F:
		v.fitCamera()
	case sdl.SCANCODE_F12:
		v.screenshotPending = true
	}
}

// handleKeyboardPan moves the orbit center with WASD, Q and E.
func (v *viewer) handleKeyboardPan() {
	keys := sdl.GetKeyboardState()
	var forward, right, up float32
	if keys[sdl.SCANCODE_W] != 0 {
		forward++
	}
	if keys[sdl.SCANCODE_S] != 0 {
		forward--
	}
	if keys[sdl.SCANCODE_D] != 0 {
		right++
	}
	if keys[sdl.SCANCODE_A] != 0 {
		right--
	}
	if keys[sdl.SCANCODE_E] != 0 {
		up++
	}
	if keys[sdl.SCANCODE_Q] != 0 {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		v.camera.HandleMovement(forward, right, up)
	}
}

func (v *viewer) isClick(x, y int) bool {
	dx, dy := x-v.pressX, y-v.pressY
	return dx*dx+dy*dy <= clickSlop*clickSlop
}

// regenerate builds a fresh self-generated hole for seed.
func (v *viewer) regenerate(seed int64) {
	cfg := hole.GenerateWith(v.cfg.Course.TargetDistance, seed, v.cfg.Course.Layout)
	cfg.RoughTiers = v.cfg.Course.RoughTiers
	if err := v.load(cfg); err != nil {
		v.log.Error("regenerate failed", zap.Int64("seed", seed), zap.Error(err))
	}
}

func (v *viewer) load(cfg hole.Config) error {
	report, err := v.hole.Load(cfg)
	if err != nil {
		return fmt.Errorf("failed to load hole: %w", err)
	}
	v.current = cfg
	if report.Warnings != nil {
		v.log.Warn("hole loaded with warnings",
			zap.Int("skipped", report.Skipped),
			zap.Error(report.Warnings),
		)
	}

	v.scorer.Initialize(cfg.TargetDistance)
	v.fitCamera()
	v.updateTitle()
	return nil
}

// fitCamera frames every object of the hole.
func (v *viewer) fitCamera() {
	objs := v.hole.Objects()
	if len(objs) == 0 {
		return
	}
	lo := [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32}
	hi := [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32}
	for _, obj := range objs {
		if obj.Category == hole.CategoryBackground {
			continue
		}
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], obj.Mesh.Bounds.Min[i])
			hi[i] = max(hi[i], obj.Mesh.Bounds.Max[i])
		}
	}
	if lo[0] > hi[0] {
		return
	}
	v.camera.FitToBounds(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// shoot casts the cursor onto the ground and scores the landing point.
func (v *viewer) shoot(sx, sy int) {
	w, h := v.window.GetSize()
	inv := v.camera.ViewProjection(v.renderer.Aspect()).Inv()
	ray := picking.ScreenToRay(float32(sx), float32(sy), float32(w), float32(h), inv)

	if obj, _, ok := picking.PickObject(ray, v.hole.Objects(), hole.CategoryObstacle); ok {
		v.log.Info("shot hit an obstacle", zap.String("object", obj.Name))
	}

	x, z, ok := ray.IntersectHeight(v.hole.HeightAt, groundPasses)
	if !ok {
		return
	}
	landing := math.Vec3{X: float64(x), Z: float64(z)}
	landing.Y = v.hole.HeightAt(landing.X, landing.Z)
	ground, ok := v.hole.SurfaceAt(landing.X, landing.Z)
	if !ok {
		v.log.Info("shot left the hole", zap.Float64("x", landing.X), zap.Float64("z", landing.Z))
		ground = surface.OutOfBounds
	}

	r, ok := v.scorer.RecordShot(landing, ground)
	if !ok {
		return
	}
	v.log.Info("shot",
		zap.Int("shot", r.Shot),
		zap.String("surface", r.Surface),
		zap.String("to_flag", units.Format(r.Distance)),
		zap.Bool("penalty", r.IsPenalty),
	)
	v.updateTitle()
}

// saveScreenshot reads back the frame just drawn, before the swap.
func (v *viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.FromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *viewer) updateTitle() {
	title := fmt.Sprintf("Greenkeeper - seed %d - %.0f m", v.current.ShapeSeed, v.current.TargetDistance)
	if last, ok := v.scorer.Last(); ok {
		title += fmt.Sprintf(" - shot %d on %s, %s to flag", last.Shot, last.Surface, units.Format(last.Distance))
		if last.IsPenalty {
			title += " (penalty)"
		}
		title += " - best " + units.Format(v.scorer.BestDistance())
	}
	if v.cfg.Graphics.ShowFPS {
		title += fmt.Sprintf(" - %d fps", v.fps)
	}
	v.window.SetTitle(title)
}
