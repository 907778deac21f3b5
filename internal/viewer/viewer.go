// Package viewer runs the windowed carousel: it owns the window, GPU
// resources, camera and animator, and drives them once per frame.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/carousel3d/internal/assets"
	"github.com/Faultbox/carousel3d/internal/carousel"
	"github.com/Faultbox/carousel3d/internal/config"
	"github.com/Faultbox/carousel3d/internal/engine/camera"
	"github.com/Faultbox/carousel3d/internal/engine/debug"
	"github.com/Faultbox/carousel3d/internal/engine/hud"
	"github.com/Faultbox/carousel3d/internal/engine/input"
	"github.com/Faultbox/carousel3d/internal/engine/lighting"
	"github.com/Faultbox/carousel3d/internal/engine/model"
	"github.com/Faultbox/carousel3d/internal/engine/renderer"
	"github.com/Faultbox/carousel3d/internal/engine/window"
	"github.com/Faultbox/carousel3d/internal/logger"
)

const title = "carousel3d"

type loadOutcome struct {
	result *assets.Result
	err    error
}

// Viewer is the windowed carousel instance.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window      *window.Window
	renderer    *renderer.Renderer
	hud         *hud.HUD
	input       *input.Input
	camera      *camera.OrbitCamera
	animator    *carousel.Animator
	screenshots *debug.ScreenshotCapture

	loader     *assets.Loader
	loadDone   chan loadOutcome
	cancelLoad context.CancelFunc
	loading    bool
}

// New creates the window, GL resources and animator, and starts decoding the
// configured models in the background.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("style", cfg.Carousel.Style),
		zap.Int("duration_frames", cfg.Carousel.DurationFrames),
	)

	strategy, err := carousel.StrategyByName(cfg.Carousel)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		ClearColor: cfg.Graphics.ClearColor,
		Lights:     lighting.FromConfig(cfg.Lighting),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	sw, sh := v.window.GetSize()
	v.hud, err = hud.New(sw, sh)
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to create hud: %w", err)
	}

	v.animator, err = carousel.New(cfg.Carousel.DurationFrames, strategy,
		carousel.WithDisplay(v.renderer),
		carousel.WithLogger(logger.Named("carousel")),
	)
	if err != nil {
		v.Close()
		return nil, err
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera(cfg.Camera)
	v.screenshots = debug.NewScreenshotCapture("screenshots", "carousel")
	v.loader = assets.NewLoader(
		assets.GLTFDecoder{Options: model.BuildOptions{Scale: cfg.Carousel.ModelScale, Center: true}},
		assets.WithWorkers(cfg.Carousel.Workers),
		assets.WithTimeout(cfg.Carousel.LoadTimeout),
		assets.WithLogger(logger.Named("assets")),
	)

	v.startLoad()
	v.log.Info("viewer initialized successfully")
	return v, nil
}

// startLoad decodes the models off the GL thread. Upload happens in Run.
func (v *Viewer) startLoad() {
	ctx, cancel := context.WithCancel(context.Background())
	v.cancelLoad = cancel
	v.loadDone = make(chan loadOutcome, 1)
	v.loading = true

	paths := v.cfg.Carousel.Models
	go func() {
		res, err := v.loader.Load(ctx, paths)
		v.loadDone <- loadOutcome{result: res, err: err}
	}()
}

// Run drives the frame loop until quit is requested or ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	limiter := newFrameLimiter(v.frameCap())
	var fps fpsCounter

	v.log.Info("starting frame loop")

	for {
		if ctx.Err() != nil {
			v.log.Info("context done, leaving frame loop")
			return nil
		}

		// 1. Input
		quit := v.input.Update()
		st := v.input.State()
		if st.Resized {
			v.resize()
		}

		var hits []input.Action
		for _, c := range st.Clicks {
			if a := v.hud.Click(c); a != input.ActionNone {
				hits = append(hits, a)
			}
		}
		intent := collectIntent(st.Actions, hits)
		if quit || intent.quit {
			v.log.Info("quit requested")
			return nil
		}
		for _, dir := range intent.requested {
			v.animator.RequestTransition(dir)
		}
		v.hud.SetMouse(float32(st.MouseX), float32(st.MouseY))
		v.camera.HandleDrag(st.DragX, st.DragY)
		v.camera.HandleZoom(st.Wheel)
		v.camera.HandlePan(st.PanX, st.PanY)

		// 2. Assets that finished decoding
		v.pollLoad()

		// 3. Animation and camera
		v.animator.AdvanceFrame()
		v.camera.Update()

		// 4. Render
		v.renderer.Begin()
		v.renderer.Render(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.renderer.Aspect()))
		if intent.screenshot {
			v.captureScreenshot()
		}
		v.hud.Draw(v.animator, v.loading)

		// 5. Present
		v.window.SwapBuffers()
		if !v.cfg.Graphics.VSync {
			limiter.wait()
		}

		if n, ok := fps.tick(time.Now()); ok {
			v.log.Debug("fps", zap.Int("count", n))
		}
	}
}

func (v *Viewer) frameCap() int {
	if v.cfg.Graphics.VSync {
		return 0
	}
	return v.cfg.Graphics.FPSLimit
}

func (v *Viewer) resize() {
	dw, dh := v.window.DrawableSize()
	v.renderer.Resize(dw, dh)
	sw, sh := v.window.GetSize()
	v.hud.Resize(sw, sh)
}

// pollLoad installs decoded assets once the background load finishes.
func (v *Viewer) pollLoad() {
	if !v.loading {
		return
	}
	select {
	case out := <-v.loadDone:
		v.loading = false
		if out.err != nil {
			v.log.Error("model load failed", zap.Error(out.err))
		}
		if out.result != nil {
			v.install(out.result.Loaded())
		}
	default:
	}
}

// install uploads meshes and hands the slots to the animator. Meshes that
// fail to upload are dropped like failed loads.
func (v *Viewer) install(loaded []assets.Asset) {
	gpu := make([]*renderer.GPUMesh, 0, len(loaded))
	slots := make([]*carousel.Slot, 0, len(loaded))
	for _, a := range loaded {
		m, err := renderer.Upload(a.Mesh)
		if err != nil {
			v.log.Error("mesh upload failed", zap.String("path", a.Path), zap.Error(err))
			continue
		}
		gpu = append(gpu, m)
		slots = append(slots, &carousel.Slot{Name: a.Path, Handle: m})
	}

	v.renderer.SetMeshes(gpu)
	v.animator.SetSlots(slots)
	v.window.SetTitle(fmt.Sprintf("%s (%d models)", title, len(slots)))

	if len(slots) == 0 {
		v.log.Warn("no models loaded, nothing to show")
	}
}

func (v *Viewer) captureScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources, the window and SDL.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.cancelLoad != nil {
		v.cancelLoad()
	}
	if v.hud != nil {
		v.hud.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
