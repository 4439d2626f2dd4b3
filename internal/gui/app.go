package gui

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/engine"
	"github.com/san-kum/phaseviz/internal/render"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(0, 212, 170, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 280
)

// Options configures the window host.
type Options struct {
	ReducedMotion bool
	Logger        *slog.Logger
}

// App hosts an engine in a raylib window. The engine draws into an off-screen raster that
// is uploaded to a texture once per frame.
type App struct {
	eng     *engine.Engine
	loop    *engine.ManualLoop
	bus     *engine.EventBus
	motion  *engine.MotionSwitch
	surface *render.ImageSurface

	tex    rl.Texture2D
	texW   int
	texH   int
	pixels []color.RGBA

	start time.Time
	log   *slog.Logger
}

// initWindow opens a resizable window, caps it at 60 FPS and disables the default exit key.
func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(windowWidth, windowHeight, "phaseviz")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, opts Options) error {
	initWindow()
	defer rl.CloseWindow()

	app, err := NewApp(cfg, opts)
	if err != nil {
		return err
	}
	defer app.Close()
	app.RunLoop()
	return nil
}

// NewApp builds the engine against the current window. The window must already be open.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	w, h := canvasSize(rl.GetScreenWidth(), rl.GetScreenHeight())
	a := &App{
		loop:    engine.NewManualLoop(),
		bus:     engine.NewEventBus(),
		motion:  engine.NewMotionSwitch(opts.ReducedMotion),
		surface: render.NewImageSurface(w, h, float64(rl.GetWindowScaleDPI().X)),
		start:   time.Now(),
		log:     log.With("component", "gui"),
	}
	eng, err := engine.New(engine.Host{
		Surface: a.surface,
		Loop:    a.loop,
		Motion:  a.motion,
		Events:  a.bus,
		Logger:  log,
	}, cfg)
	if err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	a.eng = eng
	eng.OnVisible()
	return a, nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Close destroys the engine and releases the texture.
func (a *App) Close() {
	a.eng.Destroy()
	if a.texW > 0 {
		rl.UnloadTexture(a.tex)
		a.texW, a.texH = 0, 0
	}
}

// Update feeds input to the engine and pumps one frame. It reports false when the user
// asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsWindowResized() {
		w, h := canvasSize(rl.GetScreenWidth(), rl.GetScreenHeight())
		a.surface.SetSize(w, h)
		a.bus.Resize()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		if x, y, ok := a.toCanvas(pos); ok {
			a.bus.Click(x, y)
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.toggle()
	case rl.IsKeyPressed(rl.KeyR):
		a.eng.Reset()
	case rl.IsKeyPressed(rl.KeyM):
		a.motion.Set(!a.motion.ReducedMotion())
	}

	a.loop.Pump(time.Since(a.start))
	a.syncTexture()
	return true
}

func (a *App) toggle() {
	if a.eng.State() == engine.Running {
		a.eng.Stop()
	} else {
		a.eng.Start()
	}
}

func (a *App) toCanvas(pos rl.Vector2) (float64, float64, bool) {
	vp := a.eng.Viewport()
	x, y := float64(pos.X), float64(pos.Y)
	if x < 0 || y < 0 || x >= vp.Width || y >= vp.Height {
		return 0, 0, false
	}
	return x, y, true
}

// syncTexture uploads the engine's raster, recreating the texture when the backing size
// changed.
func (a *App) syncTexture() {
	img := a.surface.Image()
	if img == nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w != a.texW || h != a.texH {
		if a.texW > 0 {
			rl.UnloadTexture(a.tex)
		}
		blank := rl.GenImageColor(w, h, ColBg)
		a.tex = rl.LoadTextureFromImage(blank)
		rl.SetTextureFilter(a.tex, rl.FilterBilinear)
		rl.UnloadImage(blank)
		a.texW, a.texH = w, h
	}
	a.pixels = rgbaPixels(img, a.pixels)
	rl.UpdateTexture(a.tex, a.pixels)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	vp := a.eng.Viewport()
	if a.texW > 0 && !vp.Empty() {
		rl.DrawTexturePro(
			a.tex,
			rl.Rectangle{X: 0, Y: 0, Width: float32(a.texW), Height: float32(a.texH)},
			rl.Rectangle{X: 0, Y: 0, Width: float32(vp.Width), Height: float32(vp.Height)},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
	}
	a.drawPanel(float32(vp.Width))

	rl.EndDrawing()
}
