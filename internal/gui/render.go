package gui

import (
	"fmt"
	"image"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/phaseviz/internal/engine"
)

// canvasSize returns the logical drawing area left of the control panel.
func canvasSize(screenW, screenH int) (float64, float64) {
	return float64(max(screenW-panelWidth, 0)), float64(max(screenH, 0))
}

// rgbaPixels flattens img into buf, growing it when needed.
func rgbaPixels(img *image.RGBA, buf []color.RGBA) []color.RGBA {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if cap(buf) < n {
		buf = make([]color.RGBA, n)
	}
	buf = buf[:n]
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4]
			buf[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
			i++
		}
	}
	return buf
}

func (a *App) drawPanel(x float32) {
	cfg := a.eng.Config()
	panelX := x + 20
	panelY := float32(20)
	w := float32(panelWidth - 40)

	rl.DrawRectangle(int32(x), 0, panelWidth, int32(rl.GetScreenHeight()), ColBg)
	rl.DrawLine(int32(x), 0, int32(x), int32(rl.GetScreenHeight()), ColGrid)

	rl.DrawText("PHASEVIZ · "+a.eng.Variant().Name(), int32(panelX), int32(panelY), 20, ColAccent)
	panelY += 30
	rl.DrawText(a.status(), int32(panelX), int32(panelY), 16, ColText)
	panelY += 35

	label := "K"
	if a.eng.Variant().Name() == "ranking" {
		label = "Speed"
	}
	value := a.eng.Parameter()
	rl.DrawText(fmt.Sprintf("%s  %.3f", label, value), int32(panelX), int32(panelY), 16, ColText)
	panelY += 22
	next := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: w - 60, Height: 20},
		"", fmt.Sprintf("%.1f", cfg.ParamMax),
		float32(value), float32(cfg.ParamMin), float32(cfg.ParamMax),
	)
	if float64(next) != float64(float32(value)) {
		a.eng.SetParameter(float64(next))
	}
	panelY += 40

	runText := "Start"
	if a.eng.State() == engine.Running {
		runText = "Stop"
	}
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: (w - 10) / 2, Height: 30}, runText) {
		a.toggle()
	}
	if gui.Button(rl.Rectangle{X: panelX + (w+10)/2, Y: panelY, Width: (w - 10) / 2, Height: 30}, "Reset") {
		a.eng.Reset()
	}
	panelY += 45

	reduced := gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Reduced motion", a.motion.ReducedMotion())
	a.motion.Set(reduced)
	panelY += 40

	for _, line := range a.stats() {
		rl.DrawText(line, int32(panelX), int32(panelY), 14, ColText)
		panelY += 20
	}

	rl.DrawText("click: inject   space: run   r: reset", int32(panelX), int32(rl.GetScreenHeight()-30), 10, ColTextDim)
}

func (a *App) status() string {
	if a.eng.Static() {
		return "STATIC"
	}
	return fmt.Sprintf("%s  %d FPS", a.eng.State(), rl.GetFPS())
}

func (a *App) stats() []string {
	lines := []string{fmt.Sprintf("frame %d", a.eng.Frame())}
	switch v := a.eng.Variant().(type) {
	case *engine.MapVariant:
		pop := v.Population()
		lines = append(lines,
			fmt.Sprintf("entities %d", len(pop.Primary())),
			fmt.Sprintf("tracers %d/%d", len(pop.Tracers()), a.eng.Config().MaxTracers),
		)
	case *engine.RankingVariant:
		an := v.Animation()
		lines = append(lines,
			fmt.Sprintf("phase %s", an.Phase),
			fmt.Sprintf("eliminated %.0f%%", 100*an.Elimination),
			fmt.Sprintf("highlights %d", len(v.Highlights())),
		)
	}
	return lines
}
