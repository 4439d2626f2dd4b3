package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/phaseviz/internal/analysis"
	"github.com/san-kum/phaseviz/internal/engine"
	"github.com/san-kum/phaseviz/internal/export"
	"github.com/san-kum/phaseviz/internal/gui"
	"github.com/san-kum/phaseviz/internal/storage"
	"github.com/san-kum/phaseviz/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	theme, _ := cmd.Flags().GetString("theme")

	m, err := viz.NewModel(cfg, viz.Options{Theme: theme, ReducedMotion: reduced, Logger: slog.Default()})
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg, gui.Options{ReducedMotion: reduced, Logger: slog.Default()})
}

func renderPNG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	h, err := engine.NewHeadless(cfg, width, height, ratio, reduced || frames == 0, slog.Default())
	if err != nil {
		return err
	}
	defer h.Engine.Destroy()
	n, err := h.Advance(frames)
	if err != nil {
		return err
	}

	img := h.Surface.Image()
	if img == nil {
		return fmt.Errorf("nothing rendered at %gx%g", width, height)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	if h.Engine.Static() {
		fmt.Printf("static frame written to %s\n", output)
	} else {
		fmt.Printf("frame %d written to %s\n", n, output)
	}
	return nil
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	h, err := engine.NewHeadless(cfg, width, height, ratio, reduced, slog.Default())
	if err != nil {
		return err
	}
	defer h.Engine.Destroy()

	var rec *export.GIFRecorder
	if withGIF, _ := cmd.Flags().GetBool("gif"); withGIF {
		every, _ := cmd.Flags().GetInt("gif-every")
		limit, _ := cmd.Flags().GetInt("gif-limit")
		delay := max(1, 100*every/max(cfg.TargetFPS, 1))
		rec = export.NewGIFRecorder(h.Surface.Image, every, limit, delay)
		h.Engine.AddObserver(rec)
	}

	fmt.Printf("recording %s for %d frames...\n", cfg.Variant, frames)
	start := time.Now()
	n, err := h.Advance(frames)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Variant: cfg.Variant,
		Seed:    cfg.Seed,
		K:       h.Engine.Parameter(),
		Frames:  n,
		Width:   width,
		Height:  height,
		Metrics: map[string]float64{},
	}
	var records []*storage.EntityRecord
	switch v := h.Engine.Variant().(type) {
	case *engine.MapVariant:
		pop := v.Population()
		records = storage.Snapshot(pop)
		meta.Entities = len(pop.Primary())
		meta.Tracers = len(pop.Tracers())
		s := analysis.SampleGrid(v.Parameter(), 6, 100, 500)
		meta.Metrics["chaotic_fraction"] = analysis.ChaoticFraction(s.Exponents, analysis.ChaosThreshold)
	case *engine.RankingVariant:
		a := v.Animation()
		meta.Entities = v.Selection().Total
		meta.Metrics["elimination"] = a.Elimination
		meta.Metrics["zoom"] = a.Zoom
	}

	runID, err := st.Save(meta, h.Engine.Config(), records)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", n)
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	if rec == nil {
		return nil
	}
	if rec.Len() == 0 {
		rec.Capture()
	}
	path := st.Path(runID, storage.AnimationFile)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rec.Encode(f); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	fmt.Printf("gif: %s (%d frames)\n", path, rec.Len())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tFRAMES\tK\tENTITIES\tTRACERS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\t%d\t%d\n",
			run.ID,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.K,
			run.Entities,
			run.Tracers,
		)
	}
	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadPopulation(args[0])
	if err != nil {
		return fmt.Errorf("load population: %w", err)
	}
	size, _ := cmd.Flags().GetInt("size")

	style := export.DefaultSVGStyle()
	if cfg, err := st.LoadConfig(args[0]); err == nil {
		style.Primary = cfg.PrimaryColor.Hex()
		style.Tracer = cfg.HighlightColor.Hex()
		style.Background = cfg.Background.Hex()
	}
	svg := export.PopulationToSVG(records, size, size, style)

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("svg written to %s\n", svgOut)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func runSweep(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	cfg := analysis.DefaultSweepConfig()
	cfg.KMin, _ = f.GetFloat64("kmin")
	cfg.KMax, _ = f.GetFloat64("kmax")
	cfg.Steps, _ = f.GetInt("steps")
	cfg.Grid, _ = f.GetInt("grid")
	cfg.Iterations, _ = f.GetInt("iterations")
	cfg.Workers, _ = f.GetInt("workers")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	points, err := analysis.Sweep(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Debug("sweep finished", "points", len(points), "elapsed", time.Since(start))

	if len(points) > 1 {
		mean := analysis.Series(points, func(p analysis.SweepPoint) float64 { return p.MeanExponent })
		frac := analysis.Series(points, func(p analysis.SweepPoint) float64 { return p.ChaoticFraction })
		fmt.Println(asciigraph.Plot(mean, asciigraph.Height(10), asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("mean Lyapunov exponent, K %.2f to %.2f", cfg.KMin, cfg.KMax))))
		fmt.Println()
		fmt.Println(asciigraph.Plot(frac, asciigraph.Height(6), asciigraph.Width(80),
			asciigraph.Caption("chaotic fraction")))
		fmt.Println()
	}

	fmt.Printf("%-8s  %12s  %12s  %10s\n", "K", "mean λ", "std λ", "chaotic")
	for _, p := range points {
		fmt.Printf("%-8.3f  %12.5f  %12.5f  %9.1f%%\n", p.K, p.MeanExponent, p.StdDevExponent, 100*p.ChaoticFraction)
	}

	if target, _ := f.GetFloat64("find"); target > 0 {
		res, _ := f.GetInt("resolution")
		k, frac, err := analysis.CriticalK(ctx, cfg, target, res)
		if err != nil {
			return err
		}
		fmt.Printf("\nchaotic fraction %.2f reached near K = %.3f (measured %.1f%%)\n", target, k, 100*frac)
	}

	if path, _ := f.GetString("svg"); path != "" {
		svg := export.SweepToSVG(points, 800, 400, "#00d4aa")
		if svg == "" {
			return fmt.Errorf("need at least two K values for an SVG plot")
		}
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", path)
	}
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	for _, adj := range cfg.Sanitize() {
		slog.Warn("config clamped", "adjustment", adj)
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
