package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/san-kum/phaseviz/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFormat  string
	logLevel   string
	logFile    string
	logOut     io.Closer

	// config overrides, applied only when the flag was set
	variant   string
	kick      float64
	seed      int64
	entities  int
	frameRate int
	perStep   int
	colorMode string
	rank      int
	total     int
	reduced   bool

	// raster output
	width  float64
	height float64
	ratio  float64
	frames int
	output string
	svgOut string
)

func main() {
	err := newRootCmd().Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd registers the phaseviz commands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "phaseviz",
		Short:         "standard map phase-space particles and rank reveals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".phaseviz", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.MarkFlagsMutuallyExclusive("config", "preset")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the visualization in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().String("theme", "abyss", "terminal theme")
	addConfigFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the visualization in a window",
		RunE:  runGUI,
	}
	addConfigFlags(guiCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a single PNG frame",
		RunE:  renderPNG,
	}
	addConfigFlags(renderCmd)
	addRasterFlags(renderCmd, 0)
	renderCmd.Flags().StringVarP(&output, "out", "o", "phaseviz.png", "output file")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run headless and save the final population",
		RunE:  recordRun,
	}
	addConfigFlags(recordCmd)
	addRasterFlags(recordCmd, 600)
	recordCmd.Flags().Bool("gif", false, "also save an animated GIF")
	recordCmd.Flags().Int("gif-every", 4, "capture every Nth drawn frame")
	recordCmd.Flags().Int("gif-limit", 200, "maximum GIF frames")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "plot a saved population as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntP("size", "s", 800, "image size in pixels")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Lyapunov exponent and chaotic fraction against K",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64("kmin", 0, "lowest K")
	sweepCmd.Flags().Float64("kmax", 5, "highest K")
	sweepCmd.Flags().Int("steps", 21, "number of K values")
	sweepCmd.Flags().Int("grid", 8, "initial conditions per axis")
	sweepCmd.Flags().Int("iterations", 1000, "iterations per orbit")
	sweepCmd.Flags().Int("workers", 0, "parallel workers (0 = all cores)")
	sweepCmd.Flags().Float64("find", 0, "also locate the K where the chaotic fraction reaches this value")
	sweepCmd.Flags().Int("resolution", 41, "K values scanned by --find")
	sweepCmd.Flags().String("svg", "", "also write the mean exponent curve to this SVG file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s variant=%s fps=%d entities=%d\n", name, cfg.Variant, cfg.TargetFPS, cfg.NumEntities)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as YAML",
		RunE:  printConfig,
	}
	addConfigFlags(configCmd)

	rootCmd.AddCommand(liveCmd, guiCmd, renderCmd, recordCmd, listCmd, exportSVGCmd, exportJSONCmd, sweepCmd, presetsCmd, configCmd)
	return rootCmd
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&variant, "variant", "map", "visualization variant: map or ranking")
	f.Float64Var(&kick, "k", config.DefaultK, "kick strength")
	f.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	f.IntVar(&entities, "entities", config.DefaultNumEntities, "number of primary entities")
	f.IntVar(&frameRate, "fps", config.DefaultTargetFPS, "target frame rate")
	f.IntVar(&perStep, "fpi", config.DefaultFramesPerIteration, "frames per primary iteration")
	f.StringVar(&colorMode, "color-mode", config.ColorHue, "primary colouring: primary or hue")
	f.IntVar(&rank, "rank", config.DefaultRank, "rank to reveal")
	f.IntVar(&total, "total", config.DefaultRankTotal, "number of candidates")
	f.BoolVar(&reduced, "reduced-motion", false, "render a static frame instead of animating")
}

func addRasterFlags(cmd *cobra.Command, defaultFrames int) {
	f := cmd.Flags()
	f.Float64Var(&width, "width", 800, "logical width")
	f.Float64Var(&height, "height", 600, "logical height")
	f.Float64Var(&ratio, "ratio", 1, "device pixel ratio")
	f.IntVar(&frames, "frames", defaultFrames, "frames to run before capturing (0 = static frame)")
}

// loadConfig resolves preset or file, then applies the flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("variant") {
		cfg.SwitchVariant(variant)
	}
	if changed("k") {
		cfg.K = kick
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("entities") {
		cfg.NumEntities = entities
	}
	if changed("fps") {
		cfg.TargetFPS = frameRate
	}
	if changed("fpi") {
		cfg.FramesPerIteration = perStep
	}
	if changed("color-mode") {
		cfg.ColorMode = colorMode
	}
	if changed("rank") {
		cfg.Ranking.Rank = rank
	}
	if changed("total") {
		cfg.Ranking.Total = total
	}
	return cfg, nil
}

// setupLogging installs the default slog logger. The terminal host owns the screen, so
// without --log-file its logs are discarded.
func setupLogging(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	var w io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
		logOut = f
	case cmd.Name() == "live":
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(logFormat) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format %q", logFormat)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// closeLog closes the --log-file handle, if one is open.
func closeLog() error {
	if logOut == nil {
		return nil
	}
	err := logOut.Close()
	logOut = nil
	return err
}
