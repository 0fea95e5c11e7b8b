package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/config"
)

var (
	dataDir    string
	logLevel   string
	logFile    string
	configFile string
	preset     string

	seed         int64
	frames       int
	fps          int
	width        float64
	height       float64
	timeScale    float64
	gravityScale float64

	sampleEvery int
	runName     string

	plotColumns   []string
	csvColumns    []string
	analyzeColumn string
	svgColumn     string
	output        string
	svgScale      float64

	liveScale float64
	theme     string
	gifPath   string

	grid     []string
	metric   string
	maximize bool

	numRuns  int
	workers  int
	paramMin float64
	paramMax float64
	steps    int
)

// main registers commands and flags and opens the window when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ballpit",
		Short:         "interactive 2d ball physics sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ballpit", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	addConfigFlags(rootCmd)

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the sandbox window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	addConfigFlags(windowCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the sandbox in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().Float64Var(&liveScale, "scale", 6, "world units per braille dot")
	liveCmd.Flags().StringVar(&theme, "theme", "arcade", "color theme")
	liveCmd.Flags().StringVar(&gifPath, "gif", "ballpit.gif", "gif recording path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the sandbox headless and store telemetry",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "keep one telemetry row per this many frames")
	runCmd.Flags().StringVar(&runName, "name", "run", "run name")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run seeded headless runs in parallel",
		Args:  cobra.NoArgs,
		RunE:  benchRuns,
	}
	addConfigFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "runs in flight (0 = NumCPU)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a scripted scenario and store telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addConfigFlags(scenarioCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep one physics parameter across headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search parameters for the best value of one metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addConfigFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "parameter values, e.g. gravity_scale=0.5,1,2 (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "containment", "metric to optimize")
	tuneCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run telemetry in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&plotColumns, "columns", []string{"population", "kinetic"}, "telemetry columns")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "statistics and power spectrum of a telemetry column",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeColumn, "column", "kinetic", "telemetry column")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run telemetry as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringSliceVar(&csvColumns, "columns", nil, "telemetry columns (default all)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final frame, or one telemetry column, as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 0.5, "pixels per world unit")
	exportSVGCmd.Flags().StringVar(&svgColumn, "column", "", "plot this telemetry column instead of the final frame")

	rootCmd.AddCommand(windowCmd, liveCmd, runCmd, benchCmd, scenarioCmd, sweepCmd, tuneCmd, presetsCmd,
		listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate (headless)")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "world width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "world height")
	cmd.Flags().Float64Var(&timeScale, "time-scale", 1, "time scale (0.1-2)")
	cmd.Flags().Float64Var(&gravityScale, "gravity-scale", 1, "gravity scale (0-5)")
}

// loadConfig applies defaults, then the preset, then the config file, then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	overrideFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func overrideFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if flags.Changed("gravity-scale") {
		cfg.GravityScale = gravityScale
	}
}

// newLogger builds the text logger for a command. Interactive front ends
// pass quiet so that, without --log-file, logs do not draw over the screen.
func newLogger(quiet bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(logLevel))); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case quiet:
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}
