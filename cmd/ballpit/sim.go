package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/automation"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/gui"
	"github.com/san-kum/ballpit/internal/sandbox"
	"github.com/san-kum/ballpit/internal/storage"
	"github.com/san-kum/ballpit/internal/viz"
)

func newWorld(cfg *config.Config, logger *slog.Logger) *sandbox.World {
	opts := cfg.Options()
	opts.Logger = logger
	return sandbox.New(opts)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	return gui.Run(newWorld(cfg, logger), gui.Options{
		Width:  int(cfg.Width),
		Height: int(cfg.Height),
		FPS:    cfg.FPS,
		Input:  sandbox.InputFor(cfg.FrameConfig()),
		Logger: logger,
	})
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	return viz.RunLive(newWorld(cfg, logger), viz.LiveOptions{
		Scale:  liveScale,
		FPS:    cfg.FPS,
		Theme:  theme,
		Input:  sandbox.InputFor(cfg.FrameConfig()),
		GIF:    gifPath,
		Logger: logger,
	})
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	opts := cfg.Options()
	opts.Logger = logger
	exp := experiment.New(experiment.Config{
		Name:        runName,
		Frames:      cfg.Frames,
		Options:     opts,
		Frame:       cfg.FrameConfig(),
		SampleEvery: sampleEvery,
	})
	exp.UseDefaultMetrics()

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %d frames...\n", cfg.Frames)
	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		logger.Warn("run interrupted", slog.Int("frames", result.Frames), slog.Any("err", err))
	}
	return saveAndReport(st, result, cfg)
}

func saveAndReport(st *storage.Store, result *experiment.Result, cfg *config.Config) error {
	runID, err := st.Save(result, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	if result.Final != nil {
		fmt.Printf("final population: %d\n", len(result.Final.Bodies))
	}
	if len(result.Faults) > 0 {
		fmt.Printf("faults: %d\n", len(result.Faults))
	}
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func benchRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	opts := cfg.Options()
	opts.Logger = logger
	ens := experiment.NewEnsemble(experiment.Config{
		Name:        "bench",
		Frames:      cfg.Frames,
		Options:     opts,
		Frame:       cfg.FrameConfig(),
		SampleEvery: cfg.Frames,
	}, numRuns, cfg.Seed)
	ens.SetLimit(workers)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %d runs of %d frames\n\n", numRuns, cfg.Frames)
	start := time.Now()
	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}
	wall := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tTIME\tFRAMES/SEC\tFINAL POP\tFAULTS")
	for _, r := range results {
		pop := 0
		if r.Final != nil {
			pop = len(r.Final.Bodies)
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%d\t%d\n",
			r.Seed, r.Frames, r.Elapsed.Round(time.Millisecond),
			float64(r.Frames)/r.Elapsed.Seconds(), pop, len(r.Faults))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sum := experiment.Summarize(results)
	fmt.Printf("\nwall time: %v\n", wall.Round(time.Millisecond))
	fmt.Printf("frames/sec per run: %.0f\n", sum.FramesPerSecond)
	fmt.Printf("mean final population: %.1f\n", sum.MeanFinalPopulation)
	printMetrics(sum.MeanMetrics)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	s, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	overrideFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("scenario", slog.String("name", s.Name), slog.Int("steps", len(s.Steps)), slog.Int("frames", cfg.Frames))
	result, err := automation.RunScenario(ctx, s, cfg)
	if err != nil {
		return err
	}
	return saveAndReport(st, result, cfg)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		ParamName: args[0],
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  steps,
		Base:      cfg,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("%w (parameters: %v)", err, automation.SweepParams())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL POP\tMEAN KE\tPEAK KE\tMERGES\tEXPLOSIONS\n", args[0])
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%d\t%.1f\t%.1f\t%.0f\t%.0f\n",
			r.ParamValue, r.FinalPopulation, r.MeanKinetic, r.PeakKinetic, r.Merges, r.Explosions)
	}
	return w.Flush()
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range config.ListPresets() {
			fmt.Println(name)
		}
		return nil
	}
	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
