package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/automation"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/optim"
)

// parseGrid reads name=v1,v2,... specs into parallel name and value
// slices.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("invalid grid %q: want name=v1,v2", spec)
		}
		var values []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid grid %q: %w", spec, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no --grid given (parameters: %v)", automation.SweepParams())
	}
	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	search.Maximize = maximize

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("grid search", slog.Int("points", search.Size()), slog.String("metric", metric))
	best, trials, err := search.Search(ctx, func(params map[string]float64) (*experiment.Experiment, error) {
		derived, err := automation.Derive(cfg, params)
		if err != nil {
			return nil, err
		}
		opts := derived.Options()
		opts.Logger = logger
		exp := experiment.New(experiment.Config{
			Name:        "tune",
			Frames:      derived.Frames,
			Options:     opts,
			Frame:       derived.FrameConfig(),
			SampleEvery: derived.Frames,
		})
		exp.UseDefaultMetrics()
		return exp, nil
	}, metric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(names, "\t")+"\t"+strings.ToUpper(metric))
	for _, tr := range trials {
		for _, n := range names {
			fmt.Fprintf(w, "%.4g\t", tr.Params[n])
		}
		fmt.Fprintf(w, "%.4f\n", tr.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	keys := make([]string, 0, len(best.Params))
	for k := range best.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, best.Params[k])
	}
	fmt.Printf("\nbest: %s (%s %.4f)\n", strings.Join(parts, " "), metric, best.Score)
	return nil
}
