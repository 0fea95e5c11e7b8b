package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/analysis"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/export"
	"github.com/san-kum/ballpit/internal/storage"
)

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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSEED\tFRAMES\tFINAL POP\tFAULTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Frames,
			run.FinalPopulation,
			run.Faults,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))
	for _, name := range plotColumns {
		data, err := experiment.Column(samples, name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	data, err := experiment.Column(samples, analyzeColumn)
	if err != nil {
		return err
	}
	if len(data) < 4 {
		return fmt.Errorf("not enough samples to analyze: %d", len(data))
	}

	// sample rate in hz, from the frame rate and the sampling stride
	rate := 60.0
	if cfg, err := st.LoadConfig(runID); err == nil && cfg.FPS > 0 {
		rate = float64(cfg.FPS)
	}
	if stride := samples[1].Frame - samples[0].Frame; stride > 1 {
		rate /= float64(stride)
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("column: %s\n\n", analyzeColumn)

	s := analysis.Describe(data)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mean\t%.4f\n", s.Mean)
	fmt.Fprintf(w, "stddev\t%.4f\n", s.Std)
	fmt.Fprintf(w, "min\t%.4f\n", s.Min)
	fmt.Fprintf(w, "max\t%.4f\n", s.Max)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	ps := analysis.PowerSpectrum(data)
	plotData := ps[1:]
	if len(plotData) > 200 {
		plotData = plotData[:200]
	}
	if len(plotData) > 1 {
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+analyzeColumn+")"),
		))
		fmt.Println()
	}

	freq, power := analysis.DominantFrequency(data, rate)
	if freq == 0 {
		fmt.Println("no dominant frequency")
		return nil
	}
	fmt.Printf("dominant frequency: %.4f hz (power %.3g)\n", freq, power)
	fmt.Printf("period: %.3f s\n", 1/freq)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(os.Stdout, args[0], csvColumns...)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	var svg string
	if svgColumn != "" {
		data, err := st.LoadSeries(runID, svgColumn)
		if err != nil {
			return err
		}
		svg = export.SeriesToSVG(data, 800, 300, "#00ccff")
	} else {
		final, err := st.LoadFinal(runID)
		if err != nil {
			return err
		}
		svg = export.FrameToSVG(final, svgScale)
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err := io.WriteString(w, svg)
	return err
}
