package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/ballpit/internal/experiment"
)

type ExportData struct {
	Run     RunMetadata         `json:"run"`
	Columns []string            `json:"columns"`
	Samples []experiment.Sample `json:"samples"`
}

// ExportJSON writes a run's metadata and telemetry as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Columns: experiment.Columns, Samples: samples})
}

// ExportCSV writes the chosen telemetry columns, or all of them when none
// are named.
func (s *Store) ExportCSV(w io.Writer, runID string, columns ...string) error {
	if len(columns) == 0 {
		columns = experiment.Columns
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	series := make([][]float64, len(columns))
	for i, c := range columns {
		if series[i], err = experiment.Column(samples, c); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for row := range samples {
		rec := make([]string, len(columns))
		for i := range columns {
			rec[i] = strconv.FormatFloat(series[i][row], 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
