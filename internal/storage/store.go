package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	finalFile    = "final.json"
	configFile   = "config.yaml"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	Frames          int                `json:"frames"`
	Width           float64            `json:"width"`
	Height          float64            `json:"height"`
	TimeScale       float64            `json:"time_scale"`
	GravityScale    float64            `json:"gravity_scale"`
	FinalPopulation int                `json:"final_population"`
	Faults          int                `json:"faults"`
	ElapsedMs       float64            `json:"elapsed_ms"`
	Metrics         map[string]float64 `json:"metrics"`
}

func newRunID(name string) string {
	return fmt.Sprintf("%s_%s_%s", name, time.Now().Format("20060102-150405"), uuid.NewString()[:8])
}

// Save writes one run: metadata, per-frame telemetry, the final frame and
// the config it ran with.
func (s *Store) Save(result *experiment.Result, cfg *config.Config) (string, error) {
	name := result.Name
	if name == "" {
		name = "run"
	}
	runID := newRunID(name)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Seed:      result.Seed,
		Frames:    result.Frames,
		Faults:    len(result.Faults),
		ElapsedMs: float64(result.Elapsed.Microseconds()) / 1000,
		Metrics:   result.Metrics,
	}
	if cfg != nil {
		meta.Width, meta.Height = cfg.Width, cfg.Height
		meta.TimeScale, meta.GravityScale = cfg.TimeScale, cfg.GravityScale
		if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
			return "", err
		}
	}
	if result.Final != nil {
		meta.FinalPopulation = len(result.Final.Bodies)
		if err := writeJSON(filepath.Join(runDir, finalFile), result.Final); err != nil {
			return "", err
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, framesFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []experiment.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(experiment.Columns); err != nil {
		return err
	}
	for _, s := range samples {
		vals := s.Values()
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads a run's telemetry. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]experiment.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []experiment.Sample{}, nil
	}

	samples := make([]experiment.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		vals := make([]float64, 0, len(record))
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		sample, err := experiment.SampleFromValues(vals)
		if err != nil {
			continue
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// LoadSeries reads one telemetry column of a run.
func (s *Store) LoadSeries(runID, column string) ([]float64, error) {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return experiment.Column(samples, column)
}

// LoadFinal reads the last frame of a run for rendering.
func (s *Store) LoadFinal(runID string) (*dynamo.Frame, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, finalFile))
	if err != nil {
		return nil, err
	}
	var f dynamo.Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadConfig reads the config a run was made with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}
