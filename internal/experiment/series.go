package experiment

import "fmt"

// Columns lists the telemetry columns in storage order.
var Columns = []string{
	"frame", "population", "kinetic", "momentum", "spawn_rate",
	"spawned", "despawned", "merged", "exploded", "cleared", "faults",
}

// Values returns the sample as a row in Columns order.
func (s Sample) Values() []float64 {
	return []float64{
		float64(s.Frame), float64(s.Population), s.Kinetic, s.Momentum, s.SpawnRate,
		float64(s.Spawned), float64(s.Despawned), float64(s.Merged),
		float64(s.Exploded), float64(s.Cleared), float64(s.Faults),
	}
}

// SampleFromValues is the inverse of Values.
func SampleFromValues(v []float64) (Sample, error) {
	if len(v) != len(Columns) {
		return Sample{}, fmt.Errorf("expected %d values, got %d", len(Columns), len(v))
	}
	return Sample{
		Frame:      int(v[0]),
		Population: int(v[1]),
		Kinetic:    v[2],
		Momentum:   v[3],
		SpawnRate:  v[4],
		Spawned:    int(v[5]),
		Despawned:  int(v[6]),
		Merged:     int(v[7]),
		Exploded:   int(v[8]),
		Cleared:    int(v[9]),
		Faults:     int(v[10]),
	}, nil
}

// Column extracts the named column from samples.
func Column(samples []Sample, name string) ([]float64, error) {
	idx := -1
	for i, c := range Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown column: %s", name)
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Values()[idx]
	}
	return out, nil
}
