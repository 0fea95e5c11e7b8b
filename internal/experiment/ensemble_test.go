package experiment

import (
	"context"
	"testing"
)

func TestEnsemble(t *testing.T) {
	ens := NewEnsemble(testConfig(60), 4, 10)
	ens.SetLimit(2)

	results, err := ens.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(10+i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 10+i, r.Seed)
		}
		if r.Frames != 60 {
			t.Errorf("run %d: expected 60 frames, got %d", i, r.Frames)
		}
	}

	s := Summarize(results)
	if s.Runs != 4 || s.Frames != 240 {
		t.Errorf("expected 4 runs and 240 frames, got %d/%d", s.Runs, s.Frames)
	}
	if _, ok := s.MeanMetrics["population"]; !ok {
		t.Error("missing averaged population")
	}
}

func TestEnsembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEnsemble(testConfig(60), 3, 1).Run(ctx); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s.Runs != 0 || s.FramesPerSecond != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
}
