package automation

import (
	"context"
	"testing"

	"github.com/san-kum/ballpit/internal/config"
)

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Frames = 60
	base.Spawn.Rate = 0.3

	results, err := RunSweep(context.Background(), &ParameterSweep{
		ParamName: "gravity_scale",
		ParamMin:  0,
		ParamMax:  4,
		NumSteps:  3,
		Base:      base,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []float64{0, 2, 4} {
		if results[i].ParamValue != want {
			t.Errorf("step %d: expected %f, got %f", i, want, results[i].ParamValue)
		}
	}
	if base.GravityScale != 1 {
		t.Error("sweep must not modify the base config")
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	if _, err := RunSweep(context.Background(), &ParameterSweep{ParamName: "nope", NumSteps: 2}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestSweepParamsSorted(t *testing.T) {
	names := SweepParams()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("not sorted: %v", names)
		}
	}
}
