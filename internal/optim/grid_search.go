// Package optim searches sandbox parameter grids for the run that scores
// best on one metric.
package optim

import (
	"context"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/ballpit/internal/experiment"
)

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Score  float64
}

// GridSearch evaluates every combination of the given parameter values.
// It minimizes the metric unless Maximize is set.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("got %d parameters but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs one experiment per grid point and returns the best trial
// along with every trial in grid order.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Trial, []Trial, error) {
	best := Trial{Score: math.Inf(1)}
	if g.Maximize {
		best.Score = math.Inf(-1)
	}
	trials := make([]Trial, 0, g.Size())

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		exp, err := buildExperiment(params)
		if err != nil {
			return err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("metric %s not recorded", metricName)
		}

		trial := Trial{Params: maps.Clone(params), Score: val}
		trials = append(trials, trial)
		if g.better(val, best.Score) {
			best = trial
		}
		return nil
	})
	return best, trials, err
}

func (g *GridSearch) better(val, best float64) bool {
	if g.Maximize {
		return val > best
	}
	return val < best
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval func(map[string]float64) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := maps.Clone(current)
		newParams[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, newParams, eval); err != nil {
			return fmt.Errorf("%s=%g: %w", paramName, val, err)
		}
	}
	return nil
}
