package optim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/born-ml/backprop/internal/autodiff"
)

// MinimizeConfig controls the Minimize loop.
type MinimizeConfig struct {
	Steps     int               // Maximum number of steps (default: 100)
	Tolerance float64           // Stop once the gradient norm is at or below this value
	Schedule  autodiff.Schedule // Backward schedule
	Logger    *slog.Logger      // Per-step debug logging (default: slog.Default())
}

// Result reports the outcome of Minimize.
type Result struct {
	Params    []float64 // Parameters after the last step
	Loss      float64   // Objective at the last evaluated point
	GradNorm  float64   // Gradient norm at the last evaluated point
	Steps     int       // Number of objective evaluations
	Converged bool      // Whether the tolerance was reached
}

// Minimize runs opt on the objective until the step budget is spent, the
// gradient norm falls to the tolerance, or ctx is canceled.
//
// Every step reuses one graph: it is Reset, the objective is rebuilt at the
// optimizer's current parameters, Backward runs once and the gradients of the
// parameter leaves are handed to opt.Step. When Converged is set, Params is
// the point where the tolerance was met.
func Minimize(ctx context.Context, objective autodiff.Func, opt Optimizer, config MinimizeConfig) (Result, error) {
	if config.Steps <= 0 {
		config.Steps = 100
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := autodiff.NewGraph()
	result := Result{Params: opt.Params()}

	for step := 1; step <= config.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("minimize: %w", err)
		}

		g.Reset()
		params := opt.Params()
		inputs := make([]autodiff.Value, len(params))
		for i, p := range params {
			inputs[i] = g.Var(p)
		}

		loss := objective(g, inputs)
		if v := loss.Data(); math.IsNaN(v) || math.IsInf(v, 0) {
			return result, fmt.Errorf("minimize: step %d: loss %v: %w", step, v, ErrDiverged)
		}

		g.BackwardWith(loss, config.Schedule)
		grads := g.Gradients(inputs...)

		result.Loss = loss.Data()
		result.GradNorm = norm(grads)
		result.Steps = step
		logger.Debug("optimizer step",
			"step", step,
			"loss", result.Loss,
			"grad_norm", result.GradNorm,
			"nodes", g.Len(),
		)

		if result.GradNorm <= config.Tolerance {
			result.Params = params
			result.Converged = true
			return result, nil
		}

		opt.Step(grads)
		result.Params = opt.Params()
	}

	return result, nil
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
