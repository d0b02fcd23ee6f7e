package autodiff

import (
	"fmt"
	"math"
)

// Func builds a scalar expression of inputs on g and returns its output.
// inputs holds one Var per coordinate of the evaluation point.
type Func func(g *Graph, inputs []Value) Value

// Gradient evaluates fn at the given point and returns the output value and
// the gradient with respect to every coordinate.
func Gradient(fn Func, at []float64) (float64, []float64) {
	g := NewGraph()
	inputs := make([]Value, len(at))
	for i, x := range at {
		inputs[i] = g.Var(x)
	}
	out := fn(g, inputs)
	g.Backward(out)
	return out.Data(), g.Gradients(inputs...)
}

// NumericalGradient approximates the gradient of fn at the given point with
// central finite differences: (f(x+h) - f(x-h)) / 2h.
//
// All evaluations share one graph that is Reset between them.
func NumericalGradient(fn Func, at []float64, h float64) []float64 {
	g := NewGraph()
	point := append([]float64(nil), at...)

	eval := func() float64 {
		g.Reset()
		inputs := make([]Value, len(point))
		for i, x := range point {
			inputs[i] = g.Var(x)
		}
		return fn(g, inputs).Data()
	}

	grad := make([]float64, len(at))
	for i := range point {
		original := point[i]

		point[i] = original + h
		fPlus := eval()

		point[i] = original - h
		fMinus := eval()

		grad[i] = (fPlus - fMinus) / (2 * h)
		point[i] = original
	}
	return grad
}

// GradientCheck holds the outcome of CheckGradient.
type GradientCheck struct {
	Analytic []float64 // Backward result
	Numeric  []float64 // Finite-difference result
	MaxDiff  float64   // Largest scaled difference over all coordinates
	Worst    int       // Coordinate where MaxDiff occurs, -1 for zero inputs
}

// CheckGradient compares Backward against NumericalGradient at the given
// point. Coordinates are compared with |a-n| / max(1, |a|, |n|), and any
// value above tol fails with ErrGradientMismatch.
func CheckGradient(fn Func, at []float64, h, tol float64) (GradientCheck, error) {
	_, analytic := Gradient(fn, at)
	check := GradientCheck{
		Analytic: analytic,
		Numeric:  NumericalGradient(fn, at, h),
		Worst:    -1,
	}

	for i := range analytic {
		a, n := check.Analytic[i], check.Numeric[i]
		scale := math.Max(1, math.Max(math.Abs(a), math.Abs(n)))
		diff := math.Abs(a-n) / scale
		if math.IsNaN(diff) {
			diff = math.Inf(1)
		}
		if check.Worst < 0 || diff > check.MaxDiff {
			check.MaxDiff = diff
			check.Worst = i
		}
	}

	if check.Worst >= 0 && check.MaxDiff > tol {
		return check, fmt.Errorf("%w: input %d: analytic %g, numeric %g",
			ErrGradientMismatch, check.Worst, check.Analytic[check.Worst], check.Numeric[check.Worst])
	}
	return check, nil
}
