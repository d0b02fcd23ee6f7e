// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation of
// scalar expressions.
//
// Operators applied to Values grow a computation graph owned by a Graph.
// Backward then propagates the output gradient to every input in a single
// reverse-topological pass.
//
// Example:
//
//	import "github.com/born-ml/backprop/autodiff"
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    a, b, c := g.Var(2), g.Var(3), g.Var(1)
//
//	    // f = sin(a*b + 2) + sqrt(c/4)
//	    f := a.Mul(b).AddScalar(2).Sin().Add(c.DivScalar(4).Sqrt())
//
//	    g.Backward(f)
//	    fmt.Println(a.Grad(), b.Grad(), c.Grad())
//
//	    // Reuse the graph for the next computation.
//	    g.Reset()
//	}
package autodiff

import (
	"github.com/born-ml/backprop/internal/autodiff"
	"github.com/born-ml/backprop/internal/autodiff/ops"
)

// Graph owns the nodes of one computation session.
type Graph = autodiff.Graph

// Value is a handle to a graph node.
type Value = autodiff.Value

// Rule tags the local derivative of a node.
type Rule = ops.Rule

// Rules.
const (
	Leaf   = ops.Leaf
	Add    = ops.Add
	Sub    = ops.Sub
	Mul    = ops.Mul
	Div    = ops.Div
	Negate = ops.Negate
	Sin    = ops.Sin
	Cos    = ops.Cos
	Sqrt   = ops.Sqrt
	Log    = ops.Log
	Exp    = ops.Exp
)

// Schedule selects the backward traversal order.
type Schedule = autodiff.Schedule

// Schedules.
const (
	ScheduleTape      = autodiff.ScheduleTape
	ScheduleCountdown = autodiff.ScheduleCountdown
)

// Func builds a scalar expression from input Values.
type Func = autodiff.Func

// GradientCheck holds the result of CheckGradient.
type GradientCheck = autodiff.GradientCheck

// Errors.
var (
	ErrUnknownSchedule  = autodiff.ErrUnknownSchedule
	ErrGradientMismatch = autodiff.ErrGradientMismatch
)

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return autodiff.NewGraph()
}

// ParseSchedule returns the schedule named "tape" or "countdown".
func ParseSchedule(name string) (Schedule, error) {
	return autodiff.ParseSchedule(name)
}

// Gradient evaluates fn at a point and returns its value and gradient.
func Gradient(fn Func, at []float64) (float64, []float64) {
	return autodiff.Gradient(fn, at)
}

// NumericalGradient approximates the gradient of fn with central differences.
func NumericalGradient(fn Func, at []float64, h float64) []float64 {
	return autodiff.NumericalGradient(fn, at, h)
}

// CheckGradient compares Backward with NumericalGradient.
func CheckGradient(fn Func, at []float64, h, tol float64) (GradientCheck, error) {
	return autodiff.CheckGradient(fn, at, h, tol)
}
