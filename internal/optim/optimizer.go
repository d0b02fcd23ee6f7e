// Package optim implements gradient-based minimization of scalar objectives.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: gradient descent with momentum
//   - Adam: adaptive moment estimation
//   - Minimize: the forward/backward/step loop over one reusable graph
//
// Example usage:
//
//	objective := func(g *autodiff.Graph, p []autodiff.Value) autodiff.Value {
//	    d := p[0].SubScalar(3)
//	    return d.Mul(d)
//	}
//
//	result, err := optim.Minimize(ctx, objective, optim.NewSGD([]float64{0}, optim.SGDConfig{
//	    LR: 0.1,
//	}), optim.MinimizeConfig{Steps: 200})
package optim

import "fmt"

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers own the current parameter vector and update it from the
// gradients of the objective at that point.
type Optimizer interface {
	// Step applies one update. grads[i] is the partial derivative of the
	// objective with respect to parameter i.
	Step(grads []float64)

	// Params returns a copy of the current parameters.
	Params() []float64

	// GetLR returns the current learning rate.
	GetLR() float64
}

// checkGrads panics if the gradient vector does not match the parameters.
func checkGrads(params, grads []float64) {
	if len(grads) != len(params) {
		panic(fmt.Sprintf("optim: got %d gradients for %d parameters", len(grads), len(params)))
	}
}
