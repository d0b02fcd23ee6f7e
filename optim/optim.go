// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based minimization of scalar objectives
// built with the autodiff package.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Minimize: the forward, backward and step loop over one reusable graph
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/backprop/autodiff"
//	    "github.com/born-ml/backprop/optim"
//	)
//
//	func main() {
//	    // (x-3)²
//	    objective := func(g *autodiff.Graph, p []autodiff.Value) autodiff.Value {
//	        d := p[0].SubScalar(3)
//	        return d.Mul(d)
//	    }
//
//	    optimizer := optim.NewSGD([]float64{0}, optim.SGDConfig{LR: 0.1})
//	    result, err := optim.Minimize(ctx, objective, optimizer, optim.MinimizeConfig{
//	        Steps:     200,
//	        Tolerance: 1e-9,
//	    })
//	}
package optim

import (
	"context"

	"github.com/born-ml/backprop/autodiff"
	"github.com/born-ml/backprop/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// ErrDiverged is returned by Minimize when the objective becomes NaN or infinite.
var ErrDiverged = optim.ErrDiverged

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer starting at a copy of params.
//
// Example:
//
//	optimizer := optim.NewSGD([]float64{0, 0}, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(params []float64, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(params []float64, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}

// Minimization loop

// MinimizeConfig controls the Minimize loop.
type MinimizeConfig = optim.MinimizeConfig

// Result reports the outcome of Minimize.
type Result = optim.Result

// Minimize runs opt on objective until the step budget is spent, the
// gradient norm reaches the tolerance, or ctx is canceled.
func Minimize(ctx context.Context, objective autodiff.Func, opt Optimizer, config MinimizeConfig) (Result, error) {
	return optim.Minimize(ctx, objective, opt, config)
}
