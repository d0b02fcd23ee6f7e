package ops

import "math"

// expOp represents the exponential operation: out = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = out
//   - grad_x = grad * out
//
// The stored output is reused, exp is not evaluated again.
var expOp = Operation{
	Name:     "exp",
	Arity:    1,
	Forward:  expForward,
	Backward: expBackward,
}

func expForward(x, _ float64) float64 {
	return math.Exp(x)
}

func expBackward(grad, _, _, out float64) (float64, float64) {
	return grad * out, 0
}
