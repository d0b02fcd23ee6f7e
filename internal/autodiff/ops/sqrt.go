package ops

import "math"

// sqrtOp represents the square root operation: out = sqrt(x).
//
// Backward pass:
//   - d(sqrt(x))/dx = 0.5 / sqrt(x)
//   - grad_x = grad * 0.5 / sqrt(x)
//
// At x = 0 the contribution is +Inf; for x < 0 it is NaN.
var sqrtOp = Operation{
	Name:     "sqrt",
	Arity:    1,
	Forward:  sqrtForward,
	Backward: sqrtBackward,
}

func sqrtForward(x, _ float64) float64 {
	return math.Sqrt(x)
}

func sqrtBackward(grad, x, _, _ float64) (float64, float64) {
	return grad * 0.5 / math.Sqrt(x), 0
}
