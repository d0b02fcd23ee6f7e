package ops

import "math"

// sinOp represents the sine operation: out = sin(x).
//
// Backward pass:
//   - d(sin(x))/dx = cos(x)
//   - grad_x = grad * cos(x)
var sinOp = Operation{
	Name:     "sin",
	Arity:    1,
	Forward:  sinForward,
	Backward: sinBackward,
}

func sinForward(x, _ float64) float64 {
	return math.Sin(x)
}

func sinBackward(grad, x, _, _ float64) (float64, float64) {
	return grad * math.Cos(x), 0
}
