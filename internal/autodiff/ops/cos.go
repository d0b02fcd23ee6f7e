package ops

import "math"

// cosOp represents the cosine operation: out = cos(x).
//
// Backward pass:
//   - d(cos(x))/dx = -sin(x)
//   - grad_x = -grad * sin(x)
var cosOp = Operation{
	Name:     "cos",
	Arity:    1,
	Forward:  cosForward,
	Backward: cosBackward,
}

func cosForward(x, _ float64) float64 {
	return math.Cos(x)
}

func cosBackward(grad, x, _, _ float64) (float64, float64) {
	return -(grad * math.Sin(x)), 0
}
