package ops

import "math"

// logOp represents the natural logarithm: out = ln(x).
//
// Forward:
//
//	out = log(x)
//
// Backward:
//
//	∂L/∂x = ∂L/∂out * (1 / x)
var logOp = Operation{
	Name:     "log",
	Arity:    1,
	Forward:  logForward,
	Backward: logBackward,
}

func logForward(x, _ float64) float64 {
	return math.Log(x)
}

func logBackward(grad, x, _, _ float64) (float64, float64) {
	return grad / x, 0
}
