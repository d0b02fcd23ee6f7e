package ops

// subOp represents subtraction: out = x - y.
//
// Backward pass:
//   - d(x-y)/dx = 1, so grad_x = grad
//   - d(x-y)/dy = -1, so grad_y = -grad
var subOp = Operation{
	Name:     "sub",
	Arity:    2,
	Forward:  subForward,
	Backward: subBackward,
}

func subForward(x, y float64) float64 {
	return x - y
}

func subBackward(grad, _, _, _ float64) (float64, float64) {
	return grad, -grad
}
