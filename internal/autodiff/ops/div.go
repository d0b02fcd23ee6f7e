package ops

// divOp represents division: out = x / y.
//
// Backward pass:
//   - d(x/y)/dx = 1/y, so grad_x = grad / y
//   - d(x/y)/dy = -x/y², so grad_y = -grad * x / y²
var divOp = Operation{
	Name:     "div",
	Arity:    2,
	Forward:  divForward,
	Backward: divBackward,
}

func divForward(x, y float64) float64 {
	return x / y
}

func divBackward(grad, x, y, _ float64) (float64, float64) {
	return grad / y, -(grad * x / (y * y))
}
