package ops

// mulOp represents multiplication: out = x * y.
//
// Backward pass:
//   - d(x*y)/dx = y, so grad_x = grad * y
//   - d(x*y)/dy = x, so grad_y = grad * x
//
// For x*x both contributions land on the same node, giving 2*grad*x.
var mulOp = Operation{
	Name:     "mul",
	Arity:    2,
	Forward:  mulForward,
	Backward: mulBackward,
}

func mulForward(x, y float64) float64 {
	return x * y
}

func mulBackward(grad, x, y, _ float64) (float64, float64) {
	return grad * y, grad * x
}
