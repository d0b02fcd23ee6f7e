package ops

// addOp represents addition: out = x + y.
//
// Backward pass:
//   - d(x+y)/dx = 1, so grad_x = grad
//   - d(x+y)/dy = 1, so grad_y = grad
var addOp = Operation{
	Name:     "add",
	Arity:    2,
	Forward:  addForward,
	Backward: addBackward,
}

func addForward(x, y float64) float64 {
	return x + y
}

// addBackward lets the gradient flow equally to both operands.
func addBackward(grad, _, _, _ float64) (float64, float64) {
	return grad, grad
}
