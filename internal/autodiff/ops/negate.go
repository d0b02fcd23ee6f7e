package ops

// negateOp represents negation: out = -x.
//
// Backward pass:
//   - d(-x)/dx = -1, so grad_x = -grad
var negateOp = Operation{
	Name:     "neg",
	Arity:    1,
	Forward:  negateForward,
	Backward: negateBackward,
}

func negateForward(x, _ float64) float64 {
	return -x
}

func negateBackward(grad, _, _, _ float64) (float64, float64) {
	return -grad, 0
}
