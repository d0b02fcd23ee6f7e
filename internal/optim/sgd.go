package optim

// SGD implements gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate descent in relevant directions and dampens oscillations.
//
// Example:
//
//	optimizer := optim.NewSGD([]float64{0, 0}, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []float64
	lr         float64
	momentum   float64
	velocities []float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer starting from a copy of params.
func NewSGD(params []float64, config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     append([]float64(nil), params...),
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([]float64, len(params)),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step(grads []float64) {
	checkGrads(s.params, grads)

	for i, grad := range grads {
		if s.momentum == 0 {
			// Simple SGD: param -= lr * grad
			s.params[i] -= s.lr * grad
			continue
		}
		// SGD with momentum
		s.velocities[i] = s.momentum*s.velocities[i] + grad
		s.params[i] -= s.lr * s.velocities[i]
	}
}

// Params returns a copy of the current parameters.
func (s *SGD) Params() []float64 {
	return append([]float64(nil), s.params...)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
