package optim

// SGD implements gradient descent with optional momentum, i.e. classic
// backpropagation.
//
// Update rule:
//
//	change = -lr * gradient + momentum * lastChange
//	param  = param + change
//
// Momentum helps accelerate descent in relevant directions and dampens oscillations.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.7,
//	    Momentum: 0.3,
//	})
type SGD struct {
	state
	lr         float64
	momentum   float64
	lastChange []float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.7)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
//
// Parameters:
//   - config: SGD configuration (LR, Momentum)
//
// Returns a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.7
	}

	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// Name returns "backprop".
func (s *SGD) Name() string {
	return "backprop"
}

// Step performs a single optimization step.
func (s *SGD) Step(weights, grads []float64, _ float64) error {
	first, err := s.check(weights, grads)
	if err != nil {
		return err
	}
	if first {
		s.lastChange = make([]float64, len(weights))
	}

	for i, g := range grads {
		change := -s.lr*g + s.momentum*s.lastChange[i]
		weights[i] += change
		s.lastChange[i] = change
	}
	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}
