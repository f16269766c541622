package optim

import (
	"fmt"
	"math"
)

// RPROP constants from Riedmiller & Braun and Igel & Hüsken.
const (
	// PositiveEta grows the step when the gradient keeps its sign.
	PositiveEta = 1.2
	// NegativeEta shrinks the step when the gradient flips sign.
	NegativeEta = 0.5
	// DeltaMin is the smallest allowed step.
	DeltaMin = 1e-6
	// ZeroTolerance treats gradients smaller than this as zero.
	ZeroTolerance = 1e-17

	// DefaultInitialUpdate is the starting step for every weight.
	DefaultInitialUpdate = 0.1
	// DefaultMaxStep caps the step.
	DefaultMaxStep = 50.0
)

// RPROPType selects the RPROP variant.
type RPROPType int

const (
	// IRPROPPlus is improved RPROP with weight backtracking only when the
	// error increased. It is the default.
	IRPROPPlus RPROPType = iota
	// IRPROPMinus is improved RPROP without backtracking.
	IRPROPMinus
	// RPROPPlus is the original RPROP with weight backtracking.
	RPROPPlus
	// RPROPMinus is RPROP without backtracking.
	RPROPMinus
)

// String returns the conventional spelling ("irprop+", ...).
func (t RPROPType) String() string {
	switch t {
	case IRPROPPlus:
		return "irprop+"
	case IRPROPMinus:
		return "irprop-"
	case RPROPPlus:
		return "rprop+"
	case RPROPMinus:
		return "rprop-"
	default:
		return fmt.Sprintf("RPROPType(%d)", int(t))
	}
}

// ParseRPROPType parses a variant name. An empty string selects iRPROP+.
func ParseRPROPType(s string) (RPROPType, error) {
	switch s {
	case "", "irprop+", "iRPROP+":
		return IRPROPPlus, nil
	case "irprop-", "iRPROP-":
		return IRPROPMinus, nil
	case "rprop+", "RPROP+":
		return RPROPPlus, nil
	case "rprop-", "RPROP-":
		return RPROPMinus, nil
	default:
		return 0, fmt.Errorf("rprop type %q: %w", s, ErrUnknownOptimizer)
	}
}

// RPROPConfig holds configuration for the RPROP optimizer.
type RPROPConfig struct {
	Type          RPROPType // Variant (default: iRPROP+)
	InitialUpdate float64   // Starting step per weight (default: 0.1)
	MaxStep       float64   // Step ceiling (default: 50)
}

// RPROP implements resilient propagation.
//
// Only the sign of each gradient is used. Every weight keeps its own step Δ:
//
//	sign unchanged:  Δ = min(Δ·η+, MaxStep)
//	sign flipped:    Δ = max(Δ·η-, DeltaMin)
//	w = w - sign(g)·Δ
//
// The variants differ in what happens after a sign flip: the "+" variants
// revert the previous change (iRPROP+ only when the error went up), and the
// improved variants forget the gradient so the next step does not adapt.
//
// Reference: Igel & Hüsken, "Improving the Rprop Learning Algorithm" (2000).
type RPROP struct {
	state
	typ           RPROPType
	initialUpdate float64
	maxStep       float64

	updateValues []float64 // Δ per weight
	lastGradient []float64
	lastChange   []float64
	lastError    float64
}

// NewRPROP creates a new RPROP optimizer.
func NewRPROP(config RPROPConfig) *RPROP {
	if config.InitialUpdate == 0 {
		config.InitialUpdate = DefaultInitialUpdate
	}
	if config.MaxStep == 0 {
		config.MaxStep = DefaultMaxStep
	}
	return &RPROP{
		typ:           config.Type,
		initialUpdate: config.InitialUpdate,
		maxStep:       config.MaxStep,
		lastError:     math.Inf(1),
	}
}

// Name returns the variant name, e.g. "irprop+".
func (r *RPROP) Name() string {
	return r.typ.String()
}

// Type returns the variant.
func (r *RPROP) Type() RPROPType {
	return r.typ
}

// UpdateValues returns the current per-weight steps.
func (r *RPROP) UpdateValues() []float64 {
	return r.updateValues
}

// Step performs a single RPROP update.
func (r *RPROP) Step(weights, grads []float64, loss float64) error {
	first, err := r.check(weights, grads)
	if err != nil {
		return err
	}
	if first {
		n := len(weights)
		r.updateValues = make([]float64, n)
		for i := range r.updateValues {
			r.updateValues[i] = r.initialUpdate
		}
		r.lastGradient = make([]float64, n)
		r.lastChange = make([]float64, n)
	}

	for i := range weights {
		var change float64
		switch r.typ {
		case RPROPPlus:
			change = r.rpropPlus(i, grads[i])
		case RPROPMinus:
			change = r.rpropMinus(i, grads[i])
		case IRPROPMinus:
			change = r.irpropMinus(i, grads[i])
		default:
			change = r.irpropPlus(i, grads[i], loss)
		}
		weights[i] += change
	}
	r.lastError = loss
	return nil
}

func (r *RPROP) grow(i int) float64 {
	return math.Min(r.updateValues[i]*PositiveEta, r.maxStep)
}

func (r *RPROP) shrink(i int) float64 {
	return math.Max(r.updateValues[i]*NegativeEta, DeltaMin)
}

func (r *RPROP) rpropPlus(i int, g float64) float64 {
	var change float64
	switch c := sign(g * r.lastGradient[i]); {
	case c > 0:
		r.updateValues[i] = r.grow(i)
		change = -sign(g) * r.updateValues[i]
		r.lastGradient[i] = g
	case c < 0:
		r.updateValues[i] = r.shrink(i)
		change = -r.lastChange[i]
		r.lastGradient[i] = 0
	default:
		change = -sign(g) * r.updateValues[i]
		r.lastGradient[i] = g
	}
	r.lastChange[i] = change
	return change
}

func (r *RPROP) rpropMinus(i int, g float64) float64 {
	switch c := sign(g * r.lastGradient[i]); {
	case c > 0:
		r.updateValues[i] = r.grow(i)
	case c < 0:
		r.updateValues[i] = r.shrink(i)
	}
	r.lastGradient[i] = g
	return -sign(g) * r.updateValues[i]
}

func (r *RPROP) irpropPlus(i int, g, loss float64) float64 {
	var change float64
	switch c := sign(g * r.lastGradient[i]); {
	case c > 0:
		r.updateValues[i] = r.grow(i)
		change = -sign(g) * r.updateValues[i]
		r.lastGradient[i] = g
	case c < 0:
		r.updateValues[i] = r.shrink(i)
		if loss > r.lastError {
			change = -r.lastChange[i]
		}
		r.lastGradient[i] = 0
	default:
		change = -sign(g) * r.updateValues[i]
		r.lastGradient[i] = g
	}
	r.lastChange[i] = change
	return change
}

func (r *RPROP) irpropMinus(i int, g float64) float64 {
	switch c := sign(g * r.lastGradient[i]); {
	case c > 0:
		r.updateValues[i] = r.grow(i)
		r.lastGradient[i] = g
	case c < 0:
		r.updateValues[i] = r.shrink(i)
		r.lastGradient[i] = 0
	default:
		r.lastGradient[i] = g
	}
	return -sign(r.lastGradient[i]) * r.updateValues[i]
}

// sign returns -1, 0 or 1, treating |v| < ZeroTolerance as zero.
func sign(v float64) float64 {
	switch {
	case math.Abs(v) < ZeroTolerance:
		return 0
	case v > 0:
		return 1
	default:
		return -1
	}
}
