package activation

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds a function with its default parameters.
type Constructor func() Function

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

func init() {
	Register("fading-sine", func() Function { return NewFadingSine(1) })
	Register("sigmoid", func() Function { return NewSigmoid() })
	Register("bipolar-steepened-sigmoid", func() Function { return NewBipolarSteepenedSigmoid() })
	Register("log", func() Function { return NewLog() })
	Register("tanh", func() Function { return NewTanh() })
	Register("elliott-symmetric", func() Function { return NewElliottSymmetric() })
	Register("sin", func() Function { return NewSin() })
}

// Register adds a constructor under name, replacing any previous one.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// New builds the function registered under name and applies params by index.
//
// Example:
//
//	fn, err := activation.New("fading-sine", 2.0)  // period = 2
func New(name string, params ...float64) (Function, error) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownActivation)
	}

	fn := ctor()
	for i, p := range params {
		if err := fn.SetParam(i, p); err != nil {
			return nil, err
		}
	}
	return fn, nil
}

// Names returns all registered names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
