// Package dataset holds supervised training pairs.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyDataset is returned for sets without pairs.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrUnknownDataset is returned by Builtin for unknown names.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrRagged is returned when vectors in a set differ in length.
	ErrRagged = errors.New("ragged dataset")
)

// Pair is one input vector with its ideal output.
type Pair struct {
	Input []float64 `yaml:"input"`
	Ideal []float64 `yaml:"ideal"`
}

// Set is a named, ordered collection of pairs.
type Set struct {
	Name  string `yaml:"name"`
	Pairs []Pair `yaml:"pairs"`
}

// Len returns the number of pairs.
func (s *Set) Len() int {
	return len(s.Pairs)
}

// InputSize returns the input vector length (0 for an empty set).
func (s *Set) InputSize() int {
	if len(s.Pairs) == 0 {
		return 0
	}
	return len(s.Pairs[0].Input)
}

// IdealSize returns the ideal vector length (0 for an empty set).
func (s *Set) IdealSize() int {
	if len(s.Pairs) == 0 {
		return 0
	}
	return len(s.Pairs[0].Ideal)
}

// Validate checks that the set is non-empty and rectangular. All problems
// are reported together.
func (s *Set) Validate() error {
	if len(s.Pairs) == 0 {
		return fmt.Errorf("dataset %q: %w", s.Name, ErrEmptyDataset)
	}

	in, ideal := s.InputSize(), s.IdealSize()
	var err error
	if in == 0 {
		err = multierr.Append(err, fmt.Errorf("dataset %q: pair 0 has no inputs: %w", s.Name, ErrRagged))
	}
	if ideal == 0 {
		err = multierr.Append(err, fmt.Errorf("dataset %q: pair 0 has no ideal values: %w", s.Name, ErrRagged))
	}
	for i, p := range s.Pairs {
		if len(p.Input) != in {
			err = multierr.Append(err, fmt.Errorf("dataset %q: pair %d has %d inputs, want %d: %w",
				s.Name, i, len(p.Input), in, ErrRagged))
		}
		if len(p.Ideal) != ideal {
			err = multierr.Append(err, fmt.Errorf("dataset %q: pair %d has %d ideal values, want %d: %w",
				s.Name, i, len(p.Ideal), ideal, ErrRagged))
		}
	}
	return err
}

// Load reads a YAML dataset file:
//
//	name: and
//	pairs:
//	  - input: [0, 0]
//	    ideal: [0]
//
// The name defaults to the file path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve returns the built-in set called nameOrPath, or loads it as a file.
func Resolve(nameOrPath string) (*Set, error) {
	if s, err := Builtin(nameOrPath); err == nil {
		return s, nil
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, fmt.Errorf("%q is neither a built-in dataset (%v) nor a readable file: %w",
			nameOrPath, BuiltinNames(), ErrUnknownDataset)
	}
	return Load(nameOrPath)
}

// Builtin returns a fresh copy of a built-in set.
func Builtin(name string) (*Set, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownDataset)
	}
	return build(), nil
}

// BuiltinNames lists the built-in sets in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
