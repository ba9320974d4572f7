// Package training maps model kinds to constructors and fits the chosen model.
package training

import (
	"sort"
	"strings"
	"sync"

	"github.com/YuminosukeSato/regpipe/core/model"
	"github.com/YuminosukeSato/regpipe/linear"
	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// Options are forwarded unchanged to the model's SetParams.
type Options map[string]interface{}

// Constructor builds an unfitted model configured with options.
type Constructor func(options Options) (model.Regressor, error)

// Registry is an explicit table from model kind to constructor.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// DefaultRegistry returns a registry holding LinearRegressionModel.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(linear.Name, newLinearRegression); err != nil {
		panic(err)
	}
	return r
}

func newLinearRegression(options Options) (model.Regressor, error) {
	lr := linear.NewLinearRegression()
	if err := lr.SetParams(options); err != nil {
		return nil, err
	}
	return lr, nil
}

// Register adds a kind. Registering the same kind twice is an error.
func (r *Registry) Register(kind string, c Constructor) error {
	if kind == "" {
		return errors.NewValidationError("model", "kind must not be empty", kind)
	}
	if c == nil {
		return errors.NewValidationError("model", "constructor must not be nil", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.constructors[kind]; ok {
		return errors.NewValidationError("model", "kind is already registered", kind)
	}
	r.constructors[kind] = c
	return nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.constructors))
	for k := range r.constructors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[kind]
	return ok
}

// New builds an unfitted model of the given kind. An unknown kind is a
// ValidationError listing the supported kinds.
func (r *Registry) New(kind string, options Options) (model.Regressor, error) {
	r.mu.RLock()
	c, ok := r.constructors[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewValidationError("model",
			"unknown model kind, supported: "+strings.Join(r.Kinds(), ", "), kind)
	}
	return c(options)
}
