package surrogate

import (
	"fmt"
	"sort"
)

type Registry struct {
	generators map[string]func(map[string]float64) Generator
}

func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[string]func(map[string]float64) Generator),
	}

	r.generators["vortex"] = func(params map[string]float64) Generator { return NewVortex(params) }
	r.generators["shear"] = func(params map[string]float64) Generator { return NewShear(params) }
	r.generators["source"] = func(params map[string]float64) Generator { return NewSource(params) }
	r.generators["uniform"] = func(params map[string]float64) Generator { return NewUniform(params) }

	return r
}

func (r *Registry) Get(name string, params map[string]float64) (Generator, error) {
	fn, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown surrogate: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
