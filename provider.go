package acorn

import "reflect"

// Provider defers resolution of an interface token until first use. A
// Provider holds no instance itself; every Get resolves through the owning
// runtime, which caches the constructed singleton, so calls after the first
// successful resolution are O(1) and return the identical instance. A
// Provider is a deferred reference, not a new-instance-per-call factory.
type Provider interface {
	Get() (any, error)
}

// sharedProvider is the handle cached per component at runtime construction.
// Every token a component provides maps to the same handle.
type sharedProvider struct {
	rt   *Runtime
	comp *Component
}

func (p *sharedProvider) Get() (any, error) {
	return p.rt.resolve(p.comp, nil)
}

// pathProvider is handed to factories through their restricted container. It
// carries the construction path of the requesting factory so that forcing
// the provider while its target is still mid-construction on the same path
// fails fast with [ErrInternalConsistency] instead of deadlocking.
type pathProvider struct {
	rt   *Runtime
	comp *Component
	path []*Component
}

func (p *pathProvider) Get() (any, error) {
	return p.rt.resolve(p.comp, p.path)
}

// setProvider defers collection of a set binding's instances.
type setProvider struct {
	rt    *Runtime
	token reflect.Type
	path  []*Component
}

func (p *setProvider) Get() (any, error) {
	instances, err := p.rt.setOf(p.token, p.path)
	if err != nil {
		return nil, err
	}
	return instances, nil
}
