package acorn

import (
	"fmt"
	"reflect"
)

// restrictedContainer is the dependency view a factory runs against. It only
// permits lookups the component declared: Get for direct dependencies,
// GetProvider for deferred ones, SetOf and SetProvider for set dependencies.
// It also carries the construction chain leading to this factory, which the
// runtime uses to fail fast on mid-construction re-entry.
type restrictedContainer struct {
	rt   *Runtime
	comp *Component
	path []*Component
}

func (c *restrictedContainer) Get(token reflect.Type) (any, error) {
	if token == nil {
		return nil, ErrNilToken
	}
	if !c.comp.declares(token, Direct) {
		return nil, fmt.Errorf("%w: %s requested %s without declaring a direct dependency on it",
			ErrUndeclaredDependency, c.comp, token)
	}
	return c.rt.get(token, c.path)
}

func (c *restrictedContainer) GetProvider(token reflect.Type) (Provider, error) {
	if token == nil {
		return nil, ErrNilToken
	}
	if !c.comp.declares(token, Deferred) {
		return nil, fmt.Errorf("%w: %s requested a provider of %s without declaring a deferred dependency on it",
			ErrUndeclaredDependency, c.comp, token)
	}
	owner := c.rt.graph.owner(token)
	if owner == nil {
		return nil, nil
	}
	return &pathProvider{rt: c.rt, comp: owner, path: c.path}, nil
}

func (c *restrictedContainer) SetOf(token reflect.Type) ([]any, error) {
	if token == nil {
		return nil, ErrNilToken
	}
	if !c.comp.declares(token, DirectSet) {
		return nil, fmt.Errorf("%w: %s requested the set of %s without declaring a direct set dependency on it",
			ErrUndeclaredDependency, c.comp, token)
	}
	return c.rt.setOf(token, c.path)
}

func (c *restrictedContainer) SetProvider(token reflect.Type) (Provider, error) {
	if token == nil {
		return nil, ErrNilToken
	}
	if !c.comp.declares(token, DeferredSet) {
		return nil, fmt.Errorf("%w: %s requested a set provider of %s without declaring a deferred set dependency on it",
			ErrUndeclaredDependency, c.comp, token)
	}
	return &setProvider{rt: c.rt, token: token, path: c.path}, nil
}
