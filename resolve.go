package acorn

import (
	"fmt"
	"reflect"
)

// ---------------------------------------------------------------------------
// Generic helpers
// ---------------------------------------------------------------------------

// Get is a generic helper that resolves the component providing T. It is the
// recommended way to look up instances, both against the runtime and inside
// factories:
//
//	repo, err := acorn.Get[UserRepository](c)
//
// When no component provides T the zero value is returned with a nil error;
// use [Container.Get] directly if the distinction from a legitimately zero
// instance matters.
func Get[T any](c Container) (T, error) {
	var zero T

	v, err := c.Get(TypeOf[T]())
	if err != nil || v == nil {
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cannot convert %s to %s", reflect.TypeOf(v), TypeOf[T]())
	}
	return out, nil
}

// GetProvider is a generic helper that returns the deferred handle for T, or
// nil when no component provides T:
//
//	lazy, err := acorn.GetProvider[AnalyticsSink](c)
func GetProvider[T any](c Container) (Provider, error) {
	return c.GetProvider(TypeOf[T]())
}

// SetOf is a generic helper that collects the set contributions for T:
//
//	checks, err := acorn.SetOf[HealthCheck](c)
func SetOf[T any](c Container) ([]T, error) {
	vs, err := c.SetOf(TypeOf[T]())
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(vs))
	for _, v := range vs {
		t, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("set of %s: cannot convert %s", TypeOf[T](), reflect.TypeOf(v))
		}
		out = append(out, t)
	}
	return out, nil
}

// SetProvider is a generic helper that returns the deferred handle for the
// set of T.
func SetProvider[T any](c Container) (Provider, error) {
	return c.SetProvider(TypeOf[T]())
}
