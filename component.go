package acorn

import (
	"fmt"
	"reflect"
)

// Factory constructs a component's instance. It receives a [Container]
// restricted to the component's declared dependencies: Get works for direct
// dependencies, GetProvider for deferred ones, SetOf and SetProvider for set
// dependencies. Requesting anything else fails with
// [ErrUndeclaredDependency].
type Factory func(Container) (any, error)

// Component is an immutable declaration of one component: the interface
// tokens it provides, the dependencies its factory needs, how eagerly it is
// constructed, and the factory itself. Build one with [NewComponent],
// [NewSetComponent] or [Value] and hand it to [NewRuntime]; the runtime
// constructs at most one instance per component and serves that instance for
// every token the component provides.
type Component struct {
	provides []reflect.Type
	sets     []reflect.Type
	deps     []Dependency
	factory  Factory
	eager    bool
	name     string
}

// ComponentOption configures a component during declaration.
type ComponentOption func(*Component)

// NewComponent declares a component providing T.
//
//	acorn.NewComponent[UserService](
//		func(c acorn.Container) (UserService, error) {
//			repo, err := acorn.Get[UserRepository](c)
//			if err != nil {
//				return nil, err
//			}
//			return &userService{repo: repo}, nil
//		},
//		acorn.Requires[UserRepository](),
//	)
func NewComponent[T any](factory func(Container) (T, error), opts ...ComponentOption) *Component {
	c := &Component{
		provides: []reflect.Type{TypeOf[T]()},
		factory: func(ctn Container) (any, error) {
			return factory(ctn)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSetComponent declares a component that only contributes its instance to
// the set of T, without owning any token of its own. Several components may
// contribute to the same set; [Container.SetOf] collects them in declaration
// order.
func NewSetComponent[T any](factory func(Container) (T, error), opts ...ComponentOption) *Component {
	c := &Component{
		sets: []reflect.Type{TypeOf[T]()},
		factory: func(ctn Container) (any, error) {
			return factory(ctn)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Value declares an already-built instance as a zero-dependency component
// providing T. Useful for values owned by the host application:
//
//	acorn.Value[*Clock](clock)
func Value[T any](v T, opts ...ComponentOption) *Component {
	return NewComponent[T](func(Container) (T, error) {
		return v, nil
	}, opts...)
}

// AlsoProvides adds U to the component's provided tokens. The single
// constructed instance answers lookups for every provided token, so it must
// be assignable to U as well.
func AlsoProvides[U any]() ComponentOption {
	return func(c *Component) {
		c.provides = append(c.provides, TypeOf[U]())
	}
}

// IntoSet additionally contributes the component's instance to the set of U.
func IntoSet[U any]() ComponentOption {
	return func(c *Component) {
		c.sets = append(c.sets, TypeOf[U]())
	}
}

// Eager marks the component for construction during
// [Runtime.InitializeEagerComponents], whether or not anything ever looks it
// up. Use it for components whose constructor has side effects that must run
// at startup.
func Eager() ComponentOption {
	return func(c *Component) {
		c.eager = true
	}
}

// WithName sets a debug name used in logs and error messages. Defaults to
// the first provided token.
func WithName(name string) ComponentOption {
	return func(c *Component) {
		c.name = name
	}
}

// Requires declares a required direct dependency on U. The instance is fully
// constructed before this component's factory runs.
func Requires[U any]() ComponentOption {
	return dependsOn(TypeOf[U](), true, Direct)
}

// Optional declares an optional direct dependency on U. If no component
// provides U, the factory sees a nil lookup result instead of an error.
func Optional[U any]() ComponentOption {
	return dependsOn(TypeOf[U](), false, Direct)
}

// RequiresProvider declares a required deferred dependency on U: the factory
// receives a [Provider] handle, and U's own construction is delayed until
// the first Provider.Get. A provider edge may legally close a cycle.
func RequiresProvider[U any]() ComponentOption {
	return dependsOn(TypeOf[U](), true, Deferred)
}

// OptionalProvider declares an optional deferred dependency on U.
func OptionalProvider[U any]() ComponentOption {
	return dependsOn(TypeOf[U](), false, Deferred)
}

// RequiresSet declares a direct dependency on the set of U. An empty set is
// not an error; every contributor is constructed before this component.
func RequiresSet[U any]() ComponentOption {
	return dependsOn(TypeOf[U](), false, DirectSet)
}

// RequiresSetProvider declares a deferred dependency on the set of U.
func RequiresSetProvider[U any]() ComponentOption {
	return dependsOn(TypeOf[U](), false, DeferredSet)
}

func dependsOn(token reflect.Type, required bool, kind DependencyKind) ComponentOption {
	return func(c *Component) {
		c.deps = append(c.deps, Dependency{token: token, required: required, kind: kind})
	}
}

// Provides returns the component's provided tokens.
func (c *Component) Provides() []reflect.Type {
	return append([]reflect.Type(nil), c.provides...)
}

// Sets returns the set tokens the component contributes to.
func (c *Component) Sets() []reflect.Type {
	return append([]reflect.Type(nil), c.sets...)
}

// Dependencies returns the component's declared dependencies in declaration
// order.
func (c *Component) Dependencies() []Dependency {
	return append([]Dependency(nil), c.deps...)
}

// IsEager reports whether the component is constructed during the eager
// initialization pass.
func (c *Component) IsEager() bool { return c.eager }

// Name returns the debug name.
func (c *Component) Name() string {
	if c.name != "" {
		return c.name
	}
	if len(c.provides) > 0 {
		return c.provides[0].String()
	}
	if len(c.sets) > 0 {
		return fmt.Sprintf("set<%s>", c.sets[0])
	}
	return "<unnamed>"
}

// String implements [fmt.Stringer].
func (c *Component) String() string { return c.Name() }

func (c *Component) declares(token reflect.Type, kind DependencyKind) bool {
	for _, d := range c.deps {
		if d.token == token && d.kind == kind {
			return true
		}
	}
	return false
}

// validate checks the declaration invariants before graph construction.
func (c *Component) validate() error {
	if c.factory == nil {
		return fmt.Errorf("component %s has no factory", c)
	}
	if len(c.provides) == 0 && len(c.sets) == 0 {
		return fmt.Errorf("component %s provides no interfaces", c)
	}
	for _, d := range c.deps {
		if d.token == nil {
			return fmt.Errorf("component %s declares a dependency with a %w", c, ErrNilToken)
		}
	}
	return nil
}
