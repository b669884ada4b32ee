package acorn

import "errors"

var (
	// ErrDuplicateProvider is returned by [NewRuntime] when two components
	// declare the same provided interface token.
	ErrDuplicateProvider = errors.New("duplicate provider")

	// ErrMissingDependency is returned by [NewRuntime] when a required
	// dependency has no providing component.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrDependencyCycle is returned by [NewRuntime] when the direct
	// dependency graph contains a cycle. The error message includes the full
	// chain. Cycles broken by a provider dependency are legal and do not
	// trigger this error.
	ErrDependencyCycle = errors.New("dependency cycle detected")

	// ErrNilToken is returned when a nil interface token is passed to a
	// lookup method.
	ErrNilToken = errors.New("nil interface token")

	// ErrUndeclaredDependency is returned when a factory requests an
	// interface it never declared as a dependency.
	ErrUndeclaredDependency = errors.New("undeclared dependency")

	// ErrInternalConsistency is returned when a component is re-entered
	// while its own factory is still running. The validated graph makes this
	// unreachable through direct dependencies; hitting it means a provider
	// was forced mid-construction of its own target.
	ErrInternalConsistency = errors.New("internal consistency failure")

	// ErrAlreadyShutdown is returned when Shutdown is called more than once
	// on the same runtime.
	ErrAlreadyShutdown = errors.New("runtime already shut down")
)
