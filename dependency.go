package acorn

import (
	"fmt"
	"reflect"
)

// DependencyKind controls how a declared dependency is handed to the
// depending factory, and whether the edge participates in cycle analysis.
type DependencyKind int

const (
	// Direct means the dependency's instance must be fully constructed
	// before the depending factory runs. Direct edges are walked by the
	// topological sorter and must not form cycles.
	Direct DependencyKind = iota

	// Deferred means the factory receives a [Provider] handle instead of an
	// instance; the target is looked up on first Provider.Get. Deferred
	// edges are excluded from cycle analysis, so mutually dependent
	// components may use them to break a cycle.
	Deferred

	// DirectSet means the factory receives every instance contributed to
	// the set of the target token, fully constructed. Creates a direct edge
	// to each contributor.
	DirectSet

	// DeferredSet means the factory receives a [Provider] resolving to the
	// set's instances on first use. Creates no ordering edges.
	DeferredSet
)

// String returns the human-readable name of the kind.
func (k DependencyKind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Deferred:
		return "deferred"
	case DirectSet:
		return "direct-set"
	case DeferredSet:
		return "deferred-set"
	default:
		return "unknown"
	}
}

// Dependency describes one edge of the dependency graph: the target
// interface token, whether the dependency is required, and how it is
// delivered to the factory. Dependencies are declared through the
// [ComponentOption] helpers ([Requires], [Optional], [RequiresProvider],
// [OptionalProvider], [RequiresSet], [RequiresSetProvider]) and are
// immutable.
type Dependency struct {
	token    reflect.Type
	required bool
	kind     DependencyKind
}

// Token returns the target interface token.
func (d Dependency) Token() reflect.Type { return d.token }

// Required reports whether a missing provider for the target is a
// construction-time error.
func (d Dependency) Required() bool { return d.required }

// Kind returns how the dependency is delivered.
func (d Dependency) Kind() DependencyKind { return d.kind }

// isSet reports whether the target token names a set binding.
func (d Dependency) isSet() bool {
	return d.kind == DirectSet || d.kind == DeferredSet
}

// String returns a compact description used in error messages.
func (d Dependency) String() string {
	req := "optional"
	if d.required {
		req = "required"
	}
	return fmt.Sprintf("%s (%s, %s)", d.token, d.kind, req)
}
