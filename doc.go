// Package acorn is a declaration-based dependency injection runtime for Go.
//
// Independently developed modules declare what they provide and what they
// need, without knowing how anything else is implemented or instantiated.
// Acorn builds the dependency graph from those declarations, validates it,
// computes a safe construction order, and serves every declared interface as
// a lazily-or-eagerly constructed singleton.
//
// # Quick Start
//
//	rt, err := acorn.NewRuntime(
//		acorn.WithComponents(
//			acorn.NewComponent[*Logger](newLogger),
//			acorn.NewComponent[*Database](newDatabase,
//				acorn.Requires[*Logger](),
//			),
//		),
//	)
//	if err != nil {
//		// duplicate provider, missing dependency or dependency cycle
//	}
//
//	db, err := acorn.Get[*Database](rt)
//
// Declarations usually come from [Registrar] collaborators, one per module;
// [NewRuntime] concatenates their declarations with any extra components and
// closes registration.
//
// # Dependencies
//
// A component declares each dependency as direct ([Requires], [Optional]) or
// deferred ([RequiresProvider], [OptionalProvider]). Direct dependencies are
// fully constructed before the depending factory runs and must not form
// cycles; [NewRuntime] rejects a cyclic graph with [ErrDependencyCycle].
// Deferred dependencies hand the factory a [Provider] handle instead, so two
// components may legally depend on each other as long as at least one edge
// is deferred.
//
// Factories see only what they declared. Requesting anything else fails with
// [ErrUndeclaredDependency].
//
// # Eager Initialization
//
// Components marked [Eager] are constructed by
// [Runtime.InitializeEagerComponents], in dependency order, on the runtime's
// [Executor] — use it for components whose constructors register with
// external systems. Everything else is constructed on first lookup.
//
// # Set Bindings
//
// Several components may contribute instances to the set of one token
// ([IntoSet], [NewSetComponent]); consumers collect them with [SetOf]
// after declaring [RequiresSet].
//
// # Events
//
// The runtime carries a small typed [EventBus], resolvable as [Publisher]
// and [Subscriber]. Events published before eager initialization completes
// are queued and flushed afterwards, so early components can publish to
// late subscribers.
package acorn
