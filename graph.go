package acorn

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// graph holds all registered components indexed by provided token, plus the
// adjacency relation over direct edges. It is built once by [NewRuntime] and
// read-only afterwards.
type graph struct {
	// components in registration order; all index-based bookkeeping below
	// refers into this slice so traversals stay deterministic.
	components []*Component
	index      map[*Component]int

	owners     map[reflect.Type]*Component
	setMembers map[reflect.Type][]*Component

	// edges[i] lists, in dependency declaration order, the components that
	// must be constructed before components[i]. Direct edges only; deferred
	// dependencies are resolved lazily and never constrain ordering.
	edges [][]int
}

// newGraph validates the component set and builds the direct-edge adjacency.
// It fails with [ErrDuplicateProvider] when two components provide the same
// token and with [ErrMissingDependency] when a required dependency has no
// provider. Optional dependencies without a provider resolve to absent.
func newGraph(components []*Component, logger *zap.Logger) (*graph, error) {
	g := &graph{
		components: components,
		index:      make(map[*Component]int, len(components)),
		owners:     make(map[reflect.Type]*Component),
		setMembers: make(map[reflect.Type][]*Component),
		edges:      make([][]int, len(components)),
	}

	for i, c := range components {
		if c == nil {
			return nil, fmt.Errorf("component at position %d is nil", i)
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		g.index[c] = i

		for _, token := range c.provides {
			if prev, exists := g.owners[token]; exists {
				return nil, fmt.Errorf("%w: %s declared by both %s and %s",
					ErrDuplicateProvider, token, prev, c)
			}
			g.owners[token] = c
		}
		for _, token := range c.sets {
			g.setMembers[token] = append(g.setMembers[token], c)
		}
	}

	for i, c := range components {
		for _, dep := range c.deps {
			if dep.isSet() {
				if dep.kind == DirectSet {
					for _, m := range g.setMembers[dep.token] {
						g.edges[i] = append(g.edges[i], g.index[m])
					}
				}
				continue
			}

			owner, ok := g.owners[dep.token]
			if !ok {
				if dep.required {
					return nil, fmt.Errorf("%w: %s required by %s",
						ErrMissingDependency, dep.token, c)
				}
				continue
			}
			if dep.kind == Direct {
				g.edges[i] = append(g.edges[i], g.index[owner])
			}
		}
	}

	logger.Debug("dependency graph built",
		zap.Int("components", len(components)),
		zap.Int("interfaces", len(g.owners)),
		zap.Int("sets", len(g.setMembers)),
	)
	return g, nil
}

// owner returns the component providing token, or nil.
func (g *graph) owner(token reflect.Type) *Component {
	return g.owners[token]
}

// members returns the components contributing to the set of token, in
// registration order.
func (g *graph) members(token reflect.Type) []*Component {
	return g.setMembers[token]
}
