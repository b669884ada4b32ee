package acorn

import (
	"fmt"
	"strings"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// order computes a construction order in which every direct dependency
// precedes its dependents, failing with [ErrDependencyCycle] when the direct
// edges contain a cycle. Deferred edges are never walked, so a cycle broken
// by a provider dependency sorts cleanly. Components are visited in
// registration order and ties preserve it, making the order deterministic
// across runs.
func (g *graph) order() ([]*Component, error) {
	states := make([]visitState, len(g.components))
	order := make([]*Component, 0, len(g.components))

	var visit func(i int, stack []int) error
	visit = func(i int, stack []int) error {
		switch states[i] {
		case visiting:
			return g.cycleError(i, stack)
		case visited:
			return nil
		}

		states[i] = visiting
		stack = append(stack, i)

		for _, dep := range g.edges[i] {
			if err := visit(dep, stack); err != nil {
				return err
			}
		}

		states[i] = visited
		order = append(order, g.components[i])
		return nil
	}

	for i := range g.components {
		if err := visit(i, nil); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// cycleError reports the chain from the repeated component back to itself.
func (g *graph) cycleError(i int, stack []int) error {
	start := 0
	for j, s := range stack {
		if s == i {
			start = j
			break
		}
	}

	chain := make([]string, 0, len(stack)-start+1)
	for _, s := range stack[start:] {
		chain = append(chain, g.components[s].Name())
	}
	chain = append(chain, g.components[i].Name())

	return fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(chain, " -> "))
}
