package acorn

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared test types and declarations used across test files.

// mustRuntime calls t.Fatal if runtime construction fails.
func mustRuntime(t *testing.T, opts ...RuntimeOption) *Runtime {
	t.Helper()
	rt, err := NewRuntime(opts...)
	require.NoError(t, err)
	return rt
}

// initTracker records how many times its owning component was initialized.
type initTracker struct {
	mu    sync.Mutex
	count int
}

func (tr *initTracker) initialize() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.count++
}

func (tr *initTracker) initialized() bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.count > 0
}

func (tr *initTracker) initializations() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.count
}

type componentOne interface {
	Tracker() *initTracker
}

type componentTwo interface {
	One() componentOne
}

type componentOneImpl struct{ tracker *initTracker }

func (c *componentOneImpl) Tracker() *initTracker { return c.tracker }

type componentTwoImpl struct{ one componentOne }

func (c *componentTwoImpl) One() componentOne { return c.one }

// coreComponents declares the componentOne/componentTwo pair: two requires
// one directly, one requires the *initTracker and is eager.
func coreComponents() []*Component {
	return []*Component{
		NewComponent[componentTwo](func(c Container) (componentTwo, error) {
			one, err := Get[componentOne](c)
			if err != nil {
				return nil, err
			}
			return &componentTwoImpl{one: one}, nil
		}, Requires[componentOne]()),

		NewComponent[componentOne](func(c Container) (componentOne, error) {
			tracker, err := Get[*initTracker](c)
			if err != nil {
				return nil, err
			}
			tracker.initialize()
			return &componentOneImpl{tracker: tracker}, nil
		}, Requires[*initTracker](), Eager()),
	}
}

// cyclicOne requires cyclicTwo directly; cyclicTwo requires a provider of
// cyclicOne, which legally closes the cycle.
type cyclicOne struct{ two *cyclicTwo }

type cyclicTwo struct{ one Provider }

func cyclicComponents() []*Component {
	return []*Component{
		NewComponent[*cyclicOne](func(c Container) (*cyclicOne, error) {
			two, err := Get[*cyclicTwo](c)
			if err != nil {
				return nil, err
			}
			return &cyclicOne{two: two}, nil
		}, Requires[*cyclicTwo]()),

		NewComponent[*cyclicTwo](func(c Container) (*cyclicTwo, error) {
			one, err := GetProvider[*cyclicOne](c)
			if err != nil {
				return nil, err
			}
			return &cyclicTwo{one: one}, nil
		}, RequiresProvider[*cyclicOne]()),
	}
}

// parent/child exercise a component providing several interfaces.
type parent interface{ isParent() }

type child struct{}

func (*child) isParent() {}

// countingComponent declares a component for T whose factory increments
// *count on every invocation.
func countingComponent[T any](count *int, build func() T, opts ...ComponentOption) *Component {
	return NewComponent[T](func(Container) (T, error) {
		*count++
		return build(), nil
	}, opts...)
}

// recordingExecutor captures submitted tasks instead of running them.
type recordingExecutor struct {
	mu    sync.Mutex
	tasks []func()
}

func (e *recordingExecutor) Execute(task func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, task)
}

func (e *recordingExecutor) runAll() {
	e.mu.Lock()
	tasks := e.tasks
	e.tasks = nil
	e.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

func (e *recordingExecutor) len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}
