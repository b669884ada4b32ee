package acorn

import (
	"github.com/panjf2000/ants/v2"
)

// Executor abstracts how the runtime dispatches units of work: the eager
// initialization pass and event deliveries. Implementations may run tasks
// inline or hand them to a pool; the runtime imposes no timeout or
// cancellation semantics of its own.
type Executor interface {
	Execute(task func())
}

// DirectExecutor runs every task inline on the calling goroutine.
type DirectExecutor struct{}

// Execute implements [Executor].
func (DirectExecutor) Execute(task func()) { task() }

// PoolExecutor dispatches tasks to a bounded goroutine pool backed by
// ants. Create one with [NewPoolExecutor] and release it with Close when the
// runtime is done.
type PoolExecutor struct {
	pool *ants.Pool
}

// NewPoolExecutor creates a pool executor with at most size concurrent
// workers.
func NewPoolExecutor(size int) (*PoolExecutor, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &PoolExecutor{pool: pool}, nil
}

// Execute implements [Executor]. If the pool rejects the task (for example
// after Close), it runs inline so submitted work is never dropped.
func (e *PoolExecutor) Execute(task func()) {
	if err := e.pool.Submit(task); err != nil {
		task()
	}
}

// Close releases the pool's workers.
func (e *PoolExecutor) Close() {
	e.pool.Release()
}
