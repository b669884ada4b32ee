package acorn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Container is the dependency-lookup surface of the runtime. The [Runtime]
// itself implements it without restrictions; factories receive a restricted
// view limited to their declared dependencies.
type Container interface {
	// Get returns the singleton instance for the component providing token,
	// constructing it on demand. It returns nil (not an error) when no
	// component provides token, and [ErrNilToken] for a nil token.
	Get(token reflect.Type) (any, error)

	// GetProvider returns a deferred handle for token without forcing
	// construction, or nil when no component provides token.
	GetProvider(token reflect.Type) (Provider, error)

	// SetOf returns the instances contributed to the set of token, in
	// declaration order. An empty set yields an empty slice, not an error.
	SetOf(token reflect.Type) ([]any, error)

	// SetProvider returns a deferred handle resolving to SetOf(token).
	SetProvider(token reflect.Type) (Provider, error)
}

// Registrar supplies component declarations to [NewRuntime]. Declarations
// from all registrars are concatenated, in order, before the graph is built.
type Registrar interface {
	Components() []*Component
}

// RegistrarFunc adapts a function to the [Registrar] interface.
type RegistrarFunc func() []*Component

// Components implements [Registrar].
func (f RegistrarFunc) Components() []*Component { return f() }

type slotState int

const (
	unresolved slotState = iota
	inProgress
	resolved
)

func (s slotState) String() string {
	switch s {
	case unresolved:
		return "unresolved"
	case inProgress:
		return "in-progress"
	case resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// slot tracks one component's construction state. done is non-nil exactly
// while the state is inProgress; waiters block on it instead of re-running
// the factory.
type slot struct {
	state    slotState
	instance any
	done     chan struct{}
}

// Runtime owns the validated dependency graph and every constructed
// singleton. Create one with [NewRuntime]; the declaration set is closed
// from then on. Lookups are safe for concurrent use and a component's
// factory runs at most once.
type Runtime struct {
	graph *graph
	order []*Component

	mu    sync.Mutex
	slots map[*Component]*slot

	// constructed records resolution order for reverse-order Shutdown.
	constructed []*Component
	closed      bool

	providers    map[*Component]Provider
	setProviders map[reflect.Type]Provider

	executor Executor
	logger   *zap.Logger
	bus      *EventBus
}

type runtimeConfig struct {
	executor   Executor
	registrars []Registrar
	components []*Component
	logger     *zap.Logger
}

// RuntimeOption configures [NewRuntime].
type RuntimeOption func(*runtimeConfig)

// WithExecutor sets the executor used for the eager initialization pass and
// default event delivery. Defaults to [DirectExecutor].
func WithExecutor(e Executor) RuntimeOption {
	return func(cfg *runtimeConfig) {
		cfg.executor = e
	}
}

// WithRegistrars adds registrars whose declarations are ingested at
// construction.
func WithRegistrars(regs ...Registrar) RuntimeOption {
	return func(cfg *runtimeConfig) {
		cfg.registrars = append(cfg.registrars, regs...)
	}
}

// WithComponents adds individual declarations, after all registrar-supplied
// ones. Typically used for pre-built [Value] bindings owned by the host.
func WithComponents(comps ...*Component) RuntimeOption {
	return func(cfg *runtimeConfig) {
		cfg.components = append(cfg.components, comps...)
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) RuntimeOption {
	return func(cfg *runtimeConfig) {
		cfg.logger = l
	}
}

// NewRuntime ingests every declaration, builds and validates the dependency
// graph, and computes the construction order. Any validation failure
// ([ErrDuplicateProvider], [ErrMissingDependency], [ErrDependencyCycle])
// aborts construction before a single factory runs; a malformed graph never
// partially initializes.
func NewRuntime(opts ...RuntimeOption) (*Runtime, error) {
	cfg := runtimeConfig{
		executor: DirectExecutor{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	bus := newEventBus(cfg.executor)

	var components []*Component
	for _, reg := range cfg.registrars {
		components = append(components, reg.Components()...)
	}
	components = append(components, cfg.components...)
	components = append(components, Value[Publisher](bus, AlsoProvides[Subscriber]()))

	g, err := newGraph(components, cfg.logger)
	if err != nil {
		return nil, err
	}

	order, err := g.order()
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		graph:        g,
		order:        order,
		slots:        make(map[*Component]*slot, len(components)),
		providers:    make(map[*Component]Provider, len(components)),
		setProviders: make(map[reflect.Type]Provider, len(g.setMembers)),
		executor:     cfg.executor,
		logger:       cfg.logger,
		bus:          bus,
	}
	for _, c := range components {
		rt.slots[c] = &slot{}
		rt.providers[c] = &sharedProvider{rt: rt, comp: c}
	}
	for token := range g.setMembers {
		rt.setProviders[token] = &setProvider{rt: rt, token: token}
	}

	cfg.logger.Info("runtime constructed",
		zap.Int("components", len(components)),
		zap.Int("interfaces", len(g.owners)),
	)
	return rt, nil
}

// Get implements [Container].
func (r *Runtime) Get(token reflect.Type) (any, error) {
	return r.get(token, nil)
}

func (r *Runtime) get(token reflect.Type, path []*Component) (any, error) {
	if token == nil {
		return nil, ErrNilToken
	}
	comp := r.graph.owner(token)
	if comp == nil {
		return nil, nil
	}
	return r.resolve(comp, path)
}

// GetProvider implements [Container]. The returned handle is cached per
// component, so every token one component provides yields the identical
// handle.
func (r *Runtime) GetProvider(token reflect.Type) (Provider, error) {
	if token == nil {
		return nil, ErrNilToken
	}
	comp := r.graph.owner(token)
	if comp == nil {
		return nil, nil
	}
	return r.providers[comp], nil
}

// SetOf implements [Container].
func (r *Runtime) SetOf(token reflect.Type) ([]any, error) {
	return r.setOf(token, nil)
}

func (r *Runtime) setOf(token reflect.Type, path []*Component) ([]any, error) {
	if token == nil {
		return nil, ErrNilToken
	}
	members := r.graph.members(token)
	instances := make([]any, 0, len(members))
	for _, m := range members {
		inst, err := r.resolve(m, path)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// SetProvider implements [Container].
func (r *Runtime) SetProvider(token reflect.Type) (Provider, error) {
	if token == nil {
		return nil, ErrNilToken
	}
	if p, ok := r.setProviders[token]; ok {
		return p, nil
	}
	return &setProvider{rt: r, token: token}, nil
}

// resolve returns the component's singleton, constructing it if necessary.
// path is the chain of components currently under construction by the
// caller; re-entering a component already on it means a provider was forced
// mid-construction of its own target, which fails fast instead of
// deadlocking. A concurrent resolver from an unrelated path waits for the
// running factory and then reuses its result, so a factory runs at most
// once.
func (r *Runtime) resolve(comp *Component, path []*Component) (any, error) {
	for {
		r.mu.Lock()
		s := r.slots[comp]

		switch s.state {
		case resolved:
			inst := s.instance
			r.mu.Unlock()
			return inst, nil

		case inProgress:
			for _, p := range path {
				if p == comp {
					r.mu.Unlock()
					return nil, fmt.Errorf("%w: %s re-entered during its own construction",
						ErrInternalConsistency, comp)
				}
			}
			done := s.done
			r.mu.Unlock()
			<-done
			continue

		default:
			s.state = inProgress
			s.done = make(chan struct{})
			r.mu.Unlock()
		}

		inst, err := r.construct(comp, path)

		r.mu.Lock()
		if err != nil {
			// Leave the slot unresolved: a later lookup retries the factory.
			s.state = unresolved
			s.instance = nil
		} else {
			s.state = resolved
			s.instance = inst
			r.constructed = append(r.constructed, comp)
		}
		close(s.done)
		s.done = nil
		r.mu.Unlock()

		if err != nil {
			return nil, err
		}
		r.logger.Debug("component constructed", zap.Stringer("component", comp))
		return inst, nil
	}
}

func (r *Runtime) construct(comp *Component, path []*Component) (any, error) {
	chain := make([]*Component, 0, len(path)+1)
	chain = append(chain, path...)
	chain = append(chain, comp)

	inst, err := comp.factory(&restrictedContainer{rt: r, comp: comp, path: chain})
	if err != nil {
		return nil, fmt.Errorf("constructing %s: %w", comp, err)
	}
	return inst, nil
}

// InitializeEagerComponents walks the construction order and forces every
// eager component (or all components, if forceAll) through the runtime's
// executor, waiting for the pass to finish. When it returns without error,
// every eager factory and its side effects have run, in dependency order,
// and the event bus starts delivering, flushing publications queued during
// construction.
func (r *Runtime) InitializeEagerComponents(forceAll bool) error {
	errc := make(chan error, 1)
	r.executor.Execute(func() {
		errc <- r.initializeEager(forceAll)
	})
	return <-errc
}

func (r *Runtime) initializeEager(forceAll bool) error {
	for _, comp := range r.order {
		if !comp.eager && !forceAll {
			continue
		}
		if _, err := r.resolve(comp, nil); err != nil {
			return err
		}
	}
	r.bus.enablePublishingAndFlushPending()
	r.logger.Debug("eager initialization complete", zap.Bool("force_all", forceAll))
	return nil
}

// EventBus returns the runtime's bus. The same object is resolvable through
// the [Publisher] and [Subscriber] tokens.
func (r *Runtime) EventBus() *EventBus { return r.bus }

// Shutdown closes every constructed singleton that implements [io.Closer],
// in reverse construction order, so dependents close before their
// dependencies. The context bounds the pass; once it expires, remaining
// closers are skipped and the context error is included in the result.
// Subsequent calls return [ErrAlreadyShutdown]. Callers must stop resolving
// before shutting down.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrAlreadyShutdown
	}
	r.closed = true
	constructed := r.constructed
	r.mu.Unlock()

	var errs []error
	for i := len(constructed) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		comp := constructed[i]
		if closer, ok := r.slots[comp].instance.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", comp, err))
			}
		}
	}

	r.logger.Info("runtime shut down", zap.Int("closed", len(constructed)))
	return errors.Join(errs...)
}
