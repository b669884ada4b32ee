package acorn

import (
	"reflect"
	"sync"
)

// Event pairs a payload with its type token. Build one with [NewEvent].
type Event struct {
	etype   reflect.Type
	payload any
}

// NewEvent creates an event of type T carrying payload.
func NewEvent[T any](payload T) Event {
	return Event{etype: TypeOf[T](), payload: payload}
}

// Type returns the event's type token.
func (e Event) Type() reflect.Type { return e.etype }

// Payload returns the published value.
func (e Event) Payload() any { return e.payload }

// Handler consumes published events.
type Handler func(Event)

// Publisher publishes events to subscribed handlers. The runtime provides
// its own event bus under this token, so components can declare
//
//	acorn.Requires[acorn.Publisher]()
//
// and publish without knowing who listens.
type Publisher interface {
	Publish(Event)
}

// Subscriber registers handlers for event types. Provided by the runtime
// alongside [Publisher].
type Subscriber interface {
	Subscribe(etype reflect.Type, exec Executor, h Handler) *Subscription
}

// Subscription identifies one registered handler. Cancel removes it; late
// deliveries already handed to the subscription's executor may still arrive.
type Subscription struct {
	bus     *EventBus
	etype   reflect.Type
	exec    Executor
	handler Handler
}

// Cancel removes the subscription from its bus. Safe to call twice.
func (s *Subscription) Cancel() {
	s.bus.remove(s)
}

// EventBus routes events to handlers subscribed per event type, dispatching
// each delivery on the subscription's executor. Events published before the
// bus is enabled are queued and flushed in publication order once the
// runtime completes its eager initialization pass, so components constructed
// early do not lose events aimed at components constructed later.
type EventBus struct {
	defaultExec Executor

	mu      sync.Mutex
	subs    map[reflect.Type][]*Subscription
	pending []Event
	enabled bool
}

func newEventBus(defaultExec Executor) *EventBus {
	return &EventBus{
		defaultExec: defaultExec,
		subs:        make(map[reflect.Type][]*Subscription),
	}
}

// Subscribe registers h for events of type etype. A nil exec dispatches on
// the bus's default executor.
func (b *EventBus) Subscribe(etype reflect.Type, exec Executor, h Handler) *Subscription {
	if exec == nil {
		exec = b.defaultExec
	}
	s := &Subscription{bus: b, etype: etype, exec: exec, handler: h}

	b.mu.Lock()
	b.subs[etype] = append(b.subs[etype], s)
	b.mu.Unlock()
	return s
}

// Publish delivers ev to every handler subscribed to its type. Before the
// bus is enabled the event is queued instead.
func (b *EventBus) Publish(ev Event) {
	b.mu.Lock()
	if !b.enabled {
		b.pending = append(b.pending, ev)
		b.mu.Unlock()
		return
	}
	targets := append([]*Subscription(nil), b.subs[ev.Type()]...)
	b.mu.Unlock()

	for _, s := range targets {
		h := s.handler
		s.exec.Execute(func() { h(ev) })
	}
}

// enablePublishingAndFlushPending switches the bus to live delivery and
// replays queued events in order. Idempotent.
func (b *EventBus) enablePublishingAndFlushPending() {
	b.mu.Lock()
	if b.enabled {
		b.mu.Unlock()
		return
	}
	b.enabled = true
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, ev := range pending {
		b.Publish(ev)
	}
}

func (b *EventBus) remove(target *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[target.etype]
	for i, s := range subs {
		if s == target {
			b.subs[target.etype] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
