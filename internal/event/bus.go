package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dshills/selex/internal/event/topic"
)

// Handler processes one event. Returned errors are collected by Publish.
type Handler func(ctx context.Context, ev Event) error

// PanicHandler is called when a handler panics.
type PanicHandler func(ev Event, recovered any)

// Subscription identifies a registered handler.
type Subscription struct {
	id      uint64
	pattern topic.Topic
}

// ID returns the subscription identifier.
func (s Subscription) ID() uint64 {
	return s.id
}

// Pattern returns the topic pattern the subscription listens on.
func (s Subscription) Pattern() topic.Topic {
	return s.pattern
}

type subscriber struct {
	sub     Subscription
	handler Handler
}

// Stats reports bus activity.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerErrors uint64
	HandlerPanics uint64
	Subscriptions int
}

// Bus delivers events synchronously, in subscription order, on the
// publisher's goroutine.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID uint64

	onPanic PanicHandler

	published     atomic.Uint64
	delivered     atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets the callback for panicking handlers.
func WithPanicHandler(fn PanicHandler) BusOption {
	return func(b *Bus) {
		b.onPanic = fn
	}
}

// NewBus creates an event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler) (Subscription, error) {
	if !pattern.IsValid() {
		return Subscription{}, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if handler == nil {
		return Subscription{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := Subscription{id: b.nextID, pattern: pattern}
	b.subs = append(b.subs, subscriber{sub: sub, handler: handler})
	return sub, nil
}

// Unsubscribe removes a subscription. It reports whether it was registered.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.sub.id == sub.id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers ev to every matching handler. Handlers may publish or
// subscribe themselves. The first handler error or panic is returned after
// all handlers ran.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Type.IsValid() || ev.Type.IsWildcard() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, ev.Type)
	}
	b.published.Add(1)

	b.mu.RLock()
	targets := make([]subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		if ev.Type.Matches(s.sub.pattern) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	var firstErr error
	for _, s := range targets {
		if err := b.deliver(ctx, s, ev); err != nil {
			b.handlerErrors.Add(1)
			if firstErr == nil {
				firstErr = err
			}
		}
		b.delivered.Add(1)
	}
	return firstErr
}

func (b *Bus) deliver(ctx context.Context, s subscriber, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.onPanic != nil {
				b.onPanic(ev, r)
			}
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanic, ev.Type, r)
		}
	}()
	return s.handler(ctx, ev)
}

// Stats returns a snapshot of bus activity.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerErrors: b.handlerErrors.Load(),
		HandlerPanics: b.handlerPanics.Load(),
		Subscriptions: n,
	}
}
