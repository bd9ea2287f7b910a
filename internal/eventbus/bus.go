// Package eventbus delivers host lifecycle and content-change notifications.
package eventbus

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/adamavenir/ghostpanel/internal/types"
)

// ErrClosed is returned when emitting on a closed bus.
var ErrClosed = errors.New("event bus closed")

const subscriptionBuffer = 64

// Handler receives a single event.
type Handler func(event types.EventType)

// Bus is an in-process publish/subscribe hub keyed by event type.
// Each subscription has its own delivery goroutine, so Emit never blocks on
// a slow handler. Events that overflow a subscription buffer are dropped.
type Bus struct {
	mu     sync.RWMutex
	subs   map[types.EventType][]*subscription
	closed atomic.Bool
	nextID atomic.Uint64
	wg     sync.WaitGroup
}

type subscription struct {
	id      uint64
	event   types.EventType
	events  chan types.EventType
	handler Handler
	closed  atomic.Bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[types.EventType][]*subscription)}
}

// Subscribe registers handler for event and returns a function that removes it.
func (b *Bus) Subscribe(event types.EventType, handler Handler) func() {
	sub := &subscription{
		id:      b.nextID.Add(1),
		event:   event,
		events:  make(chan types.EventType, subscriptionBuffer),
		handler: handler,
	}

	b.mu.Lock()
	if b.closed.Load() {
		b.mu.Unlock()
		return func() {}
	}
	b.subs[event] = append(b.subs[event], sub)
	b.wg.Add(1)
	b.mu.Unlock()

	go b.deliver(sub)
	return func() { b.unsubscribe(sub) }
}

// Emit notifies every subscriber of event.
func (b *Bus) Emit(event types.EventType) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed.Load() {
		return ErrClosed
	}
	for _, sub := range b.subs[event] {
		if sub.closed.Load() {
			continue
		}
		select {
		case sub.events <- event:
		default:
		}
	}
	return nil
}

// Close stops delivery and waits for handlers to return.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed.Swap(true) {
		b.mu.Unlock()
		return ErrClosed
	}
	for _, subs := range b.subs {
		for _, sub := range subs {
			if !sub.closed.Swap(true) {
				close(sub.events)
			}
		}
	}
	b.subs = make(map[types.EventType][]*subscription)
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}

func (b *Bus) unsubscribe(sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.closed.Swap(true) {
		return
	}
	close(sub.events)
	subs := b.subs[sub.event]
	for i, existing := range subs {
		if existing.id == sub.id {
			b.subs[sub.event] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

func (b *Bus) deliver(sub *subscription) {
	defer b.wg.Done()
	for event := range sub.events {
		sub.handler(event)
	}
}
