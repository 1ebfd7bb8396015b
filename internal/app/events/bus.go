// Package events provides the typed publish/subscribe channel carrying
// document lifecycle events. Each event is a concrete payload type, so
// subscriptions are checked at compile time instead of dispatching on
// string keys.
package events

import (
	"reflect"
	"sync"
)

// Bus fans events out to subscribers. Handlers run synchronously on the
// publishing goroutine, in subscription order.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[reflect.Type][]subscription
}

type subscription struct {
	id int
	fn func(any)
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[reflect.Type][]subscription)}
}

// Subscribe registers fn for events of type T and returns an unsubscribe
// function.
func Subscribe[T any](b *Bus, fn func(T)) func() {
	t := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[t] = append(b.subs[t], subscription{id: id, fn: func(ev any) {
		fn(ev.(T))
	}})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[t]
		for i, s := range subs {
			if s.id == id {
				b.subs[t] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers event to every subscriber of its type.
func Publish[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.RLock()
	subs := b.subs[t]
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(event)
	}
}
