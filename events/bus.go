// Package events provides the in-memory event bus behind the frontend change
// feed.
package events

import (
	"sync"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

// subscription buffer; publishers never block on a slow subscriber, the
// subscriber just misses events and should refetch.
const subscriptionBacklog = 16

var _ contoso.EventBus = (*Bus)(nil)

// Bus is an in-memory fan-out event bus. Safe for concurrent use.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan contoso.Event
	closed bool
}

// NewBus creates an open bus with no subscribers.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan contoso.Event)}
}

// Publish delivers the event to every live subscription. Events published to
// a subscription with a full buffer are dropped for that subscription.
func (b *Bus) Publish(event contoso.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	for _, c := range b.subs {
		select {
		case c <- event:
		default:
		}
	}
}

// Subscribe registers a new subscription on the bus. Subscriptions on a
// closed bus are returned already closed.
func (b *Bus) Subscribe() *contoso.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := make(chan contoso.Event, subscriptionBacklog)
	if b.closed {
		close(c)
		return contoso.NewSubscription(c, func() {})
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = c

	var once sync.Once
	return contoso.NewSubscription(c, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	})
}

// Close closes the bus and every live subscription.
//
// no-op if already closed.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	for id, c := range b.subs {
		delete(b.subs, id)
		close(c)
	}
	return nil
}
