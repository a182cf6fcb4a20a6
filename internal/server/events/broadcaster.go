// Package events fans audit entries out to live subscribers.
package events

import (
	"filegate/internal/server/audit"
	"filegate/internal/server/metrics"
	"sync"
)

const subscriberBuffer = 64

type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan audit.Entry]struct{}
	closed      bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan audit.Entry]struct{}),
	}
}

// Subscribe returns a channel of entries. The caller must Unsubscribe.
// The channel is closed right away when the broadcaster is closed.
func (b *Broadcaster) Subscribe() chan audit.Entry {
	ch := make(chan audit.Entry, subscriberBuffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subscribers[ch] = struct{}{}
	}
	n := len(b.subscribers)
	b.mu.Unlock()
	metrics.SetEventSubscribers(n)
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan audit.Entry) {
	b.mu.Lock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
	n := len(b.subscribers)
	b.mu.Unlock()
	metrics.SetEventSubscribers(n)
}

// Publish never blocks; a subscriber with a full buffer misses the entry.
func (b *Broadcaster) Publish(e audit.Entry) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close ends every subscription.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subscribers {
		delete(b.subscribers, ch)
		close(ch)
	}
	metrics.SetEventSubscribers(0)
}
