// Package events streams ledger activity to connected clients. The ledger
// reports what it is doing as formatted lines and every subscriber gets
// its own copy of each line.
package events

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// backlog is the number of lines held for a subscriber that isn't ready
// to receive. Lines beyond this are dropped for that subscriber.
const backlog = 100

// Feed fans ledger events out to subscribers keyed by a unique id, usually
// the trace id of the websocket request.
type Feed struct {
	mu      sync.RWMutex
	subs    map[string]chan string
	dropped atomic.Uint64
}

// New constructs an empty feed.
func New() *Feed {
	return &Feed{
		subs: make(map[string]chan string),
	}
}

// Subscribe registers the id and returns the channel its events arrive on.
// Subscribing an id twice returns the same channel.
func (f *Feed) Subscribe(id string) <-chan string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ch, exists := f.subs[id]; exists {
		return ch
	}

	ch := make(chan string, backlog)
	f.subs[id] = ch

	return ch
}

// Unsubscribe removes the id and closes its channel.
func (f *Feed) Unsubscribe(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch, exists := f.subs[id]
	if !exists {
		return fmt.Errorf("subscriber %q does not exist", id)
	}

	delete(f.subs, id)
	close(ch)

	return nil
}

// Subscribers returns the number of registered subscribers.
func (f *Feed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.subs)
}

// Dropped returns the number of lines that were not delivered because a
// subscriber's backlog was full.
func (f *Feed) Dropped() uint64 {
	return f.dropped.Load()
}

// Publish formats the event and hands it to every subscriber. It has the
// shape of the ledger's event handler and never blocks on a slow reader.
func (f *Feed) Publish(v string, args ...any) {
	line := fmt.Sprintf(v, args...)

	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.subs {
		select {
		case ch <- line:
		default:
			f.dropped.Add(1)
		}
	}
}

// Shutdown closes every subscriber channel so the websocket loops
// reading them return.
func (f *Feed) Shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
