package session

import "sync"

// AuthRequiredEvent signals that the current session can no longer authorize
// requests. Status carries the HTTP status that revealed it, when known.
type AuthRequiredEvent struct {
	Status int
}

// Broadcaster is the typed observer for auth-required notifications,
// owned by the session manager. Any part of the client may subscribe.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(AuthRequiredEvent)
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]func(AuthRequiredEvent)),
	}
}

// Subscribe registers a listener; the returned function removes it.
func (b *Broadcaster) Subscribe(fn func(AuthRequiredEvent)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Emit delivers the event to every subscriber.
func (b *Broadcaster) Emit(ev AuthRequiredEvent) {
	b.mu.Lock()
	listeners := make([]func(AuthRequiredEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		listeners = append(listeners, fn)
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
