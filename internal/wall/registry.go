package wall

import (
	"errors"
	"sync"
)

// ErrSubscriberClosed is returned when sending to a subscriber whose
// buffer is full or whose connection has gone away.
var ErrSubscriberClosed = errors.New("wall: subscriber closed")

// ErrWallFull is returned by Register when the subscriber cap is reached.
var ErrWallFull = errors.New("wall: subscriber limit reached")

// subscriberBuffer is the per-connection event buffer. A subscriber that
// falls this far behind is treated as dead and dropped.
const subscriberBuffer = 32

// Subscriber is one open stream connection. Events are handed over through
// a buffered channel; the transport side drains Events until Done closes.
type Subscriber struct {
	mu     sync.Mutex
	events chan Event
	done   chan struct{}
	closed bool
}

// NewSubscriber creates a subscriber ready to be registered.
func NewSubscriber() *Subscriber {
	return NewSubscriberSized(subscriberBuffer)
}

// NewSubscriberSized creates a subscriber with room for at least buf
// queued events. Used when a backfill must fit in the buffer up front.
func NewSubscriberSized(buf int) *Subscriber {
	if buf < subscriberBuffer {
		buf = subscriberBuffer
	}
	return &Subscriber{
		events: make(chan Event, buf),
		done:   make(chan struct{}),
	}
}

// Send queues an event for delivery. It never blocks: a full buffer means
// the client is not keeping up and counts as a failed delivery.
func (s *Subscriber) Send(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSubscriberClosed
	}
	select {
	case s.events <- ev:
		return nil
	default:
		return ErrSubscriberClosed
	}
}

// Close marks the subscriber dead and wakes its transport. Idempotent.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}

// Events is the channel the transport reads deliveries from.
func (s *Subscriber) Events() <-chan Event { return s.events }

// Done closes when the subscriber has been dropped.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

// Registry tracks the currently-connected stream subscribers. It owns only
// delivery handles, never photo data.
type Registry struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}

	// max caps the number of concurrent subscribers; zero means unbounded,
	// matching the reference behavior.
	max int
}

// NewRegistry creates a registry. max <= 0 disables the cap.
func NewRegistry(max int) *Registry {
	return &Registry{
		subs: make(map[*Subscriber]struct{}),
		max:  max,
	}
}

// Register adds a subscriber to the active set.
func (r *Registry) Register(sub *Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.subs) >= r.max {
		return ErrWallFull
	}
	r.subs[sub] = struct{}{}
	return nil
}

// Unregister removes and closes a subscriber. Safe to call twice.
func (r *Registry) Unregister(sub *Subscriber) {
	r.mu.Lock()
	delete(r.subs, sub)
	r.mu.Unlock()
	sub.Close()
}

// ForEach calls fn for every subscriber active when the call started.
// Iteration runs over a snapshot, so fn may unregister subscribers.
func (r *Registry) ForEach(fn func(*Subscriber)) {
	r.mu.Lock()
	subs := make([]*Subscriber, 0, len(r.subs))
	for s := range r.subs {
		subs = append(subs, s)
	}
	r.mu.Unlock()

	for _, s := range subs {
		fn(s)
	}
}

// Len returns the number of active subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
