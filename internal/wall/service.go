// Package wall implements the ephemeral photo wall: a TTL-bounded photo
// set fanned out to stream subscribers as add/delete events.
package wall

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Service is the photo wall as seen by the transport layer. Two
// implementations exist: Standalone keeps state in-process, Relay
// delegates fan-out to a Postgres notification channel.
type Service interface {
	// AddPhoto records a photo and broadcasts an "add" event.
	AddPhoto(ctx context.Context, url, author string) (Photo, error)

	// RemovePhoto deletes a photo and broadcasts a "delete" event only if
	// something was actually removed. Unknown ids are a successful no-op.
	RemovePhoto(ctx context.Context, id string) (bool, error)

	// Subscribe attaches a new stream listener. In standalone mode the
	// subscriber's first events are a backfill of the live set; relay mode
	// sends no backfill.
	Subscribe(ctx context.Context) (*Subscriber, error)

	// Unsubscribe detaches a listener. Idempotent.
	Unsubscribe(sub *Subscriber)

	// Run owns the service's background work (the expiry sweep) until the
	// context is cancelled.
	Run(ctx context.Context)
}

// Standalone is the self-contained, single-process wall. All mutations and
// subscriptions are serialized by one mutex, so a new subscriber's backfill
// and its registration are atomic with respect to concurrent adds: no event
// is duplicated or lost across the handover.
type Standalone struct {
	mu          sync.Mutex
	store       *Store
	registry    *Registry
	broadcaster *Broadcaster
	sweepEvery  time.Duration
}

// NewStandalone builds a standalone wall. maxSubscribers <= 0 leaves the
// subscriber set unbounded.
func NewStandalone(ttl time.Duration, maxSubscribers int) *Standalone {
	registry := NewRegistry(maxSubscribers)
	return &Standalone{
		store:       NewStore(ttl),
		registry:    registry,
		broadcaster: NewBroadcaster(registry),
		sweepEvery:  SweepInterval,
	}
}

func (w *Standalone) AddPhoto(_ context.Context, url, author string) (Photo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := w.store.Add(url, author)
	w.broadcaster.BroadcastAdd(p)
	return p, nil
}

func (w *Standalone) RemovePhoto(_ context.Context, id string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	removed := w.store.Remove(id)
	if removed {
		w.broadcaster.BroadcastDelete(id)
	}
	return removed, nil
}

func (w *Standalone) Subscribe(_ context.Context) (*Subscriber, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.store.SweepExpired()
	live := w.store.ListLive()

	sub := NewSubscriberSized(len(live) + subscriberBuffer)
	if err := w.registry.Register(sub); err != nil {
		return nil, err
	}

	// Backfill goes into the subscriber's buffer before the mutex is
	// released, so live events always land after the snapshot.
	for _, p := range live {
		if err := sub.Send(AddEvent(p)); err != nil {
			w.registry.Unregister(sub)
			return nil, err
		}
	}
	return sub, nil
}

func (w *Standalone) Unsubscribe(sub *Subscriber) {
	w.registry.Unregister(sub)
}

// Run drives the periodic expiry sweep. The sweep is silent (no delete
// events) and keeps running even with zero subscribers so the next
// subscriber's backfill is fresh.
func (w *Standalone) Run(ctx context.Context) {
	ticker := time.NewTicker(w.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			removed := w.store.SweepExpired()
			w.mu.Unlock()
			if len(removed) > 0 {
				log.Debug().Int("count", len(removed)).Msg("swept expired wall photos")
			}
		}
	}
}

// Subscribers reports the current subscriber count.
func (w *Standalone) Subscribers() int {
	return w.registry.Len()
}
