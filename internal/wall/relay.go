package wall

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Channel is the Postgres notification channel relay mode publishes wall
// events on.
const Channel = "wall_photos"

// Publisher pushes a payload onto a named notification channel. The
// Postgres-backed implementation lives in internal/realtime.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Relay is the broadcast-only wall. It keeps no durable photo list: adds
// and deletes are published to a shared notification channel and every
// process (this one included) feeds its subscribers from the channel.
// Consequences, by design: fresh subscribers receive no backfill, and a
// delete is published without checking whether the photo ever existed.
type Relay struct {
	publisher   Publisher
	registry    *Registry
	broadcaster *Broadcaster
}

// NewRelay builds a relay wall publishing through pub.
func NewRelay(pub Publisher, maxSubscribers int) *Relay {
	registry := NewRegistry(maxSubscribers)
	return &Relay{
		publisher:   pub,
		registry:    registry,
		broadcaster: NewBroadcaster(registry),
	}
}

func (w *Relay) AddPhoto(ctx context.Context, url, author string) (Photo, error) {
	p := Photo{
		ID:      uuid.New().String(),
		URL:     url,
		Author:  author,
		AddedAt: time.Now().UnixMilli(),
	}
	if err := w.publish(ctx, AddEvent(p)); err != nil {
		return Photo{}, err
	}
	return p, nil
}

// RemovePhoto publishes a delete unconditionally: with no server-side list
// there is nothing to check removal against.
func (w *Relay) RemovePhoto(ctx context.Context, id string) (bool, error) {
	if err := w.publish(ctx, DeleteEvent(id)); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Relay) publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal wall event: %w", err)
	}
	if err := w.publisher.Publish(ctx, Channel, payload); err != nil {
		return fmt.Errorf("publish wall event: %w", err)
	}
	return nil
}

// Subscribe attaches a listener. No backfill in relay mode.
func (w *Relay) Subscribe(_ context.Context) (*Subscriber, error) {
	sub := NewSubscriber()
	if err := w.registry.Register(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (w *Relay) Unsubscribe(sub *Subscriber) {
	w.registry.Unregister(sub)
}

// Run is a no-op wait: relay mode has no sweep, expiry is the clients'
// business (they hold the only copies of the photos).
func (w *Relay) Run(ctx context.Context) {
	<-ctx.Done()
}

// HandleNotification feeds an event received from the notification channel
// to the local subscribers. Wired as the listener callback for Channel.
func (w *Relay) HandleNotification(payload []byte) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Warn().Err(err).Msg("discarding malformed wall notification")
		return
	}
	switch ev.Type {
	case EventAdd:
		if ev.Photo != nil {
			w.broadcaster.BroadcastAdd(*ev.Photo)
		}
	case EventDelete:
		w.broadcaster.BroadcastDelete(ev.ID)
	default:
		log.Warn().Str("type", ev.Type).Msg("unknown wall event type")
	}
}
