package wall

import (
	"github.com/rs/zerolog/log"
)

// Broadcaster fans wall events out to every registered subscriber.
type Broadcaster struct {
	registry *Registry
}

// NewBroadcaster creates a broadcaster over the given registry.
func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// BroadcastAdd delivers an "add" event carrying the full photo.
func (b *Broadcaster) BroadcastAdd(p Photo) {
	b.broadcast(AddEvent(p))
}

// BroadcastDelete delivers a "delete" event carrying only the id.
func (b *Broadcaster) BroadcastDelete(id string) {
	b.broadcast(DeleteEvent(id))
}

// broadcast attempts delivery to each subscriber independently. A failed
// delivery drops that subscriber; the rest still receive the event.
func (b *Broadcaster) broadcast(ev Event) {
	b.registry.ForEach(func(sub *Subscriber) {
		if err := sub.Send(ev); err != nil {
			log.Debug().Str("event", ev.Type).Msg("dropping dead wall subscriber")
			b.registry.Unregister(sub)
		}
	})
}
