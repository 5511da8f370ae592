// Package realtime carries database change notifications to connected
// clients: a LISTEN/NOTIFY listener on one side, a fan-out feed on the
// other.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// ChangeChannel is the Postgres notification channel the schema triggers
// publish table changes on.
const ChangeChannel = "bagel_changes"

// Change describes one row-level mutation in a watched table. Clients use
// it as a refetch hint, the row data itself is not included.
type Change struct {
	Table string `json:"table"`
	Event string `json:"event"`
}

const feedBuffer = 16

// Feed fans changes out to websocket clients. Slow clients with a full
// buffer miss the change; the next one will catch them up anyway since
// changes are refetch hints, not deltas.
type Feed struct {
	mu   sync.Mutex
	subs map[chan Change]struct{}
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan Change]struct{})}
}

// Subscribe registers a new client and returns its delivery channel.
func (f *Feed) Subscribe() chan Change {
	ch := make(chan Change, feedBuffer)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

// Unsubscribe removes a client and closes its channel. Idempotent.
func (f *Feed) Unsubscribe(ch chan Change) {
	f.mu.Lock()
	_, ok := f.subs[ch]
	delete(f.subs, ch)
	f.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Publish delivers a change to every subscriber without blocking.
func (f *Feed) Publish(c Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Len reports the number of subscribed clients.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// HandleNotification decodes a change payload from the listener and
// publishes it to the feed. Wired as the callback for ChangeChannel.
func (f *Feed) HandleNotification(payload []byte) {
	var c Change
	if err := json.Unmarshal(payload, &c); err != nil {
		log.Warn().Err(err).Msg("discarding malformed change notification")
		return
	}
	f.Publish(c)
}
