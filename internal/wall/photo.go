package wall

import "time"

// PhotoTTL is how long a photo stays on the wall before it is reaped.
const PhotoTTL = 60 * time.Second

// SweepInterval is how often expired photos are reaped.
const SweepInterval = 5 * time.Second

// Photo is one image on the wall. AddedAt is milliseconds since epoch and
// is only used for expiry, it is never rendered.
type Photo struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Author  string `json:"author"`
	AddedAt int64  `json:"addedAt"`
}

// Event is the discriminated wall event pushed to stream subscribers.
// Type "add" carries the full photo, type "delete" carries only the id.
type Event struct {
	Type  string `json:"type"`
	Photo *Photo `json:"photo,omitempty"`
	ID    string `json:"id,omitempty"`
}

const (
	EventAdd    = "add"
	EventDelete = "delete"
)

// AddEvent wraps a photo as an "add" event.
func AddEvent(p Photo) Event {
	return Event{Type: EventAdd, Photo: &p}
}

// DeleteEvent builds a "delete" event for the given photo id.
func DeleteEvent(id string) Event {
	return Event{Type: EventDelete, ID: id}
}
