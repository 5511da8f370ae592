package wall

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the currently-live photos and enforces their lifetime.
// Photos are kept in insertion order (oldest first) so that backfill and
// ListLive agree on ordering.
type Store struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	photos []Photo
}

// NewStore creates an empty store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl: ttl,
		now: time.Now,
	}
}

// Add stores a new photo and returns it with a generated id and timestamp.
func (s *Store) Add(url, author string) Photo {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Photo{
		ID:      uuid.New().String(),
		URL:     url,
		Author:  author,
		AddedAt: s.now().UnixMilli(),
	}
	s.photos = append(s.photos, p)
	return p
}

// Remove deletes the photo with the given id. It reports whether a photo
// was actually removed; removing an unknown id is a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.photos {
		if p.ID == id {
			s.photos = append(s.photos[:i], s.photos[i+1:]...)
			return true
		}
	}
	return false
}

// ListLive returns all non-expired photos, oldest first. Listing does not
// mutate the store; reaping is SweepExpired's job.
func (s *Store) ListLive() []Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveLocked()
}

func (s *Store) liveLocked() []Photo {
	cutoff := s.now().UnixMilli() - s.ttl.Milliseconds()
	live := make([]Photo, 0, len(s.photos))
	for _, p := range s.photos {
		if p.AddedAt > cutoff {
			live = append(live, p)
		}
	}
	return live
}

// SweepExpired removes every photo whose age has reached the TTL and
// returns the removed ids. Expiry is silent: callers must not broadcast
// delete events for swept photos.
func (s *Store) SweepExpired() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() []string {
	cutoff := s.now().UnixMilli() - s.ttl.Milliseconds()
	var removed []string
	kept := s.photos[:0]
	for _, p := range s.photos {
		if p.AddedAt <= cutoff {
			removed = append(removed, p.ID)
		} else {
			kept = append(kept, p)
		}
	}
	s.photos = kept
	return removed
}
