package wall

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move the store's notion of now.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	s := NewStore(ttl)
	s.now = clock.Now
	return s, clock
}

func TestStoreAddAssignsIDAndTimestamp(t *testing.T) {
	s, clock := newTestStore(PhotoTTL)

	p := s.Add("a.png", "Ann")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "a.png", p.URL)
	assert.Equal(t, "Ann", p.Author)
	assert.Equal(t, clock.Now().UnixMilli(), p.AddedAt)
}

func TestStoreListLiveInsertionOrder(t *testing.T) {
	s, _ := newTestStore(PhotoTTL)

	first := s.Add("a.png", "Ann")
	second := s.Add("b.png", "Bob")
	third := s.Add("c.png", "Cid")

	live := s.ListLive()
	require.Len(t, live, 3)
	assert.Equal(t, []Photo{first, second, third}, live)
}

func TestStoreAcceptsEmptyFields(t *testing.T) {
	s, _ := newTestStore(PhotoTTL)

	p := s.Add("", "")

	assert.NotEmpty(t, p.ID)
	live := s.ListLive()
	require.Len(t, live, 1)
	assert.Equal(t, p, live[0])
}

func TestStoreRemove(t *testing.T) {
	s, _ := newTestStore(PhotoTTL)
	p := s.Add("a.png", "Ann")

	assert.True(t, s.Remove(p.ID))
	assert.Empty(t, s.ListLive())

	// Idempotent: second remove and unknown ids are no-ops.
	assert.False(t, s.Remove(p.ID))
	assert.False(t, s.Remove("nope"))
}

func TestStoreTTLBoundary(t *testing.T) {
	s, clock := newTestStore(PhotoTTL)
	p := s.Add("a.png", "Ann")

	clock.Advance(PhotoTTL - time.Millisecond)
	live := s.ListLive()
	require.Len(t, live, 1)
	assert.Equal(t, p.ID, live[0].ID)

	clock.Advance(2 * time.Millisecond)
	removed := s.SweepExpired()
	assert.Equal(t, []string{p.ID}, removed)
	assert.Empty(t, s.ListLive())
}

func TestStoreListLiveHidesExpiredBeforeSweep(t *testing.T) {
	s, clock := newTestStore(PhotoTTL)
	s.Add("a.png", "Ann")

	// Expired photos disappear from listings even before a sweep runs.
	clock.Advance(PhotoTTL)
	assert.Empty(t, s.ListLive())

	removed := s.SweepExpired()
	assert.Len(t, removed, 1)
}

func TestStoreSweepKeepsYoungPhotos(t *testing.T) {
	s, clock := newTestStore(PhotoTTL)
	old := s.Add("old.png", "Ann")
	clock.Advance(PhotoTTL / 2)
	young := s.Add("young.png", "Bob")
	clock.Advance(PhotoTTL / 2)

	removed := s.SweepExpired()
	assert.Equal(t, []string{old.ID}, removed)

	live := s.ListLive()
	require.Len(t, live, 1)
	assert.Equal(t, young.ID, live[0].ID)

	// Nothing left to reap: sweeping again is a no-op.
	assert.Empty(t, s.SweepExpired())
}
