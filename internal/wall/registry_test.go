package wall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterUnregister(t *testing.T) {
	r := NewRegistry(0)
	sub := NewSubscriber()

	require.NoError(t, r.Register(sub))
	assert.Equal(t, 1, r.Len())

	r.Unregister(sub)
	assert.Equal(t, 0, r.Len())

	// Unregister is idempotent.
	r.Unregister(sub)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryCapacityBound(t *testing.T) {
	r := NewRegistry(2)

	require.NoError(t, r.Register(NewSubscriber()))
	require.NoError(t, r.Register(NewSubscriber()))

	err := r.Register(NewSubscriber())
	assert.ErrorIs(t, err, ErrWallFull)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryUnboundedByDefault(t *testing.T) {
	r := NewRegistry(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, r.Register(NewSubscriber()))
	}
	assert.Equal(t, 100, r.Len())
}

func TestRegistryForEach(t *testing.T) {
	r := NewRegistry(0)
	a, b := NewSubscriber(), NewSubscriber()
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))

	seen := map[*Subscriber]bool{}
	r.ForEach(func(s *Subscriber) { seen[s] = true })

	assert.True(t, seen[a])
	assert.True(t, seen[b])
	assert.Len(t, seen, 2)
}

func TestSubscriberSendAfterClose(t *testing.T) {
	sub := NewSubscriber()
	require.NoError(t, sub.Send(AddEvent(Photo{ID: "1"})))

	sub.Close()
	assert.ErrorIs(t, sub.Send(AddEvent(Photo{ID: "2"})), ErrSubscriberClosed)

	// Close is idempotent.
	sub.Close()

	select {
	case <-sub.Done():
	default:
		t.Fatal("Done should be closed after Close")
	}
}

func TestSubscriberSendFullBuffer(t *testing.T) {
	sub := NewSubscriberSized(1)

	// NewSubscriberSized never shrinks below the default buffer.
	for i := 0; i < subscriberBuffer; i++ {
		require.NoError(t, sub.Send(DeleteEvent("x")))
	}
	assert.ErrorIs(t, sub.Send(DeleteEvent("x")), ErrSubscriberClosed)
}
