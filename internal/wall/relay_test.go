package wall

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	channels []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestRelayAddPublishesAddEvent(t *testing.T) {
	pub := &fakePublisher{}
	w := NewRelay(pub, 0)

	photo, err := w.AddPhoto(context.Background(), "a.png", "Ann")
	require.NoError(t, err)
	assert.NotEmpty(t, photo.ID)

	require.Len(t, pub.payloads, 1)
	assert.Equal(t, Channel, pub.channels[0])

	var ev Event
	require.NoError(t, json.Unmarshal(pub.payloads[0], &ev))
	assert.Equal(t, EventAdd, ev.Type)
	require.NotNil(t, ev.Photo)
	assert.Equal(t, photo.ID, ev.Photo.ID)
	assert.Equal(t, "a.png", ev.Photo.URL)
	assert.Equal(t, "Ann", ev.Photo.Author)
}

func TestRelayDeletePublishesUnconditionally(t *testing.T) {
	pub := &fakePublisher{}
	w := NewRelay(pub, 0)

	// No durable list to check against: the delete goes out regardless.
	removed, err := w.RemovePhoto(context.Background(), "never-existed")
	require.NoError(t, err)
	assert.True(t, removed)

	require.Len(t, pub.payloads, 1)
	var ev Event
	require.NoError(t, json.Unmarshal(pub.payloads[0], &ev))
	assert.Equal(t, DeleteEvent("never-existed"), ev)
}

func TestRelayPublishErrorSurfaces(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	w := NewRelay(pub, 0)

	_, err := w.AddPhoto(context.Background(), "a.png", "Ann")
	assert.Error(t, err)

	_, err = w.RemovePhoto(context.Background(), "p1")
	assert.Error(t, err)
}

func TestRelaySubscribeHasNoBackfill(t *testing.T) {
	pub := &fakePublisher{}
	w := NewRelay(pub, 0)

	_, err := w.AddPhoto(context.Background(), "a.png", "Ann")
	require.NoError(t, err)

	sub, err := w.Subscribe(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drain(sub))
}

func TestRelayNotificationFansOut(t *testing.T) {
	w := NewRelay(&fakePublisher{}, 0)

	sub, err := w.Subscribe(context.Background())
	require.NoError(t, err)

	photo := Photo{ID: "p1", URL: "a.png", Author: "Ann", AddedAt: 1}
	payload, err := json.Marshal(AddEvent(photo))
	require.NoError(t, err)
	w.HandleNotification(payload)

	payload, err = json.Marshal(DeleteEvent("p1"))
	require.NoError(t, err)
	w.HandleNotification(payload)

	events := drain(sub)
	require.Len(t, events, 2)
	assert.Equal(t, AddEvent(photo), events[0])
	assert.Equal(t, DeleteEvent("p1"), events[1])
}

func TestRelayIgnoresMalformedNotifications(t *testing.T) {
	w := NewRelay(&fakePublisher{}, 0)
	sub, err := w.Subscribe(context.Background())
	require.NoError(t, err)

	w.HandleNotification([]byte("not json"))
	w.HandleNotification([]byte(`{"type":"resize","id":"p1"}`))

	assert.Empty(t, drain(sub))
}
