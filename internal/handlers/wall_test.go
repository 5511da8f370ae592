package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"bagel-backend/internal/wall"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWallApp(w wall.Service) *fiber.App {
	app := fiber.New()
	app.Post("/wall/photos", AddWallPhotoHandler(w))
	app.Delete("/wall/photos", DeleteWallPhotoHandler(w))
	app.Get("/wall/photos", StreamWallHandler(w))
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func drainEvents(sub *wall.Subscriber) []wall.Event {
	var events []wall.Event
	for {
		select {
		case ev := <-sub.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestAddWallPhoto(t *testing.T) {
	w := wall.NewStandalone(wall.PhotoTTL, 0)
	app := newWallApp(w)

	sub, err := w.Subscribe(context.Background())
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/wall/photos",
		bytes.NewBufferString(`{"url":"a.png","author":"Ann"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["success"])
	id, _ := body["id"].(string)
	assert.NotEmpty(t, id)

	// The open stream sees exactly one add event for the new photo.
	events := drainEvents(sub)
	require.Len(t, events, 1)
	assert.Equal(t, wall.EventAdd, events[0].Type)
	require.NotNil(t, events[0].Photo)
	assert.Equal(t, id, events[0].Photo.ID)
	assert.Equal(t, "a.png", events[0].Photo.URL)
	assert.Equal(t, "Ann", events[0].Photo.Author)
}

func TestAddWallPhotoAcceptsEmptyFields(t *testing.T) {
	w := wall.NewStandalone(wall.PhotoTTL, 0)
	app := newWallApp(w)

	req := httptest.NewRequest("POST", "/wall/photos", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp.Body)["success"])
}

func TestDeleteWallPhotoIdempotent(t *testing.T) {
	w := wall.NewStandalone(wall.PhotoTTL, 0)
	app := newWallApp(w)

	photo, err := w.AddPhoto(context.Background(), "a.png", "Ann")
	require.NoError(t, err)

	sub, err := w.Subscribe(context.Background())
	require.NoError(t, err)
	drainEvents(sub) // backfill

	del := func() map[string]any {
		req := httptest.NewRequest("DELETE", "/wall/photos",
			bytes.NewBufferString(`{"id":"`+photo.ID+`"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		return decodeBody(t, resp.Body)
	}

	// First delete removes and broadcasts.
	assert.Equal(t, true, del()["success"])
	events := drainEvents(sub)
	require.Len(t, events, 1)
	assert.Equal(t, wall.DeleteEvent(photo.ID), events[0])

	// Second delete still succeeds but broadcasts nothing.
	assert.Equal(t, true, del()["success"])
	assert.Empty(t, drainEvents(sub))
}

func TestStreamWallRejectsWhenFull(t *testing.T) {
	w := wall.NewStandalone(wall.PhotoTTL, 1)
	app := newWallApp(w)

	_, err := w.Subscribe(context.Background())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/wall/photos", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestPumpWallEventsWritesFramesAndPings(t *testing.T) {
	var out bytes.Buffer
	buf := bufio.NewWriter(&out)

	sub := wall.NewSubscriber()
	require.NoError(t, sub.Send(wall.DeleteEvent("p1")))
	go func() {
		time.Sleep(30 * time.Millisecond)
		sub.Close()
	}()

	pumpWallEvents(buf, sub, 5*time.Millisecond)

	written := out.String()
	assert.Contains(t, written, "data: {\"type\":\"delete\",\"id\":\"p1\"}\n\n")
	assert.Contains(t, written, ": ping\n\n")
}

type deadConn struct{}

func (deadConn) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestPumpWallEventsStopsWhenClientGone(t *testing.T) {
	buf := bufio.NewWriter(deadConn{})
	sub := wall.NewSubscriber()
	defer sub.Close()

	// No events at all: the ping flush alone must notice the dead
	// connection and end the pump.
	done := make(chan struct{})
	go func() {
		pumpWallEvents(buf, sub, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump kept running against a dead connection")
	}
}

func TestSSEFrame(t *testing.T) {
	frame, err := sseFrame(wall.DeleteEvent("p1"))
	require.NoError(t, err)
	assert.Equal(t, "data: {\"type\":\"delete\",\"id\":\"p1\"}\n\n", string(frame))

	frame, err = sseFrame(wall.AddEvent(wall.Photo{ID: "p1", URL: "a.png", Author: "Ann", AddedAt: 42}))
	require.NoError(t, err)
	assert.Equal(t,
		"data: {\"type\":\"add\",\"photo\":{\"id\":\"p1\",\"url\":\"a.png\",\"author\":\"Ann\",\"addedAt\":42}}\n\n",
		string(frame))
}
