package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bagel-backend/internal/wall"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// AddWallPhotoHandler creates a photo and broadcasts it to open streams.
// url and author are stored as submitted; the wall is deliberately
// permissive about its inputs.
func AddWallPhotoHandler(w wall.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			URL    string `json:"url"`
			Author string `json:"author"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		photo, err := w.AddPhoto(c.Context(), req.URL, req.Author)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"success": true, "id": photo.ID})
	}
}

// DeleteWallPhotoHandler removes a photo by id. Deletion is idempotent:
// the response is success whether or not anything was removed, and a
// delete event is only broadcast when something was.
func DeleteWallPhotoHandler(w wall.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ID string `json:"id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}

		if _, err := w.RemovePhoto(c.Context(), req.ID); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// StreamWallHandler opens the long-lived event stream. The subscriber's
// backfill is already queued when Subscribe returns, so the client sees
// the full live set before any live event.
func StreamWallHandler(w wall.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := w.Subscribe(c.Context())
		if err != nil {
			if errors.Is(err, wall.ErrWallFull) {
				return c.Status(503).JSON(fiber.Map{"error": "too many subscribers"})
			}
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(buf *bufio.Writer) {
			defer w.Unsubscribe(sub)
			pumpWallEvents(buf, sub, streamPingInterval)
		}))
		return nil
	}
}

// streamPingInterval is how often a quiet stream writes a comment frame.
// The ping is invisible to EventSource clients; its flush is what detects
// a connection that dropped while the wall was idle.
const streamPingInterval = 15 * time.Second

// pumpWallEvents writes queued events to the stream, interleaved with
// comment pings, until the subscriber closes or a write fails.
func pumpWallEvents(buf *bufio.Writer, sub *wall.Subscriber, pingEvery time.Duration) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	for {
		select {
		case ev := <-sub.Events():
			frame, err := sseFrame(ev)
			if err != nil {
				continue
			}
			if _, err := buf.Write(frame); err != nil {
				return
			}
			// A failed flush is the disconnect signal.
			if err := buf.Flush(); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := buf.WriteString(": ping\n\n"); err != nil {
				return
			}
			if err := buf.Flush(); err != nil {
				return
			}
		case <-sub.Done():
			return
		}
	}
}

// sseFrame encodes one wall event as a server-sent-events data line.
func sseFrame(ev wall.Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("data: %s\n\n", data)), nil
}
