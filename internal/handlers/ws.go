package handlers

import (
	"bagel-backend/internal/realtime"
	"bagel-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// RealtimeHandler streams database change hints to websocket clients.
// Clients refetch the affected resource over REST when a change arrives,
// mirroring how the kitchen display and seat map stay current.
func RealtimeHandler(feed *realtime.Feed) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		ch := feed.Subscribe()
		defer func() {
			feed.Unsubscribe(ch)
			c.Close()
		}()

		// Read loop only detects the client going away; inbound frames
		// carry no meaning on this feed.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
						log.Debug().Err(err).Msg("realtime client read error")
					}
					return
				}
			}
		}()

		if err := utils.SendJSON(c, fiber.Map{"event": "connected"}); err != nil {
			return
		}

		for {
			select {
			case change, ok := <-ch:
				if !ok {
					return
				}
				err := utils.SendJSON(c, fiber.Map{
					"event": "change",
					"table": change.Table,
					"type":  change.Event,
				})
				if err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}

// WSUpgradeMiddleware rejects non-websocket requests on the /ws route.
func WSUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
