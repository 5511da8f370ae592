package utils

import (
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// SendJSON writes a JSON payload to a websocket connection. Fiber's
// websocket conn is not safe for concurrent writes; callers must serialize
// writes to the same connection themselves (the realtime handler uses a
// single writer goroutine per connection).
func SendJSON(c *websocket.Conn, payload interface{}) error {
	return c.WriteJSON(payload)
}

// LogError logs an error with a short context tag if it is not nil.
func LogError(err error, context string) {
	if err != nil {
		log.Error().Err(err).Str("context", context).Msg("request error")
	}
}
