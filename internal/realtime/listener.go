package realtime

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// Listener holds one dedicated connection in LISTEN mode and dispatches
// notifications to per-channel handlers. It reconnects with a capped
// backoff when the connection drops.
type Listener struct {
	pool     *pgxpool.Pool
	handlers map[string]func(payload []byte)
}

// NewListener creates a listener over the given pool.
func NewListener(pool *pgxpool.Pool) *Listener {
	return &Listener{
		pool:     pool,
		handlers: make(map[string]func(payload []byte)),
	}
}

// Handle registers the handler for a notification channel. Must be called
// before Run.
func (l *Listener) Handle(channel string, fn func(payload []byte)) {
	l.handlers[channel] = fn
}

// Run listens until the context is cancelled.
func (l *Listener) Run(ctx context.Context) {
	backoff := reconnectMin
	for {
		attached, err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		backoff = retryDelay(backoff, attached)
		log.Warn().Err(err).Dur("retry_in", backoff).Msg("notification listener disconnected")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}
}

// retryDelay picks the wait before the next attempt. A session that made
// it past LISTEN means the outage is fresh, so the backoff starts over.
func retryDelay(current time.Duration, attached bool) time.Duration {
	if attached {
		return reconnectMin
	}
	return current
}

// nextBackoff doubles the retry delay up to reconnectMax.
func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > reconnectMax {
		d = reconnectMax
	}
	return d
}

// listen reports whether the session got as far as a working LISTEN
// subscription before failing.
func (l *Listener) listen(ctx context.Context) (bool, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	for channel := range l.handlers {
		if _, err := conn.Exec(ctx, "LISTEN "+pgIdent(channel)); err != nil {
			return false, err
		}
	}
	log.Info().Int("channels", len(l.handlers)).Msg("notification listener attached")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return true, err
		}
		if fn, ok := l.handlers[n.Channel]; ok {
			fn([]byte(n.Payload))
		}
	}
}

// pgIdent quotes a channel name for use in LISTEN, which takes an
// identifier rather than a bind parameter.
func pgIdent(name string) string {
	out := make([]byte, 0, len(name)+2)
	out = append(out, '"')
	for i := 0; i < len(name); i++ {
		if name[i] == '"' {
			out = append(out, '"', '"')
		} else {
			out = append(out, name[i])
		}
	}
	return string(append(out, '"'))
}
