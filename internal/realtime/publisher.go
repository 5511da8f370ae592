package realtime

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Notifier publishes payloads on a Postgres notification channel. It is a
// one-shot send: NOTIFY has no durable state and no read-back.
type Notifier struct {
	pool *pgxpool.Pool
}

// NewNotifier creates a notifier over the given pool.
func NewNotifier(pool *pgxpool.Pool) *Notifier {
	return &Notifier{pool: pool}
}

// Publish sends payload on the named channel.
func (n *Notifier) Publish(ctx context.Context, channel string, payload []byte) error {
	_, err := n.pool.Exec(ctx, "SELECT pg_notify($1, $2)", channel, string(payload))
	return err
}
