package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/nats-io/nats.go"
)

// NatsClient connects to an external NATS server. Start blocks until its
// context is cancelled.
type NatsClient struct {
	url  string
	conn atomic.Pointer[nats.Conn]
}

func NewNatsClient(url string) *NatsClient {
	return &NatsClient{url: url}
}

func (c *NatsClient) Start(ctx context.Context) error {
	conn, err := nats.Connect(c.url,
		nats.Name("tinymud"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats disconnected", "url", c.url, "error", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			slog.Info("nats reconnected", "url", c.url)
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to nats at %s: %w", c.url, err)
	}
	c.conn.Store(conn)

	slog.InfoContext(ctx, "connected to nats", "url", c.url)

	<-ctx.Done()
	c.conn.Store(nil)
	conn.Close()
	return nil
}

func (c *NatsClient) Publish(subject string, data []byte) error {
	return publish(c.conn.Load(), subject, data)
}
