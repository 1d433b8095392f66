package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// ErrNotConnected is returned when publishing before the bus is up.
var ErrNotConnected = errors.New("nats connection not ready")

// NatsServer runs an embedded NATS server along with a client connection to
// it. Start blocks until its context is cancelled.
type NatsServer struct {
	ns   *server.Server
	conn atomic.Pointer[nats.Conn]

	startupTimeout time.Duration
	host           string
	port           int
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
		port:           server.DEFAULT_PORT,
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   s.host,
		Port:   s.port,
		NoSigs: true, // Let the application handle signals
		NoLog:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		n.ns.Shutdown()
		return fmt.Errorf("nats server not ready for connections")
	}

	conn, err := nats.Connect(n.ns.ClientURL(), nats.Name("tinymud"))
	if err != nil {
		n.ns.Shutdown()
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.conn.Store(conn)

	slog.InfoContext(ctx, "nats server listening", "url", n.ClientURL())

	<-ctx.Done()
	n.conn.Store(nil)
	conn.Close()
	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// ClientURL returns the URL clients use to reach the embedded server.
func (n *NatsServer) ClientURL() string {
	return n.ns.ClientURL()
}

// Publish sends a message to the given subject
func (n *NatsServer) Publish(subject string, data []byte) error {
	return publish(n.conn.Load(), subject, data)
}

func publish(conn *nats.Conn, subject string, data []byte) error {
	if conn == nil {
		return ErrNotConnected
	}
	return conn.Publish(subject, data)
}
