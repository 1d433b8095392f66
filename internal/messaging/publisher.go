package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-tinymud/internal/game"
)

// Bus is a NATS connection that can be started and published to.
type Bus interface {
	Start(ctx context.Context) error
	Publish(subject string, data []byte) error
}

// EventPublisher sends game events as JSON to <prefix>.events.<kind>.
// NATS buffers publishes, so the caller is not held up by the network.
type EventPublisher struct {
	bus    Bus
	prefix string
}

func NewEventPublisher(bus Bus, prefix string) *EventPublisher {
	return &EventPublisher{bus: bus, prefix: prefix}
}

// Subject returns the subject events of kind are published on.
func (p *EventPublisher) Subject(kind game.EventKind) string {
	return fmt.Sprintf("%s.events.%s", p.prefix, kind)
}

func (p *EventPublisher) PublishEvent(_ context.Context, ev game.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling %s event: %w", ev.Kind, err)
	}
	if err := p.bus.Publish(p.Subject(ev.Kind), data); err != nil {
		return fmt.Errorf("publishing %s event: %w", ev.Kind, err)
	}
	return nil
}

var (
	_ Bus = (*NatsServer)(nil)
	_ Bus = (*NatsClient)(nil)
)
