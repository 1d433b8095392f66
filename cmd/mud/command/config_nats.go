package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tinymud/internal/messaging"
)

const DefaultSubjectPrefix = "mud"

// EventsConfig controls the NATS event feed. With a URL the server connects
// to an existing NATS deployment; otherwise it embeds one.
type EventsConfig struct {
	Enabled       bool   `json:"enabled"`
	URL           string `json:"url"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	StartTimeout  string `json:"start_timeout"`
	SubjectPrefix string `json:"subject_prefix"`
}

func (n *EventsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("events: parsing start_timeout: %w", err))
		}
	}
	if n.URL != "" && (n.Host != "" || n.Port != 0) {
		el.Add(fmt.Errorf("events: url cannot be combined with host or port"))
	}

	return el.Err()
}

func (n *EventsConfig) subjectPrefix() string {
	return orDefault(n.SubjectPrefix, DefaultSubjectPrefix)
}

func (n *EventsConfig) buildBus() (messaging.Bus, error) {
	if n.URL != "" {
		return messaging.NewNatsClient(n.URL), nil
	}
	return n.buildNatsServer()
}

func (n *EventsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}

	s, err := messaging.NewNatsServer(opts...)
	if err != nil {
		return nil, err
	}

	return s, nil
}
