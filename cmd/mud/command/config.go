package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tinymud/internal/driver"
)

type Config struct {
	PollTimeout    string         `json:"poll_timeout"`
	TickInterval   string         `json:"tick_interval"`
	AmbientMessage *string        `json:"ambient_message"`
	Listener       ListenerConfig `json:"listener"`
	Files          FilesConfig    `json:"files"`
	Storage        StorageConfig  `json:"storage"`
	Game           GameConfig     `json:"game"`
	Events         EventsConfig   `json:"events"`
	Metrics        MetricsConfig  `json:"metrics"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if d, err := parseDuration(c.PollTimeout, driver.DefaultPollTimeout); err != nil {
		el.Add(fmt.Errorf("parsing poll_timeout: %w", err))
	} else if d <= 0 || d >= time.Second {
		el.Add(fmt.Errorf("poll_timeout must be greater than 0 and less than 1 second"))
	}

	if d, err := parseDuration(c.TickInterval, driver.DefaultTickLength); err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
	}

	el.Add(c.Listener.validate())
	el.Add(c.Storage.validate())
	el.Add(c.Game.validate())
	el.Add(c.Events.validate())
	el.Add(c.Metrics.validate())

	return el.Err()
}

// ambientMessage returns the periodic broadcast. An explicit empty string
// turns it off.
func (c *Config) ambientMessage() string {
	if c.AmbientMessage == nil {
		return driver.DefaultAmbientMessage
	}
	return *c.AmbientMessage
}

func (c *Config) driverOpts() ([]driver.MudDriverOpt, error) {
	poll, err := parseDuration(c.PollTimeout, driver.DefaultPollTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing poll_timeout: %w", err)
	}
	tick, err := parseDuration(c.TickInterval, driver.DefaultTickLength)
	if err != nil {
		return nil, fmt.Errorf("parsing tick_interval: %w", err)
	}

	return []driver.MudDriverOpt{
		driver.WithPollTimeout(poll),
		driver.WithTickLength(tick),
		c.Listener.opt(),
	}, nil
}

// parseDuration parses s, returning def when s is empty.
func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
