package command

import (
	"fmt"
	"net"

	"github.com/pixil98/go-errors"
)

const DefaultMetricsAddress = ":9100"

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

func (c *MetricsConfig) validate() error {
	el := errors.NewErrorList()

	if c.Address != "" {
		if _, _, err := net.SplitHostPort(c.Address); err != nil {
			el.Add(fmt.Errorf("metrics: invalid address %q: %w", c.Address, err))
		}
	}

	return el.Err()
}

func (c *MetricsConfig) address() string {
	return orDefault(c.Address, DefaultMetricsAddress)
}
