package driver

import (
	"time"

	"github.com/pixil98/go-tinymud/internal/metrics"
)

type MudDriverOpt func(*MudDriver)

// WithTickLength sets how often the managers are ticked.
func WithTickLength(tickLength time.Duration) MudDriverOpt {
	return func(d *MudDriver) {
		d.tickLength = tickLength
	}
}

// WithPollTimeout sets the longest the loop waits for socket activity.
func WithPollTimeout(timeout time.Duration) MudDriverOpt {
	return func(d *MudDriver) {
		d.pollTimeout = timeout
	}
}

// WithListenAddress sets the address and port to accept connections on.
func WithListenAddress(address string, port int) MudDriverOpt {
	return func(d *MudDriver) {
		d.address = address
		d.port = port
	}
}

// WithService runs svc alongside the loop under name.
func WithService(name string, svc Service) MudDriverOpt {
	return func(d *MudDriver) {
		d.services[name] = svc
	}
}

// WithMetrics records loop activity in m.
func WithMetrics(m *metrics.Metrics) MudDriverOpt {
	return func(d *MudDriver) {
		d.metrics = m
	}
}
