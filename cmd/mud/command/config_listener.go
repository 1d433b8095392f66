package command

import (
	"fmt"
	"net"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tinymud/internal/driver"
)

type ListenerConfig struct {
	Address string `json:"address,omitempty"`
	Port    *int   `json:"port,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Address != "" {
		if ip := net.ParseIP(cl.Address); ip == nil || ip.To4() == nil {
			el.Add(fmt.Errorf("listener address %q must be an IPv4 address", cl.Address))
		}
	}
	if cl.Port != nil && (*cl.Port < 0 || *cl.Port > 65535) {
		el.Add(fmt.Errorf("listener port must be between 0 and 65535"))
	}

	return el.Err()
}

func (cl *ListenerConfig) port() int {
	if cl.Port == nil {
		return driver.DefaultPort
	}
	return *cl.Port
}

func (cl *ListenerConfig) opt() driver.MudDriverOpt {
	return driver.WithListenAddress(cl.Address, cl.port())
}
