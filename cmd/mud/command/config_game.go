package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tinymud/internal/commands"
)

type GameConfig struct {
	InitialRoom         int     `json:"initial_room"`
	MaxPasswordAttempts int     `json:"max_password_attempts"`
	Prompt              *string `json:"prompt"`
	Version             string  `json:"version"`
}

func (c *GameConfig) validate() error {
	el := errors.NewErrorList()

	if c.InitialRoom < 0 {
		el.Add(fmt.Errorf("game: initial_room must not be negative"))
	}
	if c.MaxPasswordAttempts < 0 {
		el.Add(fmt.Errorf("game: max_password_attempts must not be negative"))
	}

	return el.Err()
}

// Settings overlays the configured values on the defaults.
func (c *GameConfig) Settings() commands.Settings {
	s := commands.DefaultSettings()
	if c.InitialRoom != 0 {
		s.InitialRoom = c.InitialRoom
	}
	if c.MaxPasswordAttempts != 0 {
		s.MaxPasswordAttempts = c.MaxPasswordAttempts
	}
	if c.Prompt != nil {
		s.Prompt = *c.Prompt
	}
	if c.Version != "" {
		s.Version = c.Version
	}
	return s
}
