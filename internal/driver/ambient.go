package driver

import (
	"context"

	"github.com/pixil98/go-tinymud/internal/session"
)

// DefaultAmbientMessage is broadcast to every player on each tick.
const DefaultAmbientMessage = "You hear creepy noises ...\n"

// AmbientManager broadcasts a fixed message to everyone in the game.
type AmbientManager struct {
	sessions *session.Registry
	message  string
}

func NewAmbientManager(sessions *session.Registry, message string) *AmbientManager {
	return &AmbientManager{sessions: sessions, message: message}
}

func (m *AmbientManager) Tick(context.Context) error {
	if m.message != "" {
		m.sessions.Broadcast(m.message)
	}
	return nil
}
