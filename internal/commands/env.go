package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-tinymud/internal/control"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
	"github.com/pixil98/go-tinymud/internal/session"
	"github.com/pixil98/go-tinymud/internal/storage"
)

// Settings are the game rules that do not come from data files.
type Settings struct {
	InitialRoom         int
	MaxPasswordAttempts int
	Prompt              string
	Version             string
}

// DefaultSettings returns the stock rules.
func DefaultSettings() Settings {
	return Settings{
		InitialRoom:         1000,
		MaxPasswordAttempts: 3,
		Prompt:              "> ",
		Version:             "2.0.0",
	}
}

// Env is the server context shared by every handler: the world, the live
// sessions and the loaded data tables. It is only touched from the main loop.
type Env struct {
	World    *game.World
	Sessions *session.Registry
	Messages *messages.Table
	Control  *control.Control
	Players  storage.PlayerStore
	Events   game.Publisher
	Settings Settings

	stopped bool
}

// Stop asks the main loop to finish after the current iteration.
func (e *Env) Stop() {
	e.stopped = true
}

// Stopped reports whether Stop has been called.
func (e *Env) Stopped() bool {
	return e.stopped
}

// Publish hands ev to the event feed. Failures are logged and dropped.
func (e *Env) Publish(ctx context.Context, ev game.Event) {
	if e.Events == nil {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	if err := e.Events.PublishEvent(ctx, ev); err != nil {
		slog.DebugContext(ctx, "publishing event", "kind", ev.Kind, "error", err)
	}
}

// MessageData is what message templates may refer to.
type MessageData struct {
	Name    string
	Address string
	Version string
	Players int
}

// Message renders message code for s.
func (e *Env) Message(code string, s *session.Session) string {
	data := MessageData{
		Name:    s.Name(),
		Address: s.Address(),
		Version: e.Settings.Version,
	}
	e.Sessions.ForEach(func(o *session.Session) {
		if o.IsPlaying() {
			data.Players++
		}
	})
	return e.Messages.Render(code, data)
}
