// Package player runs the per-connection protocol: logging in, creating a
// character and, once playing, handing lines to the command handler.
package player

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-tinymud/internal/commands"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
	"github.com/pixil98/go-tinymud/internal/session"
)

// stateFunc consumes one line of input for a session in a given state.
type stateFunc func(ctx context.Context, s *session.Session, line string) error

// PlayerManager owns the login state machine.
type PlayerManager struct {
	cmds   *commands.Handler
	env    *commands.Env
	states map[session.State]stateFunc
}

func NewPlayerManager(cmds *commands.Handler) *PlayerManager {
	m := &PlayerManager{
		cmds: cmds,
		env:  cmds.Env(),
	}
	m.states = map[session.State]stateFunc{
		session.AwaitingName:        m.processName,
		session.AwaitingPassword:    m.processPassword,
		session.AwaitingNewName:     m.processNewName,
		session.AwaitingNewPassword: m.processNewPassword,
		session.ConfirmPassword:     m.processConfirmPassword,
		session.Playing:             m.processCommand,
	}
	return m
}

// Connect greets a newly accepted session.
func (m *PlayerManager) Connect(ctx context.Context, s *session.Session) {
	s.Sendf("\nWelcome to the Tiny MUD Server version %s\n", m.env.Settings.Version)
	s.Send(m.env.Message(messages.Welcome, s))
	s.Send(s.Prompt)

	m.env.Publish(ctx, game.Event{Kind: game.EventConnected, Address: s.Address()})
}

// HandleLine runs one line of input through the session's current state.
// Any error is shown to the session as a single line, and the prompt is
// always sent afterwards.
func (m *PlayerManager) HandleLine(ctx context.Context, s *session.Session, line string) {
	if fn, ok := m.states[s.State]; ok {
		if err := fn(ctx, s, line); err != nil {
			text, isUser := commands.ErrorText(err)
			if !isUser {
				slog.ErrorContext(ctx, "processing input", "session", s, "error", err)
			}
			s.Send(text + "\n")
		}
	}
	s.Send(s.Prompt)
}

// Disconnect handles a peer that has gone away. It runs the same departure
// as quit so others are told at most once.
func (m *PlayerManager) Disconnect(ctx context.Context, s *session.Session) {
	if s.Closing() {
		return
	}
	if err := m.cmds.Quit(ctx, s); err != nil {
		slog.WarnContext(ctx, "quitting disconnected session", "session", s, "error", err)
	}
}
