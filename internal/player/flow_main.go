package player

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
	"github.com/pixil98/go-tinymud/internal/session"
)

func (m *PlayerManager) processCommand(ctx context.Context, s *session.Session, line string) error {
	return m.cmds.Exec(ctx, s, line)
}

// enterGame moves s into the playing state. greeting is the message code for
// the first-time or returning player text.
func (m *PlayerManager) enterGame(ctx context.Context, s *session.Session, greeting string) error {
	s.State = session.Playing
	s.Prompt = m.env.Settings.Prompt
	s.BadPasswords = 0

	s.Sendf("Welcome, %s\n\n", s.Player.Name)
	s.Send(m.env.Message(greeting, s))
	s.Send(m.env.Message(messages.MOTD, s))

	lookErr := m.cmds.Look(ctx, s)

	m.env.Sessions.Broadcast(
		fmt.Sprintf("Player %s has joined the game from %s.\n", s.Player.Name, s.Address()),
		session.Except(s))

	slog.InfoContext(ctx, "player joined the game", "player", s.Player.Name, "address", s.Address())
	m.env.Publish(ctx, game.Event{
		Kind:    game.EventJoined,
		Player:  s.Player.Name,
		Room:    s.Player.Room,
		Address: s.Address(),
	})

	return lookErr
}

func splitWord(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
