package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
	"github.com/pixil98/go-tinymud/internal/session"
)

func (h *Handler) shutdown(ctx context.Context, s *session.Session, rest string) error {
	if err := newArgs(rest).noMore(); err != nil {
		return err
	}
	if err := needFlag(s, game.FlagCanShutdown); err != nil {
		return err
	}

	h.env.Sessions.Broadcast(s.Player.Name + " shuts down the game\n")
	h.env.Stop()

	slog.InfoContext(ctx, "shutdown requested", "player", s.Player.Name)
	h.env.Publish(ctx, game.Event{Kind: game.EventShutdown, Player: s.Player.Name})
	return nil
}

func (h *Handler) help(ctx context.Context, s *session.Session, rest string) error {
	if err := newArgs(rest).noMore(); err != nil {
		return err
	}
	s.Send(h.env.Message(messages.Help, s))
	return nil
}

func (h *Handler) who(ctx context.Context, s *session.Session, rest string) error {
	if err := newArgs(rest).noMore(); err != nil {
		return err
	}

	var lines []string
	h.env.Sessions.ForEach(func(o *session.Session) {
		if o.IsPlaying() {
			lines = append(lines, fmt.Sprintf("  %-20s room %d", o.Player.Name, o.Player.Room))
		}
	})

	s.Send("Players Online:\n" + strings.Join(lines, "\n") + "\n")
	return nil
}

func (h *Handler) save(ctx context.Context, s *session.Session, rest string) error {
	if err := newArgs(rest).noMore(); err != nil {
		return err
	}

	if err := h.env.Players.Save(s.Player); err != nil {
		slog.ErrorContext(ctx, "saving player", "player", s.Player.Name, "error", err)
		return NewUserError("Your character could not be saved.")
	}
	s.Send("Saved.\n")
	return nil
}

func (h *Handler) quit(ctx context.Context, s *session.Session, rest string) error {
	if err := newArgs(rest).noMore(); err != nil {
		return err
	}

	if s.State == session.Playing {
		name := s.Player.Name
		s.Send("See you next time!\n")
		slog.InfoContext(ctx, "player left the game", "player", name, "address", s.Address())
		h.env.Sessions.Broadcast(fmt.Sprintf("Player %s has left the game.\n", name), session.Except(s))
		h.env.Publish(ctx, game.Event{Kind: game.EventLeft, Player: name, Room: s.Player.Room})
	}

	s.Close()
	return nil
}
