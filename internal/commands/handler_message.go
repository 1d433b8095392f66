package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/session"
)

func (h *Handler) say(ctx context.Context, s *session.Session, rest string) error {
	if err := needNoFlag(s, game.FlagGagged); err != nil {
		return err
	}

	what, err := newArgs(rest).message("Say what?")
	if err != nil {
		return err
	}

	s.Sendf("You say, \"%s\"\n", what)
	h.env.Sessions.Broadcast(fmt.Sprintf("%s says, \"%s\"\n", s.Player.Name, what),
		session.Except(s), session.InRoom(s.Player.Room))

	h.env.Publish(ctx, game.Event{
		Kind:   game.EventSay,
		Player: s.Player.Name,
		Room:   s.Player.Room,
		Text:   what,
	})
	return nil
}

func (h *Handler) tell(ctx context.Context, s *session.Session, rest string) error {
	if err := needNoFlag(s, game.FlagGagged); err != nil {
		return err
	}

	a := newArgs(rest)
	target, err := a.player(h.env, s, "Tell whom?", true)
	if err != nil {
		return err
	}

	what, err := a.message(fmt.Sprintf("Tell %s what?", target.Player.Name))
	if err != nil {
		return err
	}

	s.Sendf("You tell %s, \"%s\"\n", target.Player.Name, what)
	target.Sendf("%s tells you, \"%s\"\n", s.Player.Name, what)

	h.env.Publish(ctx, game.Event{
		Kind:   game.EventTell,
		Player: s.Player.Name,
		Target: target.Player.Name,
		Text:   what,
	})
	return nil
}
