package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/session"
)

func (h *Handler) setFlag(ctx context.Context, s *session.Session, rest string) error {
	if err := needFlag(s, game.FlagCanSetFlag); err != nil {
		return err
	}

	a := newArgs(rest)
	target, err := a.player(h.env, s, "Usage: setflag <who> <flag>", false)
	if err != nil {
		return err
	}
	flag, err := a.flag("Set which flag?")
	if err != nil {
		return err
	}
	if err := a.noMore(); err != nil {
		return err
	}

	if err := target.Player.SetFlag(flag); err != nil {
		if errors.Is(err, game.ErrFlagAlreadySet) {
			return NewUserError("Flag already set.")
		}
		return err
	}

	s.Sendf("You set the flag '%s' for %s\n", flag, target.Player.Name)
	slog.InfoContext(ctx, "flag set", "by", s.Player.Name, "player", target.Player.Name, "flag", flag)
	return nil
}

func (h *Handler) clearFlag(ctx context.Context, s *session.Session, rest string) error {
	if err := needFlag(s, game.FlagCanSetFlag); err != nil {
		return err
	}

	a := newArgs(rest)
	target, err := a.player(h.env, s, "Usage: clearflag <who> <flag>", false)
	if err != nil {
		return err
	}
	flag, err := a.flag("Clear which flag?")
	if err != nil {
		return err
	}
	if err := a.noMore(); err != nil {
		return err
	}

	if err := target.Player.ClearFlag(flag); err != nil {
		if errors.Is(err, game.ErrFlagNotSet) {
			return NewUserError("Flag not set.")
		}
		return err
	}

	s.Sendf("You clear the flag '%s' for %s\n", flag, target.Player.Name)
	slog.InfoContext(ctx, "flag cleared", "by", s.Player.Name, "player", target.Player.Name, "flag", flag)
	return nil
}
