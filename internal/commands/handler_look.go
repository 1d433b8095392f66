package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-tinymud/internal/display"
	"github.com/pixil98/go-tinymud/internal/session"
)

func (h *Handler) look(ctx context.Context, s *session.Session, rest string) error {
	if err := newArgs(rest).noMore(); err != nil {
		return err
	}

	r, err := h.room(s.Player.Room)
	if err != nil {
		return err
	}

	s.Send(display.Wrap(r.Description))

	if exits := r.ExitNames(); len(exits) > 0 {
		s.Send("Exits: " + strings.Join(exits, " ") + " \n")
	}

	var others []string
	h.env.Sessions.ForEach(func(o *session.Session) {
		if o != s && o.IsPlaying() && o.Player.Room == s.Player.Room {
			others = append(others, o.Player.Name)
		}
	})
	if len(others) > 0 {
		s.Send("You also see " + display.List(others) + ".\n")
	}

	return nil
}
