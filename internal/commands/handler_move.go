package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/session"
)

// move walks s through the exit named dir.
func (h *Handler) move(ctx context.Context, s *session.Session, dir string) error {
	r, err := h.room(s.Player.Room)
	if err != nil {
		return err
	}

	dest, ok := r.Exit(dir)
	if !ok {
		return errCannotGo
	}

	name := s.Player.Name
	return h.toRoom(ctx, s, dest,
		fmt.Sprintf("You go %s\n", dir),
		fmt.Sprintf("%s goes %s\n", name, dir),
		fmt.Sprintf("%s enters.\n", name))
}

func (h *Handler) goTo(ctx context.Context, s *session.Session, rest string) error {
	if err := needFlag(s, game.FlagCanGoto); err != nil {
		return err
	}

	a := newArgs(rest)
	room, _, ok := a.number()
	if !ok {
		return NewUserError("Go to which room?")
	}
	if err := a.noMore(); err != nil {
		return err
	}

	name := s.Player.Name
	return h.toRoom(ctx, s, room,
		fmt.Sprintf("You go to room %d\n", room),
		fmt.Sprintf("%s disappears in a puff of smoke!\n", name),
		fmt.Sprintf("%s appears in a puff of smoke!\n", name))
}

func (h *Handler) transfer(ctx context.Context, s *session.Session, rest string) error {
	if err := needFlag(s, game.FlagCanTransfer); err != nil {
		return err
	}

	a := newArgs(rest)
	target, err := a.player(h.env, s, "Usage: transfer <who> [ where ] (default is here)", true)
	if err != nil {
		return err
	}

	room, raw, ok := a.number()
	switch {
	case raw == "":
		room = s.Player.Room
	case !ok:
		return NewUserError("Unexpected input: " + raw)
	}
	if err := a.noMore(); err != nil {
		return err
	}

	if _, err := h.room(room); err != nil {
		return err
	}

	s.Sendf("You transfer %s to room %d\n", target.Player.Name, room)

	tname := target.Player.Name
	return h.toRoom(ctx, target, room,
		fmt.Sprintf("%s transfers you to another room!\n", s.Player.Name),
		fmt.Sprintf("%s is yanked away by unseen forces!\n", tname),
		fmt.Sprintf("%s appears breathlessly!\n", tname))
}

// toRoom moves s into room. Bystanders in the old room see depart, the mover
// sees self followed by a look, and bystanders in the new room see arrive.
func (h *Handler) toRoom(ctx context.Context, s *session.Session, room int, self, depart, arrive string) error {
	if _, err := h.room(room); err != nil {
		return err
	}

	from := s.Player.Room
	h.env.Sessions.Broadcast(depart, session.Except(s), session.InRoom(from))

	s.Player.Room = room
	s.Send(self)
	if err := h.Look(ctx, s); err != nil {
		return err
	}

	h.env.Sessions.Broadcast(arrive, session.Except(s), session.InRoom(room))

	h.env.Publish(ctx, game.Event{
		Kind:   game.EventMoved,
		Player: s.Player.Name,
		Room:   room,
	})
	return nil
}
