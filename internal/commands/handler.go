package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/session"
)

// CommandFunc runs one verb for a playing session. rest is the argument text
// following the verb.
type CommandFunc func(ctx context.Context, s *session.Session, rest string) error

// Handler dispatches playing input to registered verbs and to movement.
type Handler struct {
	env      *Env
	commands map[string]CommandFunc
}

// NewHandler creates a handler with the built-in verbs registered.
func NewHandler(env *Env) *Handler {
	h := &Handler{
		env:      env,
		commands: make(map[string]CommandFunc),
	}

	builtins := []struct {
		name string
		fn   CommandFunc
	}{
		{"look", h.look},
		{"l", h.look},
		{"say", h.say},
		{"tell", h.tell},
		{"setflag", h.setFlag},
		{"clearflag", h.clearFlag},
		{"goto", h.goTo},
		{"transfer", h.transfer},
		{"shutdown", h.shutdown},
		{"help", h.help},
		{"who", h.who},
		{"save", h.save},
		{"quit", h.quit},
	}
	for _, b := range builtins {
		// names are unique literals
		_ = h.Register(b.name, b.fn)
	}
	return h
}

// Env returns the server context the handler works against.
func (h *Handler) Env() *Env {
	return h.env
}

// Register adds a verb. Verbs are matched case-insensitively.
func (h *Handler) Register(name string, fn CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("command func cannot be nil")
	}
	key := game.Key(name)
	if _, exists := h.commands[key]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	h.commands[key] = fn
	return nil
}

// Exec runs one line of playing input.
func (h *Handler) Exec(ctx context.Context, s *session.Session, line string) error {
	if text, ok := strings.CutPrefix(line, `"`); ok {
		return h.say(ctx, s, text)
	}

	verb, rest := splitVerb(line)

	if h.env.Control.IsDirection(verb) {
		return h.move(ctx, s, game.Key(verb))
	}

	fn, ok := h.commands[game.Key(verb)]
	if !ok {
		return errHuh
	}
	return fn(ctx, s, rest)
}

// Look describes the session's surroundings.
func (h *Handler) Look(ctx context.Context, s *session.Session) error {
	return h.look(ctx, s, "")
}

// Quit ends the session, announcing the departure if it was playing.
func (h *Handler) Quit(ctx context.Context, s *session.Session) error {
	return h.quit(ctx, s, "")
}

func splitVerb(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i:], " \t")
}

// room returns the room with id, turning a missing room into a UserError.
func (h *Handler) room(id int) (*game.Room, error) {
	r, err := h.env.World.Room(id)
	if errors.Is(err, game.ErrRoomNotFound) {
		return nil, NewUserErrorf("Room number %d does not exist.", id)
	}
	return r, err
}
