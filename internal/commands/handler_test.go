package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-tinymud/internal/control"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
	"github.com/pixil98/go-tinymud/internal/session"
	"github.com/pixil98/go-tinymud/internal/session/sessiontest"
	"github.com/pixil98/go-tinymud/internal/storage"
)

type recordingPublisher struct {
	events []game.Event
}

func (p *recordingPublisher) PublishEvent(_ context.Context, ev game.Event) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) kinds() []game.EventKind {
	out := make([]game.EventKind, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

// newTestEnv builds a three room world:
//
//	1000 (north -> 1001, east -> 9999 which does not exist)
//	1001 (south -> 1000)
//	1002 (no exits)
func newTestEnv(t *testing.T) (*Env, *recordingPublisher) {
	t.Helper()

	w := game.NewWorld()
	hall := game.NewRoom(1000, "A hall.\n")
	hall.AddExit("north", 1001)
	hall.AddExit("east", 9999)
	garden := game.NewRoom(1001, "A garden.\n")
	garden.AddExit("south", 1000)
	for _, r := range []*game.Room{hall, garden, game.NewRoom(1002, "A cell.\n")} {
		if err := w.Add(r); err != nil {
			t.Fatalf("adding room: %v", err)
		}
	}

	ctl := control.New()
	for _, d := range []string{"north", "south", "east", "west", "up", "down"} {
		ctl.Directions.Add(d)
	}

	msgs := messages.New()
	msgs.Set(messages.Help, "Commands: look say tell quit%r")

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	pub := &recordingPublisher{}
	return &Env{
		World:    w,
		Sessions: session.NewRegistry(),
		Messages: msgs,
		Control:  ctl,
		Players:  store,
		Events:   pub,
		Settings: DefaultSettings(),
	}, pub
}

func join(env *Env, name string, room int, flags ...string) *session.Session {
	s := session.New(sessiontest.NewConn(), "127.0.0.1")
	s.State = session.Playing
	s.Prompt = env.Settings.Prompt
	s.Player = game.NewPlayer(name, room)
	for _, f := range flags {
		s.Player.Flags.Add(f)
	}
	env.Sessions.Add(s)
	return s
}

// drain returns and clears a session's pending output.
func drain(s *session.Session) string {
	out := s.Output()
	_, _ = s.Flush()
	return out
}

func expectUserError(t *testing.T, err error, exp string) {
	t.Helper()

	var ue *UserError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UserError %q, got %v", exp, err)
	}
	testutil.AssertEqual(t, "error", ue.Message, exp)
}

func TestHandler_Register(t *testing.T) {
	env, _ := newTestEnv(t)
	h := NewHandler(env)

	noop := func(context.Context, *session.Session, string) error { return nil }

	tests := map[string]struct {
		name   string
		fn     CommandFunc
		expErr string
	}{
		"new verb":       {name: "dance", fn: noop},
		"empty name":     {name: "", fn: noop, expErr: "command name cannot be empty"},
		"nil func":       {name: "sing", expErr: "command func cannot be nil"},
		"duplicate verb": {name: "LOOK", fn: noop, expErr: `command "LOOK" already registered`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := h.Register(tt.name, tt.fn)
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestHandler_Exec(t *testing.T) {
	tests := map[string]struct {
		line   string
		expOut string
		expErr string
	}{
		"unknown verb": {
			line:   "dance",
			expErr: "Huh?",
		},
		"empty line": {
			line:   "",
			expErr: "Huh?",
		},
		"verb case ignored": {
			line:   "LOOK",
			expOut: "A hall.\nExits: east north \n",
		},
		"look alias": {
			line:   "l",
			expOut: "A hall.\nExits: east north \n",
		},
		"look with trailing input": {
			line:   "look sword",
			expErr: "Unexpected input: sword",
		},
		"quote says": {
			line:   `"hello there`,
			expOut: "You say, \"hello there\"\n",
		},
		"help": {
			line:   "help",
			expOut: "Commands: look say tell quit\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env, _ := newTestEnv(t)
			h := NewHandler(env)
			s := join(env, "Bob", 1000)

			err := h.Exec(context.Background(), s, tt.line)
			if tt.expErr != "" {
				expectUserError(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "output", s.Output(), tt.expOut)
		})
	}
}

func TestErrorText(t *testing.T) {
	text, ok := ErrorText(NewUserError("Huh?"))
	testutil.AssertEqual(t, "user text", text, "Huh?")
	testutil.AssertEqual(t, "user ok", ok, true)

	text, ok = ErrorText(errors.New("disk on fire"))
	testutil.AssertEqual(t, "generic text", text, GenericErrorText)
	testutil.AssertEqual(t, "generic ok", ok, false)
}
