package commands

import (
	"context"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/session"
)

func TestShutdown(t *testing.T) {
	tests := map[string]struct {
		line       string
		privileged bool
		expErr     string
		expStopped bool
	}{
		"stops the game": {
			line:       "shutdown",
			privileged: true,
			expStopped: true,
		},
		"not permitted": {
			line:   "shutdown",
			expErr: "You are not permitted to do that.",
		},
		"trailing input": {
			line:       "shutdown now",
			privileged: true,
			expErr:     "Unexpected input: now",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env, pub := newTestEnv(t)
			h := NewHandler(env)

			var flags []string
			if tt.privileged {
				flags = append(flags, game.FlagCanShutdown)
			}
			bob := join(env, "Bob", 1000, flags...)
			alice := join(env, "Alice", 1001)

			err := h.Exec(context.Background(), bob, tt.line)
			if tt.expErr != "" {
				expectUserError(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "stopped", env.Stopped(), tt.expStopped)
			if tt.expStopped {
				testutil.AssertEqual(t, "self", bob.Output(), "Bob shuts down the game\n")
				testutil.AssertEqual(t, "others", alice.Output(), "Bob shuts down the game\n")
				testutil.AssertEqual(t, "event", pub.events[0].Kind, game.EventShutdown)
			}
		})
	}
}

func TestQuit(t *testing.T) {
	env, pub := newTestEnv(t)
	h := NewHandler(env)
	bob := join(env, "Bob", 1000)
	alice := join(env, "Alice", 1001)

	if err := h.Exec(context.Background(), bob, "quit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "closing", bob.Closing(), true)
	testutil.AssertEqual(t, "self", bob.Output(), "See you next time!\n")
	testutil.AssertEqual(t, "others", alice.Output(), "Player Bob has left the game.\n")
	testutil.AssertEqual(t, "event", pub.events[0].Kind, game.EventLeft)
}

func TestQuit_NotPlaying(t *testing.T) {
	env, pub := newTestEnv(t)
	h := NewHandler(env)
	alice := join(env, "Alice", 1000)

	s := join(env, "Bob", 1000)
	s.State = session.AwaitingPassword

	if err := h.Quit(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "closing", s.Closing(), true)
	testutil.AssertEqual(t, "self", s.Output(), "")
	testutil.AssertEqual(t, "others", alice.Output(), "")
	testutil.AssertEqual(t, "events", len(pub.events), 0)
}

func TestWho(t *testing.T) {
	env, _ := newTestEnv(t)
	h := NewHandler(env)
	bob := join(env, "Bob", 1000)
	join(env, "Alice", 1001)
	pending := join(env, "Carl", 1000)
	pending.State = session.AwaitingPassword

	if err := h.Exec(context.Background(), bob, "who"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "output", bob.Output(), "Players Online:\n  Bob                  room 1000\n  Alice                room 1001\n")
}

func TestSave(t *testing.T) {
	env, _ := newTestEnv(t)
	h := NewHandler(env)
	bob := join(env, "Bob", 1001, game.FlagGagged)
	bob.Player.Password = "pw"

	if err := h.Exec(context.Background(), bob, "save"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "output", bob.Output(), "Saved.\n")

	p, err := env.Players.Load("bob")
	if err != nil {
		t.Fatalf("loading saved player: %v", err)
	}
	testutil.AssertEqual(t, "room", p.Room, 1001)
	testutil.AssertEqual(t, "flag", p.HasFlag(game.FlagGagged), true)
}
