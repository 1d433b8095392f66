package commands

import (
	"strconv"
	"strings"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/session"
)

// args consumes a command's argument text one word at a time.
type args struct {
	rest string
}

func newArgs(s string) *args {
	return &args{rest: s}
}

// word returns the next white space delimited token, or "".
func (a *args) word() string {
	a.rest = strings.TrimLeft(a.rest, " \t")
	i := strings.IndexAny(a.rest, " \t")
	if i < 0 {
		w := a.rest
		a.rest = ""
		return w
	}
	w := a.rest[:i]
	a.rest = a.rest[i:]
	return w
}

// number returns the next token as an integer. A missing token reports ok
// false with an empty raw value.
func (a *args) number() (n int, raw string, ok bool) {
	raw = a.word()
	if raw == "" {
		return 0, "", false
	}
	n, err := strconv.Atoi(raw)
	return n, raw, err == nil
}

// message returns the rest of the line, which must not be empty.
func (a *args) message(missing string) (string, error) {
	msg := strings.TrimSpace(a.rest)
	a.rest = ""
	if msg == "" {
		return "", NewUserError(missing)
	}
	return msg, nil
}

// flag returns the next token as a flag name.
func (a *args) flag(missing string) (string, error) {
	f := a.word()
	if f == "" {
		return "", NewUserError(missing)
	}
	if !game.ValidName(f) {
		return "", NewUserError("Flag name not valid.")
	}
	return f, nil
}

// noMore fails if anything but white space is left.
func (a *args) noMore() error {
	if rest := strings.TrimSpace(a.rest); rest != "" {
		return NewUserError("Unexpected input: " + rest)
	}
	return nil
}

// player resolves the next token to a playing session. "me" and "self" refer
// to s. With notMe set, naming yourself is an error.
func (a *args) player(env *Env, s *session.Session, missing string, notMe bool) (*session.Session, error) {
	name := a.word()
	if name == "" {
		return nil, NewUserError(missing)
	}

	target := s
	if !game.EqualName(name, "me") && !game.EqualName(name, "self") {
		target = env.Sessions.FindPlaying(name)
	}
	if target == nil {
		return nil, NewUserErrorf("Player %s is not connected.", game.Capitalize(name))
	}
	if notMe && target == s {
		return nil, NewUserError("You cannot do that to yourself.")
	}
	return target, nil
}

func needFlag(s *session.Session, flag string) error {
	if !s.Player.HasFlag(flag) {
		return errNotPermitted
	}
	return nil
}

func needNoFlag(s *session.Session, flag string) error {
	if s.Player.HasFlag(flag) {
		return errNotPermitted
	}
	return nil
}
