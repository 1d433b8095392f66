package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-tinymud/internal/commands"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
	"github.com/pixil98/go-tinymud/internal/session"
	"github.com/pixil98/go-tinymud/internal/storage"
)

const (
	promptPassword = "Enter your password ... "
	promptNewName  = "Please choose a name for your new character ... "
	promptGoodbye  = "Goodbye.\n"

	newCharacterName = "new"
)

var (
	errNameBlank     = commands.NewUserError("Name cannot be blank.")
	errNameChars     = commands.NewUserError("That player name contains disallowed characters.")
	errPasswordBlank = commands.NewUserError("Password cannot be blank.")
	errNoSuchPlayer  = commands.NewUserError("That player does not exist, type 'new' to create a new one.")
)

// firstWord returns the first white space delimited token of line.
func firstWord(line string) string {
	w, _ := splitWord(line)
	return w
}

func (m *PlayerManager) processName(ctx context.Context, s *session.Session, line string) error {
	name := firstWord(line)
	if name == "" {
		return errNameBlank
	}
	if m.env.Sessions.FindByName(name) != nil {
		return commands.NewUserErrorf("%s is already connected.", name)
	}
	if !game.ValidName(name) {
		return errNameChars
	}

	if game.EqualName(name, newCharacterName) {
		s.State = session.AwaitingNewName
		s.Prompt = promptNewName
		return nil
	}

	p, err := m.env.Players.Load(name)
	if errors.Is(err, storage.ErrNotFound) {
		return errNoSuchPlayer
	}
	if err != nil {
		return fmt.Errorf("loading player %s: %w", name, err)
	}

	s.Player = p
	s.State = session.AwaitingPassword
	s.Prompt = promptPassword
	s.BadPasswords = 0
	return nil
}

func (m *PlayerManager) processPassword(ctx context.Context, s *session.Session, line string) error {
	err := m.checkPassword(ctx, s, firstWord(line))
	if err == nil || s.Closing() || s.State != session.AwaitingPassword {
		return err
	}

	s.BadPasswords++
	if s.BadPasswords >= m.env.Settings.MaxPasswordAttempts {
		slog.WarnContext(ctx, "too many password attempts", "session", s)
		s.Send("Too many attempts to guess the password!\n")
		s.Reset()
	}
	return err
}

func (m *PlayerManager) checkPassword(ctx context.Context, s *session.Session, password string) error {
	if password == "" {
		return errPasswordBlank
	}
	if password != s.Player.Password {
		return commands.NewUserError("That password is incorrect.")
	}

	// someone else may have logged in as this player since the name was given
	if o := m.env.Sessions.FindPlaying(s.Player.Name); o != nil && o != s {
		name := s.Player.Name
		s.Reset()
		return commands.NewUserErrorf("%s is already connected.", name)
	}

	if s.Player.HasFlag(game.FlagBlocked) {
		slog.WarnContext(ctx, "blocked player refused", "session", s)
		s.Close()
		s.Prompt = promptGoodbye
		return commands.NewUserError("You are not permitted to connect.")
	}

	return m.enterGame(ctx, s, messages.ExistingPlayer)
}
