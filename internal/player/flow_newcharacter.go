package player

import (
	"context"
	"fmt"

	"github.com/pixil98/go-tinymud/internal/commands"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
	"github.com/pixil98/go-tinymud/internal/session"
)

const promptConfirm = "Re-enter password to confirm it ... "

var errNameTaken = commands.NewUserError("That player already exists, please choose another name.")

func newPasswordPrompt(name string) string {
	return fmt.Sprintf("Choose a password for %s ... ", name)
}

func (m *PlayerManager) processNewName(ctx context.Context, s *session.Session, line string) error {
	name := firstWord(line)
	if name == "" {
		return errNameBlank
	}
	if !game.ValidName(name) {
		return errNameChars
	}
	if game.EqualName(name, newCharacterName) || m.env.Control.IsReserved(name) {
		return commands.NewUserError("That name is not permitted.")
	}

	taken, err := m.nameTaken(name, nil)
	if err != nil {
		return err
	}
	if taken {
		return errNameTaken
	}

	s.Player = game.NewPlayer(game.Capitalize(name), m.env.Settings.InitialRoom)
	s.State = session.AwaitingNewPassword
	s.Prompt = newPasswordPrompt(s.Player.Name)
	s.BadPasswords = 0
	return nil
}

func (m *PlayerManager) processNewPassword(ctx context.Context, s *session.Session, line string) error {
	password := firstWord(line)
	if password == "" {
		return errPasswordBlank
	}

	s.Player.Password = password
	s.State = session.ConfirmPassword
	s.Prompt = promptConfirm
	return nil
}

func (m *PlayerManager) processConfirmPassword(ctx context.Context, s *session.Session, line string) error {
	if firstWord(line) != s.Player.Password {
		s.State = session.AwaitingNewPassword
		s.Prompt = newPasswordPrompt(s.Player.Name)
		return commands.NewUserError("Password and confirmation do not agree.")
	}

	// someone may have taken the name while we were choosing a password
	taken, err := m.nameTaken(s.Player.Name, s)
	if err != nil {
		return err
	}
	if taken {
		s.Player = nil
		s.State = session.AwaitingNewName
		s.Prompt = promptNewName
		return errNameTaken
	}

	if err := m.env.Players.Save(s.Player); err != nil {
		return fmt.Errorf("saving new player %s: %w", s.Player.Name, err)
	}

	return m.enterGame(ctx, s, messages.NewPlayer)
}

// nameTaken reports whether name has a stored record or is claimed by a
// connected session other than self.
func (m *PlayerManager) nameTaken(name string, self *session.Session) (bool, error) {
	if o := m.env.Sessions.FindByName(name); o != nil && o != self {
		return true, nil
	}

	exists, err := m.env.Players.Exists(name)
	if err != nil {
		return false, fmt.Errorf("checking player %s: %w", name, err)
	}
	return exists, nil
}
