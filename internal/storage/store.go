package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-tinymud/internal/game"
)

var (
	ErrNotFound      = errors.New("player not found")
	ErrInvalidName   = errors.New("invalid player name")
	ErrCorruptRecord = errors.New("corrupt player record")
)

// PlayerStore persists player records keyed by case-folded player name.
// Saves are last-write-wins.
type PlayerStore interface {
	Load(name string) (*game.Player, error)
	Save(p *game.Player) error
	Exists(name string) (bool, error)
	Close() error
}

// SaveQuietly saves p and logs any failure instead of returning it. It is used
// where no client is left to report the error to.
func SaveQuietly(s PlayerStore, p *game.Player) {
	if err := s.Save(p); err != nil {
		slog.Error("could not save player", "player", p.Name, "error", err)
	}
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func checkName(name string) (string, error) {
	if !game.ValidName(name) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return game.Key(name), nil
}
