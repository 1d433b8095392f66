package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-tinymud/internal/game"
)

func openStores(t *testing.T) map[string]PlayerStore {
	t.Helper()

	flat, err := NewFileStore(filepath.Join(t.TempDir(), "players"))
	if err != nil {
		t.Fatalf("opening file store: %v", err)
	}

	bolt, err := OpenBoltStore(filepath.Join(t.TempDir(), "players.db"))
	if err != nil {
		t.Fatalf("opening bolt store: %v", err)
	}
	t.Cleanup(func() { _ = bolt.Close() })

	return map[string]PlayerStore{
		"flat": flat,
		"bolt": bolt,
	}
}

func TestPlayerStore_RoundTrip(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			p := game.NewPlayer("Bob", 1002)
			p.Password = "hunter2"
			p.Flags.Add(game.FlagCanGoto)

			if err := store.Save(p); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := store.Load("BOB")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			testutil.AssertEqual(t, "name", got.Name, "Bob")
			testutil.AssertEqual(t, "password", got.Password, "hunter2")
			testutil.AssertEqual(t, "room", got.Room, 1002)
			testutil.AssertEqual(t, "flag", got.HasFlag(game.FlagCanGoto), true)

			exists, err := store.Exists("bob")
			if err != nil {
				t.Fatalf("exists: %v", err)
			}
			testutil.AssertEqual(t, "exists", exists, true)
		})
	}
}

func TestPlayerStore_Overwrite(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			p := game.NewPlayer("Alice", 1000)
			p.Password = "one"
			if err := store.Save(p); err != nil {
				t.Fatalf("save: %v", err)
			}

			p.Room = 1005
			if err := store.Save(p); err != nil {
				t.Fatalf("second save: %v", err)
			}

			got, err := store.Load("alice")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			testutil.AssertEqual(t, "room", got.Room, 1005)
		})
	}
}

func TestPlayerStore_NotFound(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load("nobody")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}

			exists, err := store.Exists("nobody")
			if err != nil {
				t.Fatalf("exists: %v", err)
			}
			testutil.AssertEqual(t, "exists", exists, false)
		})
	}
}

func TestPlayerStore_InvalidName(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load("../etc/passwd")
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("expected ErrInvalidName, got %v", err)
			}
		})
	}
}

func TestFileStore_FileLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := game.NewPlayer("Bob", 1000)
	p.Password = "pw"
	if err := store.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "bob.player"))
	if err != nil {
		t.Fatalf("reading player file: %v", err)
	}
	testutil.AssertEqual(t, "contents", string(data), "pw\n1000\n\n")

	_, err = os.Stat(filepath.Join(dir, "bob.player.tmp"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}
}
