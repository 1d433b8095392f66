package command

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-tinymud/internal/control"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
)

const (
	DefaultRoomsFile    = "./rooms/rooms.txt"
	DefaultControlFile  = "./system/control.txt"
	DefaultMessagesFile = "./system/messages.txt"
)

// FilesConfig names the text files the world is read from. A file that
// cannot be read is logged and the server runs with an empty collection.
type FilesConfig struct {
	Rooms    string `json:"rooms"`
	Control  string `json:"control"`
	Messages string `json:"messages"`
}

func (c *FilesConfig) roomsPath() string {
	return orDefault(c.Rooms, DefaultRoomsFile)
}

func (c *FilesConfig) controlPath() string {
	return orDefault(c.Control, DefaultControlFile)
}

func (c *FilesConfig) messagesPath() string {
	return orDefault(c.Messages, DefaultMessagesFile)
}

func (c *FilesConfig) loadControl(ctx context.Context) *control.Control {
	ctl, err := control.LoadFile(c.controlPath())
	if err != nil {
		slog.WarnContext(ctx, "loading control file", "path", c.controlPath(), "error", err)
		return control.New()
	}
	slog.InfoContext(ctx, "loaded control file",
		"directions", len(ctl.Directions),
		"reserved_names", len(ctl.ReservedNames),
		"blocked_addresses", len(ctl.BlockedAddresses))
	return ctl
}

func (c *FilesConfig) loadMessages(ctx context.Context) *messages.Table {
	msgs, err := messages.LoadFile(c.messagesPath())
	if err != nil {
		slog.WarnContext(ctx, "loading messages", "path", c.messagesPath(), "error", err)
		return messages.New()
	}
	slog.InfoContext(ctx, "loaded messages", "count", msgs.Len())
	return msgs
}

// loadWorld reads the rooms file. Exits are only kept for verbs the control
// file names as directions, so the control file must be loaded first.
func (c *FilesConfig) loadWorld(ctx context.Context, directions game.NameSet) *game.World {
	w, err := game.LoadWorldFile(c.roomsPath(), directions)
	if err != nil {
		slog.WarnContext(ctx, "loading rooms", "path", c.roomsPath(), "error", err)
		return game.NewWorld()
	}
	slog.InfoContext(ctx, "loaded rooms", "count", w.Len())
	return w
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
