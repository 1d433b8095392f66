package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tinymud/internal/storage"
)

const DefaultPlayersPath = "./players"

type StorageType string

const (
	StorageTypeFlat StorageType = "flat"
	StorageTypeBolt StorageType = "bolt"
)

func (st *StorageType) UnmarshalText(text []byte) error {
	switch StorageType(text) {
	case "", StorageTypeFlat:
		*st = StorageTypeFlat
	case StorageTypeBolt:
		*st = StorageTypeBolt
	default:
		return fmt.Errorf("unknown storage type: %s", text)
	}
	return nil
}

// StorageConfig selects where player records live. For flat storage Path is
// a directory of one file per player; for bolt it is the database file.
type StorageConfig struct {
	Type StorageType `json:"type"`
	Path string      `json:"path"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.Type == StorageTypeBolt && c.Path == "" {
		el.Add(fmt.Errorf("storage: path is required for bolt storage"))
	}

	return el.Err()
}

func (c *StorageConfig) BuildStore() (storage.PlayerStore, error) {
	switch c.Type {
	case "", StorageTypeFlat:
		return storage.NewFileStore(orDefault(c.Path, DefaultPlayersPath))
	case StorageTypeBolt:
		return storage.OpenBoltStore(c.Path)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", c.Type)
	}
}
