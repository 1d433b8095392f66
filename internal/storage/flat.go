package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pixil98/go-tinymud/internal/game"
)

const playerFileExt = ".player"

// FileStore keeps one flat record file per player in a directory.
type FileStore struct {
	path string
}

// NewFileStore opens a store rooted at path, creating the directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("creating player directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(name string) (*game.Player, error) {
	key, err := checkName(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.filePath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading player file: %w", err)
	}

	return DecodeRecord(name, data)
}

func (s *FileStore) Save(p *game.Player) error {
	key, err := checkName(p.Name)
	if err != nil {
		return err
	}
	return atomicWrite(s.filePath(key), EncodeRecord(p), 0644)
}

func (s *FileStore) Exists(name string) (bool, error) {
	key, err := checkName(name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(s.filePath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking player file: %w", err)
	}
	return true, nil
}

// Close is a no-op; files are not held open between calls.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) filePath(key string) string {
	return filepath.Join(s.path, key+playerFileExt)
}
