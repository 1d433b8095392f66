package storage

import (
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/pixil98/go-tinymud/internal/game"
)

var bucketPlayers = []byte("players")

// BoltStore keeps player records in a single bbolt database file. Values use
// the same encoding as the flat file store.
type BoltStore struct {
	bolt *bbolt.DB
}

// OpenBoltStore opens or creates the database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPlayers)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating players bucket: %w", err)
	}

	return &BoltStore{bolt: db}, nil
}

func (s *BoltStore) Load(name string) (*game.Player, error) {
	key, err := checkName(name)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = s.bolt.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketPlayers).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		// v is only valid inside the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return DecodeRecord(name, data)
}

func (s *BoltStore) Save(p *game.Player) error {
	key, err := checkName(p.Name)
	if err != nil {
		return err
	}

	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPlayers).Put([]byte(key), EncodeRecord(p))
	})
}

func (s *BoltStore) Exists(name string) (bool, error) {
	key, err := checkName(name)
	if err != nil {
		return false, err
	}

	var found bool
	err = s.bolt.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketPlayers).Get([]byte(key)) != nil
		return nil
	})
	return found, err
}

func (s *BoltStore) Close() error {
	return s.bolt.Close()
}
