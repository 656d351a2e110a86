// Package store persists the little state mpdkeys keeps between runs in
// a bolt database. Nothing read from the server is stored.
package store

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
)

var (
	notificationsBucket = []byte("notifications")
	lastKey             = []byte("last")
)

type Database struct {
	db *bolt.DB
}

// Open opens or creates the database at path. Another process holding
// the file makes Open fail after a second.
func Open(path string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(notificationsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Database{db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// NotificationID returns the id of the last notification shown, or 0.
func (d *Database) NotificationID() (id uint32, err error) {
	err = d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(notificationsBucket).Get(lastKey)
		if v == nil {
			return nil
		}
		if len(v) != 4 {
			return errors.New("store: corrupt notification id")
		}
		id = binary.BigEndian.Uint32(v)
		return nil
	})
	return id, err
}

func (d *Database) SetNotificationID(id uint32) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		v := make([]byte, 4)
		binary.BigEndian.PutUint32(v, id)
		return tx.Bucket(notificationsBucket).Put(lastKey, v)
	})
}
