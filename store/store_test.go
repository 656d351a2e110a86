package store

import (
	"path/filepath"
	"testing"

	"github.com/boltdb/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store_test.db")
	db, err := Open(path)
	require.NoError(t, err)

	assert := assert.New(t)

	id, err := db.NotificationID()
	assert.Nil(err)
	assert.Equal(uint32(0), id)

	assert.Nil(db.SetNotificationID(41))
	assert.Nil(db.SetNotificationID(42))
	id, err = db.NotificationID()
	assert.Nil(err)
	assert.Equal(uint32(42), id)
	require.NoError(t, db.Close())

	// survives reopening
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	id, err = db.NotificationID()
	assert.Nil(err)
	assert.Equal(uint32(42), id)
}

func TestNotificationIDCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store_test.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	err = db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(notificationsBucket).Put(lastKey, []byte{1})
	})
	require.NoError(t, err)

	_, err = db.NotificationID()
	assert.Error(t, err)
}
