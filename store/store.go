// Package store persists the session log and streak state
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/studyfocus/internal/models"
)

const (
	sessionBucket = "sessions"
	indexBucket   = "session_ids"
	streakBucket  = "streak"
	streakKey     = "state"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// AppendSession stores rec under the next sequence number so that
// iteration follows append order.
func (c *Client) AppendSession(rec *models.SessionRecord) error {
	if rec.ID == "" {
		return errMissingID
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket([]byte(indexBucket))
		if index.Get([]byte(rec.ID)) != nil {
			return errDuplicateID.Fmt(rec.ID)
		}

		b := tx.Bucket([]byte(sessionBucket))

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		key := itob(seq)

		if err := index.Put([]byte(rec.ID), key); err != nil {
			return err
		}

		return b.Put(key, value)
	})
}

func (c *Client) Sessions() ([]models.SessionRecord, error) {
	var s []models.SessionRecord

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).ForEach(func(_, v []byte) error {
			var rec models.SessionRecord

			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			s = append(s, rec)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (c *Client) Streak() (models.StreakState, error) {
	var state models.StreakState

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(streakBucket)).Get([]byte(streakKey))
		if len(v) == 0 {
			return nil
		}

		return json.Unmarshal(v, &state)
	})

	return state, err
}

func (c *Client) UpdateStreak(state models.StreakState) error {
	value, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(streakBucket)).Put([]byte(streakKey), value)
	})
}

// Clear drops and recreates every bucket.
func (c *Client) Clear() error {
	return c.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets() {
			err := tx.DeleteBucket([]byte(name))
			if err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}

			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
}

func buckets() []string {
	return []string{sessionBucket, indexBucket, streakBucket}
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)

	return b
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errFocusRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
