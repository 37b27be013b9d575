package buffer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store wraps BoltDB to persist XP grants that failed to apply while the
// primary datastore was unavailable. Keys are timestamp-ordered so draining
// replays grants oldest first.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "grants"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Enqueue stores a pending grant.
func (s *Store) Enqueue(grant Grant) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	grant.normalize()
	grant.bucketKey = []byte(buildKey(grant))

	payload, err := json.Marshal(grant)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(grant.bucketKey, payload)
	})
}

// GetBatch returns up to limit grants without removing them.
func (s *Store) GetBatch(limit int) ([]Grant, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var grants []Grant
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(grants) < limit; k, v = c.Next() {
			var grant Grant
			if err := json.Unmarshal(v, &grant); err != nil {
				continue
			}
			grant.bucketKey = append([]byte(nil), k...)
			grants = append(grants, grant)
		}
		return nil
	})
	return grants, err
}

// Remove deletes the provided grant from the store.
func (s *Store) Remove(grant Grant) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(grant.bucketKey) == 0 {
		return s.deleteByID(grant.ID)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(grant.bucketKey)
	})
}

// Requeue re-inserts a grant after bumping its timestamp.
func (s *Store) Requeue(grant Grant) error {
	grant.bucketKey = nil
	grant.Timestamp = time.Now()
	return s.Enqueue(grant)
}

// Size returns the number of pending grants.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes grants older than the provided timestamp.
func (s *Store) Cleanup(olderThan time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var grant Grant
			if err := json.Unmarshal(v, &grant); err != nil {
				continue
			}
			if grant.Timestamp.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) deleteByID(id string) error {
	if id == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var grant Grant
			if err := json.Unmarshal(v, &grant); err != nil {
				continue
			}
			if grant.ID == id {
				return c.Delete()
			}
		}
		return nil
	})
}

func buildKey(grant Grant) string {
	return fmt.Sprintf("%020d_%s", grant.Timestamp.UnixNano(), grant.ID)
}
