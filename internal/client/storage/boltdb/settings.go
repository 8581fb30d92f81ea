package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// GetFlag returns the stored flag value, false when the flag was never set.
func (s *Storage) GetFlag(ctx context.Context, name string) (bool, error) {
	var value bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		value = string(bucket.Get([]byte(name))) == "1"
		return nil
	})
	if err != nil {
		return false, err
	}

	return value, nil
}

// SetFlag stores the flag value.
func (s *Storage) SetFlag(ctx context.Context, name string, value bool) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		v := []byte("0")
		if value {
			v = []byte("1")
		}
		if err := bucket.Put([]byte(name), v); err != nil {
			return fmt.Errorf("failed to save flag %s: %w", name, err)
		}

		return nil
	})
}
