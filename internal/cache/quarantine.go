package cache

import (
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"
)

const quarantineBucket = "quarantine"

// QuarantineStore is a bbolt-backed, persistent set of aliases an
// operator has manually suppressed after a false-positive report. The
// scanner filters its FindAll results against this set post-match.
//
// Grounded on the teacher's internal/management.DomainRegistry (mutable
// set + persistence) and internal/anonymizer.bboltCache (bbolt
// open/bucket/Get/Set/Close shape) — this store gives bbolt a second,
// distinct job: the admin quarantine list, rather than the Ollama value
// cache it backs in the teacher.
type QuarantineStore struct {
	db *bolt.DB
}

// NewQuarantineStore opens (or creates) the bbolt database at path and
// ensures the quarantine bucket exists.
func NewQuarantineStore(path string) (*QuarantineStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open quarantine store %q: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(quarantineBucket))
		return err
	}); err != nil {
		db.Close() //nolint:errcheck // best-effort close on init failure
		return nil, fmt.Errorf("create quarantine bucket: %w", err)
	}
	return &QuarantineStore{db: db}, nil
}

// Add persists alias into the quarantine set. Idempotent.
func (q *QuarantineStore) Add(alias string) error {
	return q.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(quarantineBucket)).Put([]byte(alias), []byte{1})
	})
}

// Remove deletes alias from the quarantine set. A no-op if alias was
// never quarantined.
func (q *QuarantineStore) Remove(alias string) error {
	return q.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(quarantineBucket)).Delete([]byte(alias))
	})
}

// Contains reports whether alias is currently quarantined.
func (q *QuarantineStore) Contains(alias string) bool {
	var found bool
	_ = q.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(quarantineBucket)).Get([]byte(alias))
		found = v != nil
		return nil
	})
	return found
}

// All returns every quarantined alias, sorted.
func (q *QuarantineStore) All() ([]string, error) {
	var out []string
	err := q.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(quarantineBucket))
		return b.ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list quarantine: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// Close releases the underlying bbolt database handle.
func (q *QuarantineStore) Close() error {
	return q.db.Close()
}
