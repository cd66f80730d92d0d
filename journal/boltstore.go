package journal

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.etcd.io/bbolt"
)

var bucketEvents = []byte("events")

// BoltStore persists journal events in a bbolt database, ordered by a
// monotonically increasing sequence number. A closed store rejects all
// operations with ErrStoreClosed.
type BoltStore struct {
	mu     sync.Mutex
	db     *bbolt.DB
	closed bool
}

// OpenBoltStore opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("journal: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database. Further operations, including a
// second Close, fail with ErrStoreClosed.
func (s *BoltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.closed = true
	return s.db.Close()
}

func (s *BoltStore) guard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// seqKey encodes a sequence number as an 8-byte big-endian key so the
// bucket iterates in append order.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// Append stores one event at the next sequence position.
func (s *BoltStore) Append(e Event) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return appendEvent(tx.Bucket(bucketEvents), e)
	})
}

// AppendAll stores a batch of events in one transaction, preserving order.
func (s *BoltStore) AppendAll(events []Event) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		for _, e := range events {
			if err := appendEvent(b, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func appendEvent(b *bbolt.Bucket, e Event) error {
	seq, err := b.NextSequence()
	if err != nil {
		return fmt.Errorf("journal: next sequence: %w", err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&e); err != nil {
		return fmt.Errorf("journal: encode event: %w", err)
	}
	if err := b.Put(seqKey(seq), buf.Bytes()); err != nil {
		return fmt.Errorf("journal: put event: %w", err)
	}
	return nil
}

// Events returns all stored events in append order.
func (s *BoltStore) Events() ([]Event, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	var events []Event
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEvents).ForEach(func(k, v []byte) error {
			var e Event
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&e); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
			}
			events = append(events, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Len returns the number of stored events.
func (s *BoltStore) Len() (int, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketEvents).Stats().KeyN
		return nil
	})
	return n, err
}
