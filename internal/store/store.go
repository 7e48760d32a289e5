// Package store persists finalized screening sessions in a local BoltDB
// file. Records are append-only from the conversation's point of view: a
// session is written once after termination and only removed by explicit
// erasure or the retention sweep.
package store

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/candidate"
)

const (
	// RetentionPeriod is how long records are kept before the cleanup sweep
	// drops them.
	RetentionPeriod = 90 * 24 * time.Hour

	sessionIDLength = 16

	bucketCandidates = "candidates"
)

// ErrNotFound is returned when no record exists for a session id.
var ErrNotFound = errors.New("session not found")

// Record is the persisted snapshot of one finished screening session.
type Record struct {
	SessionID      string           `json:"session_id"`
	Timestamp      time.Time        `json:"timestamp"`
	Candidate      candidate.Record `json:"candidate_info"`
	History        []ai.Message     `json:"conversation_history"`
	Status         string           `json:"status"`
	RetentionUntil time.Time        `json:"data_retention_until"`
}

// Store wraps a BoltDB file holding candidate session records. Safe for
// concurrent use from independent conversations.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCandidates))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create candidates bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save appends a finished session and returns its generated session id.
func (s *Store) Save(rec candidate.Record, history []ai.Message) (string, error) {
	now := time.Now()

	id, err := newSessionID(now)
	if err != nil {
		return "", err
	}

	record := Record{
		SessionID:      id,
		Timestamp:      now,
		Candidate:      rec,
		History:        history,
		Status:         "pending_review",
		RetentionUntil: now.Add(RetentionPeriod),
	}

	enc, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode session record: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCandidates)).Put([]byte(id), enc)
	})
	if err != nil {
		return "", fmt.Errorf("write session record: %w", err)
	}

	return id, nil
}

// Get returns the record stored under the session id.
func (s *Store) Get(sessionID string) (*Record, error) {
	var record *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketCandidates)).Get([]byte(sessionID))
		if data == nil {
			return ErrNotFound
		}
		record = &Record{}
		return json.Unmarshal(data, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a session record (right-to-erasure). It reports whether a
// record existed.
func (s *Store) Delete(sessionID string) (bool, error) {
	found := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCandidates))
		if b.Get([]byte(sessionID)) == nil {
			return nil
		}
		found = true
		return b.Delete([]byte(sessionID))
	})
	return found, err
}

// List returns every stored record, skipping entries that fail to decode.
func (s *Store) List() ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCandidates)).ForEach(func(_, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CleanupExpired drops records past their retention timestamp and returns
// how many were removed.
func (s *Store) CleanupExpired(now time.Time) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCandidates))

		var expired [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil
			}
			if !rec.RetentionUntil.IsZero() && !rec.RetentionUntil.After(now) {
				key := make([]byte, len(k))
				copy(key, k)
				expired = append(expired, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range expired {
			if err := b.Delete(key); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// newSessionID derives a fixed-length opaque id from the timestamp and
// random bytes: practically unique and not guessable.
func newSessionID(now time.Time) (string, error) {
	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	sum := sha256.Sum256([]byte(now.Format(time.RFC3339Nano) + "-" + hex.EncodeToString(nonce)))
	return hex.EncodeToString(sum[:])[:sessionIDLength], nil
}
