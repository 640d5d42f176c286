package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketState   = []byte("state")   // durable entries
	bucketSession = []byte("session") // wiped on every open
)

// KVStore implements domain.KVStore on BoltDB with an in-memory promotion
// cache. With an empty dir it runs memory-only (no persistence), which is
// also the test mode.
type KVStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// Open creates or opens the store under dir. Session-scoped entries from a
// previous run are cleared, mirroring session-storage semantics.
func Open(dir string) (*KVStore, error) {
	if dir == "" {
		return &KVStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "cinegrid.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketState); err != nil {
			return err
		}
		// Recreate the session bucket empty on every open.
		if tx.Bucket(bucketSession) != nil {
			if err := tx.DeleteBucket(bucketSession); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &KVStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === domain.KVStore ===

func (s *KVStore) Get(key string, dest interface{}) bool {
	return s.get(bucketState, key, dest)
}

func (s *KVStore) Set(key string, value interface{}) error {
	return s.set(bucketState, key, value)
}

func (s *KVStore) Delete(key string) {
	s.delete(bucketState, key)
}

func (s *KVStore) GetSession(key string, dest interface{}) bool {
	return s.get(bucketSession, key, dest)
}

func (s *KVStore) SetSession(key string, value interface{}) error {
	return s.set(bucketSession, key, value)
}

func (s *KVStore) DeleteSession(key string) {
	s.delete(bucketSession, key)
}

// === Generic helpers ===

func (s *KVStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *KVStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *KVStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	// Clear from memory cache
	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete from BoltDB
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}
