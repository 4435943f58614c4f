// Package storage persists raw binary databases in pebble, keyed by KSUID.
package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/bindb/pkg/codec"
)

// ErrNotFound is returned when no database is stored under an id
var ErrNotFound = errors.New("database not found")

// keyPrefix namespaces database blobs inside the pebble keyspace
var keyPrefix = []byte("db/")

// Store holds raw database buffers. Buffers are validated by decoding them
// before they are written, so everything in the store decodes cleanly.
type Store struct {
	db     *pebble.DB
	logger *slog.Logger
}

// Open opens or creates a store in dir
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", dir, err)
	}
	return &Store{db: db, logger: logger}, nil
}

func dbKey(id ksuid.KSUID) []byte {
	key := make([]byte, 0, len(keyPrefix)+len(id))
	key = append(key, keyPrefix...)
	return append(key, id.Bytes()...)
}

// Put decodes raw and stores it under a new id
func (s *Store) Put(raw []byte) (ksuid.KSUID, *codec.Database, error) {
	decoded, err := codec.Decode(raw)
	if err != nil {
		return ksuid.Nil, nil, fmt.Errorf("refusing to store malformed database: %w", err)
	}

	id := ksuid.New()
	if err := s.db.Set(dbKey(id), raw, pebble.Sync); err != nil {
		return ksuid.Nil, nil, fmt.Errorf("failed to write database %s: %w", id, err)
	}

	s.logger.Debug("stored database", "id", id.String(), "bytes", len(raw), "records", decoded.Len())
	return id, decoded, nil
}

// Get returns a copy of the raw buffer stored under id
func (s *Store) Get(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(dbKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read database %s: %w", id, err)
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Load reads and decodes the database stored under id
func (s *Store) Load(id ksuid.KSUID) (*codec.Database, error) {
	raw, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	decoded, err := codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("stored database %s is corrupt: %w", id, err)
	}
	return decoded, nil
}

// Delete removes the database stored under id
func (s *Store) Delete(id ksuid.KSUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.Delete(dbKey(id), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete database %s: %w", id, err)
	}
	s.logger.Debug("deleted database", "id", id.String())
	return nil
}

// List returns the stored ids in KSUID order, which is creation time at
// second resolution
func (s *Store) List() ([]ksuid.KSUID, error) {
	upper := append([]byte(nil), keyPrefix...)
	upper[len(upper)-1]++

	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: upper})
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(keyPrefix):])
		if err != nil {
			iter.Close()
			return nil, fmt.Errorf("bad key in store: %w", err)
		}
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	return ids, nil
}

// Close closes the underlying pebble database
func (s *Store) Close() error {
	return s.db.Close()
}
