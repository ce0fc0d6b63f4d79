package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var _ Store = (*LevelDBStore)(nil)

// LevelDBStore is the embedded catalog store backend. Keys are full
// record paths; prefix iteration yields lexicographic (and with
// timestamp IDs, chronological) order.
type LevelDBStore struct {
	db *leveldb.DB
}

func NewLevelDBStore(path string) (LevelDBStore, error) {
	const op = "LevelDBStore"
	log := slog.With("op", op)

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return LevelDBStore{}, fmt.Errorf(
			"%s: failed to open database: %w", op, err,
		)
	}
	log.Info("database is available", "path", path)
	return LevelDBStore{db}, nil
}

func (s LevelDBStore) List(
	ctx context.Context, prefix string,
) ([]Entry, error) {
	const op = "LevelDBStore.List"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	iter := s.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	var entries []Entry
	for iter.Next() {
		// the iterator reuses its buffers between Next calls
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		entries = append(entries, Entry{
			Key:   string(iter.Key()),
			Value: value,
		})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

func (s LevelDBStore) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "LevelDBStore.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	value, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrKeyNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (s LevelDBStore) Put(
	ctx context.Context, key string, value []byte,
) error {
	const op = "LevelDBStore.Put"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s LevelDBStore) Delete(ctx context.Context, key string) error {
	const op = "LevelDBStore.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s LevelDBStore) Close() {
	const op = "LevelDBStore.Close"
	log := slog.With("op", op)

	log.Info("closing catalog database...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("catalog database is closed")
}
