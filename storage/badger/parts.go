package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/storage"
)

// PartRepository implements storage.CatalogRepository for BadgerDB.
type PartRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*PartRepository)(nil)

// NewPartRepository creates a new PartRepository on an open backend.
func NewPartRepository(backend *Backend) (*PartRepository, error) {
	return &PartRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *PartRepository) Close() error {
	return nil
}

// PutParts inserts or replaces part records keyed by part number.
func (r *PartRepository) PutParts(ctx context.Context, parts ...*core.PartRecord) ([]*core.PartRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, part := range parts {
			key := makePartKey(part.PartNumber)

			old, err := r.readPart(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				part.InsertedAt = old.InsertedAt
			} else if part.InsertedAt.IsZero() {
				part.InsertedAt = now
			}
			part.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalPartRecord(part)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return parts, err
}

// GetPart retrieves a single part by part number.
func (r *PartRepository) GetPart(ctx context.Context, partNumber string) (*core.PartRecord, error) {
	var part *core.PartRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		part, err = r.readPart(tx, makePartKey(partNumber))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, storage.ErrNotFound
	}
	return part, nil
}

// GetParts retrieves multiple parts by part number.
// Missing parts are skipped, not an error.
func (r *PartRepository) GetParts(ctx context.Context, partNumbers ...string) ([]*core.PartRecord, error) {
	parts := make([]*core.PartRecord, 0, len(partNumbers))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, pn := range partNumbers {
			part, err := r.readPart(tx, makePartKey(pn))
			if err != nil {
				return err
			}
			if part != nil {
				parts = append(parts, part)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return parts, nil
}

// ForEachPart iterates over all stored parts in part-number order.
func (r *PartRepository) ForEachPart(ctx context.Context, fn func(part *core.PartRecord) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(partPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var part *core.PartRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				part, err = storage.UnmarshalPartRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if part == nil {
				continue
			}
			if pn := partNumberFromKey(iter.Item().Key()); pn != part.PartNumber {
				return fmt.Errorf("%w: key %q holds part %q",
					storage.ErrCorruptRecord, pn, part.PartNumber)
			}
			if err := fn(part); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// CountParts returns the number of stored parts.
func (r *PartRepository) CountParts(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(partPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteParts removes parts by part number.
func (r *PartRepository) DeleteParts(ctx context.Context, partNumbers ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, pn := range partNumbers {
			key := makePartKey(pn)
			existing, err := r.readPart(tx, key)
			if err != nil {
				return err
			}
			if existing == nil {
				return storage.ErrNotFound
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Clear removes all stored parts.
func (r *PartRepository) Clear(ctx context.Context) error {
	// Collected first: badger iterators cannot observe deletes in the same pass.
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(partPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readPart reads a part record by key within a transaction.
// Returns nil (no error) when the key does not exist.
func (r *PartRepository) readPart(tx *badger.Txn, key []byte) (*core.PartRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var part *core.PartRecord
	err = item.Value(func(val []byte) error {
		var err error
		part, err = storage.UnmarshalPartRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}
