package storage

import (
	"context"

	"github.com/forgeline/partmatch/core"
)

// CatalogRepository provides operations for persisting part records.
// Implementations must be thread-safe and support concurrent access.
// The repository is the durable source the in-memory catalog indices are
// rebuilt from on load and reload.
type CatalogRepository interface {
	// PutParts inserts or replaces part records keyed by part number.
	// Sets InsertedAt on first write and UpdatedAt on every write.
	// Returns the records with timestamps populated.
	PutParts(ctx context.Context, parts ...*core.PartRecord) ([]*core.PartRecord, error)

	// GetPart retrieves a single part by part number.
	// Returns ErrNotFound if the part doesn't exist.
	GetPart(ctx context.Context, partNumber string) (*core.PartRecord, error)

	// GetParts retrieves multiple parts by part number.
	// Returns only the parts that exist (no error for missing parts).
	GetParts(ctx context.Context, partNumbers ...string) ([]*core.PartRecord, error)

	// ForEachPart iterates over all stored parts in part-number order.
	// Iteration stops on the first error from fn.
	ForEachPart(ctx context.Context, fn func(part *core.PartRecord) error) error

	// CountParts returns the number of stored parts.
	CountParts(ctx context.Context) (int, error)

	// DeleteParts removes parts by part number.
	// Returns ErrNotFound if any part doesn't exist.
	DeleteParts(ctx context.Context, partNumbers ...string) error

	// Clear removes all stored parts. Used by full catalog replacement loads.
	Clear(ctx context.Context) error

	// Close closes the repository and releases resources.
	Close() error
}
