package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/shopspring/decimal"

	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/storage"
)

func newTestRepo(t *testing.T) storage.CatalogRepository {
	t.Helper()

	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testPart(partNumber string) *core.PartRecord {
	return &core.PartRecord{
		PartNumber:   partNumber,
		Description:  "4140 Alloy Steel Round Bar 2in x 36in",
		Material:     "4140",
		Form:         "bar",
		UnitPrice:    decimal.NewFromFloat(42.50),
		Availability: 120,
	}
}

func TestPartRepositoryBasics(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stored, err := repo.PutParts(ctx, testPart("SB-4140-2-36"))
	if err != nil {
		t.Fatalf("Failed to put part: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored part, got %d", len(stored))
	}
	if stored[0].InsertedAt.IsZero() || stored[0].UpdatedAt.IsZero() {
		t.Fatal("Expected timestamps to be set on insert")
	}

	retrieved, err := repo.GetPart(ctx, "SB-4140-2-36")
	if err != nil {
		t.Fatalf("Failed to get part: %v", err)
	}
	if retrieved.PartNumber != "SB-4140-2-36" {
		t.Errorf("Expected part number SB-4140-2-36, got %s", retrieved.PartNumber)
	}
	if !retrieved.UnitPrice.Equal(decimal.NewFromFloat(42.50)) {
		t.Errorf("Expected unit price 42.50, got %s", retrieved.UnitPrice)
	}
	if retrieved.Availability != 120 {
		t.Errorf("Expected availability 120, got %d", retrieved.Availability)
	}
}

func TestPartRepositoryGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetPart(context.Background(), "NO-SUCH-PART")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestPartRepositoryUpdatePreservesInsertedAt(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.PutParts(ctx, testPart("SB-4140-2-36")); err != nil {
		t.Fatalf("Failed to put part: %v", err)
	}
	first, err := repo.GetPart(ctx, "SB-4140-2-36")
	if err != nil {
		t.Fatalf("Failed to get part: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	updated := testPart("SB-4140-2-36")
	updated.Availability = 90
	if _, err := repo.PutParts(ctx, updated); err != nil {
		t.Fatalf("Failed to update part: %v", err)
	}

	second, err := repo.GetPart(ctx, "SB-4140-2-36")
	if err != nil {
		t.Fatalf("Failed to get updated part: %v", err)
	}
	if !second.InsertedAt.Equal(first.InsertedAt) {
		t.Errorf("Expected InsertedAt to be preserved: %v vs %v", second.InsertedAt, first.InsertedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("Expected UpdatedAt to advance: %v vs %v", second.UpdatedAt, first.UpdatedAt)
	}
	if second.Availability != 90 {
		t.Errorf("Expected availability 90, got %d", second.Availability)
	}
}

func TestPartRepositoryGetParts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.PutParts(ctx, testPart("SB-4140-2-36"), testPart("SB-4340-2-36")); err != nil {
		t.Fatalf("Failed to put parts: %v", err)
	}

	// Missing part numbers are skipped, not an error
	parts, err := repo.GetParts(ctx, "SB-4140-2-36", "NO-SUCH-PART", "SB-4340-2-36")
	if err != nil {
		t.Fatalf("Failed to get parts: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(parts))
	}
}

func TestPartRepositoryForEachPart(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, pn := range []string{"SB-6061-1-36", "SB-4140-2-36", "SB-4340-2-36"} {
		if _, err := repo.PutParts(ctx, testPart(pn)); err != nil {
			t.Fatalf("Failed to put part %s: %v", pn, err)
		}
	}

	var seen []string
	err := repo.ForEachPart(ctx, func(part *core.PartRecord) error {
		seen = append(seen, part.PartNumber)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachPart failed: %v", err)
	}

	expected := []string{"SB-4140-2-36", "SB-4340-2-36", "SB-6061-1-36"}
	if len(seen) != len(expected) {
		t.Fatalf("Expected %d parts, got %d", len(expected), len(seen))
	}
	for i, pn := range expected {
		if seen[i] != pn {
			t.Errorf("Expected part %s at position %d, got %s", pn, i, seen[i])
		}
	}
}

func TestPartRepositoryForEachPartStops(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.PutParts(ctx, testPart("SB-4140-2-36"), testPart("SB-4340-2-36")); err != nil {
		t.Fatalf("Failed to put parts: %v", err)
	}

	stop := errors.New("stop")
	calls := 0
	err := repo.ForEachPart(ctx, func(part *core.PartRecord) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Expected callback error to propagate, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected iteration to stop after 1 call, got %d", calls)
	}
}

func TestPartRepositoryForEachPartCorruptKey(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	ctx := context.Background()

	// Plant a record whose key disagrees with its part number.
	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makePartKey("SB-0000-0-00"), storage.MarshalPartRecord(testPart("SB-4140-2-36"))); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		t.Fatalf("Failed to plant record: %v", err)
	}

	err = repo.ForEachPart(ctx, func(part *core.PartRecord) error {
		return nil
	})
	if !errors.Is(err, storage.ErrCorruptRecord) {
		t.Fatalf("Expected ErrCorruptRecord, got %v", err)
	}
}

func TestPartRepositoryCountAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.PutParts(ctx, testPart("SB-4140-2-36"), testPart("SB-4340-2-36")); err != nil {
		t.Fatalf("Failed to put parts: %v", err)
	}

	count, err := repo.CountParts(ctx)
	if err != nil {
		t.Fatalf("CountParts failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 parts, got %d", count)
	}

	if err := repo.DeleteParts(ctx, "SB-4140-2-36"); err != nil {
		t.Fatalf("DeleteParts failed: %v", err)
	}
	if err := repo.DeleteParts(ctx, "SB-4140-2-36"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}

	count, err = repo.CountParts(ctx)
	if err != nil {
		t.Fatalf("CountParts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 part after delete, got %d", count)
	}
}

func TestPartRepositoryClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.PutParts(ctx, testPart("SB-4140-2-36"), testPart("SB-4340-2-36")); err != nil {
		t.Fatalf("Failed to put parts: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	count, err := repo.CountParts(ctx)
	if err != nil {
		t.Fatalf("CountParts failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected empty repository after clear, got %d parts", count)
	}

	// Clearing an empty repository is fine
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty repository failed: %v", err)
	}
}

func TestPartRepositoryVectorRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	part := testPart("SB-4140-2-36")
	part.Vector = []float32{0.6, 0.8, 0.0}
	if _, err := repo.PutParts(ctx, part); err != nil {
		t.Fatalf("Failed to put part: %v", err)
	}

	retrieved, err := repo.GetPart(ctx, "SB-4140-2-36")
	if err != nil {
		t.Fatalf("Failed to get part: %v", err)
	}
	if len(retrieved.Vector) != 3 {
		t.Fatalf("Expected 3-dim vector, got %d", len(retrieved.Vector))
	}
	for i, v := range []float32{0.6, 0.8, 0.0} {
		if retrieved.Vector[i] != v {
			t.Errorf("Vector component %d: expected %f, got %f", i, v, retrieved.Vector[i])
		}
	}
}
