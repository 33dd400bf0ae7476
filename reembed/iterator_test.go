package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/storage"
	"github.com/forgeline/partmatch/storage/badger"
)

func newSeededRepo(t *testing.T, count int) storage.CatalogRepository {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	parts := make([]*core.PartRecord, 0, count)
	for i := 0; i < count; i++ {
		parts = append(parts, &core.PartRecord{
			PartNumber:   fmt.Sprintf("SB-4140-2-%02d", i),
			Description:  fmt.Sprintf("4140 Alloy Steel Round Bar 2in x %din", i),
			Material:     "4140",
			Form:         "bar",
			UnitPrice:    decimal.NewFromInt(40),
			Availability: 10,
		})
	}
	if count > 0 {
		_, err = repo.PutParts(context.Background(), parts...)
		require.NoError(t, err)
	}
	return repo
}

func TestPartIterator_Batching(t *testing.T) {
	repo := newSeededRepo(t, 7)
	iterator := NewPartIterator(repo, 3)

	var sizes []int
	var seen []string
	err := iterator.ForEach(context.Background(), func(parts []*core.PartRecord) error {
		sizes = append(sizes, len(parts))
		for _, part := range parts {
			seen = append(seen, part.PartNumber)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 3, 1}, sizes, "final partial batch must be delivered")
	require.Len(t, seen, 7)
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i], "parts must arrive in part-number order")
	}
}

func TestPartIterator_ExactMultiple(t *testing.T) {
	repo := newSeededRepo(t, 6)
	iterator := NewPartIterator(repo, 3)

	batches := 0
	err := iterator.ForEach(context.Background(), func(parts []*core.PartRecord) error {
		batches++
		assert.Len(t, parts, 3)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, batches)
}

func TestPartIterator_Empty(t *testing.T) {
	repo := newSeededRepo(t, 0)
	iterator := NewPartIterator(repo, 3)

	err := iterator.ForEach(context.Background(), func(parts []*core.PartRecord) error {
		t.Fatal("callback must not run on an empty repository")
		return nil
	})
	require.NoError(t, err)
}

func TestPartIterator_CallbackError(t *testing.T) {
	repo := newSeededRepo(t, 7)
	iterator := NewPartIterator(repo, 3)

	boom := errors.New("boom")
	batches := 0
	err := iterator.ForEach(context.Background(), func(parts []*core.PartRecord) error {
		batches++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, batches, "iteration must stop on the first error")
}

func TestPartIterator_DefaultBatchSize(t *testing.T) {
	repo := newSeededRepo(t, 2)
	iterator := NewPartIterator(repo, 0)

	batches := 0
	err := iterator.ForEach(context.Background(), func(parts []*core.PartRecord) error {
		batches++
		assert.Len(t, parts, 2)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, batches)
}
