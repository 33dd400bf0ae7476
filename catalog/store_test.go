package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeline/partmatch/ai/mock"
	"github.com/forgeline/partmatch/catalog"
	"github.com/forgeline/partmatch/core"
	"github.com/forgeline/partmatch/storage/badger"
)

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	store, err := catalog.NewStore(repo, mock.NewMockEmbedder())
	require.NoError(t, err)
	return store
}

func testRows() []core.CatalogRow {
	return []core.CatalogRow{
		{
			PartNumber:   "SB-4140-2-36",
			Description:  "4140 Alloy Steel Round Bar 2in x 36in",
			Material:     "4140",
			Form:         "bar",
			UnitPrice:    "42.50",
			Availability: 120,
		},
		{
			PartNumber:   "SH-6061-T6-1",
			Description:  "6061-T6 Aluminum Sheet 0.063in x 48in x 96in",
			Material:     "6061-T6",
			Form:         "sheet",
			UnitPrice:    "18.00",
			Availability: 40,
		},
		{
			PartNumber:   "SB-6061-1-36",
			Description:  "6061 Aluminum Round Bar 1in x 36in",
			Material:     "6061",
			Form:         "bar",
			UnitPrice:    "9.75",
			Availability: 200,
		},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("requires repository", func(t *testing.T) {
		store, err := catalog.NewStore(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, catalog.ErrRepositoryRequired)
		assert.Nil(t, store)
	})

	t.Run("requires embedder", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()
		defer repo.Close()

		store, err := catalog.NewStore(repo, nil)
		assert.ErrorIs(t, err, catalog.ErrEmbedderRequired)
		assert.Nil(t, store)
	})

	t.Run("rejects bad batch size", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()
		defer repo.Close()

		_, err = catalog.NewStore(repo, mock.NewMockEmbedder(), catalog.WithBatchSize(0))
		assert.ErrorIs(t, err, catalog.ErrInvalidBatchSize)
	})
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads valid rows and embeds them", func(t *testing.T) {
		store := newTestStore(t)

		report, err := store.Load(ctx, testRows())
		require.NoError(t, err)
		assert.Equal(t, 3, report.TotalRows)
		assert.Equal(t, 3, report.LoadedParts)
		assert.Equal(t, 0, report.SkippedRows)
		assert.Equal(t, 3, report.EmbeddedParts)

		snap, err := store.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, 3, snap.Len())
		assert.NotNil(t, snap.Part("SB-4140-2-36"))
		assert.Len(t, snap.Vectors(), 3)
	})

	t.Run("skips malformed rows without failing", func(t *testing.T) {
		store := newTestStore(t)

		rows := testRows()
		rows = append(rows,
			core.CatalogRow{PartNumber: "", Description: "missing part number"},
			core.CatalogRow{PartNumber: "BAD-PRICE", Description: "x", UnitPrice: "oops"},
		)

		report, err := store.Load(ctx, rows)
		require.NoError(t, err)
		assert.Equal(t, 3, report.LoadedParts)
		assert.Equal(t, 2, report.SkippedRows)
		assert.Len(t, report.Errors, 2)
	})

	t.Run("skips duplicate part numbers", func(t *testing.T) {
		store := newTestStore(t)

		rows := testRows()
		rows = append(rows, rows[0])

		report, err := store.Load(ctx, rows)
		require.NoError(t, err)
		assert.Equal(t, 3, report.LoadedParts)
		assert.Equal(t, 1, report.SkippedRows)
	})

	t.Run("fails when zero valid rows", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Load(ctx, []core.CatalogRow{
			{PartNumber: "", Description: ""},
		})
		assert.ErrorIs(t, err, catalog.ErrNoValidRows)
	})

	t.Run("replaces previous catalog entirely", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Load(ctx, testRows())
		require.NoError(t, err)

		_, err = store.Load(ctx, testRows()[:1])
		require.NoError(t, err)

		snap, err := store.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, 1, snap.Len())
		assert.Nil(t, snap.Part("SH-6061-T6-1"))
	})
}

func TestStoreSnapshotIndices(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Load(ctx, testRows())
	require.NoError(t, err)

	snap, err := store.Snapshot()
	require.NoError(t, err)

	t.Run("token index", func(t *testing.T) {
		hits := snap.ByToken("4140")
		require.Len(t, hits, 1)
		assert.Equal(t, "SB-4140-2-36", hits[0].PartNumber)
	})

	t.Run("material index is exact", func(t *testing.T) {
		assert.Len(t, snap.ByMaterial("6061-T6"), 1)
		assert.Len(t, snap.ByMaterial("6061"), 1)
	})

	t.Run("family index spans tempers", func(t *testing.T) {
		family := snap.ByFamily("6061")
		assert.Len(t, family, 2)
	})

	t.Run("parts are ordered by part number", func(t *testing.T) {
		parts := snap.Parts()
		require.Len(t, parts, 3)
		for i := 1; i < len(parts); i++ {
			assert.Less(t, parts[i-1].PartNumber, parts[i].PartNumber)
		}
	})
}

func TestStoreStats(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a loaded catalog", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Stats()
		assert.ErrorIs(t, err, catalog.ErrNotLoaded)
	})

	t.Run("computes totals from the live snapshot", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Load(ctx, testRows())
		require.NoError(t, err)

		stats, err := store.Stats()
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalParts)
		assert.Equal(t, []string{"4140", "6061", "6061-T6"}, stats.Materials)
		assert.Equal(t, []string{"bar", "sheet"}, stats.Forms)
		assert.Equal(t, 3, stats.EmbeddedParts)

		// 42.50*120 + 18.00*40 + 9.75*200 = 5100 + 720 + 1950
		assert.Equal(t, "7770", stats.TotalInventoryValue.String())
	})

	t.Run("reload is idempotent", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Load(ctx, testRows())
		require.NoError(t, err)

		first, err := store.Stats()
		require.NoError(t, err)

		require.NoError(t, store.Reload(ctx))
		second, err := store.Stats()
		require.NoError(t, err)

		assert.Equal(t, first.TotalParts, second.TotalParts)
		assert.Equal(t, first.Materials, second.Materials)
		assert.Equal(t, first.Forms, second.Forms)
		assert.True(t, first.TotalInventoryValue.Equal(second.TotalInventoryValue))
	})
}
