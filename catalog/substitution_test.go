package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutionTable(t *testing.T) {
	table := DefaultSubstitutions()

	t.Run("exact grade lookup", func(t *testing.T) {
		subs := table.For("4140")
		require.NotEmpty(t, subs)
		grades := make([]string, len(subs))
		for i, s := range subs {
			grades[i] = s.Grade
		}
		assert.Contains(t, grades, "4340")
	})

	t.Run("falls back to grade family", func(t *testing.T) {
		// No explicit 6061-T6 row; the 6061 family row applies.
		subs := table.For("6061-T6")
		require.NotEmpty(t, subs)
		assert.Equal(t, "6063", subs[0].Grade)
	})

	t.Run("unknown grade has no substitutes", func(t *testing.T) {
		assert.Nil(t, table.For("9999-X"))
	})

	t.Run("ratings are in range", func(t *testing.T) {
		for grade, subs := range table {
			for _, sub := range subs {
				assert.Greater(t, sub.Rating, 0.0, "%s -> %s", grade, sub.Grade)
				assert.LessOrEqual(t, sub.Rating, 1.0, "%s -> %s", grade, sub.Grade)
			}
		}
	})
}

func TestSubstitutionTableMerge(t *testing.T) {
	base := DefaultSubstitutions()
	custom := SubstitutionTable{
		"4140": {{Grade: "4150", Rating: 0.9, Note: "custom"}},
		"8620": {{Grade: "8622", Rating: 0.95, Note: "new row"}},
	}

	merged := base.Merge(custom)

	// Custom rows replace defaults with the same grade.
	subs := merged.For("4140")
	require.Len(t, subs, 1)
	assert.Equal(t, "4150", subs[0].Grade)

	// New rows are added, untouched rows survive.
	assert.NotEmpty(t, merged.For("8620"))
	assert.NotEmpty(t, merged.For("304"))

	// The original table is not mutated.
	assert.NotEqual(t, base.For("4140"), subs)
}
