package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeline/partmatch/core"
)

func TestDetectDuplicates(t *testing.T) {
	t.Run("flags repeated line items against the first occurrence", func(t *testing.T) {
		requirements := []core.Requirement{
			{Id: 100, RawText: "4140 steel round bar 2 inch"},
			{Id: 101, RawText: "6061-T6 aluminum sheet"},
			{Id: 102, RawText: "4140 Steel Round Bar 2 inch"},
			{Id: 103, RawText: "4140 steel round bar 2in"},
		}

		issues := detectDuplicates(requirements)
		require.Len(t, issues, 1)
		assert.Equal(t, 2, issues[0].LineItem)
		assert.Equal(t, core.SeverityBorderline, issues[0].Severity)
		assert.Contains(t, issues[0].Description, "line item 0")
		assert.Contains(t, issues[0].Description, "4140 Steel Round Bar 2 inch")
	})

	t.Run("no duplicates when all line items are distinct", func(t *testing.T) {
		requirements := []core.Requirement{
			{Id: 100, RawText: "4140 bar"},
			{Id: 101, RawText: "4340 bar"},
		}
		assert.Empty(t, detectDuplicates(requirements))
	})

	t.Run("empty raw text is never a duplicate", func(t *testing.T) {
		requirements := []core.Requirement{
			{Id: 100, RawText: ""},
			{Id: 101, RawText: ""},
		}
		assert.Empty(t, detectDuplicates(requirements))
	})
}
