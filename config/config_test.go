package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeline/partmatch/search"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "partmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		path := writeConfig(t, `
matching:
  weights:
    fuzzy: 0.25
    material: 0.45
    alternative: 0.10
    semantic: 0.20
  accept_threshold: 0.65
  borderline_threshold: 0.80
  max_alternatives: 5
substitutions:
  "4140":
    - grade: "4340"
      rating: 0.9
      note: "higher hardenability"
ai:
  host: "http://ollama:11434"
  embedding_model: "nomic-embed-text"
  max_line_items: 50
pool_size: 8
`)
		f, err := Load(path)
		require.NoError(t, err)

		require.NotNil(t, f.Matching.Weights)
		assert.Equal(t, 0.45, f.Matching.Weights.Material)
		require.NotNil(t, f.Matching.AcceptThreshold)
		assert.Equal(t, 0.65, *f.Matching.AcceptThreshold)
		assert.Equal(t, "http://ollama:11434", f.AI.Host)
		assert.Equal(t, 8, f.PoolSize)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "matching: [not a mapping")
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse config")
	})
}

func TestSearchConfig(t *testing.T) {
	t.Run("partial file only overrides what it names", func(t *testing.T) {
		path := writeConfig(t, `
matching:
  accept_threshold: 0.70
`)
		f, err := Load(path)
		require.NoError(t, err)

		cfg, err := f.SearchConfig()
		require.NoError(t, err)

		defaults := search.DefaultConfig()
		assert.Equal(t, 0.70, cfg.AcceptThreshold)
		assert.Equal(t, defaults.Weights, cfg.Weights)
		assert.Equal(t, defaults.BorderlineThreshold, cfg.BorderlineThreshold)
		assert.Equal(t, defaults.SemanticTopK, cfg.SemanticTopK)
	})

	t.Run("empty file yields the defaults", func(t *testing.T) {
		f := &File{}
		cfg, err := f.SearchConfig()
		require.NoError(t, err)
		assert.Equal(t, search.DefaultConfig(), cfg)
	})

	t.Run("explicit zero threshold is honored", func(t *testing.T) {
		path := writeConfig(t, `
matching:
  accept_threshold: 0.0
`)
		f, err := Load(path)
		require.NoError(t, err)

		cfg, err := f.SearchConfig()
		require.NoError(t, err)
		assert.Zero(t, cfg.AcceptThreshold)
	})

	t.Run("weights that do not sum to one are rejected", func(t *testing.T) {
		path := writeConfig(t, `
matching:
  weights:
    fuzzy: 0.5
    material: 0.2
`)
		f, err := Load(path)
		require.NoError(t, err)

		_, err = f.SearchConfig()
		assert.ErrorIs(t, err, search.ErrInvalidWeights)
	})
}

func TestSubstitutionTable(t *testing.T) {
	t.Run("grades are normalized", func(t *testing.T) {
		path := writeConfig(t, `
substitutions:
  " 4140 ":
    - grade: " 4340 "
      rating: 0.9
`)
		f, err := Load(path)
		require.NoError(t, err)

		table := f.SubstitutionTable()
		require.NotNil(t, table)

		subs := table.For("4140")
		require.Len(t, subs, 1)
		assert.Equal(t, "4340", subs[0].Grade)
		assert.Equal(t, 0.9, subs[0].Rating)
	})

	t.Run("nil when the file defines none", func(t *testing.T) {
		f := &File{}
		assert.Nil(t, f.SubstitutionTable())
	})
}

func TestAIOptions(t *testing.T) {
	t.Run("unset fields keep provider defaults", func(t *testing.T) {
		f := &File{}
		assert.Empty(t, f.AIOptions())
	})

	t.Run("set fields become options", func(t *testing.T) {
		f := &File{AI: AI{
			Host:           "http://ollama:11434",
			EmbeddingModel: "nomic-embed-text",
			ExtractorModel: "qwen3",
			MaxLineItems:   25,
		}}
		assert.Len(t, f.AIOptions(), 4)
	})
}
