package sqlite

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

func TestLoadMissingDatabase(t *testing.T) {
	s := New(t.TempDir())

	doc, err := s.Load()
	assert.ErrorIs(t, err, types.ErrNotFound)
	require.NotNil(t, doc)
	assert.Equal(t, types.DocumentVersion, doc.Version)
	assert.Empty(t, doc.Patterns)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	doc := types.NewDocument()
	_, err := doc.AddPattern(types.CategoryStrategy, "batch writes", "POST /api/x")
	require.NoError(t, err)
	_, err = doc.AddPattern(types.CategoryPitfall, "AVOID: unbounded retries", "")
	require.NoError(t, err)
	doc.Patterns[0].MarkUsed(true, time.Now().UTC())
	doc.TaskSuccesses = 3

	require.NoError(t, s.Save(doc))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, doc.Version, loaded.Version)
	assert.Equal(t, 3, loaded.TaskSuccesses)
	require.Len(t, loaded.Patterns, 2)

	// Insertion order is preserved.
	assert.Equal(t, doc.Patterns[0].ID, loaded.Patterns[0].ID)
	assert.Equal(t, doc.Patterns[1].ID, loaded.Patterns[1].ID)

	assert.Equal(t, "POST /api/x", loaded.Patterns[0].Endpoint)
	assert.Empty(t, loaded.Patterns[1].Endpoint)
	assert.Equal(t, 1, loaded.Patterns[0].Successes)
	require.NotNil(t, loaded.Patterns[0].LastUsed)
	assert.True(t, loaded.Patterns[0].LastUsed.Equal(*doc.Patterns[0].LastUsed))
	assert.Nil(t, loaded.Patterns[1].LastUsed)
}

func TestSaveReplacesPriorState(t *testing.T) {
	s := New(t.TempDir())

	doc := types.NewDocument()
	_, err := doc.AddPattern(types.CategoryCode, "first", "")
	require.NoError(t, err)
	require.NoError(t, s.Save(doc))

	// Drop the pattern and save again; the old row must not survive.
	doc.Patterns = doc.Patterns[:0]
	_, err = doc.AddPattern(types.CategoryCode, "second", "")
	require.NoError(t, err)
	require.NoError(t, s.Save(doc))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Patterns, 1)
	assert.Equal(t, "second", loaded.Patterns[0].Content)
}

func TestLoadCorruptDatabase(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, os.WriteFile(s.Path(), []byte("this is not a sqlite database"), 0o644))

	_, err := s.Load()
	assert.ErrorIs(t, err, types.ErrCorruptDocument)
}

func TestInitialize(t *testing.T) {
	seed := func(t *testing.T) []types.Pattern {
		p, err := types.NewPattern(types.CategoryDomain, "tenant means org", "")
		require.NoError(t, err)
		return []types.Pattern{*p}
	}

	t.Run("creates seeded database", func(t *testing.T) {
		s := New(t.TempDir())
		doc, err := s.Initialize(seed(t), false)
		require.NoError(t, err)
		require.Len(t, doc.Patterns, 1)

		loaded, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, doc.Patterns[0].ID, loaded.Patterns[0].ID)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		s := New(t.TempDir())
		_, err := s.Initialize(seed(t), false)
		require.NoError(t, err)

		_, err = s.Initialize(seed(t), false)
		assert.ErrorIs(t, err, types.ErrAlreadyExists)
	})

	t.Run("force replaces the database", func(t *testing.T) {
		s := New(t.TempDir())
		first, err := s.Initialize(seed(t), false)
		require.NoError(t, err)

		second, err := s.Initialize(seed(t), true)
		require.NoError(t, err)
		assert.NotEqual(t, first.Patterns[0].ID, second.Patterns[0].ID)

		loaded, err := s.Load()
		require.NoError(t, err)
		require.Len(t, loaded.Patterns, 1)
		assert.Equal(t, second.Patterns[0].ID, loaded.Patterns[0].ID)
	})
}
